package markdown

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

func exportedFile(t *testing.T, id, title string) *fstest.MapFile {
	t.Helper()
	content, err := WithFrontMatter(interfaces.ConvertedDocument{
		Content:  "# " + title + "\n\n",
		Metadata: interfaces.Metadata{ID: id, Title: title},
	})
	if err != nil {
		t.Fatalf("WithFrontMatter: %v", err)
	}
	return &fstest.MapFile{Data: []byte(content)}
}

func TestLoaderLoadsExportSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":          exportedFile(t, "b", "Beta"),
		"a.md":          exportedFile(t, "a", "Alfa"),
		"nested/c.md":   exportedFile(t, "c", "Gamma"),
		"index.md":      exportedFile(t, "index", "Índice"),
		"notes.md":      {Data: []byte("# Sin cabecera\n")},
		"image.png":     {Data: []byte{0x89}},
		"drafts/d.md":   exportedFile(t, "d", "Borrador"),
		"nested/readme": {Data: []byte("x")},
	}

	loader := NewLoader(fsys, LoaderConfig{Exclude: []string{"drafts/**"}}, nil)
	files, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"a.md", "b.md", "nested/c.md"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %+v", want, files)
	}
	for i, path := range want {
		if files[i].Path != path {
			t.Fatalf("position %d: expected %s, got %s", i, path, files[i].Path)
		}
	}
	if files[0].Meta.Title != "Alfa" || string(files[0].Body) != "# Alfa\n\n" {
		t.Fatalf("unexpected first file %+v", files[0])
	}
}

func TestLoaderIncludeIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"index.md": exportedFile(t, "index", "Índice"),
	}
	files, err := NewLoader(fsys, LoaderConfig{IncludeIndex: true}, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(files) != 1 || files[0].Meta.ID != "index" {
		t.Fatalf("expected index file, got %+v", files)
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fsys := fstest.MapFS{"a.md": exportedFile(t, "a", "Alfa")}
	if _, err := NewLoader(fsys, LoaderConfig{}, nil).Load(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoaderInvalidPattern(t *testing.T) {
	_, err := NewLoader(fstest.MapFS{}, LoaderConfig{Pattern: "[a-"}, nil).Load(context.Background())
	if err == nil {
		t.Fatal("expected pattern error")
	}
}

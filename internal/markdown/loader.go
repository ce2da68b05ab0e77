package markdown

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// DefaultPattern selects every markdown file below the export root.
const DefaultPattern = "**/*.md"

// LoaderConfig controls which exported files are read back.
type LoaderConfig struct {
	// Pattern is a doublestar glob relative to the filesystem root.
	Pattern string
	// Exclude lists globs that are skipped even when Pattern matches.
	Exclude []string
	// IncludeIndex keeps the generated index document in the result.
	IncludeIndex bool
}

// Loader reads exported documents from a filesystem.
type Loader struct {
	fs           fs.FS
	pattern      string
	exclude      []string
	includeIndex bool
	logger       interfaces.Logger
}

// NewLoader builds a loader over fsys.
func NewLoader(fsys fs.FS, cfg LoaderConfig, logger interfaces.Logger) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Loader{
		fs:           fsys,
		pattern:      pattern,
		exclude:      append([]string(nil), cfg.Exclude...),
		includeIndex: cfg.IncludeIndex,
		logger:       logger,
	}
}

// Load returns every matching file sorted by path. Files whose header
// carries no page id were not produced by an export and are skipped.
func (l *Loader) Load(ctx context.Context) ([]interfaces.ExportedFile, error) {
	matches, err := doublestar.Glob(l.fs, l.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "match export files").
			WithMetadata(map[string]any{"pattern": l.pattern})
	}
	sort.Strings(matches)

	files := make([]interfaces.ExportedFile, 0, len(matches))
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if l.skip(name) {
			continue
		}

		file, err := l.LoadFile(name)
		if err != nil {
			return nil, err
		}
		if file.Meta.ID == "" {
			l.logger.Debug("markdown.load.skipped", "path", name, "reason", "missing_id")
			continue
		}
		files = append(files, file)
	}

	l.logger.Debug("markdown.load.completed", "pattern", l.pattern, "files", len(files))
	return files, nil
}

// LoadFile reads and splits a single file.
func (l *Loader) LoadFile(name string) (interfaces.ExportedFile, error) {
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return interfaces.ExportedFile{}, goerrors.Wrap(err, goerrors.CategoryOperation, "read export file").
			WithMetadata(map[string]any{"path": name})
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			richErr.WithMetadata(map[string]any{"path": name})
		}
		return interfaces.ExportedFile{}, err
	}
	return interfaces.ExportedFile{Path: name, Meta: meta, Body: body}, nil
}

func (l *Loader) skip(name string) bool {
	if !l.includeIndex && path.Base(name) == "index.md" {
		return true
	}
	for _, pattern := range l.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

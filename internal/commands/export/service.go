package exportcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-notionmd/internal/commands"
	"github.com/goliatone/go-notionmd/internal/index"
	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/internal/markdown"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

const (
	TextCodeInputReadFailed = "EXPORT_INPUT_READ_FAILED"
	TextCodeInputInvalid    = "EXPORT_INPUT_INVALID"
	TextCodeWriteFailed     = "EXPORT_WRITE_FAILED"
)

// Converter is the subset of the engine the export pipeline drives.
type Converter interface {
	ConvertPage(page interfaces.Page, opts *interfaces.ConversionOptions) interfaces.ConvertedDocument
	ConvertPageWithBlocks(page interfaces.Page, blocks []interfaces.Block, opts *interfaces.ConversionOptions) interfaces.ConvertedDocument
	GenerateIndex(entries []interfaces.Metadata) interfaces.ConvertedDocument
}

// Record is one decoded input entry. HasBlocks is set when the input carried
// a blocks key, even an empty one, and selects the content section.
type Record struct {
	Page      interfaces.Page
	Blocks    []interfaces.Block
	HasBlocks bool
}

// ExportResult summarises an export run.
type ExportResult struct {
	RunID      string
	OutputDir  string
	Files      []string
	Duplicates []string
	Index      string
}

// ReindexResult summarises a reindex run.
type ReindexResult struct {
	RunID     string
	OutputDir string
	Pages     int
	Index     string
}

// Service runs the export and reindex pipelines on the local filesystem.
type Service struct {
	converter Converter
	logger    interfaces.Logger
}

// NewService binds the pipeline to a converter.
func NewService(converter Converter, logger interfaces.Logger) *Service {
	return &Service{converter: converter, logger: commands.EnsureLogger(logger)}
}

// Export converts every input and writes the resulting files.
func (s *Service) Export(ctx context.Context, msg ExportPagesCommand) (ExportResult, error) {
	result := ExportResult{RunID: uuid.NewString(), OutputDir: msg.OutputDir}
	ctx = logging.ContextWithRun(ctx, result.RunID, msg.OutputDir)
	logger := s.logger.WithContext(ctx)
	opts := conversionOptions(msg)

	var docs []interfaces.ConvertedDocument
	for _, input := range msg.Inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		records, err := readRecords(input)
		if err != nil {
			return result, err
		}
		for _, record := range records {
			docs = append(docs, s.convert(record, opts))
		}
		logger.Debug("export.input.converted", "input", input, "pages", len(records))
	}

	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if _, dup := seen[doc.Filename]; dup {
			result.Duplicates = append(result.Duplicates, doc.Filename)
			logger.Warn("export.write.duplicate_filename", "filename", doc.Filename, logging.FieldPageID, doc.Metadata.ID)
		}
		seen[doc.Filename] = struct{}{}

		content := doc.Content
		if msg.Frontmatter {
			withHeader, err := markdown.WithFrontMatter(doc)
			if err != nil {
				return result, err
			}
			content = withHeader
		}
		path, err := writeFile(msg.OutputDir, doc.Filename, content, msg.DryRun)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
	}

	if msg.GenerateIndex {
		doc := s.converter.GenerateIndex(index.FromDocuments(docs))
		path, err := writeFile(msg.OutputDir, doc.Filename, doc.Content, msg.DryRun)
		if err != nil {
			return result, err
		}
		result.Index = path
	}

	logger.Info("export.completed",
		"pages", len(docs),
		"duplicates", len(result.Duplicates),
		"index", result.Index != "",
		"dry_run", msg.DryRun,
	)
	return result, nil
}

// Reindex rebuilds index.md from the exported files' front matter.
func (s *Service) Reindex(ctx context.Context, msg ReindexCommand) (ReindexResult, error) {
	result := ReindexResult{RunID: uuid.NewString(), OutputDir: msg.OutputDir}
	ctx = logging.ContextWithRun(ctx, result.RunID, msg.OutputDir)
	logger := s.logger.WithContext(ctx)

	loader := markdown.NewLoader(os.DirFS(msg.OutputDir), markdown.LoaderConfig{
		Pattern: msg.Pattern,
		Exclude: msg.Exclude,
	}, logger)
	files, err := loader.Load(ctx)
	if err != nil {
		return result, err
	}

	entries := make([]interfaces.Metadata, 0, len(files))
	for _, file := range files {
		entries = append(entries, file.Meta)
	}
	doc := s.converter.GenerateIndex(entries)
	path, err := writeFile(msg.OutputDir, doc.Filename, doc.Content, msg.DryRun)
	if err != nil {
		return result, err
	}
	result.Pages = len(entries)
	result.Index = path

	logger.Info("export.reindex.completed", "pages", result.Pages, "dry_run", msg.DryRun)
	return result, nil
}

func (s *Service) convert(record Record, opts *interfaces.ConversionOptions) interfaces.ConvertedDocument {
	if record.HasBlocks {
		return s.converter.ConvertPageWithBlocks(record.Page, record.Blocks, opts)
	}
	return s.converter.ConvertPage(record.Page, opts)
}

func conversionOptions(msg ExportPagesCommand) *interfaces.ConversionOptions {
	if msg.IndentSpaces == nil && !msg.OmitUnsupported {
		return nil
	}
	opts := &interfaces.ConversionOptions{IndentSpaces: msg.IndentSpaces}
	if msg.OmitUnsupported {
		include := false
		opts.IncludeUnsupportedComments = &include
	}
	return opts
}

func readRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "read export input").
			WithTextCode(TextCodeInputReadFailed).
			WithMetadata(map[string]any{"path": path})
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "decode export input").
			WithTextCode(TextCodeInputInvalid).
			WithMetadata(map[string]any{"path": path})
	}
	return records, nil
}

// DecodeRecords accepts a single page object, a {"page", "blocks"} object,
// or a JSON array mixing both.
func DecodeRecords(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, goerrors.New("input is empty", goerrors.CategoryBadInput)
	}
	if trimmed[0] != '[' {
		record, err := decodeRecord(trimmed)
		if err != nil {
			return nil, err
		}
		return []Record{record}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(items))
	for i, item := range items {
		record, err := decodeRecord(item)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "decode record").
				WithMetadata(map[string]any{"position": i})
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) (Record, error) {
	var probe struct {
		Page   json.RawMessage `json:"page"`
		Blocks json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Record{}, err
	}

	pageRaw := raw
	if isPresent(probe.Page) {
		pageRaw = probe.Page
	}
	var record Record
	if err := json.Unmarshal(pageRaw, &record.Page); err != nil {
		return Record{}, err
	}
	if record.Page.ID == "" {
		return Record{}, goerrors.New("page id is required", goerrors.CategoryBadInput)
	}
	if len(probe.Blocks) > 0 {
		record.HasBlocks = true
		if isPresent(probe.Blocks) {
			if err := json.Unmarshal(probe.Blocks, &record.Blocks); err != nil {
				return Record{}, err
			}
		}
	}
	return record, nil
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func writeFile(dir, name, content string, dryRun bool) (string, error) {
	path := filepath.Join(dir, name)
	if dryRun {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "create output directory").
			WithTextCode(TextCodeWriteFailed).
			WithMetadata(map[string]any{"path": dir})
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "write export file").
			WithTextCode(TextCodeWriteFailed).
			WithMetadata(map[string]any{"path": path})
	}
	return path, nil
}

package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

const (
	rootModule       = "notionmd"
	blocksModule     = "notionmd.blocks"
	propertiesModule = "notionmd.properties"
	pagesModule      = "notionmd.pages"
	indexModule      = "notionmd.index"
	exportModule     = "notionmd.export"
	markdownModule   = "notionmd.markdown"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{FieldModule: module})
}

// BlocksLogger returns the logger namespace reserved for the block renderer.
func BlocksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blocksModule)
}

// PropertiesLogger returns the logger namespace reserved for property serialization.
func PropertiesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, propertiesModule)
}

// PagesLogger returns the logger namespace reserved for page assembly.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// IndexLogger returns the logger namespace reserved for index generation.
func IndexLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, indexModule)
}

// ExportLogger returns the logger namespace reserved for export runs.
func ExportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exportModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown previews and reindexing.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithPageContext tags the logger with the page identifier. Blank ids are ignored.
func WithPageContext(logger interfaces.Logger, pageID string) interfaces.Logger {
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		return WithFields(logger, map[string]any{FieldPageID: trimmed})
	}
	return logger
}

// ContextWithRun tags ctx with the export run id and output path so every
// logger bound to it reports them. Empty values are ignored.
func ContextWithRun(ctx context.Context, runID, outputPath string) context.Context {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[FieldRunID] = trimmed
	}
	if trimmed := strings.TrimSpace(outputPath); trimmed != "" {
		fields[FieldOutputPath] = trimmed
	}
	return ContextWithFields(ctx, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

package exportcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-notionmd/internal/commands"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

const (
	exportOperation  = "export.pages"
	reindexOperation = "export.reindex"
)

var (
	_ command.Commander[ExportPagesCommand] = (*ExportPagesHandler)(nil)
	_ command.Commander[ReindexCommand]     = (*ReindexHandler)(nil)
)

// ExportPagesHandler runs the export pipeline through the shared command handler.
type ExportPagesHandler struct {
	inner *commands.Handler[ExportPagesCommand]
}

// NewExportPagesHandler builds a handler bound to service. observe, when set,
// receives the result of every successful run.
func NewExportPagesHandler(service *Service, logger interfaces.Logger, observe func(ExportResult), opts ...commands.HandlerOption[ExportPagesCommand]) *ExportPagesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportPagesCommand) error {
		result, err := service.Export(ctx, msg)
		if err != nil {
			return err
		}
		if observe != nil {
			observe(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportPagesCommand]{
		commands.WithLogger[ExportPagesCommand](baseLogger),
		commands.WithOperation[ExportPagesCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportPagesCommand) map[string]any {
			fields := map[string]any{
				"inputs":     len(msg.Inputs),
				"output_dir": msg.OutputDir,
			}
			if msg.Frontmatter {
				fields["frontmatter"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportPagesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportPagesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportPagesCommand].
func (h *ExportPagesHandler) Execute(ctx context.Context, msg ExportPagesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReindexHandler regenerates index.md through the shared command handler.
type ReindexHandler struct {
	inner *commands.Handler[ReindexCommand]
}

// NewReindexHandler builds a handler bound to service.
func NewReindexHandler(service *Service, logger interfaces.Logger, observe func(ReindexResult), opts ...commands.HandlerOption[ReindexCommand]) *ReindexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ReindexCommand) error {
		result, err := service.Reindex(ctx, msg)
		if err != nil {
			return err
		}
		if observe != nil {
			observe(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ReindexCommand]{
		commands.WithLogger[ReindexCommand](baseLogger),
		commands.WithOperation[ReindexCommand](reindexOperation),
		commands.WithMessageFields(func(msg ReindexCommand) map[string]any {
			fields := map[string]any{"output_dir": msg.OutputDir}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReindexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReindexHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ReindexCommand].
func (h *ReindexHandler) Execute(ctx context.Context, msg ReindexCommand) error {
	return h.inner.Execute(ctx, msg)
}

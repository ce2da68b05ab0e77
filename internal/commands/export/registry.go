package exportcmd

import (
	"errors"

	"github.com/goliatone/go-notionmd/internal/commands"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterExportCommands.
type HandlerSet struct {
	Export  *ExportPagesHandler
	Reindex *ReindexHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	exportObserver  func(ExportResult)
	reindexObserver func(ReindexResult)
	exportOpts      []commands.HandlerOption[ExportPagesCommand]
	reindexOpts     []commands.HandlerOption[ReindexCommand]
}

// WithExportObserver receives every successful export result.
func WithExportObserver(fn func(ExportResult)) Option {
	return func(cfg *options) {
		cfg.exportObserver = fn
	}
}

// WithReindexObserver receives every successful reindex result.
func WithReindexObserver(fn func(ReindexResult)) Option {
	return func(cfg *options) {
		cfg.reindexObserver = fn
	}
}

// WithExportHandlerOptions forwards options to the export handler.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportPagesCommand]) Option {
	return func(cfg *options) {
		cfg.exportOpts = append(cfg.exportOpts, opts...)
	}
}

// WithReindexHandlerOptions forwards options to the reindex handler.
func WithReindexHandlerOptions(opts ...commands.HandlerOption[ReindexCommand]) Option {
	return func(cfg *options) {
		cfg.reindexOpts = append(cfg.reindexOpts, opts...)
	}
}

// RegisterExportCommands builds the export handlers and registers them with
// reg when one is supplied.
func RegisterExportCommands(reg CommandRegistry, converter Converter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if converter == nil {
		return nil, errors.New("export command registration: converter is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "export")
	service := NewService(converter, logger)
	set := &HandlerSet{
		Export:  NewExportPagesHandler(service, logger, cfg.exportObserver, cfg.exportOpts...),
		Reindex: NewReindexHandler(service, logger, cfg.reindexObserver, cfg.reindexOpts...),
	}

	if reg == nil {
		return set, nil
	}
	if err := reg.RegisterCommand(set.Export); err != nil {
		return nil, err
	}
	if err := reg.RegisterCommand(set.Reindex); err != nil {
		return nil, err
	}
	return set, nil
}

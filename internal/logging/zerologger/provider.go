package zerologger

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// Config captures the options exposed by the zerolog adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Writer    io.Writer
}

// Provider wraps a zerolog root logger so it satisfies the engine logging interfaces.
type Provider struct {
	root zerolog.Logger
}

// NewProvider builds a zerolog backed provider. JSON is the default format;
// "console" switches to zerolog's human readable writer.
func NewProvider(cfg Config) (*Provider, error) {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
	case "console", "pretty":
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: true}
	default:
		return nil, fmt.Errorf("logging: unsupported zerolog format %q", cfg.Format)
	}

	level, ok := logging.ParseLevel(cfg.Level)
	if !ok {
		return nil, fmt.Errorf("logging: unsupported zerolog level %q", cfg.Level)
	}

	builder := zerolog.New(writer).Level(zerologLevel(level)).With().Timestamp()
	if cfg.AddSource {
		builder = builder.Caller()
	}
	return &Provider{root: builder.Logger()}, nil
}

// GetLogger satisfies interfaces.LoggerProvider with a child tagged by name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	inner := p.root
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		inner = inner.With().Str("logger", trimmed).Logger()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner zerolog.Logger
	ctx   context.Context
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.log(logging.LevelTrace, msg, args) }
func (l *adapter) Debug(msg string, args ...any) { l.log(logging.LevelDebug, msg, args) }
func (l *adapter) Info(msg string, args ...any)  { l.log(logging.LevelInfo, msg, args) }
func (l *adapter) Warn(msg string, args ...any)  { l.log(logging.LevelWarn, msg, args) }
func (l *adapter) Error(msg string, args ...any) { l.log(logging.LevelError, msg, args) }

// Fatal records at fatal level without terminating the process.
func (l *adapter) Fatal(msg string, args ...any) { l.log(logging.LevelFatal, msg, args) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	return &adapter{
		inner: l.inner.With().Fields(maps.Clone(fields)).Logger(),
		ctx:   l.ctx,
	}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &adapter{inner: l.inner, ctx: ctx}
}

func (l *adapter) log(level logging.Level, msg string, args []any) {
	event := l.inner.WithLevel(zerologLevel(level))
	if event == nil {
		return
	}
	if ctxFields := logging.ContextFields(l.ctx); len(ctxFields) > 0 {
		event = event.Fields(ctxFields)
	}
	if len(args)%2 == 1 {
		args = append(args[:len(args):len(args)], nil)
	}
	if len(args) > 0 {
		event = event.Fields(args)
	}
	event.Msg(msg)
}

func zerologLevel(level logging.Level) zerolog.Level {
	switch level {
	case logging.LevelTrace:
		return zerolog.TraceLevel
	case logging.LevelDebug:
		return zerolog.DebugLevel
	case logging.LevelInfo:
		return zerolog.InfoLevel
	case logging.LevelWarn:
		return zerolog.WarnLevel
	case logging.LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.ErrorLevel
	}
}

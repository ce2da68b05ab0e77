package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// Options configures the console provider. Writer defaults to stderr so
// converted markdown on stdout stays clean. Level is parsed with
// logging.ParseLevel and defaults to logging.DefaultLevel.
type Options struct {
	Writer   io.Writer
	Level    string
	TimeFunc func() time.Time
}

type provider struct {
	writer   io.Writer
	clock    func() time.Time
	minLevel logging.Level
	mu       sync.Mutex
}

// NewProvider returns a line oriented text provider:
//
//	2024-03-14T15:09:26Z ERROR blocks.render.failed module=notionmd.blocks page_id=p1 block_type=toggle error="boom"
//
// The conversion identifiers lead each entry; other fields follow sorted.
func NewProvider(opts Options) (interfaces.LoggerProvider, error) {
	level, ok := logging.ParseLevel(opts.Level)
	if !ok {
		return nil, fmt.Errorf("logging: unsupported console level %q", opts.Level)
	}
	p := &provider{writer: opts.Writer, clock: opts.TimeFunc, minLevel: level}
	if p.writer == nil {
		p.writer = os.Stderr
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p, nil
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	l := &logger{provider: p}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		l.fields = map[string]any{logging.FieldModule: trimmed}
	}
	return l
}

func (p *provider) write(level logging.Level, msg string, fields map[string]any) {
	var b strings.Builder
	b.WriteString(p.clock().UTC().Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range logging.OrderedKeys(fields) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	b.WriteByte('\n')

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.writer, b.String())
}

type logger struct {
	provider *provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.log(logging.LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.log(logging.LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.log(logging.LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.log(logging.LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.log(logging.LevelError, msg, args) }

// Fatal records at fatal level without terminating the process.
func (l *logger) Fatal(msg string, args ...any) { l.log(logging.LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &logger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &logger{provider: l.provider, fields: l.fields, ctx: ctx}
}

func (l *logger) log(level logging.Level, msg string, args []any) {
	if level < l.provider.minLevel {
		return
	}
	fields := make(map[string]any, len(l.fields)+len(args)/2+1)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg_" + strconv.Itoa(i/2)
		}
		if i+1 < len(args) {
			fields[key] = args[i+1]
		} else {
			fields[key] = nil
		}
	}
	l.provider.write(level, msg, fields)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" || strings.ContainsFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}

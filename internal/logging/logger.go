package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"splitaudit/internal/config"
)

// Options describe the logger to build: output format ("console" or
// "json"), minimum level, and one or more destinations ("stdout",
// "stderr", or a file path).
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
}

// New builds a slog logger for the requested format, level, and outputs.
func New(opts Options) (*slog.Logger, error) {
	minLevel := levelFromString(opts.Level)
	lv := new(slog.LevelVar)
	lv.Set(minLevel)

	sink, err := resolveOutputs(opts.OutputPaths)
	if err != nil {
		return nil, err
	}

	// Caller locations are debug-only noise otherwise.
	withCaller := minLevel <= slog.LevelDebug

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(&consoleHandler{sink: sink, level: lv, withCaller: withCaller}), nil
	case "json":
		return slog.New(jsonHandler(sink, lv, withCaller)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}
}

// NewFromConfig derives a logger from the [logging] config section. A
// configured log directory duplicates the stream into
// <log_dir>/splitaudit.log.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", OutputPaths: []string{"stderr"}})
	}

	paths := []string{"stderr"}
	if dir := cfg.Logging.LogDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory %q: %w", dir, err)
		}
		paths = append(paths, filepath.Join(dir, "splitaudit.log"))
	}

	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
	})
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveOutputs maps destination names onto one io.Writer. Duplicates
// collapse so a repeated path cannot double-log a line.
func resolveOutputs(paths []string) (io.Writer, error) {
	var (
		sinks []io.Writer
		used  = make(map[string]struct{}, len(paths))
	)
	for _, raw := range paths {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := used[name]; dup {
			continue
		}
		used[name] = struct{}{}

		if name == "stdout" {
			sinks = append(sinks, os.Stdout)
			continue
		}
		if name == "stderr" {
			sinks = append(sinks, os.Stderr)
			continue
		}
		if parent := filepath.Dir(name); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory %q: %w", parent, err)
			}
		}
		file, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
		if err != nil {
			return nil, fmt.Errorf("open log sink %s: %w", name, err)
		}
		sinks = append(sinks, file)
	}

	switch len(sinks) {
	case 0:
		return os.Stderr, nil
	case 1:
		return sinks[0], nil
	}
	return io.MultiWriter(sinks...), nil
}

func jsonHandler(w io.Writer, level *slog.LevelVar, withCaller bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: withCaller,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if t := attr.Value; t.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(t.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Key = "level"
				label := strings.ToLower(attr.Value.String())
				attr.Value = slog.StringValue(label)
			case slog.MessageKey:
				attr.Key = "msg"
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(callerRef(src.File, src.Line))
				}
			}
			return attr
		},
	})
}

// callerRef renders a source location as "file.go:123".
func callerRef(file string, line int) string {
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// consoleHandler renders "TIMESTAMP LEVEL component: message key=value"
// lines for humans watching a terminal or tailing the log file.
type consoleHandler struct {
	mu         sync.Mutex
	sink       io.Writer
	level      *slog.LevelVar
	attrs      []slog.Attr
	prefix     string
	withCaller bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := appendFields(nil, h.prefix, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendFields(fields, h.prefix, attr)
		return true
	})
	component, fields := takeComponent(fields)

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var line bytes.Buffer
	line.WriteString(ts.UTC().Format(time.RFC3339))
	line.WriteByte(' ')
	line.WriteString(levelText(record.Level))
	line.WriteByte(' ')
	if component != "" {
		line.WriteString(component)
		line.WriteString(": ")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	line.WriteString(msg)

	if h.withCaller {
		if src := record.Source(); src != nil {
			line.WriteString(" [")
			line.WriteString(callerRef(src.File, src.Line))
			line.WriteByte(']')
		}
	}

	for _, f := range fields {
		if f.name == "" {
			continue
		}
		line.WriteByte(' ')
		line.WriteString(f.name)
		line.WriteByte('=')
		line.WriteString(renderValue(f.value))
	}
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.sink.Write(line.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	next.attrs = append(next.attrs, attrs...)
	return next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := h.clone()
	next.prefix = joinPrefix(next.prefix, name)
	return next
}

func (h *consoleHandler) clone() *consoleHandler {
	return &consoleHandler{
		sink:       h.sink,
		level:      h.level,
		attrs:      append([]slog.Attr(nil), h.attrs...),
		prefix:     h.prefix,
		withCaller: h.withCaller,
	}
}

type field struct {
	name  string
	value slog.Value
}

// appendFields resolves attrs into flat name/value pairs, expanding
// groups into dotted names.
func appendFields(dst []field, prefix string, attrs ...slog.Attr) []field {
	for _, attr := range attrs {
		if attr.Equal(slog.Attr{}) {
			continue
		}
		attr.Value = attr.Value.Resolve()
		if attr.Value.Kind() == slog.KindGroup {
			next := prefix
			if attr.Key != "" {
				next = joinPrefix(prefix, attr.Key)
			}
			dst = appendFields(dst, next, attr.Value.Group()...)
			continue
		}
		name := attr.Key
		if prefix != "" && name != "" {
			name = prefix + "." + name
		}
		dst = append(dst, field{name: name, value: attr.Value})
	}
	return dst
}

func joinPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// takeComponent pulls the first component attribute out of fields so it
// can prefix the message instead of trailing as key=value.
func takeComponent(fields []field) (string, []field) {
	component := ""
	kept := fields[:0]
	for _, f := range fields {
		if f.name == FieldComponent {
			if component == "" {
				component = renderValue(f.value)
			}
			continue
		}
		kept = append(kept, f)
	}
	return component, kept
}

func renderValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindString:
		return maybeQuote(v.String())
	case slog.KindAny:
		if err, isErr := v.Any().(error); isErr {
			return maybeQuote(err.Error())
		}
		return maybeQuote(fmt.Sprint(v.Any()))
	default:
		return maybeQuote(v.String())
	}
}

// maybeQuote quotes values containing whitespace, '=', or quotes so the
// key=value stream stays splittable.
func maybeQuote(s string) string {
	if s == "" {
		return `""`
	}
	needsQuote := strings.ContainsFunc(s, func(r rune) bool {
		return r <= ' ' || r == '=' || r == '"'
	})
	if needsQuote {
		return strconv.Quote(s)
	}
	return s
}

func levelText(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

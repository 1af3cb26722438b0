// Package logging provides structured logging with run and trace correlation
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel/trace"
)

// traceHandler wraps a slog.Handler to add process identity and trace context
type traceHandler struct {
	handler slog.Handler
	service string
	version string
	runID   string
}

// Handle adds identity and trace context to the log record
func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(
		slog.String("service", h.service),
		slog.String("version", h.version),
		slog.String("run_id", h.runID),
	)

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanCtx.TraceID().String()))
	}
	if spanCtx.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanCtx.SpanID().String()))
	}

	return h.handler.Handle(ctx, r)
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{
		handler: h.handler.WithAttrs(attrs),
		service: h.service,
		version: h.version,
		runID:   h.runID,
	}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{
		handler: h.handler.WithGroup(name),
		service: h.service,
		version: h.version,
		runID:   h.runID,
	}
}

// Options select the output format and minimum level
type Options struct {
	Format string // "json" or "text", json when empty
	Level  string // debug|info|warn|error, info when empty
}

// Setup creates a configured slog.Logger writing to w; nil w discards
// Every record carries service, version and a run_id unique to this process
func Setup(service, version string, opts Options, w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}

	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var base slog.Handler
	if opts.Format == "text" {
		base = slog.NewTextHandler(w, hopts)
	} else {
		base = slog.NewJSONHandler(w, hopts)
	}

	return slog.New(&traceHandler{
		handler: base,
		service: service,
		version: version,
		runID:   ulid.Make().String(),
	})
}

// ParseLevel maps a level name to slog, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile opens path for appending log output
// An empty path returns a discarding writer; the closer is always safe to call
func OpenFile(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, oops.In("logging").With("path", path).Wrapf(err, "open log file")
	}
	return f, f.Close, nil
}

// LogError logs err at error level, flattening oops domain, code and context
// into attributes when present
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	if err == nil {
		return
	}

	attrs := []any{"error", err.Error()}
	if oerr, ok := oops.AsOops(err); ok {
		if d := oerr.Domain(); d != "" {
			attrs = append(attrs, "domain", d)
		}
		if c := oerr.Code(); c != nil {
			attrs = append(attrs, "code", c)
		}
		for k, v := range oerr.Context() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	logger.ErrorContext(ctx, msg, attrs...)
}

package log

import (
	"context"
	"io"
	"log/slog"
)

// ComponentHandler wraps an slog.Handler and attaches a "component"
// attribute to every record it handles. This lets per-file warnings from
// the metadata reader, compositor, and batch driver be told apart in a
// single log stream.
//
// Design decision: We use a handler wrapper rather than calling
// logger.With at every call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components cannot forget to tag themselves
type ComponentHandler struct {
	// handler is the underlying slog handler that receives tagged records.
	handler slog.Handler

	// component is the value of the "component" attribute.
	component string
}

// NewComponentHandler creates a ComponentHandler wrapping the given handler.
// If handler is nil, the returned handler uses slog.Default().Handler().
func NewComponentHandler(handler slog.Handler, component string) *ComponentHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &ComponentHandler{handler: handler, component: component}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *ComponentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle tags the record with the component name and passes it on.
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("component", h.component))
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new ComponentHandler whose underlying handler has
// the given attributes.
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ComponentHandler{
		handler:   h.handler.WithAttrs(attrs),
		component: h.component,
	}
}

// WithGroup returns a new ComponentHandler with the given group name.
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{
		handler:   h.handler.WithGroup(name),
		component: h.component,
	}
}

// New creates a structured logger writing human-readable output to w.
// When verbose is true the level is Debug; otherwise only warnings and
// errors are logged, keeping batch output readable.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// ForComponent returns a logger whose records are tagged with the given
// component name. The base logger's handler and level are preserved.
func ForComponent(base *slog.Logger, component string) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	return slog.New(NewComponentHandler(base.Handler(), component))
}

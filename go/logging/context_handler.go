package logging

import (
	"context"
	"log/slog"
)

// ExtractFromContextFn returns the attributes a context contributes to a record.
type ExtractFromContextFn func(context.Context) []slog.Attr

// ContextHandler wraps an slog.Handler and adds context attributes before logging.
type ContextHandler struct {
	handler slog.Handler
	extract ExtractFromContextFn
}

// NewContextHandler returns a handler that adds extract(ctx) to every record.
func NewContextHandler(handler slog.Handler, extract ExtractFromContextFn) *ContextHandler {
	return &ContextHandler{
		handler: handler,
		extract: extract,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.extract != nil && ctx != nil {
		if attrs := h.extract(ctx); len(attrs) > 0 {
			r = r.Clone()
			r.AddAttrs(attrs...)
		}
	}
	return h.handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.handler.WithAttrs(attrs), h.extract)
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return NewContextHandler(h.handler.WithGroup(name), h.extract)
}

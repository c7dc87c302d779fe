package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// SessionKey is the attribute key the handler stamps records with.
const SessionKey = "session"

// SessionHandler wraps an slog.Handler and appends the run's session id
// to every record handled after SetSession is called.
//
// Design decision: We use a handler wrapper rather than logger.With(...)
// because the default logger is installed before the session id exists.
// Wrapping keeps a single logger instance valid for the whole process
// lifetime and works with any underlying handler (text, JSON, etc.).
type SessionHandler struct {
	handler slog.Handler

	// id points to the session id cell; empty until SetSession. The cell
	// is shared by pointer across every handler derived from the same
	// root, so a SetSession on any of them reaches all of them. Atomic
	// because the signal-handling goroutine may log concurrently with the
	// main loop.
	id *atomic.Value
}

// NewSessionHandler creates a SessionHandler wrapping the given handler.
// If handler is nil, slog.Default()'s handler is wrapped.
func NewSessionHandler(handler slog.Handler) *SessionHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	id := new(atomic.Value)
	id.Store("")
	return &SessionHandler{handler: handler, id: id}
}

// SetSession sets the session id stamped onto subsequent records.
// The session id is write-once per run; calling SetSession again with the
// same id is a no-op by construction.
func (h *SessionHandler) SetSession(id string) {
	h.id.Store(id)
}

// Enabled reports whether the handler handles records at the given level.
func (h *SessionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle stamps the record with the session id and delegates.
func (h *SessionHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, _ := h.id.Load().(string); id != "" {
		r = r.Clone()
		r.AddAttrs(slog.String(SessionKey, id))
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new SessionHandler whose underlying handler has the
// given attributes. The session id cell is shared so a SetSession on the
// parent is visible to derived handlers, including ones derived before the
// session exists.
func (h *SessionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SessionHandler{handler: h.handler.WithAttrs(attrs), id: h.id}
}

// WithGroup returns a new SessionHandler whose underlying handler has the
// given group.
func (h *SessionHandler) WithGroup(name string) slog.Handler {
	return &SessionHandler{handler: h.handler.WithGroup(name), id: h.id}
}

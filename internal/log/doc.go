// Package log provides session-aware logging built on top of the standard
// slog package.
//
// The SessionHandler wraps any slog.Handler and stamps every record with
// the run's session id once it is known. Crawlers are invoked lazily and
// independently, so the logger is typically constructed before the session
// exists; the handler resolves the id at handling time, relying on the
// session id being write-once.
//
// # Usage
//
//	handler := log.NewSessionHandler(slog.NewTextHandler(os.Stderr, opts))
//	slog.SetDefault(slog.New(handler))
//	...
//	sess := manager.Initialize()
//	handler.SetSession(sess.ID) // every later record carries session=<id>
package log

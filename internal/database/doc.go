// Package database provides SQLite-backed storage of session history.
//
// Every completed run stores one row per session: the session id, the
// per-category counts, the overall outcome, and the full session report as
// a JSON blob. The history command reads this table to show how a site's
// audit results evolve across sessions.
//
// Design decision: We use modernc.org/sqlite (a pure-Go driver) so the
// binary stays cgo-free and cross-compiles cleanly.
package database

// Package session provides per-run identity and output directory allocation.
//
// A Session is created exactly once per run and passed by reference into
// every crawler. Its ID is a seconds-precision timestamp sanitized to be
// filesystem-safe, so every run occupies its own directory tree and no
// prior session's output is ever overwritten.
//
// Design decision: The session is an explicit value handed to crawlers
// rather than a package-level singleton. Manager keeps the idempotent
// initialize-once behavior (lazy crawlers invoked independently still share
// one ID) without hidden global state.
package session

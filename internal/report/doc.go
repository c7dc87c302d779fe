// Package report persists crawl results as paired human- and
// machine-readable documents.
//
// Every category of a session writes a report.md and report.json into its
// own category directory, and the session root gets a summary.md and
// summary.json combining all categories with the prioritized action list.
// Reports are keyed by session id and written only into that session's
// directory tree, so no prior session's output is ever overwritten.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables, lists, and GitHub-flavored
// alerts, and standard encoding/json for the machine-readable documents.
package report

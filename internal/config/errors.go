package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrViewportNotFound is returned when a requested viewport name is
	// absent from the configured viewport list. This is a precondition
	// violation: it fails the run fast, before any navigation, rather
	// than degrading into a per-item failure.
	ErrViewportNotFound = errors.New("viewport not found in configuration")

	// ErrNoPages is returned when the page target list is empty.
	ErrNoPages = errors.New("no page targets configured")

	// ErrNoViewports is returned when the viewport list is empty.
	ErrNoViewports = errors.New("no viewports configured")

	// ErrNoBaseURL is returned when the navigation base URL is empty.
	ErrNoBaseURL = errors.New("no base URL configured")

	// ErrInvalidDwell is returned when the dwell interval is negative.
	// Use 0 to skip the post-settle dwell entirely.
	ErrInvalidDwell = errors.New("invalid dwell: must be non-negative")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")
)

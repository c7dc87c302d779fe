package crawl

import "fmt"

// NavigationError reports that a target did not load and settle in time.
// It is always caught within the per-unit loop and recorded on the unit's
// result; it never escalates.
type NavigationError struct {
	// URL is the target that failed to load.
	URL string

	// Err is the underlying engine error.
	Err error
}

// Error implements the error interface.
func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *NavigationError) Unwrap() error { return e.Err }

// CaptureError reports that a post-navigation capture or extraction call
// failed. Like NavigationError, it is recorded per unit and never escalates.
type CaptureError struct {
	// URL is the page the capture ran against.
	URL string

	// Err is the underlying capture error.
	Err error
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture failed for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *CaptureError) Unwrap() error { return e.Err }

// AssertionError reports that the accessibility critical-violation check
// failed. It is the single error category deliberately allowed to fail the
// overall run, and only when the fail-on-critical flag is enabled.
type AssertionError struct {
	// Critical is the total number of critical violations found.
	Critical int
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("accessibility check failed: %d critical violation(s)", e.Critical)
}

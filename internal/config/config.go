package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The timing defaults match the behavior the audit was tuned against:
// a fixed dwell after network settle gives late-rendering content (lazy
// images, web fonts, animation-driven layout) time to reach a stable state.
const (
	// DefaultBaseURL is the local development server most audits run
	// against. Production audits override this via config file or flag.
	DefaultBaseURL = "http://localhost:4321"

	// DefaultOutputRoot is the directory that holds one subtree per
	// session. Each session creates its own timestamped directory, so
	// repeated runs never overwrite each other.
	DefaultOutputRoot = "test-results"

	// DefaultDwell is the fixed wait after network settle before any
	// capture or extraction. 2 seconds covers most late-rendering content
	// without inflating run times unreasonably.
	DefaultDwell = 2 * time.Second

	// DefaultPerformanceThreshold is the page load duration above which
	// the SEO crawler records a performance issue.
	DefaultPerformanceThreshold = 3 * time.Second

	// DefaultUnitTimeout bounds a single navigate→dwell→capture unit.
	// A page that cannot settle within this window is recorded as a
	// failure and the loop moves on.
	DefaultUnitTimeout = 30 * time.Second

	// DefaultRunTimeout bounds the whole run. On breach the in-flight
	// unit is abandoned; results appended so far survive.
	DefaultRunTimeout = 10 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "webaudit"
)

// DefaultAccessibilityTags is the WCAG rule-tag profile the accessibility
// crawler scopes the rule engine to when no override is configured.
func DefaultAccessibilityTags() []string {
	return []string{"wcag2a", "wcag2aa", "wcag21aa"}
}

// Config holds all configuration options for webaudit.
// It is populated from built-in defaults, optionally overridden by a YAML
// configuration file, then by CLI flags, and passed through the application
// via dependency injection rather than global state.
type Config struct {
	// BaseURL is the root URL all page paths are resolved against.
	BaseURL string

	// OutputRoot is the directory holding per-session output trees.
	OutputRoot string

	// Matrix is the page×viewport target matrix.
	Matrix Matrix

	// Dwell is the fixed wait after network settle before capture.
	Dwell time.Duration

	// FullPage captures the entire scrollable page rather than the
	// viewport-sized region.
	FullPage bool

	// PerformanceThreshold is the load duration above which the SEO
	// crawler records an issue.
	PerformanceThreshold time.Duration

	// AccessibilityTags is the rule-tag set passed to the rule engine.
	AccessibilityTags []string

	// FailOnCritical makes the accessibility run return an error (and the
	// process exit nonzero) when critical violations are found.
	FailOnCritical bool

	// AxeScriptPath is the filesystem path of the accessibility rule
	// engine script injected into pages. Empty means the bundled default
	// location under the XDG data directory.
	AxeScriptPath string

	// UnitTimeout bounds a single unit of crawl work.
	UnitTimeout time.Duration

	// RunTimeout bounds the whole run.
	RunTimeout time.Duration

	// Verbose enables slog.LevelDebug output. When false, only warnings
	// and errors are logged.
	Verbose bool
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:              DefaultBaseURL,
		OutputRoot:           DefaultOutputRoot,
		Matrix:               DefaultMatrix(),
		Dwell:                DefaultDwell,
		FullPage:             true,
		PerformanceThreshold: DefaultPerformanceThreshold,
		AccessibilityTags:    DefaultAccessibilityTags(),
		UnitTimeout:          DefaultUnitTimeout,
		RunTimeout:           DefaultRunTimeout,
	}
}

// Validate checks the configuration for consistency.
// It returns the first problem found as one of the package sentinel errors.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	if len(c.Matrix.Pages) == 0 {
		return ErrNoPages
	}
	if len(c.Matrix.Viewports) == 0 {
		return ErrNoViewports
	}
	if c.Dwell < 0 {
		return ErrInvalidDwell
	}
	if c.UnitTimeout <= 0 || c.RunTimeout <= 0 || c.PerformanceThreshold <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// XDGDataDir returns the application's data directory following the
// XDG Base Directory specification. It holds the session history database
// and the default rule engine script.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultAxeScriptPath returns the default location of the accessibility
// rule engine script.
func DefaultAxeScriptPath() string {
	return filepath.Join(XDGDataDir(), "axe.min.js")
}

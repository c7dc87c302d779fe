package crawl

import (
	"context"
	"strings"
	"time"

	"webaudit/internal/browser"
)

// Engine is the browser automation surface the crawlers consume.
// *browser.Engine implements it; tests substitute fakes.
type Engine interface {
	// Navigate loads url, waits for it to settle, and returns timings.
	Navigate(ctx context.Context, url string) (browser.NavigationTiming, error)

	// SetViewport emulates a viewport size; the setting is sticky.
	SetViewport(ctx context.Context, width, height int64) error

	// CaptureFullPage writes a PNG of the current page to path.
	CaptureFullPage(ctx context.Context, path string, fullPage bool) error

	// HTML returns the rendered document's outer HTML.
	HTML(ctx context.Context) (string, error)
}

// RuleEngine is the accessibility rule engine surface the accessibility
// crawler consumes. *browser.Axe implements it.
type RuleEngine interface {
	// Analyze runs the rule set scoped to tags against the current page.
	Analyze(ctx context.Context, tags []string) (*browser.AxeResult, error)
}

// visit performs the shared prologue of every unit of crawl work:
// navigate to the target, wait for it to settle, then dwell a fixed
// interval so late-rendering content reaches a stable state.
//
// A navigation failure comes back as *NavigationError so callers record it
// on the unit's result without aborting their loop.
func visit(ctx context.Context, engine Engine, url string, dwell time.Duration) (browser.NavigationTiming, error) {
	timing, err := engine.Navigate(ctx, url)
	if err != nil {
		return timing, &NavigationError{URL: url, Err: err}
	}

	if dwell > 0 {
		timer := time.NewTimer(dwell)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return timing, &NavigationError{URL: url, Err: ctx.Err()}
		case <-timer.C:
		}
	}
	return timing, nil
}

// pageURL resolves a page path against the base URL.
// An empty path means the site root.
func pageURL(baseURL, path string) string {
	base := strings.TrimRight(baseURL, "/")
	if path == "" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Package crawl implements the three per-page analysis loops (screenshot
// capture, accessibility compliance, and SEO health) and the orchestrator
// that runs all three over one session.
//
// All three crawlers share the same fault-isolated iteration pattern:
// navigate to the target, wait for it to settle, dwell a fixed interval for
// late-rendering content, then perform the category-specific capture. A
// failure at navigation or capture is recorded on that unit's result and
// the loop proceeds; one bad page degrades coverage, never the run. Results
// are appended in strict matrix iteration order.
//
// The browser engine and the accessibility rule engine are consumed through
// interfaces defined here, so tests substitute fakes and the crawlers stay
// independent of chromedp.
package crawl

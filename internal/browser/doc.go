// Package browser drives a headless Chrome instance via chromedp.
//
// One Engine owns exactly one browsing context for its whole lifetime.
// The context is treated as an exclusive resource: only one navigation or
// capture is ever in flight, which keeps viewport state and timing
// measurements deterministic across the crawl categories sharing a run.
//
// The package also provides Axe, an accessibility rule engine that injects
// an axe-core script into the current page and runs it scoped to a set of
// rule tags.
package browser

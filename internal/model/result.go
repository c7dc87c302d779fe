package model

import "time"

// CrawlResult holds the fields shared by every unit of crawl work,
// regardless of category. Exactly one CrawlResult exists per attempted
// page (or page×viewport) combination; a failed unit still produces a
// result with Success=false and the captured error message.
type CrawlResult struct {
	// Page is the logical page path, e.g. "/about".
	Page string `json:"page"`

	// Title is the human-readable page title from the target matrix.
	Title string `json:"title"`

	// Timestamp is when the unit of work was attempted.
	Timestamp time.Time `json:"timestamp"`

	// Success is false if navigation or capture failed for this unit.
	Success bool `json:"success"`

	// Error is the captured error message when Success is false.
	Error string `json:"error,omitempty"`
}

// ScreenshotResult is the per page×viewport result of the screenshot crawl.
type ScreenshotResult struct {
	CrawlResult

	// Viewport is the viewport name the page was captured under.
	Viewport string `json:"viewport"`

	// FilePath is the path of the written image file. Empty on failure.
	FilePath string `json:"file_path,omitempty"`
}

// Violation is a single accessibility rule violation reported by the
// rule engine and classified by its impact.
type Violation struct {
	// ID is the rule identifier, e.g. "color-contrast".
	ID string `json:"id"`

	// Impact is the classified severity of the violation.
	Impact Impact `json:"impact"`

	// ImpactText is the human-readable impact for serialized reports.
	ImpactText string `json:"impact_text"`

	// Description explains what the rule checks.
	Description string `json:"description"`

	// Help is a remediation pointer, typically a documentation URL.
	Help string `json:"help,omitempty"`

	// Nodes is the number of elements affected by this violation.
	Nodes int `json:"nodes"`
}

// AccessibilityResult is the per-page result of the accessibility crawl.
type AccessibilityResult struct {
	CrawlResult

	// URL is the full URL that was analyzed.
	URL string `json:"url"`

	// Violations lists every violation found on the page.
	Violations []Violation `json:"violations,omitempty"`

	// Passes lists the IDs of rules that passed.
	Passes []string `json:"passes,omitempty"`

	// Incomplete lists the IDs of rules the engine could not decide.
	Incomplete []string `json:"incomplete,omitempty"`
}

// CriticalCount returns the number of critical violations on this page.
func (r *AccessibilityResult) CriticalCount() int {
	count := 0
	for _, v := range r.Violations {
		if v.Impact == ImpactCritical {
			count++
		}
	}
	return count
}

// Passed reports whether the page passes the accessibility gate.
// A page fails if and only if it has at least one critical violation;
// serious, moderate, and minor violations never fail a page alone.
func (r *AccessibilityResult) Passed() bool {
	return r.Success && r.CriticalCount() == 0
}

// ImageFact describes one image found during SEO extraction.
type ImageFact struct {
	// Src is the image source attribute.
	Src string `json:"src"`

	// Alt is the alternative text, if present.
	Alt string `json:"alt,omitempty"`

	// HasAlt is true when the alt attribute exists, even if empty.
	HasAlt bool `json:"has_alt"`
}

// LinkFact describes one anchor found during SEO extraction.
type LinkFact struct {
	// Href is the link target attribute.
	Href string `json:"href"`

	// Text is the visible link text, whitespace-trimmed.
	Text string `json:"text,omitempty"`

	// Rel is the rel attribute, if present.
	Rel string `json:"rel,omitempty"`

	// IsExternal is true for absolute URLs whose host differs from the
	// host of the page the link was found on.
	IsExternal bool `json:"is_external"`
}

// SEOFacts is the structured fact set extracted from one rendered page.
type SEOFacts struct {
	// Title is the document title.
	Title string `json:"title"`

	// Meta maps meta tag names (or og:/twitter: properties) to content,
	// restricted to the fixed set of names the extractor knows about.
	Meta map[string]string `json:"meta,omitempty"`

	// Canonical is the canonical link target, if declared.
	Canonical string `json:"canonical,omitempty"`

	// Headings maps heading level (1..6) to heading texts in document order.
	Headings map[int][]string `json:"headings,omitempty"`

	// Images lists every image on the page.
	Images []ImageFact `json:"images,omitempty"`

	// Links lists every anchor on the page.
	Links []LinkFact `json:"links,omitempty"`
}

// ImagesWithoutAlt returns the number of images missing an alt attribute.
func (f *SEOFacts) ImagesWithoutAlt() int {
	count := 0
	for _, img := range f.Images {
		if !img.HasAlt {
			count++
		}
	}
	return count
}

// Performance holds the per-page timing measurements of the SEO crawl.
type Performance struct {
	// LoadTimeMs is the wall-clock duration from navigation start to the
	// load event, in milliseconds.
	LoadTimeMs int64 `json:"load_time_ms"`

	// DOMContentLoadedMs is the time to the first DOMContentLoaded event.
	// This value is advisory only: the event listener is registered before
	// navigation, but if the event fires before the listener attaches the
	// value remains zero. Consumers must not treat zero as "instant".
	DOMContentLoadedMs int64 `json:"dom_content_loaded_ms"`
}

// SEOResult is the per-page result of the SEO crawl.
type SEOResult struct {
	CrawlResult

	// Facts is the structured fact set extracted from the rendered page.
	Facts SEOFacts `json:"facts"`

	// Performance holds the page timing measurements.
	Performance Performance `json:"performance"`

	// Issues is the ordered list of detected SEO issues. Rule evaluation
	// order is fixed, so two crawls of the same page yield the same list.
	Issues []string `json:"issues,omitempty"`
}

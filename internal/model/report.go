package model

import (
	"strconv"
	"strings"
	"time"
)

// highPriorityLoadTimeMs is the fixed load time bar, in milliseconds, above
// which a page load becomes a high-priority action. This is deliberately
// independent of the SEO crawler's own configurable performance threshold:
// the crawler threshold tunes issue detection, while this bar gates the
// action list.
const highPriorityLoadTimeMs = 3000

// Priority is the urgency level of a recommended action.
type Priority int

const (
	// PriorityHigh marks actions that block launch readiness.
	PriorityHigh Priority = iota

	// PriorityMedium marks actions that should be scheduled soon.
	PriorityMedium
)

// String returns a human-readable representation of the priority.
func (p Priority) String() string {
	if p == PriorityHigh {
		return "HIGH"
	}
	return "MEDIUM"
}

// Action is one entry in the prioritized action list of a session report.
type Action struct {
	// Priority is the urgency level.
	Priority Priority `json:"priority"`

	// PriorityText is the human-readable priority for serialized reports.
	PriorityText string `json:"priority_text"`

	// Category names the crawl category the action originates from.
	Category string `json:"category"`

	// Message describes what needs to be done.
	Message string `json:"message"`
}

// SessionReport combines the three category summaries of one session into
// a single cross-category report with a prioritized action list.
type SessionReport struct {
	// SessionID identifies the run this report belongs to.
	SessionID string `json:"session_id"`

	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Screenshots is the screenshot category summary, nil if not run.
	Screenshots *ScreenshotSummary `json:"screenshots,omitempty"`

	// Accessibility is the accessibility category summary, nil if not run.
	Accessibility *AccessibilitySummary `json:"accessibility,omitempty"`

	// SEO is the SEO category summary, nil if not run.
	SEO *SEOSummary `json:"seo,omitempty"`

	// AllPassed is true when all three categories completed and zero
	// critical accessibility violations were found. Screenshot failures
	// and SEO issue volume are advisory and never gate this flag;
	// accessibility criticals are the single blocking signal.
	AllPassed bool `json:"all_passed"`

	// Actions is the prioritized action list, high priority first.
	Actions []Action `json:"actions,omitempty"`
}

// NewSessionReport aggregates the three category summaries into a session
// report. Any summary may be nil (its category did not run); AllPassed then
// reports false because the session is incomplete.
func NewSessionReport(sessionID string, screenshots *ScreenshotSummary, accessibility *AccessibilitySummary, seo *SEOSummary) *SessionReport {
	r := &SessionReport{
		SessionID:     sessionID,
		GeneratedAt:   time.Now(),
		Screenshots:   screenshots,
		Accessibility: accessibility,
		SEO:           seo,
	}

	r.AllPassed = screenshots != nil && accessibility != nil && seo != nil &&
		accessibility.CriticalViolations == 0

	r.deriveActions()
	return r
}

// deriveActions builds the prioritized action list from the summaries.
// High-priority actions come first, then medium. Within a priority, the
// order follows the category order accessibility, SEO, performance.
func (r *SessionReport) deriveActions() {
	var high, medium []Action

	if r.Accessibility != nil {
		if n := r.Accessibility.CriticalViolations; n > 0 {
			high = append(high, newAction(PriorityHigh, "accessibility",
				pluralize(n, "critical accessibility violation")+" must be fixed"))
		}
		if n := r.Accessibility.SeriousViolations; n > 0 {
			medium = append(medium, newAction(PriorityMedium, "accessibility",
				pluralize(n, "serious accessibility violation")+" should be fixed"))
		}
	}

	if r.SEO != nil {
		missing := 0
		slow := 0
		imagesWithoutAlt := 0
		for _, result := range r.SEO.Results {
			for _, issue := range result.Issues {
				// Missing-element issues are spelled with a leading
				// "Missing ..."; aggregate counts ("3 images missing alt
				// text") are lowercase and stay medium priority.
				if strings.Contains(issue, "Missing") {
					missing++
				}
			}
			if result.Success && result.Performance.LoadTimeMs > highPriorityLoadTimeMs {
				slow++
			}
			imagesWithoutAlt += result.Facts.ImagesWithoutAlt()
		}
		if missing > 0 {
			high = append(high, newAction(PriorityHigh, "seo",
				pluralize(missing, "missing SEO element")+" detected across pages"))
		}
		if slow > 0 {
			high = append(high, newAction(PriorityHigh, "performance",
				pluralize(slow, "page")+" exceeded the 3s load time bar"))
		}
		if imagesWithoutAlt > 0 {
			medium = append(medium, newAction(PriorityMedium, "seo",
				pluralize(imagesWithoutAlt, "image")+" missing alt text"))
		}
	}

	r.Actions = append(high, medium...)
}

// newAction builds an Action with its priority text filled in.
func newAction(p Priority, category, message string) Action {
	return Action{
		Priority:     p,
		PriorityText: p.String(),
		Category:     category,
		Message:      message,
	}
}

// pluralize renders "1 noun" or "N nouns".
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

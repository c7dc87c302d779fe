package model

import "math"

// Status is the session-level pass/fail state of the accessibility crawl.
type Status int

const (
	// StatusPass means no critical violations were found in the session.
	StatusPass Status = iota

	// StatusFail means at least one critical violation was found.
	StatusFail
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	if s == StatusPass {
		return "PASS"
	}
	return "FAIL"
}

// Health is the ordinal SEO quality bucket derived from total issue count.
type Health int

const (
	// HealthExcellent means zero issues were detected.
	HealthExcellent Health = iota

	// HealthGood means fewer than ten issues were detected.
	HealthGood

	// HealthNeedsImprovement means ten or more issues were detected.
	HealthNeedsImprovement
)

// String returns a human-readable representation of the health bucket.
func (h Health) String() string {
	switch h {
	case HealthExcellent:
		return "EXCELLENT"
	case HealthGood:
		return "GOOD"
	default:
		return "NEEDS_IMPROVEMENT"
	}
}

// HealthFor buckets a total issue count into a Health level.
// The boundaries are exact: 0 is EXCELLENT, 1-9 is GOOD, 10 and above
// is NEEDS_IMPROVEMENT.
func HealthFor(totalIssues int) Health {
	switch {
	case totalIssues == 0:
		return HealthExcellent
	case totalIssues < 10:
		return HealthGood
	default:
		return HealthNeedsImprovement
	}
}

// ScreenshotSummary aggregates the screenshot crawl results.
type ScreenshotSummary struct {
	// Total is the number of page×viewport combinations attempted.
	// It always equals len(Results), regardless of individual failures.
	Total int `json:"total"`

	// Succeeded is the number of combinations that produced an image file.
	Succeeded int `json:"succeeded"`

	// Failed is the number of combinations that failed.
	Failed int `json:"failed"`

	// Results holds one entry per attempted combination, in matrix order.
	Results []ScreenshotResult `json:"results"`
}

// NewScreenshotSummary builds a summary over the given results.
// Counts are simple sums over the result list and are never recomputed
// destructively.
func NewScreenshotSummary(results []ScreenshotResult) *ScreenshotSummary {
	s := &ScreenshotSummary{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// AccessibilitySummary aggregates the accessibility crawl results.
type AccessibilitySummary struct {
	// Total is the number of pages attempted.
	Total int `json:"total"`

	// Succeeded is the number of pages that were analyzed.
	Succeeded int `json:"succeeded"`

	// Failed is the number of pages where navigation or analysis failed.
	Failed int `json:"failed"`

	// Severity totals across all pages.
	CriticalViolations int `json:"critical_violations"`
	SeriousViolations  int `json:"serious_violations"`
	ModerateViolations int `json:"moderate_violations"`
	MinorViolations    int `json:"minor_violations"`

	// OverallStatus is PASS if and only if CriticalViolations is zero.
	OverallStatus Status `json:"overall_status"`

	// OverallStatusText is the human-readable status for serialized reports.
	OverallStatusText string `json:"overall_status_text"`

	// Results holds one entry per attempted page, in matrix order.
	Results []AccessibilityResult `json:"results"`
}

// NewAccessibilitySummary builds a summary over the given results.
func NewAccessibilitySummary(results []AccessibilityResult) *AccessibilitySummary {
	s := &AccessibilitySummary{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
		for _, v := range r.Violations {
			switch v.Impact {
			case ImpactCritical:
				s.CriticalViolations++
			case ImpactSerious:
				s.SeriousViolations++
			case ImpactModerate:
				s.ModerateViolations++
			case ImpactMinor:
				s.MinorViolations++
			}
		}
	}
	s.OverallStatus = StatusPass
	if s.CriticalViolations > 0 {
		s.OverallStatus = StatusFail
	}
	s.OverallStatusText = s.OverallStatus.String()
	return s
}

// TotalViolations returns the violation count across all severities.
func (s *AccessibilitySummary) TotalViolations() int {
	return s.CriticalViolations + s.SeriousViolations + s.ModerateViolations + s.MinorViolations
}

// SEOSummary aggregates the SEO crawl results.
type SEOSummary struct {
	// Total is the number of pages attempted.
	Total int `json:"total"`

	// Succeeded is the number of pages that were analyzed.
	Succeeded int `json:"succeeded"`

	// Failed is the number of pages where navigation or extraction failed.
	Failed int `json:"failed"`

	// TotalIssues is the sum of issue counts across all pages.
	TotalIssues int `json:"total_issues"`

	// OverallHealth buckets TotalIssues per HealthFor.
	OverallHealth Health `json:"overall_health"`

	// OverallHealthText is the human-readable health for serialized reports.
	OverallHealthText string `json:"overall_health_text"`

	// AverageLoadTimeMs is the mean load time of analyzed pages in
	// milliseconds, rounded to the nearest integer. Zero when no page
	// was analyzed successfully.
	AverageLoadTimeMs int64 `json:"average_load_time_ms"`

	// Results holds one entry per attempted page, in matrix order.
	Results []SEOResult `json:"results"`
}

// NewSEOSummary builds a summary over the given results.
func NewSEOSummary(results []SEOResult) *SEOSummary {
	s := &SEOSummary{
		Total:   len(results),
		Results: results,
	}
	var loadSum int64
	for _, r := range results {
		if r.Success {
			s.Succeeded++
			loadSum += r.Performance.LoadTimeMs
		} else {
			s.Failed++
		}
		s.TotalIssues += len(r.Issues)
	}
	if s.Succeeded > 0 {
		s.AverageLoadTimeMs = int64(math.Round(float64(loadSum) / float64(s.Succeeded)))
	}
	s.OverallHealth = HealthFor(s.TotalIssues)
	s.OverallHealthText = s.OverallHealth.String()
	return s
}

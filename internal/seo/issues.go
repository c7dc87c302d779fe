package seo

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"webaudit/internal/model"
)

// Title and description length bounds in characters. Search engines
// truncate titles past roughly 60 characters and snippets past roughly
// 160; the lower bounds flag text too thin to describe the page.
const (
	titleMinLen = 30
	titleMaxLen = 60

	descriptionMinLen = 120
	descriptionMaxLen = 160
)

// DetectIssues evaluates the SEO ruleset over one page's facts and
// timings. Rules run unconditionally and in a fixed order, and each rule's
// thresholds are mutually exclusive, so the result is a deterministic,
// ordered issue list.
//
// Issue wording matters downstream: issues for absent elements start with
// "Missing" and become high-priority actions in the session report, while
// aggregate counts are spelled lowercase and stay advisory.
func DetectIssues(facts *model.SEOFacts, perf model.Performance, threshold time.Duration) []string {
	var issues []string

	// Title
	switch titleLen := utf8.RuneCountInString(facts.Title); {
	case facts.Title == "":
		issues = append(issues, "Missing title tag")
	case titleLen < titleMinLen:
		issues = append(issues, fmt.Sprintf("Title too short (under %d characters)", titleMinLen))
	case titleLen > titleMaxLen:
		issues = append(issues, fmt.Sprintf("Title too long (over %d characters)", titleMaxLen))
	}

	// Meta description
	description := facts.Meta["description"]
	switch descLen := utf8.RuneCountInString(description); {
	case description == "":
		issues = append(issues, "Missing meta description")
	case descLen < descriptionMinLen:
		issues = append(issues, fmt.Sprintf("Meta description too short (under %d characters)", descriptionMinLen))
	case descLen > descriptionMaxLen:
		issues = append(issues, fmt.Sprintf("Meta description too long (over %d characters)", descriptionMaxLen))
	}

	// H1
	switch h1Count := len(facts.Headings[1]); {
	case h1Count == 0:
		issues = append(issues, "Missing H1 heading")
	case h1Count > 1:
		issues = append(issues, fmt.Sprintf("Multiple H1 headings (%d)", h1Count))
	}

	// Images: one aggregate issue carrying the count.
	if n := facts.ImagesWithoutAlt(); n > 0 {
		issues = append(issues, fmt.Sprintf("%d image(s) missing alt text", n))
	}

	// Open Graph: each absent field is an individual issue.
	if facts.Meta["og:title"] == "" {
		issues = append(issues, "Missing Open Graph title")
	}
	if facts.Meta["og:description"] == "" {
		issues = append(issues, "Missing Open Graph description")
	}
	if facts.Meta["og:image"] == "" {
		issues = append(issues, "Missing Open Graph image")
	}

	// Performance
	if perf.LoadTimeMs > threshold.Milliseconds() {
		issues = append(issues, fmt.Sprintf("Page load time exceeds %gs", threshold.Seconds()))
	}

	// External-link safety: one aggregate issue carrying the count.
	if n := unsafeExternalLinks(facts.Links); n > 0 {
		issues = append(issues, fmt.Sprintf(`%d external link(s) missing rel="noopener" or rel="noreferrer"`, n))
	}

	return issues
}

// unsafeExternalLinks counts external links whose rel attribute carries
// neither noopener nor noreferrer.
func unsafeExternalLinks(links []model.LinkFact) int {
	count := 0
	for _, l := range links {
		if !l.IsExternal {
			continue
		}
		if !strings.Contains(l.Rel, "noopener") && !strings.Contains(l.Rel, "noreferrer") {
			count++
		}
	}
	return count
}

package seo

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"webaudit/internal/model"
)

// healthyFacts returns facts that trigger no issues, for tests to break
// one rule at a time.
func healthyFacts() *model.SEOFacts {
	return &model.SEOFacts{
		Title: strings.Repeat("t", 45),
		Meta: map[string]string{
			"description":    strings.Repeat("d", 140),
			"og:title":       "t",
			"og:description": "d",
			"og:image":       "/i.png",
		},
		Headings: map[int][]string{1: {"One"}},
	}
}

// fastPerf is well under any threshold used in these tests.
var fastPerf = model.Performance{LoadTimeMs: 100}

// TestDetectIssuesCleanPage tests that a healthy page yields no issues.
func TestDetectIssuesCleanPage(t *testing.T) {
	t.Parallel()

	issues := DetectIssues(healthyFacts(), fastPerf, 3*time.Second)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

// TestDetectIssuesTitle tests the title rule's mutually exclusive thresholds.
func TestDetectIssuesTitle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{"missing", "", "Missing title tag"},
		{"too short", strings.Repeat("t", 29), "Title too short (under 30 characters)"},
		{"too long", strings.Repeat("t", 61), "Title too long (over 60 characters)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			facts := healthyFacts()
			facts.Title = tc.title

			issues := DetectIssues(facts, fastPerf, 3*time.Second)
			if !slices.Contains(issues, tc.expected) {
				t.Errorf("issues %v do not contain %q", issues, tc.expected)
			}
			// Thresholds are mutually exclusive: exactly one title issue.
			count := 0
			for _, issue := range issues {
				if strings.Contains(issue, "itle") {
					count++
				}
			}
			if count != 1 {
				t.Errorf("expected exactly one title issue, got %v", issues)
			}
		})
	}
}

// TestDetectIssuesBoundaries tests the exact-length boundary cases from
// the rule table: a 45-character title is fine, a 200-character
// description is too long.
func TestDetectIssuesBoundaries(t *testing.T) {
	t.Parallel()

	facts := healthyFacts()
	facts.Title = strings.Repeat("a", 45)
	facts.Meta["description"] = strings.Repeat("b", 200)

	issues := DetectIssues(facts, fastPerf, 3*time.Second)

	if !slices.Contains(issues, "Meta description too long (over 160 characters)") {
		t.Errorf("issues %v missing description too-long entry", issues)
	}
	for _, issue := range issues {
		if strings.Contains(issue, "Title") {
			t.Errorf("45-character title should produce no issue, got %q", issue)
		}
	}
}

// TestDetectIssuesH1 tests the H1 rule.
func TestDetectIssuesH1(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		facts := healthyFacts()
		facts.Headings = map[int][]string{}
		issues := DetectIssues(facts, fastPerf, 3*time.Second)
		if !slices.Contains(issues, "Missing H1 heading") {
			t.Errorf("issues %v", issues)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()
		facts := healthyFacts()
		facts.Headings[1] = []string{"One", "Two", "Three"}
		issues := DetectIssues(facts, fastPerf, 3*time.Second)
		if !slices.Contains(issues, "Multiple H1 headings (3)") {
			t.Errorf("issues %v", issues)
		}
	})
}

// TestDetectIssuesImagesAndOpenGraph tests the aggregate image issue and
// the individual Open Graph issues.
func TestDetectIssuesImagesAndOpenGraph(t *testing.T) {
	t.Parallel()

	facts := healthyFacts()
	facts.Images = []model.ImageFact{
		{Src: "/a.png", HasAlt: true},
		{Src: "/b.png"},
		{Src: "/c.png"},
	}
	delete(facts.Meta, "og:title")
	delete(facts.Meta, "og:image")

	issues := DetectIssues(facts, fastPerf, 3*time.Second)

	if !slices.Contains(issues, "2 image(s) missing alt text") {
		t.Errorf("issues %v missing aggregate image entry", issues)
	}
	if !slices.Contains(issues, "Missing Open Graph title") {
		t.Errorf("issues %v missing og:title entry", issues)
	}
	if !slices.Contains(issues, "Missing Open Graph image") {
		t.Errorf("issues %v missing og:image entry", issues)
	}
	if slices.Contains(issues, "Missing Open Graph description") {
		t.Error("og:description is present, no issue expected")
	}
}

// TestDetectIssuesPerformance tests the load time rule names the threshold
// in seconds.
func TestDetectIssuesPerformance(t *testing.T) {
	t.Parallel()

	facts := healthyFacts()
	perf := model.Performance{LoadTimeMs: 3500}

	issues := DetectIssues(facts, perf, 3*time.Second)
	if !slices.Contains(issues, "Page load time exceeds 3s") {
		t.Errorf("issues %v", issues)
	}

	// Exactly at the threshold is not an issue.
	perf.LoadTimeMs = 3000
	if issues := DetectIssues(facts, perf, 3*time.Second); len(issues) != 0 {
		t.Errorf("load at threshold should not flag, got %v", issues)
	}
}

// TestDetectIssuesExternalLinkSafety tests the rel safety rule.
func TestDetectIssuesExternalLinkSafety(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		links    []model.LinkFact
		expected int
	}{
		{
			"safe rel adds nothing",
			[]model.LinkFact{{Href: "https://x.example", Rel: "noopener noreferrer", IsExternal: true}},
			0,
		},
		{
			"noopener alone is enough",
			[]model.LinkFact{{Href: "https://x.example", Rel: "noopener", IsExternal: true}},
			0,
		},
		{
			"rel omitted counts once",
			[]model.LinkFact{{Href: "https://x.example", IsExternal: true}},
			1,
		},
		{
			"internal links never count",
			[]model.LinkFact{{Href: "/about"}, {Href: "/contact"}},
			0,
		},
		{
			"aggregate count",
			[]model.LinkFact{
				{Href: "https://a.example", IsExternal: true},
				{Href: "https://b.example", IsExternal: true},
				{Href: "https://c.example", Rel: "noreferrer", IsExternal: true},
			},
			2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			facts := healthyFacts()
			facts.Links = tc.links

			issues := DetectIssues(facts, fastPerf, 3*time.Second)

			if tc.expected == 0 {
				if len(issues) != 0 {
					t.Errorf("expected no issues, got %v", issues)
				}
				return
			}
			expected := fmt.Sprintf(`%d external link(s) missing rel="noopener" or rel="noreferrer"`, tc.expected)
			if !slices.Contains(issues, expected) {
				t.Errorf("issues %v do not contain %q", issues, expected)
			}
		})
	}
}

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"webaudit/internal/model"
)

// statusText renders a per-unit success flag for tables.
func statusText(success bool) string {
	if success {
		return "✅"
	}
	return "❌"
}

// writeScreenshotMarkdown renders the screenshot category report.
func writeScreenshotMarkdown(w io.Writer, sessionID string, s *model.ScreenshotSummary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Screenshot Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Session", "`" + sessionID + "`"},
			{"Combinations", strconv.Itoa(s.Total)},
			{"Succeeded", strconv.Itoa(s.Succeeded)},
			{"Failed", strconv.Itoa(s.Failed)},
		},
	})
	md.PlainText("")

	rows := make([][]string, len(s.Results))
	for i, r := range s.Results {
		detail := r.FilePath
		if !r.Success {
			detail = r.Error
		}
		rows[i] = []string{pageLabel(r.Page), r.Viewport, statusText(r.Success), truncate(detail, 60)}
	}
	md.H2("Captures")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Viewport", "Status", "File / Error"},
		Rows:   rows,
	})

	if s.Failed > 0 {
		md.PlainText("")
		md.Warningf("%d of %d captures failed. Failed combinations are listed above with their errors.",
			s.Failed, s.Total)
	}

	return md.Build()
}

// writeAccessibilityMarkdown renders the accessibility category report.
func writeAccessibilityMarkdown(w io.Writer, sessionID string, s *model.AccessibilitySummary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Accessibility Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Session", "`" + sessionID + "`"},
			{"Pages", strconv.Itoa(s.Total)},
			{"Analyzed", strconv.Itoa(s.Succeeded)},
			{"Failed", strconv.Itoa(s.Failed)},
			{"Status", s.OverallStatus.String()},
		},
	})
	md.PlainText("")

	md.H2("Violations by Impact")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Impact", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(s.CriticalViolations)},
			{"🟠 Serious", strconv.Itoa(s.SeriousViolations)},
			{"🟡 Moderate", strconv.Itoa(s.ModerateViolations)},
			{"🔵 Minor", strconv.Itoa(s.MinorViolations)},
			{"**Total**", "**" + strconv.Itoa(s.TotalViolations()) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case s.CriticalViolations > 0:
		md.Cautionf("%d critical violation(s) found. The session status is FAIL until they are fixed.",
			s.CriticalViolations)
	case s.SeriousViolations > 0:
		md.Warningf("%d serious violation(s) found. These should be addressed soon.",
			s.SeriousViolations)
	case s.TotalViolations() > 0:
		md.Note("Only moderate and minor violations were found.")
	default:
		md.Tip("No accessibility violations detected.")
	}
	md.PlainText("")

	md.H2("Pages")
	for _, r := range s.Results {
		md.PlainText("")
		md.H3(pageLabel(r.Page) + " (" + r.Title + ")")
		md.PlainText("")
		if !r.Success {
			md.PlainText("Analysis failed: " + r.Error)
			continue
		}
		if len(r.Violations) == 0 {
			md.PlainTextf("No violations. %d rule(s) passed, %d incomplete.",
				len(r.Passes), len(r.Incomplete))
			continue
		}

		rows := make([][]string, len(r.Violations))
		for i, v := range r.Violations {
			rows[i] = []string{
				v.ID,
				v.ImpactText,
				strconv.Itoa(v.Nodes),
				truncate(v.Description, 60),
				truncate(v.Help, 50),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Rule", "Impact", "Elements", "Description", "Help"},
			Rows:   rows,
		})
	}

	return md.Build()
}

// writeSEOMarkdown renders the SEO category report.
func writeSEOMarkdown(w io.Writer, sessionID string, s *model.SEOSummary) error {
	md := markdown.NewMarkdown(w)

	md.H1("SEO Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Session", "`" + sessionID + "`"},
			{"Pages", strconv.Itoa(s.Total)},
			{"Analyzed", strconv.Itoa(s.Succeeded)},
			{"Failed", strconv.Itoa(s.Failed)},
			{"Total Issues", strconv.Itoa(s.TotalIssues)},
			{"Health", s.OverallHealth.String()},
			{"Avg Load Time", fmt.Sprintf("%d ms", s.AverageLoadTimeMs)},
		},
	})
	md.PlainText("")

	switch s.OverallHealth {
	case model.HealthExcellent:
		md.Tip("No SEO issues detected.")
	case model.HealthGood:
		md.Note("A few SEO issues were found; see the per-page lists below.")
	default:
		md.Importantf("%d SEO issues were found. The site needs improvement.", s.TotalIssues)
	}
	md.PlainText("")

	md.H2("Pages")
	for _, r := range s.Results {
		md.PlainText("")
		md.H3(pageLabel(r.Page) + " (" + r.Title + ")")
		md.PlainText("")
		if !r.Success {
			md.PlainText("Analysis failed: " + r.Error)
			continue
		}

		md.PlainTextf("Load: %d ms (DOMContentLoaded: %d ms, advisory). Title: %q.",
			r.Performance.LoadTimeMs, r.Performance.DOMContentLoadedMs, r.Facts.Title)
		md.PlainText("")
		if len(r.Issues) == 0 {
			md.PlainText("No issues.")
			continue
		}
		md.BulletList(r.Issues...)
	}

	return md.Build()
}

// writeSessionMarkdown renders the cross-category session summary.
func writeSessionMarkdown(w io.Writer, rep *model.SessionReport) error {
	md := markdown.NewMarkdown(w)

	md.H1("Site Audit Report")
	md.PlainText("")

	overall := "❌ FAIL"
	if rep.AllPassed {
		overall = "✅ PASS"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Session", "`" + rep.SessionID + "`"},
			{"Generated", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Overall", overall},
		},
	})
	md.PlainText("")

	md.H2("Categories")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Result"},
		Rows: [][]string{
			{"Screenshots", screenshotCell(rep.Screenshots)},
			{"Accessibility", accessibilityCell(rep.Accessibility)},
			{"SEO", seoCell(rep.SEO)},
		},
	})
	md.PlainText("")

	md.H2("Action Items")
	md.PlainText("")
	if len(rep.Actions) == 0 {
		md.Tip("Nothing to do. All categories are clean.")
	} else {
		rows := make([][]string, len(rep.Actions))
		for i, a := range rep.Actions {
			rows[i] = []string{a.PriorityText, a.Category, a.Message}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Priority", "Category", "Action"},
			Rows:   rows,
		})
		if !rep.AllPassed {
			md.PlainText("")
			md.Caution("The session did not pass. High-priority items block launch readiness.")
		}
	}

	return md.Build()
}

// screenshotCell summarizes the screenshot category for the overview table.
func screenshotCell(s *model.ScreenshotSummary) string {
	if s == nil {
		return "not run"
	}
	return fmt.Sprintf("%d/%d captured", s.Succeeded, s.Total)
}

// accessibilityCell summarizes the accessibility category.
func accessibilityCell(s *model.AccessibilitySummary) string {
	if s == nil {
		return "not run"
	}
	return fmt.Sprintf("%s (%d violations, %d critical)",
		s.OverallStatus, s.TotalViolations(), s.CriticalViolations)
}

// seoCell summarizes the SEO category.
func seoCell(s *model.SEOSummary) string {
	if s == nil {
		return "not run"
	}
	return fmt.Sprintf("%s (%d issues, avg %d ms)",
		s.OverallHealth, s.TotalIssues, s.AverageLoadTimeMs)
}

// pageLabel renders a page path for display; the root path reads "/".
func pageLabel(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// truncate shortens a string to maxLen runes with ellipsis. Counting runes
// rather than bytes keeps multi-byte text intact.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return strings.TrimSpace(string(runes[:maxLen-3])) + "..."
}

package crawl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"webaudit/internal/browser"
	"webaudit/internal/config"
	"webaudit/internal/model"
)

// TestRunnerRunAll tests the full session flow over fakes: three categories,
// one session report, everything persisted.
func TestRunnerRunAll(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	engine.html = seoTestPage
	engine.timing = browser.NavigationTiming{Load: 1200 * time.Millisecond}
	rules := &fakeRules{}
	sess := testSession(t)
	cfg := testConfig()

	rep, err := NewRunner(engine, rules, sess, cfg, nil).RunAll(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Screenshots == nil || rep.Accessibility == nil || rep.SEO == nil {
		t.Fatalf("expected all three summaries, got %+v", rep)
	}
	if rep.SessionID != sess.ID {
		t.Errorf("expected session id %q, got %q", sess.ID, rep.SessionID)
	}
	if !rep.AllPassed {
		t.Errorf("a clean run must pass: %+v", rep)
	}

	// The session directory holds the three category subtrees plus the
	// cross-category summary pair.
	for _, rel := range []string{
		filepath.Join("screenshots", "report.md"),
		filepath.Join("screenshots", "report.json"),
		filepath.Join("accessibility", "report.md"),
		filepath.Join("accessibility", "report.json"),
		filepath.Join("seo", "report.md"),
		filepath.Join("seo", "report.json"),
		"summary.md",
		"summary.json",
	} {
		if _, err := os.Stat(filepath.Join(sess.Dir(), rel)); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}

	// The persisted summary round-trips to the same report.
	data, err := os.ReadFile(filepath.Join(sess.Dir(), "summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	var persisted model.SessionReport
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("summary.json must parse: %v", err)
	}
	if persisted.SessionID != rep.SessionID || persisted.AllPassed != rep.AllPassed {
		t.Errorf("persisted report diverges: %+v vs %+v", persisted, rep)
	}
}

// TestRunnerSingleFailureScenario tests the canonical partial-failure run:
// one page of one viewport fails navigation, everything else completes.
func TestRunnerSingleFailureScenario(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	engine.html = seoTestPage
	engine.navErr["http://localhost:4321/about"] = errors.New("net::ERR_CONNECTION_REFUSED")
	rules := &fakeRules{}
	sess := testSession(t)
	cfg := testConfig()
	cfg.Matrix.Viewports = cfg.Matrix.Viewports[:1]

	rep, err := NewRunner(engine, rules, sess, cfg, nil).RunAll(t.Context())
	if err != nil {
		t.Fatalf("per-page failures must not fail the run: %v", err)
	}

	// 2 pages × 1 viewport, one of which failed.
	if rep.Screenshots.Total != 2 || rep.Screenshots.Failed != 1 {
		t.Errorf("unexpected screenshot counts: %+v", rep.Screenshots)
	}
	if rep.Accessibility.Failed != 1 || rep.SEO.Failed != 1 {
		t.Errorf("the failing page fails in every category: %+v / %+v",
			rep.Accessibility, rep.SEO)
	}
	// Screenshot and SEO failures are advisory; with no criticals and all
	// three categories present the session still passes.
	if !rep.AllPassed {
		t.Errorf("advisory failures must not gate the session: %+v", rep)
	}
}

// TestRunnerAssertionGate tests that a critical-violation assertion fails
// the run but leaves the session report intact.
func TestRunnerAssertionGate(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	engine.html = seoTestPage
	rules := &fakeRules{
		result: &browser.AxeResult{
			Violations: []browser.AxeViolation{{ID: "image-alt", Impact: "critical"}},
		},
	}
	sess := testSession(t)
	cfg := testConfig()
	cfg.FailOnCritical = true

	rep, err := NewRunner(engine, rules, sess, cfg, nil).RunAll(t.Context())

	var assertion *AssertionError
	if !errors.As(err, &assertion) {
		t.Fatalf("expected *AssertionError in the joined error, got %v", err)
	}
	if rep == nil || rep.Accessibility == nil || rep.SEO == nil {
		t.Fatal("the remaining categories still run after the assertion")
	}
	if rep.AllPassed {
		t.Error("criticals must fail the session")
	}
	if _, err := os.Stat(filepath.Join(sess.Dir(), "summary.json")); err != nil {
		t.Errorf("the session report is still persisted: %v", err)
	}
}

// TestRunnerMissingRuleScript tests that a misconfigured rule script fails
// the run and never yields a passing session.
func TestRunnerMissingRuleScript(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	engine.html = seoTestPage
	rules := &fakeRules{err: fmt.Errorf("%w: /data/axe.min.js", browser.ErrRuleScriptNotFound)}
	sess := testSession(t)
	cfg := testConfig()

	rep, err := NewRunner(engine, rules, sess, cfg, nil).RunAll(t.Context())
	if !errors.Is(err, browser.ErrRuleScriptNotFound) {
		t.Fatalf("expected ErrRuleScriptNotFound in the joined error, got %v", err)
	}
	if rep.Accessibility != nil {
		t.Errorf("the misconfigured category must not report a summary: %+v", rep.Accessibility)
	}
	if rep.AllPassed {
		t.Error("a session missing its accessibility category must not pass")
	}
}

// TestRunnerCategoryOrder tests the screenshots→accessibility→seo sequence
// implied by the output tree: viewport changes happen only during the
// screenshot category.
func TestRunnerCategoryOrder(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine()
	engine.html = seoTestPage
	rules := &fakeRules{}
	sess := testSession(t)
	cfg := testConfig()

	if _, err := NewRunner(engine, rules, sess, cfg, nil).RunAll(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 viewports for screenshots; accessibility and seo never touch it.
	if len(engine.viewports) != 2 {
		t.Errorf("expected 2 viewport changes, got %v", engine.viewports)
	}
	// 4 screenshot visits + 2 accessibility visits + 2 seo visits.
	if len(engine.navigations) != 8 {
		t.Errorf("expected 8 navigations, got %d: %v", len(engine.navigations), engine.navigations)
	}
	if rules.calls != 2 {
		t.Errorf("expected 2 rule engine calls, got %d", rules.calls)
	}
}

// TestErrorTypes tests the crawl error wrappers.
func TestErrorTypes(t *testing.T) {
	t.Parallel()

	t.Run("navigation error unwraps", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("refused")
		err := &NavigationError{URL: "http://localhost:4321/", Err: cause}
		if !errors.Is(err, cause) {
			t.Error("expected NavigationError to unwrap to its cause")
		}
		if err.Error() == "" {
			t.Error("expected a message")
		}
	})

	t.Run("capture error unwraps", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("screenshot failed")
		err := &CaptureError{URL: "http://localhost:4321/", Err: cause}
		if !errors.Is(err, cause) {
			t.Error("expected CaptureError to unwrap to its cause")
		}
	})

	t.Run("assertion error names the count", func(t *testing.T) {
		t.Parallel()
		err := &AssertionError{Critical: 3}
		if err.Error() == "" {
			t.Error("expected a message")
		}
	})
}

// TestConfigViewportLookup guards the viewport lookup the single-viewport
// command path relies on.
func TestConfigViewportLookup(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	v, err := cfg.Matrix.Viewport("desktop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Width != 1920 || v.Height != 1080 {
		t.Errorf("unexpected viewport: %+v", v)
	}
	if _, err := cfg.Matrix.Viewport("tablet"); !errors.Is(err, config.ErrViewportNotFound) {
		t.Errorf("expected ErrViewportNotFound, got %v", err)
	}
}

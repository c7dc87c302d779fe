package crawl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"webaudit/internal/browser"
	"webaudit/internal/config"
	"webaudit/internal/model"
	"webaudit/internal/report"
	"webaudit/internal/session"
)

// AccessibilityCrawler runs the accessibility rule engine against every
// page in the target matrix and classifies the reported violations.
type AccessibilityCrawler struct {
	engine  Engine
	rules   RuleEngine
	session *session.Session
	cfg     *config.Config
	logger  *slog.Logger
}

// NewAccessibilityCrawler creates an AccessibilityCrawler.
func NewAccessibilityCrawler(engine Engine, rules RuleEngine, sess *session.Session, cfg *config.Config, logger *slog.Logger) *AccessibilityCrawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessibilityCrawler{engine: engine, rules: rules, session: sess, cfg: cfg, logger: logger}
}

// Run analyzes every page and returns the category summary.
//
// When FailOnCritical is enabled and critical violations were found, the
// returned error is an *AssertionError, the one error category that is
// deliberately allowed to fail the overall run. The summary and the
// persisted reports are complete either way.
//
// A missing rule script (browser.ErrRuleScriptNotFound) is a configuration
// failure, not a page failure: it would fail every remaining page the same
// way and a summary built from it would read as a clean pass. Run stops at
// the first unit that reports it and returns no summary.
func (c *AccessibilityCrawler) Run(ctx context.Context) (*model.AccessibilitySummary, error) {
	dir, err := c.session.OutputDir("accessibility")
	if err != nil {
		return nil, err
	}

	results := make([]model.AccessibilityResult, 0, len(c.cfg.Matrix.Pages))

	for _, page := range c.cfg.Matrix.Pages {
		if ctx.Err() != nil {
			return c.finish(dir, results, ctx.Err())
		}

		url := pageURL(c.cfg.BaseURL, page.Path)
		result := model.AccessibilityResult{
			CrawlResult: model.CrawlResult{
				Page:      page.Path,
				Title:     page.Title,
				Timestamp: time.Now(),
			},
			URL: url,
		}

		raw, err := c.analyze(ctx, url)
		if err != nil {
			if errors.Is(err, browser.ErrRuleScriptNotFound) {
				return nil, err
			}
			result.Error = err.Error()
			c.logger.Warn("accessibility analysis failed", "page", page.Path, "error", err)
		} else {
			result.Success = true
			result.Violations = classifyViolations(raw.Violations)
			result.Passes = raw.Passes
			result.Incomplete = raw.Incomplete
			c.logger.Debug("accessibility analyzed",
				"page", page.Path,
				"violations", len(result.Violations),
				"critical", result.CriticalCount(),
			)
		}

		results = append(results, result)
	}

	return c.finish(dir, results, nil)
}

// analyze runs one navigate→dwell→analyze unit within the unit timeout.
func (c *AccessibilityCrawler) analyze(ctx context.Context, url string) (*browser.AxeResult, error) {
	uctx, cancel := context.WithTimeout(ctx, c.cfg.UnitTimeout)
	defer cancel()

	if _, err := visit(uctx, c.engine, url, c.cfg.Dwell); err != nil {
		return nil, err
	}

	raw, err := c.rules.Analyze(uctx, c.cfg.AccessibilityTags)
	if err != nil {
		if errors.Is(err, browser.ErrRuleScriptNotFound) {
			return nil, err
		}
		return nil, &CaptureError{URL: url, Err: err}
	}
	return raw, nil
}

// finish builds the summary, persists the category reports, and applies
// the critical-violation assertion.
func (c *AccessibilityCrawler) finish(dir string, results []model.AccessibilityResult, loopErr error) (*model.AccessibilitySummary, error) {
	summary := model.NewAccessibilitySummary(results)

	if err := report.SaveAccessibilityReport(dir, c.session.ID, summary); err != nil {
		c.logger.Error("failed to persist accessibility report", "error", err)
		if loopErr == nil {
			loopErr = err
		}
	}

	if loopErr == nil && c.cfg.FailOnCritical && summary.CriticalViolations > 0 {
		loopErr = &AssertionError{Critical: summary.CriticalViolations}
	}
	return summary, loopErr
}

// classifyViolations maps engine-reported violations onto the closed
// four-level impact enum. Classification is strictly by reported impact;
// unknown impact strings become minor.
func classifyViolations(raw []browser.AxeViolation) []model.Violation {
	if len(raw) == 0 {
		return nil
	}
	violations := make([]model.Violation, 0, len(raw))
	for _, v := range raw {
		impact := model.ParseImpact(v.Impact)
		violations = append(violations, model.Violation{
			ID:          v.ID,
			Impact:      impact,
			ImpactText:  impact.String(),
			Description: v.Description,
			Help:        v.Help,
			Nodes:       v.Nodes,
		})
	}
	return violations
}

package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"webaudit/internal/config"
	"webaudit/internal/model"
	"webaudit/internal/report"
	"webaudit/internal/seo"
	"webaudit/internal/session"
)

// SEOCrawler extracts SEO facts and timings from every page in the target
// matrix and evaluates the issue ruleset over them.
type SEOCrawler struct {
	engine  Engine
	session *session.Session
	cfg     *config.Config
	logger  *slog.Logger
}

// NewSEOCrawler creates an SEOCrawler.
func NewSEOCrawler(engine Engine, sess *session.Session, cfg *config.Config, logger *slog.Logger) *SEOCrawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOCrawler{engine: engine, session: sess, cfg: cfg, logger: logger}
}

// Run analyzes every page and returns the category summary.
func (c *SEOCrawler) Run(ctx context.Context) (*model.SEOSummary, error) {
	dir, err := c.session.OutputDir("seo")
	if err != nil {
		return nil, err
	}

	results := make([]model.SEOResult, 0, len(c.cfg.Matrix.Pages))

	for _, page := range c.cfg.Matrix.Pages {
		if ctx.Err() != nil {
			return c.finish(dir, results, ctx.Err())
		}

		result := model.SEOResult{
			CrawlResult: model.CrawlResult{
				Page:      page.Path,
				Title:     page.Title,
				Timestamp: time.Now(),
			},
		}

		facts, perf, err := c.analyze(ctx, page.Path)
		if err != nil {
			result.Error = err.Error()
			c.logger.Warn("seo analysis failed", "page", page.Path, "error", err)
		} else {
			result.Success = true
			result.Facts = *facts
			result.Performance = perf
			result.Issues = seo.DetectIssues(facts, perf, c.cfg.PerformanceThreshold)
			c.logger.Debug("seo analyzed",
				"page", page.Path,
				"issues", len(result.Issues),
				"loadMs", perf.LoadTimeMs,
			)
		}

		results = append(results, result)
	}

	return c.finish(dir, results, nil)
}

// analyze runs one navigate→dwell→extract unit within the unit timeout.
func (c *SEOCrawler) analyze(ctx context.Context, pagePath string) (*model.SEOFacts, model.Performance, error) {
	uctx, cancel := context.WithTimeout(ctx, c.cfg.UnitTimeout)
	defer cancel()

	raw := pageURL(c.cfg.BaseURL, pagePath)

	timing, err := visit(uctx, c.engine, raw, c.cfg.Dwell)
	if err != nil {
		return nil, model.Performance{}, err
	}
	perf := model.Performance{
		LoadTimeMs:         timing.Load.Milliseconds(),
		DOMContentLoadedMs: timing.DOMContentLoaded.Milliseconds(),
	}

	html, err := c.engine.HTML(uctx)
	if err != nil {
		return nil, perf, &CaptureError{URL: raw, Err: err}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, perf, &CaptureError{URL: raw, Err: err}
	}

	facts, err := seo.Extract(html, parsed)
	if err != nil {
		return nil, perf, &CaptureError{URL: raw, Err: err}
	}
	return facts, perf, nil
}

// finish builds the summary and persists the category reports.
func (c *SEOCrawler) finish(dir string, results []model.SEOResult, loopErr error) (*model.SEOSummary, error) {
	summary := model.NewSEOSummary(results)
	if err := report.SaveSEOReport(dir, c.session.ID, summary); err != nil {
		c.logger.Error("failed to persist seo report", "error", err)
		if loopErr == nil {
			loopErr = err
		}
	}
	return summary, loopErr
}

package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"webaudit/internal/config"
	"webaudit/internal/model"
	"webaudit/internal/report"
	"webaudit/internal/session"
)

// ScreenshotCrawler captures a full-page image for every page×viewport
// combination in the target matrix.
//
// The outer loop runs over viewports and the inner loop over pages:
// viewport emulation is sticky on the browsing context, so setting it once
// per viewport amortizes the cost across all pages.
type ScreenshotCrawler struct {
	engine  Engine
	session *session.Session
	cfg     *config.Config
	logger  *slog.Logger
}

// NewScreenshotCrawler creates a ScreenshotCrawler.
func NewScreenshotCrawler(engine Engine, sess *session.Session, cfg *config.Config, logger *slog.Logger) *ScreenshotCrawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenshotCrawler{engine: engine, session: sess, cfg: cfg, logger: logger}
}

// Run captures the full matrix and returns the category summary.
// Individual failures are recorded on their results; the returned error is
// non-nil only for category-level failures (output directory, report
// persistence) or a run-ceiling breach.
func (c *ScreenshotCrawler) Run(ctx context.Context) (*model.ScreenshotSummary, error) {
	return c.run(ctx, c.cfg.Matrix.Viewports)
}

// RunViewport captures the matrix restricted to one named viewport.
// An unknown name is a configuration failure: it escalates immediately,
// before any navigation.
func (c *ScreenshotCrawler) RunViewport(ctx context.Context, name string) (*model.ScreenshotSummary, error) {
	viewport, err := c.cfg.Matrix.Viewport(name)
	if err != nil {
		return nil, err
	}
	return c.run(ctx, []config.ViewportSpec{viewport})
}

// run executes the capture loop over the given viewports.
func (c *ScreenshotCrawler) run(ctx context.Context, viewports []config.ViewportSpec) (*model.ScreenshotSummary, error) {
	dir, err := c.session.OutputDir("screenshots")
	if err != nil {
		return nil, err
	}

	results := make([]model.ScreenshotResult, 0, len(viewports)*len(c.cfg.Matrix.Pages))

	for _, viewport := range viewports {
		viewportErr := c.setViewport(ctx, viewport)

		for _, page := range c.cfg.Matrix.Pages {
			if ctx.Err() != nil {
				// Run ceiling breached: abandon the rest, keep what we have.
				return c.finish(dir, results, ctx.Err())
			}

			result := model.ScreenshotResult{
				CrawlResult: model.CrawlResult{
					Page:      page.Path,
					Title:     page.Title,
					Timestamp: time.Now(),
				},
				Viewport: viewport.Name,
			}

			switch {
			case viewportErr != nil:
				// The viewport could not be emulated; every page under it
				// fails with the same cause.
				result.Error = viewportErr.Error()
			default:
				path := filepath.Join(dir, screenshotFileName(page.Path, viewport.Name))
				if err := c.capture(ctx, page.Path, path); err != nil {
					result.Error = err.Error()
					c.logger.Warn("screenshot failed",
						"page", page.Path,
						"viewport", viewport.Name,
						"error", err,
					)
				} else {
					result.Success = true
					result.FilePath = path
					c.logger.Debug("screenshot captured",
						"page", page.Path,
						"viewport", viewport.Name,
						"file", path,
					)
				}
			}

			results = append(results, result)
		}
	}

	return c.finish(dir, results, nil)
}

// setViewport applies the viewport within the unit timeout.
func (c *ScreenshotCrawler) setViewport(ctx context.Context, viewport config.ViewportSpec) error {
	uctx, cancel := context.WithTimeout(ctx, c.cfg.UnitTimeout)
	defer cancel()
	return c.engine.SetViewport(uctx, viewport.Width, viewport.Height)
}

// capture runs one navigate→dwell→screenshot unit within the unit timeout.
func (c *ScreenshotCrawler) capture(ctx context.Context, pagePath, filePath string) error {
	uctx, cancel := context.WithTimeout(ctx, c.cfg.UnitTimeout)
	defer cancel()

	url := pageURL(c.cfg.BaseURL, pagePath)
	if _, err := visit(uctx, c.engine, url, c.cfg.Dwell); err != nil {
		return err
	}
	if err := c.engine.CaptureFullPage(uctx, filePath, c.cfg.FullPage); err != nil {
		return &CaptureError{URL: url, Err: err}
	}
	return nil
}

// finish builds the summary, persists the category reports, and joins the
// loop error (if any) with persistence errors.
func (c *ScreenshotCrawler) finish(dir string, results []model.ScreenshotResult, loopErr error) (*model.ScreenshotSummary, error) {
	summary := model.NewScreenshotSummary(results)
	if err := report.SaveScreenshotReport(dir, c.session.ID, summary); err != nil {
		c.logger.Error("failed to persist screenshot report", "error", err)
		if loopErr == nil {
			loopErr = err
		}
	}
	return summary, loopErr
}

// screenshotFileName derives the deterministic image file name for one
// page×viewport combination: path separators become underscores, the empty
// path becomes "home", and the viewport name is suffixed.
func screenshotFileName(pagePath, viewportName string) string {
	name := strings.Trim(pagePath, "/")
	if name == "" {
		name = "home"
	} else {
		name = strings.ReplaceAll(name, "/", "_")
	}
	return fmt.Sprintf("%s_%s.png", name, viewportName)
}

package crawl

import (
	"context"
	"errors"
	"log/slog"

	"webaudit/internal/config"
	"webaudit/internal/model"
	"webaudit/internal/report"
	"webaudit/internal/session"
)

// Runner executes the three crawl categories over one session and
// aggregates their summaries into the session report.
//
// Categories run strictly in sequence on the one shared browsing context.
// A category that fails fatally (for example its output directory cannot
// be created) leaves a nil summary; the session report is still assembled
// from whatever completed, and the joined error makes the process exit
// nonzero.
type Runner struct {
	engine  Engine
	rules   RuleEngine
	session *session.Session
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(engine Engine, rules RuleEngine, sess *session.Session, cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{engine: engine, rules: rules, session: sess, cfg: cfg, logger: logger}
}

// RunAll runs screenshots, accessibility, and SEO in order, then builds
// and persists the session report.
//
// The report persistence step is skipped when the run context was
// cancelled before reaching it; results already persisted by the category
// crawlers survive regardless.
func (r *Runner) RunAll(ctx context.Context) (*model.SessionReport, error) {
	var errs []error

	r.logger.Info("starting screenshot crawl", "session", r.session.ID)
	screenshots, err := NewScreenshotCrawler(r.engine, r.session, r.cfg, r.logger).Run(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	r.logger.Info("starting accessibility crawl", "session", r.session.ID)
	accessibility, err := NewAccessibilityCrawler(r.engine, r.rules, r.session, r.cfg, r.logger).Run(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	r.logger.Info("starting seo crawl", "session", r.session.ID)
	seoSummary, err := NewSEOCrawler(r.engine, r.session, r.cfg, r.logger).Run(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	rep := model.NewSessionReport(r.session.ID, screenshots, accessibility, seoSummary)

	if ctx.Err() == nil {
		if err := report.SaveSessionReport(r.session.Dir(), rep); err != nil {
			errs = append(errs, err)
		}
	} else {
		r.logger.Warn("run aborted before the report step; skipping session report",
			"session", r.session.ID,
		)
	}

	return rep, errors.Join(errs...)
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"webaudit/internal/browser"
	"webaudit/internal/config"
	"webaudit/internal/crawl"
	"webaudit/internal/database"
	"webaudit/internal/model"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full audit: screenshots, accessibility, and SEO",
		Long: `Run executes all three crawl categories against the configured
page×viewport matrix and aggregates their results into a session report.

The categories run in order on one shared browser:
- Screenshots: a full-page capture per page×viewport combination
- Accessibility: WCAG rule checks per page, classified by impact
- SEO: metadata, heading, image, link, and load-time analysis per page

Individual page failures never abort the run; they are recorded on their
results and reflected in the summaries. The session report lists prioritized
actions derived from all three categories.

Examples:
  # Audit the default local development server
  webaudit run

  # Audit a staging deployment with a custom config file
  webaudit run -u https://staging.example.com -c audit.yaml

  # Fail the process when critical accessibility violations are found
  webaudit run --fail-on-critical`,
		RunE: runRunCmd,
	}

	addAuditFlags(cmd)
	cmd.Flags().Bool("fail-on-critical", false,
		"Exit nonzero when critical accessibility violations are found")
	cmd.Flags().String("axe-script", "",
		"Path of the axe-core script to inject (default: the XDG data directory)")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	return withAuditEnv(cmd, func(ctx context.Context, env *auditEnv) error {
		if failOnCritical, err := cmd.Flags().GetBool("fail-on-critical"); err != nil {
			return err
		} else if failOnCritical {
			env.cfg.FailOnCritical = true
		}
		if axeScript, err := cmd.Flags().GetString("axe-script"); err != nil {
			return err
		} else if axeScript != "" {
			env.cfg.AxeScriptPath = axeScript
		}

		// History persistence is best effort: a broken database must not
		// block the audit itself.
		db, err := database.Open(config.XDGDataDir())
		if err != nil {
			env.logger.Warn("session history disabled", "error", err)
		} else {
			defer db.Close() //nolint:errcheck // Best effort cleanup
		}

		rules := browser.NewAxe(env.engine, env.cfg.AxeScriptPath)
		runner := crawl.NewRunner(env.engine, rules, env.sess, env.cfg, env.logger)

		fmt.Printf("Auditing %s (%d pages × %d viewports)...\n",
			env.cfg.BaseURL, len(env.cfg.Matrix.Pages), len(env.cfg.Matrix.Viewports))

		rep, runErr := runner.RunAll(ctx)

		printSessionReport(rep)

		if db != nil {
			// The history row is written even when the run was cancelled;
			// a partial session is still a session.
			saveCtx := context.WithoutCancel(ctx)
			if err := db.SaveSession(saveCtx, rep); err != nil {
				env.logger.Error("failed to save session history", "error", err)
			} else {
				env.logger.Info("session saved to history", "db", db.Path())
			}
		}

		return runErr
	})
}

// printSessionReport prints the cross-category outcome to stdout.
func printSessionReport(rep *model.SessionReport) {
	fmt.Println()
	if s := rep.Screenshots; s != nil {
		fmt.Printf("Screenshots:   %d/%d captured\n", s.Succeeded, s.Total)
	}
	if a := rep.Accessibility; a != nil {
		fmt.Printf("Accessibility: %s (%d critical, %d serious, %d moderate, %d minor)\n",
			a.OverallStatusText,
			a.CriticalViolations, a.SeriousViolations,
			a.ModerateViolations, a.MinorViolations)
	}
	if s := rep.SEO; s != nil {
		fmt.Printf("SEO:           %s (%d issues, avg load %dms)\n",
			s.OverallHealthText, s.TotalIssues, s.AverageLoadTimeMs)
	}

	if rep.AllPassed {
		fmt.Println("\nAll checks passed.")
	}
	if len(rep.Actions) > 0 {
		fmt.Println("\nRecommended actions:")
		for _, action := range rep.Actions {
			fmt.Printf("  [%s] %s: %s\n", action.PriorityText, action.Category, action.Message)
		}
	}
}

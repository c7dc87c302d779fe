package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"webaudit/internal/browser"
	"webaudit/internal/crawl"
)

// NewAccessibilityCmd creates the accessibility command.
func NewAccessibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accessibility",
		Short: "Check every page against WCAG accessibility rules",
		Long: `Accessibility injects the axe-core rule engine into every page of the
matrix and records the violations it finds, classified by impact (minor,
moderate, serious, critical).

The session passes when zero critical violations are found. With
--fail-on-critical the process also exits nonzero on a failing session,
which makes the command usable as a CI gate.

The rule engine script must be available locally; point --axe-script at an
axe.min.js file or place it in the default data directory.

Examples:
  # Check all pages
  webaudit accessibility

  # Gate a CI pipeline on critical violations
  webaudit accessibility --fail-on-critical`,
		RunE: runAccessibilityCmd,
	}

	addAuditFlags(cmd)
	cmd.Flags().Bool("fail-on-critical", false,
		"Exit nonzero when critical accessibility violations are found")
	cmd.Flags().String("axe-script", "",
		"Path of the axe-core script to inject (default: the XDG data directory)")

	return cmd
}

// runAccessibilityCmd executes the accessibility command.
func runAccessibilityCmd(cmd *cobra.Command, _ []string) error {
	failOnCritical, err := cmd.Flags().GetBool("fail-on-critical")
	if err != nil {
		return err
	}
	axeScript, err := cmd.Flags().GetString("axe-script")
	if err != nil {
		return err
	}

	return withAuditEnv(cmd, func(ctx context.Context, env *auditEnv) error {
		if failOnCritical {
			env.cfg.FailOnCritical = true
		}
		if axeScript != "" {
			env.cfg.AxeScriptPath = axeScript
		}

		rules := browser.NewAxe(env.engine, env.cfg.AxeScriptPath)
		crawler := crawl.NewAccessibilityCrawler(env.engine, rules, env.sess, env.cfg, env.logger)

		summary, runErr := crawler.Run(ctx)
		if summary != nil {
			fmt.Printf("\nAccessibility: %s (%d critical, %d serious, %d moderate, %d minor)\n",
				summary.OverallStatusText,
				summary.CriticalViolations, summary.SeriousViolations,
				summary.ModerateViolations, summary.MinorViolations)
		}
		return runErr
	})
}

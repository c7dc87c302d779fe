package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"webaudit/internal/crawl"
	"webaudit/internal/model"
)

// NewScreenshotsCmd creates the screenshots command.
func NewScreenshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenshots",
		Short: "Capture full-page screenshots across the page×viewport matrix",
		Long: `Screenshots captures one full-page image per page×viewport combination.

Each combination produces exactly one result: a PNG file on success, or a
recorded error on failure. A page that fails at one viewport still gets
captured at the others.

Examples:
  # Capture the full matrix
  webaudit screenshots

  # Capture only the mobile viewport
  webaudit screenshots --viewport mobile`,
		RunE: runScreenshotsCmd,
	}

	addAuditFlags(cmd)
	cmd.Flags().String("viewport", "",
		"Restrict the capture to one named viewport")

	return cmd
}

// runScreenshotsCmd executes the screenshots command.
func runScreenshotsCmd(cmd *cobra.Command, _ []string) error {
	viewportName, err := cmd.Flags().GetString("viewport")
	if err != nil {
		return err
	}

	return withAuditEnv(cmd, func(ctx context.Context, env *auditEnv) error {
		crawler := crawl.NewScreenshotCrawler(env.engine, env.sess, env.cfg, env.logger)

		var summary *model.ScreenshotSummary
		var runErr error
		if viewportName != "" {
			summary, runErr = crawler.RunViewport(ctx, viewportName)
		} else {
			summary, runErr = crawler.Run(ctx)
		}
		if summary != nil {
			fmt.Printf("\nScreenshots: %d/%d captured\n", summary.Succeeded, summary.Total)
		}
		return runErr
	})
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"webaudit/internal/config"
	"webaudit/internal/crawl"
)

// NewSEOCmd creates the seo command.
func NewSEOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seo",
		Short: "Analyze every page for common SEO problems",
		Long: `SEO extracts metadata, headings, images, and links from every page of
the matrix and records issues: missing or mis-sized titles and descriptions,
missing or duplicated H1 headings, images without alt text, missing Open
Graph tags, slow page loads, and external links without rel="noopener".

The summary buckets the total issue count into an overall health level:
EXCELLENT (no issues), GOOD (under ten), or NEEDS_IMPROVEMENT.

Examples:
  # Analyze all pages
  webaudit seo

  # Flag pages slower than 2 seconds
  webaudit seo --performance-threshold 2s`,
		RunE: runSEOCmd,
	}

	addAuditFlags(cmd)
	cmd.Flags().Duration("performance-threshold", config.DefaultPerformanceThreshold,
		"Load duration above which a performance issue is recorded")

	return cmd
}

// runSEOCmd executes the seo command.
func runSEOCmd(cmd *cobra.Command, _ []string) error {
	var threshold time.Duration
	thresholdSet := cmd.Flags().Changed("performance-threshold")
	if thresholdSet {
		var err error
		threshold, err = cmd.Flags().GetDuration("performance-threshold")
		if err != nil {
			return err
		}
	}

	return withAuditEnv(cmd, func(ctx context.Context, env *auditEnv) error {
		if thresholdSet {
			env.cfg.PerformanceThreshold = threshold
		}

		crawler := crawl.NewSEOCrawler(env.engine, env.sess, env.cfg, env.logger)

		summary, runErr := crawler.Run(ctx)
		if summary != nil {
			fmt.Printf("\nSEO: %s (%d issues, avg load %dms)\n",
				summary.OverallHealthText, summary.TotalIssues, summary.AverageLoadTimeMs)
		}
		return runErr
	})
}

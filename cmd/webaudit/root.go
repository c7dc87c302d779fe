// Package main provides the entry point for the webaudit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webaudit",
		Short: "Screenshot, accessibility, and SEO auditing for websites",
		Long: `webaudit audits a website across a page×viewport matrix using a headless
browser. Each run is a session: every page is captured at every configured
viewport, checked against WCAG accessibility rules, and analyzed for common
SEO problems. Results land in a timestamped session directory as Markdown
and JSON reports, plus a cross-category summary with prioritized actions.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewScreenshotsCmd())
	cmd.AddCommand(NewAccessibilityCmd())
	cmd.AddCommand(NewSEOCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

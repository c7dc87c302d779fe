package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"webaudit/internal/config"
	"webaudit/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "Show past audit sessions",
		Long: `History lists past sessions stored in the local database, newest first.
With a session id argument it prints that session's full report as JSON.

Examples:
  # Show the 20 most recent sessions
  webaudit history

  # Show all sessions
  webaudit history --limit 0

  # Dump one session's full report
  webaudit history 2026-08-23T14-02-11`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of sessions to list (0 for all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	db, err := database.Open(config.XDGDataDir())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Best effort cleanup

	if len(args) == 1 {
		return printSessionJSON(cmd, db, args[0])
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return listSessions(cmd, db, limit)
}

// listSessions prints the session history table.
func listSessions(cmd *cobra.Command, db *database.AuditDB, limit int) error {
	records, err := db.ListSessions(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No sessions found in the database.")
		fmt.Println("\nUse 'webaudit run' to audit a site.")
		return nil
	}

	fmt.Printf("Sessions (%d):\n\n", len(records))
	fmt.Printf("  %-22s  %-6s  %-12s  %-16s  %s\n",
		"Session", "Passed", "Screenshots", "Accessibility", "SEO")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, rec := range records {
		passed := "no"
		if rec.AllPassed {
			passed = "yes"
		}
		fmt.Printf("  %-22s  %-6s  %-12s  %-16s  %s\n",
			rec.ID,
			passed,
			fmt.Sprintf("%d/%d", rec.ScreenshotsTotal-rec.ScreenshotsFailed, rec.ScreenshotsTotal),
			fmt.Sprintf("%s (%dc/%ds)", rec.AccessibilityStatus, rec.CriticalViolations, rec.SeriousViolations),
			fmt.Sprintf("%s (%d issues)", rec.SEOHealth, rec.SEOIssues),
		)
	}

	fmt.Println("\nUse 'webaudit history <session-id>' to dump a full report.")
	return nil
}

// printSessionJSON prints one stored session report as indented JSON.
func printSessionJSON(cmd *cobra.Command, db *database.AuditDB, id string) error {
	rep, err := db.GetSession(cmd.Context(), id)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

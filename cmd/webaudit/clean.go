package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"webaudit/internal/config"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete session output directories",
		Long: `Clean removes session directories from the output root. The history
database is untouched; past session reports remain queryable via
'webaudit history'.

Examples:
  # Show what would be removed
  webaudit clean --dry-run

  # Remove all session output
  webaudit clean`,
		RunE: runCleanCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultOutputRoot,
		"Directory holding per-session output trees")
	cmd.Flags().Bool("dry-run", false,
		"List the directories that would be removed without removing them")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, _ []string) error {
	outputRoot, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(outputRoot)
	if os.IsNotExist(err) {
		fmt.Printf("Nothing to clean: %s does not exist\n", outputRoot)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read output root %s: %w", outputRoot, err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(outputRoot, entry.Name())
		if dryRun {
			fmt.Printf("Would remove %s\n", dir)
			removed++
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		fmt.Printf("Removed %s\n", dir)
		removed++
	}

	if removed == 0 {
		fmt.Println("Nothing to clean: no session directories found")
	} else if dryRun {
		fmt.Printf("\n%d session directories would be removed\n", removed)
	} else {
		fmt.Printf("\n%d session directories removed\n", removed)
	}
	return nil
}

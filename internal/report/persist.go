package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"webaudit/internal/model"
)

// Category report file names. Session-root documents use the summary pair
// so a session directory listing reads naturally.
const (
	categoryMarkdownFile = "report.md"
	categoryJSONFile     = "report.json"
	sessionMarkdownFile  = "summary.md"
	sessionJSONFile      = "summary.json"
)

// savePair writes the machine-readable JSON document and the human-readable
// markdown document for one report into dir.
func savePair(dir, mdName, jsonName string, v any, renderMD func(io.Writer) error) error {
	if err := writeJSON(filepath.Join(dir, jsonName), v); err != nil {
		return err
	}

	path := filepath.Join(dir, mdName)
	f, err := os.Create(path) //nolint:gosec // Path is under the session output tree
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := renderMD(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// SaveScreenshotReport persists the screenshot category report pair.
func SaveScreenshotReport(dir, sessionID string, s *model.ScreenshotSummary) error {
	return savePair(dir, categoryMarkdownFile, categoryJSONFile, s, func(w io.Writer) error {
		return writeScreenshotMarkdown(w, sessionID, s)
	})
}

// SaveAccessibilityReport persists the accessibility category report pair.
func SaveAccessibilityReport(dir, sessionID string, s *model.AccessibilitySummary) error {
	return savePair(dir, categoryMarkdownFile, categoryJSONFile, s, func(w io.Writer) error {
		return writeAccessibilityMarkdown(w, sessionID, s)
	})
}

// SaveSEOReport persists the SEO category report pair.
func SaveSEOReport(dir, sessionID string, s *model.SEOSummary) error {
	return savePair(dir, categoryMarkdownFile, categoryJSONFile, s, func(w io.Writer) error {
		return writeSEOMarkdown(w, sessionID, s)
	})
}

// SaveSessionReport persists the cross-category summary pair into the
// session root directory.
func SaveSessionReport(sessionDir string, rep *model.SessionReport) error {
	if err := os.MkdirAll(sessionDir, 0750); err != nil {
		return fmt.Errorf("failed to create session directory %s: %w", sessionDir, err)
	}
	return savePair(sessionDir, sessionMarkdownFile, sessionJSONFile, rep, func(w io.Writer) error {
		return writeSessionMarkdown(w, rep)
	})
}

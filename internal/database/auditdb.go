package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"webaudit/internal/model"
)

// dbFileName is the audit history database file name.
const dbFileName = "webaudit.db"

// ErrSessionNotFound is returned when a session id is absent from history.
var ErrSessionNotFound = errors.New("session not found in history")

// AuditDB stores one row per completed session.
type AuditDB struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the audit history database under dbDir.
// The directory is created if it does not exist.
func Open(dbDir string) (*AuditDB, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	dbPath := filepath.Join(dbDir, dbFileName)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; a single connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{db: db, dbPath: dbPath}
	if err := adb.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return adb, nil
}

// migrate creates the schema if it does not exist.
func (a *AuditDB) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		generated_at TIMESTAMP NOT NULL,
		all_passed INTEGER NOT NULL,
		screenshots_total INTEGER NOT NULL DEFAULT 0,
		screenshots_failed INTEGER NOT NULL DEFAULT 0,
		critical_violations INTEGER NOT NULL DEFAULT 0,
		serious_violations INTEGER NOT NULL DEFAULT 0,
		accessibility_status TEXT NOT NULL DEFAULT '',
		seo_issues INTEGER NOT NULL DEFAULT 0,
		seo_health TEXT NOT NULL DEFAULT '',
		report TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_generated_at ON sessions(generated_at);
	`
	if _, err := a.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (a *AuditDB) Close() error {
	return a.db.Close()
}

// Path returns the database file path.
func (a *AuditDB) Path() string {
	return a.dbPath
}

// SessionRecord is one row of session history.
type SessionRecord struct {
	// ID is the session id.
	ID string `json:"id"`

	// GeneratedAt is when the session report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// AllPassed mirrors the session report's overall flag.
	AllPassed bool `json:"all_passed"`

	// ScreenshotsTotal and ScreenshotsFailed summarize the capture pass.
	ScreenshotsTotal  int `json:"screenshots_total"`
	ScreenshotsFailed int `json:"screenshots_failed"`

	// CriticalViolations and SeriousViolations summarize accessibility.
	CriticalViolations int `json:"critical_violations"`
	SeriousViolations  int `json:"serious_violations"`

	// AccessibilityStatus is the PASS/FAIL status text.
	AccessibilityStatus string `json:"accessibility_status"`

	// SEOIssues and SEOHealth summarize the SEO pass.
	SEOIssues int    `json:"seo_issues"`
	SEOHealth string `json:"seo_health"`
}

// SaveSession stores a session report. Saving the same session id twice
// replaces the row, which only happens when a run is repeated within one
// second (session ids have seconds precision).
func (a *AuditDB) SaveSession(ctx context.Context, rep *model.SessionReport) error {
	blob, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode session report: %w", err)
	}

	rec := recordFromReport(rep)
	_, err = a.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions (
			id, generated_at, all_passed,
			screenshots_total, screenshots_failed,
			critical_violations, serious_violations, accessibility_status,
			seo_issues, seo_health, report
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GeneratedAt, rec.AllPassed,
		rec.ScreenshotsTotal, rec.ScreenshotsFailed,
		rec.CriticalViolations, rec.SeriousViolations, rec.AccessibilityStatus,
		rec.SEOIssues, rec.SEOHealth, string(blob),
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", rep.SessionID, err)
	}
	return nil
}

// recordFromReport flattens a session report into its history row.
func recordFromReport(rep *model.SessionReport) SessionRecord {
	rec := SessionRecord{
		ID:          rep.SessionID,
		GeneratedAt: rep.GeneratedAt,
		AllPassed:   rep.AllPassed,
	}
	if rep.Screenshots != nil {
		rec.ScreenshotsTotal = rep.Screenshots.Total
		rec.ScreenshotsFailed = rep.Screenshots.Failed
	}
	if rep.Accessibility != nil {
		rec.CriticalViolations = rep.Accessibility.CriticalViolations
		rec.SeriousViolations = rep.Accessibility.SeriousViolations
		rec.AccessibilityStatus = rep.Accessibility.OverallStatus.String()
	}
	if rep.SEO != nil {
		rec.SEOIssues = rep.SEO.TotalIssues
		rec.SEOHealth = rep.SEO.OverallHealth.String()
	}
	return rec
}

// ListSessions returns up to limit session records, newest first.
// A limit of 0 or less returns all sessions.
func (a *AuditDB) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	query := `
		SELECT id, generated_at, all_passed,
		       screenshots_total, screenshots_failed,
		       critical_violations, serious_violations, accessibility_status,
		       seo_issues, seo_health
		FROM sessions ORDER BY generated_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		err := rows.Scan(
			&rec.ID, &rec.GeneratedAt, &rec.AllPassed,
			&rec.ScreenshotsTotal, &rec.ScreenshotsFailed,
			&rec.CriticalViolations, &rec.SeriousViolations, &rec.AccessibilityStatus,
			&rec.SEOIssues, &rec.SEOHealth,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return records, nil
}

// GetSession returns the full session report stored for the given id.
func (a *AuditDB) GetSession(ctx context.Context, id string) (*model.SessionReport, error) {
	var blob string
	err := a.db.QueryRowContext(ctx,
		"SELECT report FROM sessions WHERE id = ?", id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var rep model.SessionReport
	if err := json.Unmarshal([]byte(blob), &rep); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &rep, nil
}

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// idFormat renders a seconds-precision timestamp. Colons are replaced
// afterwards because they are unsafe in Windows paths and awkward in URLs.
const idFormat = "2006-01-02T15:04:05"

// Session identifies one run and the root of its output tree.
// The ID is write-once: it is assigned on creation and never mutated.
type Session struct {
	// ID is the seconds-precision timestamp identifying the run.
	ID string

	// Root is the output root directory under which the session tree
	// (<Root>/<ID>/<category>) is created.
	Root string
}

// New creates a Session with an ID derived from the given time.
func New(now time.Time, root string) *Session {
	return &Session{
		ID:   sanitizeID(now.Format(idFormat)),
		Root: root,
	}
}

// sanitizeID normalizes path-unsafe characters in a session ID.
func sanitizeID(id string) string {
	return strings.ReplaceAll(id, ":", "-")
}

// Dir returns the session's root directory without creating it.
func (s *Session) Dir() string {
	return filepath.Join(s.Root, s.ID)
}

// OutputDir builds <Root>/<ID>/<category>, creates it (including parents,
// no error if it already exists), and returns the path.
func (s *Session) OutputDir(category string) (string, error) {
	dir := filepath.Join(s.Root, s.ID, category)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return dir, nil
}

// Manager hands out exactly one Session per run.
//
// Crawlers may be invoked independently and lazily; the first Initialize
// call creates the session, and every subsequent call returns the same
// value. This is the only synchronization in the program: everything
// downstream of the session runs on a single goroutine.
type Manager struct {
	root string
	once sync.Once
	s    *Session
}

// NewManager creates a Manager that allocates sessions under root.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Initialize returns the run's Session, creating it on first call.
// Repeated calls within one process return the identical session.
func (m *Manager) Initialize() *Session {
	m.once.Do(func() {
		m.s = New(time.Now(), m.root)
	})
	return m.s
}

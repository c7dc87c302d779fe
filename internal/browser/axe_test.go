package browser

import (
	"errors"
	"path/filepath"
	"testing"
)

// TestAxeMissingScript tests that a missing rule script escalates as a
// configuration failure before touching the browser.
func TestAxeMissingScript(t *testing.T) {
	t.Parallel()

	axe := NewAxe(nil, filepath.Join(t.TempDir(), "axe.min.js"))

	_, err := axe.Analyze(t.Context(), []string{"wcag2a"})
	if !errors.Is(err, ErrRuleScriptNotFound) {
		t.Fatalf("expected ErrRuleScriptNotFound, got %v", err)
	}

	// The failure is sticky: the load is attempted once per Axe.
	_, err = axe.Analyze(t.Context(), []string{"wcag2a"})
	if !errors.Is(err, ErrRuleScriptNotFound) {
		t.Fatalf("expected the sticky load error, got %v", err)
	}
}

// TestAxeUnreadableScript tests that read failures other than absence keep
// their own error text.
func TestAxeUnreadableScript(t *testing.T) {
	t.Parallel()

	// A directory in place of the script file fails the read without
	// triggering the not-found sentinel.
	dir := t.TempDir()
	axe := NewAxe(nil, dir)

	_, err := axe.Analyze(t.Context(), nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrRuleScriptNotFound) {
		t.Errorf("a present-but-unreadable script is not a not-found error: %v", err)
	}
}

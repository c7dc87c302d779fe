package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfigDefaults tests that defaults are populated.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, expected %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Dwell != DefaultDwell {
		t.Errorf("Dwell = %v, expected %v", cfg.Dwell, DefaultDwell)
	}
	if !cfg.FullPage {
		t.Error("FullPage should default to true")
	}
	if len(cfg.Matrix.Pages) == 0 || len(cfg.Matrix.Viewports) == 0 {
		t.Error("default matrix should not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestValidate tests configuration validation errors.
func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(*Config)
		expected error
	}{
		{"no base URL", func(c *Config) { c.BaseURL = "" }, ErrNoBaseURL},
		{"no pages", func(c *Config) { c.Matrix.Pages = nil }, ErrNoPages},
		{"no viewports", func(c *Config) { c.Matrix.Viewports = nil }, ErrNoViewports},
		{"negative dwell", func(c *Config) { c.Dwell = -time.Second }, ErrInvalidDwell},
		{"zero unit timeout", func(c *Config) { c.UnitTimeout = 0 }, ErrInvalidTimeout},
		{"zero run timeout", func(c *Config) { c.RunTimeout = 0 }, ErrInvalidTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tc.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("got %v, expected %v", err, tc.expected)
			}
		})
	}
}

// TestMatrixViewport tests viewport lookup by name.
func TestMatrixViewport(t *testing.T) {
	t.Parallel()

	m := DefaultMatrix()

	v, err := m.Viewport("mobile")
	if err != nil {
		t.Fatalf("Viewport(mobile) failed: %v", err)
	}
	if v.Width != 375 || v.Height != 812 {
		t.Errorf("unexpected mobile viewport: %+v", v)
	}

	_, err = m.Viewport("ultrawide")
	if !errors.Is(err, ErrViewportNotFound) {
		t.Errorf("got %v, expected ErrViewportNotFound", err)
	}
}

// TestMatrixSize tests the combination count.
func TestMatrixSize(t *testing.T) {
	t.Parallel()

	m := Matrix{
		Pages:     []PageTarget{{Path: ""}, {Path: "/a"}},
		Viewports: []ViewportSpec{{Name: "d"}, {Name: "l"}, {Name: "m"}},
	}
	if m.Size() != 6 {
		t.Errorf("Size() = %d, expected 6", m.Size())
	}
}

// TestLoadFile tests YAML parsing and overlay behavior.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".webaudit.yaml")
	content := `baseURL: https://example.com
dwell: 500ms
fullPage: false
pages:
  - path: ""
    title: Home
viewports:
  - name: desktop
    width: 1920
    height: 1080
performanceThreshold: 5s
failOnCritical: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	cfg := NewConfig()
	f.Apply(cfg)

	if cfg.BaseURL != "https://example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Dwell != 500*time.Millisecond {
		t.Errorf("Dwell = %v, expected 500ms", cfg.Dwell)
	}
	if cfg.FullPage {
		t.Error("FullPage should be overridden to false")
	}
	if !cfg.FailOnCritical {
		t.Error("FailOnCritical should be overridden to true")
	}
	if cfg.PerformanceThreshold != 5*time.Second {
		t.Errorf("PerformanceThreshold = %v", cfg.PerformanceThreshold)
	}
	if len(cfg.Matrix.Pages) != 1 || len(cfg.Matrix.Viewports) != 1 {
		t.Errorf("matrix not overridden: %+v", cfg.Matrix)
	}
	// Fields absent from the file keep defaults.
	if cfg.UnitTimeout != DefaultUnitTimeout {
		t.Errorf("UnitTimeout = %v, expected default", cfg.UnitTimeout)
	}
}

// TestLoadFileNotFound tests the sentinel for a missing file.
func TestLoadFileNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("got %v, expected ErrConfigNotFound", err)
	}
}

// TestFindConfigFile tests explicit-path resolution.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(path); got != path {
		t.Errorf("got %q, expected %q", got, path)
	}
	if got := FindConfigFile(filepath.Join(dir, "absent.yaml")); got != "" {
		t.Errorf("got %q, expected empty", got)
	}
}

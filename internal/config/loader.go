package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".webaudit.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML schema of a webaudit configuration file.
// Every field is optional; absent fields keep their built-in defaults.
// Pointer fields distinguish "not set" from an explicit false/zero.
type File struct {
	BaseURL              string         `yaml:"baseURL,omitempty"`
	OutputRoot           string         `yaml:"outputRoot,omitempty"`
	Pages                []PageTarget   `yaml:"pages,omitempty"`
	Viewports            []ViewportSpec `yaml:"viewports,omitempty"`
	Dwell                Duration       `yaml:"dwell,omitempty"`
	FullPage             *bool          `yaml:"fullPage,omitempty"`
	PerformanceThreshold Duration       `yaml:"performanceThreshold,omitempty"`
	AccessibilityTags    []string       `yaml:"accessibilityTags,omitempty"`
	FailOnCritical       *bool          `yaml:"failOnCritical,omitempty"`
	AxeScriptPath        string         `yaml:"axeScriptPath,omitempty"`
	UnitTimeout          Duration       `yaml:"unitTimeout,omitempty"`
	RunTimeout           Duration       `yaml:"runTimeout,omitempty"`
}

// LoadFile parses the YAML file at path.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified by
// the user.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// Apply overlays the file's settings onto the given configuration.
// Only fields present in the file override the existing values.
func (f *File) Apply(cfg *Config) {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.OutputRoot != "" {
		cfg.OutputRoot = f.OutputRoot
	}
	if len(f.Pages) > 0 {
		cfg.Matrix.Pages = f.Pages
	}
	if len(f.Viewports) > 0 {
		cfg.Matrix.Viewports = f.Viewports
	}
	if !f.Dwell.IsZero() {
		cfg.Dwell = f.Dwell.Duration
	}
	if f.FullPage != nil {
		cfg.FullPage = *f.FullPage
	}
	if !f.PerformanceThreshold.IsZero() {
		cfg.PerformanceThreshold = f.PerformanceThreshold.Duration
	}
	if len(f.AccessibilityTags) > 0 {
		cfg.AccessibilityTags = f.AccessibilityTags
	}
	if f.FailOnCritical != nil {
		cfg.FailOnCritical = *f.FailOnCritical
	}
	if f.AxeScriptPath != "" {
		cfg.AxeScriptPath = f.AxeScriptPath
	}
	if !f.UnitTimeout.IsZero() {
		cfg.UnitTimeout = f.UnitTimeout.Duration
	}
	if !f.RunTimeout.IsZero() {
		cfg.RunTimeout = f.RunTimeout.Duration
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .webaudit.yaml in the current directory
//  3. Look for .webaudit.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

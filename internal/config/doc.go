// Package config holds the static configuration of a webaudit run: the
// page target list, the viewport list, the base URL, dwell and threshold
// settings, and the YAML file loader that overrides the built-in defaults.
//
// The page and viewport lists are ordered; crawl results are produced in
// exactly this order (the target matrix is iterated, never discovered).
package config

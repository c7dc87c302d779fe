package config

import "fmt"

// PageTarget identifies one logical page of the audited site.
type PageTarget struct {
	// Path is the URL path relative to the base URL, e.g. "/about".
	// The empty string means the site root.
	Path string `yaml:"path" json:"path"`

	// Title is the human-readable page name used in reports.
	Title string `yaml:"title" json:"title"`
}

// ViewportSpec describes one browser viewport to capture under.
type ViewportSpec struct {
	// Name is the viewport's identifier, e.g. "desktop".
	Name string `yaml:"name" json:"name"`

	// Width is the viewport width in CSS pixels.
	Width int64 `yaml:"width" json:"width"`

	// Height is the viewport height in CSS pixels.
	Height int64 `yaml:"height" json:"height"`
}

// Matrix is the static target matrix of a run: the ordered page list
// crossed with the ordered viewport list. It is configuration, not
// discovery; crawlers iterate it in exactly this order.
type Matrix struct {
	// Pages is the ordered list of page targets.
	Pages []PageTarget `yaml:"pages"`

	// Viewports is the ordered list of viewport specs.
	Viewports []ViewportSpec `yaml:"viewports"`
}

// DefaultMatrix returns the built-in target matrix used when no
// configuration file overrides it.
func DefaultMatrix() Matrix {
	return Matrix{
		Pages: []PageTarget{
			{Path: "", Title: "Home"},
			{Path: "/about", Title: "About"},
			{Path: "/services", Title: "Services"},
			{Path: "/blog", Title: "Blog"},
			{Path: "/contact", Title: "Contact"},
		},
		Viewports: []ViewportSpec{
			{Name: "desktop", Width: 1920, Height: 1080},
			{Name: "laptop", Width: 1366, Height: 768},
			{Name: "mobile", Width: 375, Height: 812},
		},
	}
}

// Viewport returns the viewport with the given name.
// It returns ErrViewportNotFound when the name is absent so that
// viewport-scoped runs fail fast before any navigation happens.
func (m Matrix) Viewport(name string) (ViewportSpec, error) {
	for _, v := range m.Viewports {
		if v.Name == name {
			return v, nil
		}
	}
	return ViewportSpec{}, fmt.Errorf("%w: %q", ErrViewportNotFound, name)
}

// Size returns the number of page×viewport combinations.
func (m Matrix) Size() int {
	return len(m.Pages) * len(m.Viewports)
}

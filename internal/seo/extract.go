package seo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"webaudit/internal/model"
)

// knownMetaNames is the fixed set of meta tag names and properties the
// extractor records. Anything else on the page is ignored so the fact set
// stays bounded regardless of how many vendor-specific tags a page carries.
var knownMetaNames = map[string]bool{
	"description": true,
	"keywords":    true,
	"robots":      true,
	"author":      true,
	"generator":   true,
	"viewport":    true,
	"theme-color": true,

	// Open Graph
	"og:title":       true,
	"og:description": true,
	"og:image":       true,
	"og:url":         true,
	"og:type":        true,
	"og:site_name":   true,

	// Twitter cards
	"twitter:card":        true,
	"twitter:title":       true,
	"twitter:description": true,
	"twitter:image":       true,
}

// Extract parses rendered page HTML into a structured fact set.
// pageURL is the URL the HTML was rendered at; it anchors the
// external-link classification.
func Extract(html string, pageURL *url.URL) (*model.SEOFacts, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	facts := &model.SEOFacts{
		Meta:     make(map[string]string),
		Headings: make(map[int][]string),
	}

	facts.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			name, _ = s.Attr("property")
		}
		if !knownMetaNames[name] {
			return
		}
		if content, ok := s.Attr("content"); ok {
			facts.Meta[name] = content
		}
	})

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		facts.Canonical = href
	}

	for level := 1; level <= 6; level++ {
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			facts.Headings[level] = append(facts.Headings[level], strings.TrimSpace(s.Text()))
		})
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, hasAlt := s.Attr("alt")
		facts.Images = append(facts.Images, model.ImageFact{
			Src:    src,
			Alt:    alt,
			HasAlt: hasAlt,
		})
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		rel, _ := s.Attr("rel")
		facts.Links = append(facts.Links, model.LinkFact{
			Href:       href,
			Text:       strings.TrimSpace(s.Text()),
			Rel:        rel,
			IsExternal: isExternal(href, pageURL),
		})
	})

	return facts, nil
}

// isExternal reports whether href is an absolute URL pointing at a host
// other than the current page's host. Relative links and schemes without
// a host (mailto:, tel:) are never external.
func isExternal(href string, pageURL *url.URL) bool {
	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	return u.Host != pageURL.Host
}

// Package seo extracts a structured fact set from rendered page HTML and
// evaluates a fixed, ordered ruleset over it to produce the page's SEO
// issue list.
//
// Extraction runs over the browser-rendered DOM, not the raw response
// body, so facts reflect what crawlers that execute JavaScript would see.
// The ruleset is evaluated unconditionally and in a fixed order, which
// makes issue lists deterministic for a given page state.
package seo

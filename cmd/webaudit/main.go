// Package main provides the entry point for the webaudit CLI.
//
// webaudit drives a headless browser across a page×viewport matrix and
// produces screenshot, accessibility, and SEO reports for one session.
//
// Usage:
//
//	webaudit run
//	webaudit screenshots --viewport mobile
//
// See --help for all available options.
package main

// main is the entry point for webaudit.
func main() {
	Execute()
}

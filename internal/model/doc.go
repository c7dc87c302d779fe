// Package model defines the core data structures used throughout webaudit.
//
// This package contains the following main types:
//   - CrawlResult: The common per-unit result shared by all crawl categories
//   - ScreenshotResult, AccessibilityResult, SEOResult: category payloads
//   - ScreenshotSummary, AccessibilitySummary, SEOSummary: category aggregates
//   - SessionReport: the cross-category report with the prioritized action list
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (crawl, report, database) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model

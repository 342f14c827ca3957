// Package report provides batch-summary output in multiple formats.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown for documentation
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably. Report data structures stay in the batch package;
// writers only render them.
package report

// Package pagination provides CLI pagination, sorting, and result metadata
// for non-interactive table output.
//
// Two mutually exclusive modes are supported:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
// Sort expressions use the "field" or "field:order" syntax (for example
// "age:desc"). The package validates flag combinations and exposes metadata
// describing the emitted page.
package pagination

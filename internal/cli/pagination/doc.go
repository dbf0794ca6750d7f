// Package pagination provides paging and sorting for CLI commands that list
// item placements.
//
// It contains:
//   - Params: page/offset flag parsing and validation
//   - Meta: response metadata for a paginated result
//   - Sorter: field-based sorting with validation
//
// Window resolves the index range of one page without touching the items, so
// commands can measure only the items they are about to print.
package pagination

package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Pagination defaults and sort orders.
const (
	DefaultLimit     = 100
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'size:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds CLI pagination flags. Two modes are supported and they are
// mutually exclusive:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
type Params struct {
	// Limit is the maximum number of results to return (offset-based mode).
	Limit int

	// Offset is the number of results to skip (offset-based mode).
	Offset int

	// Page is the 1-based page number (page-based mode).
	Page int

	// PageSize is the number of results per page (page-based mode).
	PageSize int

	// Sort is the raw "field[:order]" expression.
	Sort string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{Limit: DefaultLimit}
}

// AddFlags registers the pagination flags on cmd.
func (p *Params) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Limit, "limit", p.Limit, "maximum number of items to print (0 = all)")
	cmd.Flags().IntVar(&p.Offset, "offset", p.Offset, "number of items to skip")
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "1-based page number (requires --page-size)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", p.PageSize, "items per page")
	cmd.Flags().StringVar(&p.Sort, "sort", p.Sort, "sort the printed page by field[:asc|desc]")
}

// Validate checks that the parameters are valid and consistent.
func (p Params) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if p.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	if p.Page < 0 {
		return errors.New("page cannot be negative")
	}
	if p.PageSize < 0 {
		return errors.New("page-size cannot be negative")
	}

	if p.Page > 0 && p.Offset > 0 {
		return errors.New("page and offset parameters are mutually exclusive")
	}
	if p.Page == 0 && p.PageSize > 0 {
		return errors.New("page must be specified when using page-size: page must be >= 1")
	}
	if p.PageSize == 0 && p.Page > 0 {
		return errors.New("page-size must be specified when using page: page-size must be > 0")
	}

	if _, _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// IsPageBased returns true if page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// CalculateOffsetLimit returns the effective offset and limit. A zero limit
// means no limit.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p Params) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Window returns the half-open index range [start, end) of the requested page
// within total items. Page-based requests past the end are capped to the last
// page; offset-based requests past the end yield an empty window.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p Params) Window(total int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}

	offset, limit := p.CalculateOffsetLimit()
	if p.IsPageBased() && offset >= total {
		offset = ((total - 1) / p.PageSize) * p.PageSize
	}
	if offset >= total {
		return total, total
	}

	end = total
	if limit > 0 {
		end = min(offset+limit, total)
	}
	return offset, end
}

// Apply returns the page of items selected by p.
func Apply[T any](p Params, items []T) []T {
	start, end := p.Window(len(items))
	return items[start:end]
}

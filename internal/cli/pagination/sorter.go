package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// CompareFunc orders two values: negative when a sorts before b.
type CompareFunc[T any] func(a, b T) int

// Sorter sorts values by a named field.
type Sorter[T any] struct {
	fields map[string]CompareFunc[T]
}

// NewSorter creates a Sorter with the given sortable fields.
func NewSorter[T any](fields map[string]CompareFunc[T]) *Sorter[T] {
	return &Sorter[T]{fields: fields}
}

// IsValidField checks if the field is valid for sorting.
func (s *Sorter[T]) IsValidField(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// GetValidFields returns all valid sort fields in a stable order.
func (s *Sorter[T]) GetValidFields() []string {
	fields := make([]string, 0, len(s.fields))
	for field := range s.fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validate parses expr and checks its field.
func (s *Sorter[T]) Validate(expr string) error {
	field, _, err := ParseSort(expr)
	if err != nil {
		return err
	}
	if field != DefaultSortField && !s.IsValidField(field) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
	}
	return nil
}

// Sort returns a sorted copy of items. An unknown field returns items unchanged.
func (s *Sorter[T]) Sort(items []T, field, order string) []T {
	compare, ok := s.fields[field]
	if !ok {
		return items
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}

// By adapts a key extractor into a CompareFunc.
func By[T any, K cmp.Ordered](key func(T) K) CompareFunc[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

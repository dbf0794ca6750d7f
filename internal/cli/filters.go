package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rshade/vlist/internal/logging"
)

var errInvalidFilter = errors.New("invalid filter")

// filterOps lists comparison operators, two-character ones first so "<="
// is not read as "<".
var filterOps = []string{"<=", ">=", "!=", "=", "<", ">"}

// placementFilter is a parsed "field<op>value" expression.
type placementFilter struct {
	field string
	op    string
	value float64
}

// parseFilter parses expressions like "size>=10" or "index!=3". Fields are
// index, offset, size and end.
func parseFilter(expr string) (placementFilter, error) {
	for _, op := range filterOps {
		field, raw, ok := strings.Cut(expr, op)
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		switch field {
		case "index", "offset", "size", "end":
		default:
			return placementFilter{}, fmt.Errorf("%w %q: unknown field %q (valid: index, offset, size, end)",
				errInvalidFilter, expr, field)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return placementFilter{}, fmt.Errorf("%w %q: %q is not a number", errInvalidFilter, expr, raw)
		}
		return placementFilter{field: field, op: op, value: value}, nil
	}
	return placementFilter{}, fmt.Errorf("%w %q: expected field<op>value", errInvalidFilter, expr)
}

func (f placementFilter) matches(p Placement) bool {
	var v float64
	switch f.field {
	case "index":
		v = float64(p.Index)
	case "offset":
		v = p.Offset
	case "size":
		v = p.Size
	case "end":
		v = p.End
	}
	switch f.op {
	case "=":
		return v == f.value
	case "!=":
		return v != f.value
	case "<":
		return v < f.value
	case "<=":
		return v <= f.value
	case ">":
		return v > f.value
	default:
		return v >= f.value
	}
}

// applyFilters validates every filter, then applies them in order. Empty
// expressions are ignored.
func applyFilters(ctx context.Context, items []Placement, filters []string) ([]Placement, error) {
	log := logging.FromContext(ctx)

	parsed := make([]placementFilter, 0, len(filters))
	for _, expr := range filters {
		if expr == "" {
			continue
		}
		f, err := parseFilter(expr)
		if err != nil {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "apply_filters").
				Str("filter", expr).
				Err(err).
				Msg("invalid filter expression")
			return nil, err
		}
		parsed = append(parsed, f)
	}
	if len(parsed) == 0 {
		return items, nil
	}

	result := items
	for _, f := range parsed {
		before := len(result)
		kept := make([]Placement, 0, before)
		for _, p := range result {
			if f.matches(p) {
				kept = append(kept, p)
			}
		}
		result = kept
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("field", f.field).
			Str("op", f.op).
			Int("before", before).
			Int("after", len(result)).
			Msg("applied filter")
	}

	if len(result) == 0 && len(items) > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("original_count", len(items)).
			Msg("no items match filter criteria")
	}
	return result, nil
}

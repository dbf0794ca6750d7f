package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlacements() []Placement {
	return []Placement{
		{Index: 0, Offset: 0, Size: 10, End: 10},
		{Index: 1, Offset: 10, Size: 20, End: 30},
		{Index: 2, Offset: 30, Size: 30, End: 60},
		{Index: 3, Offset: 60, Size: 15, End: 75},
	}
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		want    []int
	}{
		{name: "no filters", filters: nil, want: []int{0, 1, 2, 3}},
		{name: "empty expression ignored", filters: []string{""}, want: []int{0, 1, 2, 3}},
		{name: "greater or equal", filters: []string{"size>=20"}, want: []int{1, 2}},
		{name: "less than", filters: []string{"offset<30"}, want: []int{0, 1}},
		{name: "equal", filters: []string{"index=3"}, want: []int{3}},
		{name: "not equal", filters: []string{"index!=0"}, want: []int{1, 2, 3}},
		{name: "whitespace and case", filters: []string{" Size > 15 "}, want: []int{1, 2}},
		{name: "applied in order", filters: []string{"size>10", "end<=60"}, want: []int{1, 2}},
		{name: "nothing matches", filters: []string{"size>100"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyFilters(context.Background(), samplePlacements(), tt.filters)
			require.NoError(t, err)

			indices := make([]int, 0, len(got))
			for _, p := range got {
				indices = append(indices, p.Index)
			}
			assert.Equal(t, tt.want, indices)
		})
	}
}

func TestApplyFilters_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		wantErr string
	}{
		{name: "no operator", filter: "size", wantErr: "expected field<op>value"},
		{name: "unknown field", filter: "cost>1", wantErr: "unknown field"},
		{name: "not a number", filter: "size>big", wantErr: "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyFilters(context.Background(), samplePlacements(), []string{"size>1", tt.filter})
			require.ErrorIs(t, err, errInvalidFilter)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package sizepos_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/sizepos"
)

func TestFindNearestItem(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		{name: "start of list", offset: 0, want: 0},
		{name: "inside third item", offset: 35, want: 2},
		{name: "exact item boundary", offset: 60, want: 3},
		{name: "inside last item", offset: 99, want: 4},
		{name: "end of list clamps to last", offset: 100, want: 4},
		{name: "far past end", offset: 1e9, want: 4},
		{name: "negative clamps to first", offset: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/fresh", func(t *testing.T) {
			m, _ := newManager(t, sampleSizes())

			got, err := m.FindNearestItem(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})

		t.Run(tt.name+"/all measured", func(t *testing.T) {
			m, _ := newManager(t, sampleSizes())
			_, err := m.SizeAndPositionForIndex(4)
			require.NoError(t, err)

			got, err := m.FindNearestItem(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindNearestItem_MeasuresOnlyUpToTarget(t *testing.T) {
	sizes := make([]float64, 10000)
	for i := range sizes {
		sizes[i] = 10
	}
	m, getter := newManager(t, sizes)

	got, err := m.FindNearestItem(5005)
	require.NoError(t, err)
	assert.Equal(t, 500, got)
	assert.Equal(t, 500, m.LastMeasuredIndex())
	assert.Len(t, getter.calls, 501)

	// Searching behind the high-water mark measures nothing new.
	got, err = m.FindNearestItem(1234)
	require.NoError(t, err)
	assert.Equal(t, 123, got)
	assert.Len(t, getter.calls, 501)
}

func TestFindNearestItem_ZeroSizeItems(t *testing.T) {
	t.Run("fresh", func(t *testing.T) {
		m, _ := newManager(t, []float64{10, 0, 0, 10})

		got, err := m.FindNearestItem(10)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
		assert.Equal(t, 1, m.LastMeasuredIndex())
	})

	t.Run("all measured", func(t *testing.T) {
		m, _ := newManager(t, []float64{10, 0, 0, 10})
		_, err := m.SizeAndPositionForIndex(3)
		require.NoError(t, err)

		got, err := m.FindNearestItem(10)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})
}

func TestFindNearestItem_Errors(t *testing.T) {
	t.Run("NaN offset", func(t *testing.T) {
		m, getter := newManager(t, sampleSizes())

		_, err := m.FindNearestItem(math.NaN())
		require.ErrorIs(t, err, sizepos.ErrInvalidOffset)
		assert.Empty(t, getter.calls)
	})

	t.Run("empty list", func(t *testing.T) {
		m, _ := newManager(t, nil)

		_, err := m.FindNearestItem(10)
		require.ErrorIs(t, err, sizepos.ErrIndexOutOfRange)
	})

	t.Run("invalid measurement during search", func(t *testing.T) {
		m, _ := newManager(t, []float64{10, 10}, func(cfg *sizepos.Config) {
			cfg.ItemCount = 10
		})

		_, err := m.FindNearestItem(55)
		require.ErrorIs(t, err, sizepos.ErrInvalidMeasurement)
		assert.Equal(t, -1, m.LastMeasuredIndex())
	})
}

func TestFindNearestItem_NeverOvershoots(t *testing.T) {
	sizes := make([]float64, 300)
	for i := range sizes {
		sizes[i] = float64(i%7 + 1)
	}
	m, _ := newManager(t, sizes, func(cfg *sizepos.Config) {
		cfg.EstimatedItemSize = 4
	})

	for _, offset := range []float64{0, 3, 17.5, 250, 401, 800, 1199, 1, 600} {
		got, err := m.FindNearestItem(offset)
		require.NoError(t, err)

		sp, err := m.SizeAndPositionForIndex(got)
		require.NoError(t, err)
		assert.LessOrEqual(t, sp.Offset, offset, "offset %v resolved to item %d at %v", offset, got, sp.Offset)
		if got < len(sizes)-1 {
			assert.Greater(t, sp.End(), offset, "offset %v resolved to item %d ending at %v", offset, got, sp.End())
		}
	}
}

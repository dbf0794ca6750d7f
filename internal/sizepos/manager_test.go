package sizepos_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/sizepos"
)

// sampleSizes gives offsets 0, 10, 30, 60, 75 and a total of 100.
func sampleSizes() []float64 {
	return []float64{10, 20, 30, 15, 25}
}

// countingGetter wraps a SizeGetter and records every index it is asked for.
type countingGetter struct {
	get   sizepos.SizeGetter
	calls []int
}

func (c *countingGetter) size(index int) float64 {
	c.calls = append(c.calls, index)
	return c.get(index)
}

func newManager(t *testing.T, sizes []float64, opts ...func(*sizepos.Config)) (*sizepos.Manager, *countingGetter) {
	t.Helper()

	getter := &countingGetter{get: sizepos.Sizes(sizes)}
	cfg := sizepos.Config{
		ItemCount:         len(sizes),
		ItemSizeGetter:    getter.size,
		EstimatedItemSize: 50,
		ContainerSize:     50,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := sizepos.New(cfg)
	require.NoError(t, err)
	return m, getter
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  sizepos.Config
	}{
		{
			name: "nil getter",
			cfg:  sizepos.Config{ItemCount: 1, EstimatedItemSize: 1},
		},
		{
			name: "negative item count",
			cfg:  sizepos.Config{ItemCount: -1, ItemSizeGetter: sizepos.Fixed(1), EstimatedItemSize: 1},
		},
		{
			name: "zero estimated size",
			cfg:  sizepos.Config{ItemCount: 1, ItemSizeGetter: sizepos.Fixed(1)},
		},
		{
			name: "NaN estimated size",
			cfg:  sizepos.Config{ItemCount: 1, ItemSizeGetter: sizepos.Fixed(1), EstimatedItemSize: math.NaN()},
		},
		{
			name: "negative container",
			cfg: sizepos.Config{
				ItemCount: 1, ItemSizeGetter: sizepos.Fixed(1), EstimatedItemSize: 1, ContainerSize: -1,
			},
		},
		{
			name: "unknown align",
			cfg: sizepos.Config{
				ItemCount: 1, ItemSizeGetter: sizepos.Fixed(1), EstimatedItemSize: 1, Align: "middle",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sizepos.New(tt.cfg)
			require.ErrorIs(t, err, sizepos.ErrInvalidConfig)
		})
	}
}

func TestNew_DefaultsToStartAlign(t *testing.T) {
	m, _ := newManager(t, sampleSizes())

	assert.Equal(t, sizepos.AlignStart, m.Config().Align)
	assert.Equal(t, -1, m.LastMeasuredIndex())
}

func TestSizeAndPositionForIndex(t *testing.T) {
	m, getter := newManager(t, sampleSizes())

	sp, err := m.SizeAndPositionForIndex(2)
	require.NoError(t, err)
	assert.Equal(t, sizepos.SizeAndPosition{Offset: 30, Size: 30}, sp)
	assert.Equal(t, 2, m.LastMeasuredIndex())
	assert.Equal(t, []int{0, 1, 2}, getter.calls)

	// Re-querying is idempotent and does not call the getter again.
	again, err := m.SizeAndPositionForIndex(2)
	require.NoError(t, err)
	assert.Equal(t, sp, again)
	first, err := m.SizeAndPositionForIndex(0)
	require.NoError(t, err)
	assert.Equal(t, sizepos.SizeAndPosition{Offset: 0, Size: 10}, first)
	assert.Equal(t, 2, m.LastMeasuredIndex())
	assert.Len(t, getter.calls, 3)

	last, err := m.SizeAndPositionForIndex(4)
	require.NoError(t, err)
	assert.Equal(t, sizepos.SizeAndPosition{Offset: 75, Size: 25}, last)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, getter.calls)
}

func TestSizeAndPositionForIndex_OutOfRange(t *testing.T) {
	m, getter := newManager(t, sampleSizes())

	for _, index := range []int{-1, 5, 100} {
		_, err := m.SizeAndPositionForIndex(index)
		require.ErrorIs(t, err, sizepos.ErrIndexOutOfRange)
	}
	assert.Empty(t, getter.calls)
	assert.Equal(t, -1, m.LastMeasuredIndex())
}

func TestSizeAndPositionForIndex_InvalidMeasurement(t *testing.T) {
	tests := []struct {
		name string
		size float64
	}{
		{name: "NaN", size: math.NaN()},
		{name: "positive infinity", size: math.Inf(1)},
		{name: "negative", size: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := sizepos.New(sizepos.Config{
				ItemCount:         10,
				ItemSizeGetter:    sizepos.Fixed(tt.size),
				EstimatedItemSize: 10,
			})
			require.NoError(t, err)

			_, err = m.SizeAndPositionForIndex(3)
			require.ErrorIs(t, err, sizepos.ErrInvalidMeasurement)
			assert.Equal(t, -1, m.LastMeasuredIndex())
		})
	}
}

func TestSizeAndPositionForIndex_FailureKeepsHighWaterMark(t *testing.T) {
	t.Run("fresh index", func(t *testing.T) {
		m, _ := newManager(t, []float64{10, 10, math.NaN(), 10, 10})

		_, err := m.SizeAndPositionForIndex(4)
		require.ErrorIs(t, err, sizepos.ErrInvalidMeasurement)
		assert.Equal(t, -1, m.LastMeasuredIndex())
		assert.InDelta(t, 5*50, m.TotalSize(), 1e-9)
	})

	t.Run("earlier measurements stay valid", func(t *testing.T) {
		// Index 3 is missing from the slice.
		m, _ := newManager(t, []float64{10, 20, 30}, func(cfg *sizepos.Config) {
			cfg.ItemCount = 6
		})

		_, err := m.SizeAndPositionForIndex(1)
		require.NoError(t, err)

		_, err = m.SizeAndPositionForIndex(5)
		require.ErrorIs(t, err, sizepos.ErrInvalidMeasurement)
		assert.Equal(t, 1, m.LastMeasuredIndex())

		sp, err := m.SizeAndPositionForIndex(2)
		require.NoError(t, err)
		assert.Equal(t, sizepos.SizeAndPosition{Offset: 30, Size: 30}, sp)
		assert.Equal(t, 2, m.LastMeasuredIndex())
	})
}

func TestTotalSize(t *testing.T) {
	t.Run("estimated with one measurement", func(t *testing.T) {
		sizes := make([]float64, 10)
		sizes[0] = 40
		m, _ := newManager(t, sizes)

		_, err := m.SizeAndPositionForIndex(0)
		require.NoError(t, err)
		assert.InDelta(t, 490, m.TotalSize(), 1e-9)
	})

	t.Run("fully estimated", func(t *testing.T) {
		m, _ := newManager(t, sampleSizes())
		assert.InDelta(t, 250, m.TotalSize(), 1e-9)
	})

	t.Run("fully measured", func(t *testing.T) {
		m, _ := newManager(t, sampleSizes())
		_, err := m.SizeAndPositionForIndex(4)
		require.NoError(t, err)
		assert.InDelta(t, 100, m.TotalSize(), 1e-9)
	})

	t.Run("center alignment adds half the spare container", func(t *testing.T) {
		m, _ := newManager(t, sampleSizes(), func(cfg *sizepos.Config) {
			cfg.Align = sizepos.AlignCenter
			cfg.ContainerSize = 150
		})
		// base offset (150-50)/2 plus 5 estimated items plus the same extra term.
		assert.InDelta(t, 50+250+50, m.TotalSize(), 1e-9)
	})

	t.Run("grows or shrinks with measurements", func(t *testing.T) {
		m, _ := newManager(t, []float64{100, 1, 1, 1}, func(cfg *sizepos.Config) {
			cfg.EstimatedItemSize = 10
		})
		assert.InDelta(t, 40, m.TotalSize(), 1e-9)

		_, err := m.SizeAndPositionForIndex(0)
		require.NoError(t, err)
		assert.InDelta(t, 130, m.TotalSize(), 1e-9)

		_, err = m.SizeAndPositionForIndex(3)
		require.NoError(t, err)
		assert.InDelta(t, 103, m.TotalSize(), 1e-9)
	})
}

func TestTotalSize_NeverBelowMeasuredExtent(t *testing.T) {
	sizes := []float64{3, 80, 1, 0, 42, 7, 7, 7}
	m, _ := newManager(t, sizes, func(cfg *sizepos.Config) {
		cfg.EstimatedItemSize = 1
	})

	for i := range sizes {
		sp, err := m.SizeAndPositionForIndex(i)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.TotalSize(), sp.End())
	}
}

func TestResetFrom(t *testing.T) {
	sizes := sampleSizes()
	m, getter := newManager(t, sizes)

	_, err := m.SizeAndPositionForIndex(4)
	require.NoError(t, err)
	getter.calls = nil

	sizes[2] = 5
	m.ResetFrom(2)
	assert.Equal(t, 1, m.LastMeasuredIndex())

	sp, err := m.SizeAndPositionForIndex(3)
	require.NoError(t, err)
	assert.Equal(t, sizepos.SizeAndPosition{Offset: 35, Size: 15}, sp)
	assert.Equal(t, []int{2, 3}, getter.calls)
}

func TestResetFrom_NeverRaisesHighWaterMark(t *testing.T) {
	m, _ := newManager(t, sampleSizes())

	_, err := m.SizeAndPositionForIndex(1)
	require.NoError(t, err)

	m.ResetFrom(4)
	assert.Equal(t, 1, m.LastMeasuredIndex())

	m.ResetFrom(-3)
	assert.Equal(t, -1, m.LastMeasuredIndex())
}

func TestUpdateConfig(t *testing.T) {
	m, getter := newManager(t, sampleSizes())

	_, err := m.SizeAndPositionForIndex(2)
	require.NoError(t, err)

	err = m.UpdateConfig(sizepos.Update{
		ItemCount:         8,
		EstimatedItemSize: 10,
		ContainerSize:     20,
		Align:             sizepos.AlignEnd,
	})
	require.NoError(t, err)

	cfg := m.Config()
	assert.Equal(t, 8, cfg.ItemCount)
	assert.InDelta(t, 10, cfg.EstimatedItemSize, 1e-9)
	assert.InDelta(t, 20, cfg.ContainerSize, 1e-9)
	assert.Equal(t, sizepos.AlignEnd, cfg.Align)
	assert.NotNil(t, cfg.ItemSizeGetter)

	// Measurements survive the update.
	assert.Equal(t, 2, m.LastMeasuredIndex())
	assert.Len(t, getter.calls, 3)
	assert.InDelta(t, 60+5*10, m.TotalSize(), 1e-9)

	err = m.UpdateConfig(sizepos.Update{ItemCount: 8})
	require.ErrorIs(t, err, sizepos.ErrInvalidConfig)
	assert.Equal(t, sizepos.AlignEnd, m.Config().Align)
}

func TestMonotonicOffsets(t *testing.T) {
	sizes := make([]float64, 200)
	for i := range sizes {
		sizes[i] = float64((i*37)%23 + 1)
	}
	m, _ := newManager(t, sizes, func(cfg *sizepos.Config) {
		cfg.EstimatedItemSize = 5
		cfg.ContainerSize = 40
	})

	for _, offset := range []float64{0, 700, 120, 2000, 15, 999} {
		_, err := m.VisibleRange(40, offset, 2)
		require.NoError(t, err)
	}
	m.ResetFrom(50)
	_, err := m.VisibleRange(40, 1500, 0)
	require.NoError(t, err)

	for i := 1; i <= m.LastMeasuredIndex(); i++ {
		prev, err := m.SizeAndPositionForIndex(i - 1)
		require.NoError(t, err)
		cur, err := m.SizeAndPositionForIndex(i)
		require.NoError(t, err)
		assert.LessOrEqual(t, prev.End(), cur.Offset, "items %d and %d overlap", i-1, i)
	}
}

func TestParseAlign(t *testing.T) {
	tests := []struct {
		in      string
		want    sizepos.Align
		wantErr bool
	}{
		{in: "", want: sizepos.AlignStart},
		{in: "start", want: sizepos.AlignStart},
		{in: " Center ", want: sizepos.AlignCenter},
		{in: "END", want: sizepos.AlignEnd},
		{in: "auto", want: sizepos.AlignAuto},
		{in: "middle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := sizepos.ParseAlign(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, sizepos.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

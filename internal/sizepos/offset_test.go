package sizepos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/sizepos"
)

func TestOffsetForIndex(t *testing.T) {
	tests := []struct {
		name    string
		align   sizepos.Align
		current float64
		target  int
		want    float64
	}{
		{name: "end aligns trailing edge", align: sizepos.AlignEnd, target: 4, want: 50},
		{name: "start aligns leading edge", align: sizepos.AlignStart, target: 2, want: 30},
		{name: "start clamps to max scroll", align: sizepos.AlignStart, target: 4, want: 50},
		{name: "center", align: sizepos.AlignCenter, target: 2, want: 30 - (50-30)/2.0},
		{name: "center clamps to zero", align: sizepos.AlignCenter, target: 0, want: 0},
		{name: "auto leaves visible item alone", align: sizepos.AlignAuto, current: 20, target: 2, want: 20},
		{name: "auto scrolls down just enough", align: sizepos.AlignAuto, current: 0, target: 3, want: 25},
		{name: "auto scrolls up to leading edge", align: sizepos.AlignAuto, current: 45, target: 1, want: 10},
		{name: "unknown alignment behaves like auto", align: "nearest", current: 20, target: 2, want: 20},
		{name: "start moves a visible item", align: sizepos.AlignStart, current: 20, target: 2, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t, sampleSizes())
			// Measure everything so the total extent is exact.
			_, err := m.SizeAndPositionForIndex(4)
			require.NoError(t, err)

			got, err := m.OffsetForIndex(sizepos.OffsetRequest{
				Align:         tt.align,
				ContainerSize: 50,
				CurrentOffset: tt.current,
				TargetIndex:   tt.target,
			})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOffsetForIndex_UsesConfiguredAlign(t *testing.T) {
	m, _ := newManager(t, sampleSizes(), func(cfg *sizepos.Config) {
		cfg.Align = sizepos.AlignEnd
	})

	got, err := m.OffsetForIndex(sizepos.OffsetRequest{ContainerSize: 50, TargetIndex: 3})
	require.NoError(t, err)
	// offset 60, size 15: 60 - 50 + 15.
	assert.InDelta(t, 25, got, 1e-9)
}

func TestOffsetForIndex_DegenerateViewport(t *testing.T) {
	m, getter := newManager(t, sampleSizes())

	got, err := m.OffsetForIndex(sizepos.OffsetRequest{ContainerSize: 0, TargetIndex: 99})
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.Empty(t, getter.calls)
}

func TestOffsetForIndex_OutOfRange(t *testing.T) {
	m, _ := newManager(t, sampleSizes())

	_, err := m.OffsetForIndex(sizepos.OffsetRequest{ContainerSize: 50, TargetIndex: 5})
	require.ErrorIs(t, err, sizepos.ErrIndexOutOfRange)
}

func TestOffsetForIndex_EstimatedTail(t *testing.T) {
	m, err := sizepos.New(sizepos.Config{
		ItemCount:         1000,
		ItemSizeGetter:    sizepos.Fixed(20),
		EstimatedItemSize: 10,
	})
	require.NoError(t, err)

	got, err := m.OffsetForIndex(sizepos.OffsetRequest{
		Align:         sizepos.AlignStart,
		ContainerSize: 100,
		TargetIndex:   10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 200, got, 1e-9)
	assert.Equal(t, 10, m.LastMeasuredIndex())
}

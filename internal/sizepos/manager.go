package sizepos

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// SizeAndPosition is the measured placement of one item along the scroll axis.
type SizeAndPosition struct {
	Offset float64 `json:"offset" yaml:"offset"`
	Size   float64 `json:"size"   yaml:"size"`
}

// End returns the offset immediately after the item.
func (sp SizeAndPosition) End() float64 {
	return sp.Offset + sp.Size
}

// Config describes the list an index measures.
type Config struct {
	// ItemCount is the total number of items.
	ItemCount int

	// ItemSizeGetter returns the size of an item. Required.
	ItemSizeGetter SizeGetter

	// EstimatedItemSize is assumed for items that have not been measured yet.
	EstimatedItemSize float64

	// ContainerSize is the viewport extent along the scroll axis.
	ContainerSize float64

	// Align sets the base offset used before anything is measured and the
	// default alignment for OffsetForIndex. Empty means AlignStart.
	Align Align
}

// Update replaces the configuration of an existing index. The size getter is
// kept; measurements are not cleared.
type Update struct {
	ItemCount         int
	EstimatedItemSize float64
	ContainerSize     float64
	Align             Align
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger routes debug tracing of resets, updates and faults to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger.With().Str("component", "sizepos").Logger()
	}
}

// Manager is the incremental size/position index.
//
// Measurements are stored densely: data[i] exists exactly for the indices at or
// below the high-water mark, so len(data)-1 is the last measured index.
type Manager struct {
	itemCount         int
	itemSizeGetter    SizeGetter
	estimatedItemSize float64
	containerSize     float64
	align             Align

	data []SizeAndPosition

	logger zerolog.Logger
}

// New creates an index for cfg. Nothing is measured until the first query.
func New(cfg Config, opts ...Option) (*Manager, error) {
	if cfg.ItemSizeGetter == nil {
		return nil, fmt.Errorf("%w: item size getter is required", ErrInvalidConfig)
	}
	if cfg.Align == "" {
		cfg.Align = AlignStart
	}
	if err := validateUpdate(Update{
		ItemCount:         cfg.ItemCount,
		EstimatedItemSize: cfg.EstimatedItemSize,
		ContainerSize:     cfg.ContainerSize,
		Align:             cfg.Align,
	}); err != nil {
		return nil, err
	}

	m := &Manager{
		itemCount:         cfg.ItemCount,
		itemSizeGetter:    cfg.ItemSizeGetter,
		estimatedItemSize: cfg.EstimatedItemSize,
		containerSize:     cfg.ContainerSize,
		align:             cfg.Align,
		logger:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func validateUpdate(u Update) error {
	switch {
	case u.ItemCount < 0:
		return fmt.Errorf("%w: item count must be >= 0, got %d", ErrInvalidConfig, u.ItemCount)
	case !(u.EstimatedItemSize > 0) || math.IsInf(u.EstimatedItemSize, 0):
		return fmt.Errorf("%w: estimated item size must be > 0, got %v", ErrInvalidConfig, u.EstimatedItemSize)
	case !(u.ContainerSize >= 0) || math.IsInf(u.ContainerSize, 0):
		return fmt.Errorf("%w: container size must be >= 0, got %v", ErrInvalidConfig, u.ContainerSize)
	case !u.Align.Valid():
		return fmt.Errorf("%w: unknown alignment %q", ErrInvalidConfig, u.Align)
	}
	return nil
}

// UpdateConfig replaces the configuration wholesale. It does not reset
// measurements; call ResetFrom when the change invalidates them.
func (m *Manager) UpdateConfig(u Update) error {
	if u.Align == "" {
		u.Align = AlignStart
	}
	if err := validateUpdate(u); err != nil {
		return err
	}
	m.itemCount = u.ItemCount
	m.estimatedItemSize = u.EstimatedItemSize
	m.containerSize = u.ContainerSize
	m.align = u.Align

	m.logger.Debug().
		Int("item_count", u.ItemCount).
		Float64("estimated_item_size", u.EstimatedItemSize).
		Float64("container_size", u.ContainerSize).
		Str("align", string(u.Align)).
		Msg("index config updated")
	return nil
}

// Config returns the current configuration.
func (m *Manager) Config() Config {
	return Config{
		ItemCount:         m.itemCount,
		ItemSizeGetter:    m.itemSizeGetter,
		EstimatedItemSize: m.estimatedItemSize,
		ContainerSize:     m.containerSize,
		Align:             m.align,
	}
}

// ItemCount returns the configured number of items.
func (m *Manager) ItemCount() int {
	return m.itemCount
}

// LastMeasuredIndex returns the high-water mark, or -1 when nothing is measured.
func (m *Manager) LastMeasuredIndex() int {
	return len(m.data) - 1
}

// SizeAndPositionForIndex returns the placement of the item at index, measuring
// every item between the high-water mark and index first.
//
// If the size getter fails partway, the records measured by this call are
// discarded and the high-water mark is left where it was.
func (m *Manager) SizeAndPositionForIndex(index int) (SizeAndPosition, error) {
	if index < 0 || index >= m.itemCount {
		return SizeAndPosition{}, fmt.Errorf("%w: requested index %d is outside of range 0..%d",
			ErrIndexOutOfRange, index, m.itemCount)
	}

	if index < len(m.data) {
		return m.data[index], nil
	}

	mark := len(m.data)
	offset := m.lastMeasured().End()
	for i := mark; i <= index; i++ {
		size := m.itemSizeGetter(i)
		if !validSize(size) {
			m.logger.Debug().
				Int("index", i).
				Float64("size", size).
				Int("last_measured_index", mark-1).
				Msg("size getter returned an invalid size")
			m.rollback(mark)
			return SizeAndPosition{}, fmt.Errorf("%w: index %d returned %v", ErrInvalidMeasurement, i, size)
		}
		m.data = append(m.data, SizeAndPosition{Offset: offset, Size: size})
		offset += size
	}

	return m.data[index], nil
}

// rollback restores the high-water mark to mark-1.
func (m *Manager) rollback(mark int) {
	if mark < len(m.data) {
		m.data = m.data[:mark]
	}
}

// alignOffset is the base offset used when nothing has been measured.
func (m *Manager) alignOffset() float64 {
	switch m.align {
	case AlignCenter:
		return (m.containerSize - m.estimatedItemSize) / 2
	case AlignEnd:
		return m.containerSize - m.estimatedItemSize
	default:
		return 0
	}
}

// lastMeasured returns the record at the high-water mark, or a zero-size
// record at the alignment base offset when nothing is measured.
func (m *Manager) lastMeasured() SizeAndPosition {
	if n := len(m.data); n > 0 {
		return m.data[n-1]
	}
	return SizeAndPosition{Offset: m.alignOffset()}
}

// TotalSize returns the extent of all items: the measured extent plus the
// estimated size of every unmeasured item. The value moves as estimates are
// replaced by measurements.
func (m *Manager) TotalSize() float64 {
	last := m.lastMeasured()
	unmeasured := m.itemCount - m.LastMeasuredIndex() - 1

	var extra float64
	if m.align == AlignCenter {
		extra = (m.containerSize - m.estimatedItemSize) / 2
	}

	return last.End() + float64(unmeasured)*m.estimatedItemSize + extra
}

// ResetFrom discards measurements for index and every item after it. The next
// query past the new high-water mark calls the size getter again.
func (m *Manager) ResetFrom(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(m.data) {
		return
	}

	m.logger.Debug().
		Int("from", index).
		Int("last_measured_index", m.LastMeasuredIndex()).
		Msg("resetting measurements")

	clear(m.data[index:])
	m.data = m.data[:index]
}

// OffsetRequest describes a scroll-to-item target.
type OffsetRequest struct {
	// Align overrides the configured alignment when set. Unrecognized values
	// behave like AlignAuto.
	Align         Align
	ContainerSize float64
	CurrentOffset float64
	TargetIndex   int
}

// OffsetForIndex returns the scroll offset that brings the target item into view
// under the requested alignment, clamped to [0, TotalSize()-ContainerSize].
//
// AlignAuto leaves CurrentOffset unchanged when the item is already fully in
// view; AlignStart always moves the item to the leading edge.
func (m *Manager) OffsetForIndex(req OffsetRequest) (float64, error) {
	if req.ContainerSize <= 0 {
		return 0, nil
	}

	align := req.Align
	if align == "" {
		align = m.align
	}

	datum, err := m.SizeAndPositionForIndex(req.TargetIndex)
	if err != nil {
		return 0, err
	}

	maxOffset := datum.Offset
	minOffset := maxOffset - req.ContainerSize + datum.Size

	var ideal float64
	switch align {
	case AlignEnd:
		ideal = minOffset
	case AlignCenter:
		ideal = maxOffset - (req.ContainerSize-datum.Size)/2
	case AlignStart:
		ideal = maxOffset
	default:
		ideal = math.Max(minOffset, math.Min(maxOffset, req.CurrentOffset))
	}

	return math.Max(0, math.Min(m.TotalSize()-req.ContainerSize, ideal)), nil
}

package sizepos

import (
	"fmt"
	"math"
)

// Range is an inclusive range of item indices.
type Range struct {
	Start int `json:"start" yaml:"start"`
	Stop  int `json:"stop"  yaml:"stop"`
}

// EmptyRange signals that nothing should be rendered.
//
//nolint:gochecknoglobals // Immutable sentinel value.
var EmptyRange = Range{Start: 0, Stop: -1}

// IsEmpty reports whether r contains no indices.
func (r Range) IsEmpty() bool {
	return r.Stop < r.Start
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Stop - r.Start + 1
}

// Contains reports whether index falls within r.
func (r Range) Contains(index int) bool {
	return index >= r.Start && index <= r.Stop
}

// VisibleRange returns the items intersecting [offset, offset+containerSize),
// widened by overscan items on each side and clamped to [0, itemCount-1].
// It returns EmptyRange when there is nothing to render.
//
// Only items between the high-water mark and the end of the range (overscan
// included) are measured, each of them once. A failed measurement leaves the
// high-water mark where it was before the call.
func (m *Manager) VisibleRange(containerSize, offset float64, overscan int) (Range, error) {
	mark := len(m.data)
	r, err := m.visibleRange(containerSize, offset, overscan)
	if err != nil {
		m.rollback(mark)
		return EmptyRange, err
	}
	return r, nil
}

func (m *Manager) visibleRange(containerSize, offset float64, overscan int) (Range, error) {
	if m.itemCount == 0 || m.TotalSize() == 0 {
		return EmptyRange, nil
	}
	if math.IsNaN(offset) {
		return EmptyRange, fmt.Errorf("%w: %v specified", ErrInvalidOffset, offset)
	}

	maxOffset := offset + containerSize

	start, err := m.FindNearestItem(offset)
	if err != nil {
		return EmptyRange, err
	}

	datum, err := m.SizeAndPositionForIndex(start)
	if err != nil {
		return EmptyRange, err
	}

	end := datum.End()
	stop := start
	for end < maxOffset && stop < m.itemCount-1 {
		stop++
		next, err := m.SizeAndPositionForIndex(stop)
		if err != nil {
			return EmptyRange, err
		}
		end += next.Size
	}

	if overscan > 0 {
		start = max(0, start-overscan)
		stop = min(stop+overscan, m.itemCount-1)
		if _, err := m.SizeAndPositionForIndex(stop); err != nil {
			return EmptyRange, err
		}
	}

	return Range{Start: start, Stop: stop}, nil
}

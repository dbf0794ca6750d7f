package sizepos

import (
	"fmt"
	"math"
)

// FindNearestItem returns the index of the item that covers offset, or the
// nearest item before it when no item starts exactly there. Offsets below zero
// resolve to the first item; offsets past the end resolve to the last item.
//
// Measured ranges are searched with a binary search. Offsets beyond the
// high-water mark use an exponential search that measures only as far as the
// target and takes O(log n) probes in the distance from the mark. A failed
// measurement leaves the high-water mark where it was before the call.
func (m *Manager) FindNearestItem(offset float64) (int, error) {
	mark := len(m.data)
	index, err := m.findNearestItem(offset)
	if err != nil {
		m.rollback(mark)
		return 0, err
	}
	return index, nil
}

func (m *Manager) findNearestItem(offset float64) (int, error) {
	if math.IsNaN(offset) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOffset, offset)
	}
	if m.itemCount == 0 {
		return 0, fmt.Errorf("%w: no items to search", ErrIndexOutOfRange)
	}

	offset = math.Max(0, offset)
	last := m.lastMeasured()
	lastIndex := max(0, m.LastMeasuredIndex())

	if last.Offset >= offset {
		return m.binarySearch(0, lastIndex, offset)
	}
	return m.exponentialSearch(lastIndex, offset)
}

// binarySearch returns the highest index in [low, high] whose offset does not
// exceed offset, or 0 when there is none.
func (m *Manager) binarySearch(low, high int, offset float64) (int, error) {
	for low <= high {
		middle := low + (high-low)/2

		datum, err := m.SizeAndPositionForIndex(middle)
		if err != nil {
			return 0, err
		}

		switch {
		case datum.Offset == offset:
			return middle, nil
		case datum.Offset < offset:
			low = middle + 1
		default:
			high = middle - 1
		}
	}

	if low > 0 {
		return low - 1, nil
	}
	return 0, nil
}

// exponentialSearch probes forward from index with a doubling step until it
// passes offset, then binary searches the bracketed interval. Probes measure
// only as far as the item covering offset.
func (m *Manager) exponentialSearch(index int, offset float64) (int, error) {
	interval := 1
	for index < m.itemCount {
		reached, err := m.measureToward(index, offset)
		if err != nil {
			return 0, err
		}
		if reaches(m.data[reached], offset) {
			return m.binarySearch(index/2, reached, offset)
		}
		index += interval
		interval *= 2
	}

	return m.binarySearch(index/2, m.itemCount-1, offset)
}

// reaches reports whether datum starts at or ends past offset. Zero-size items
// starting exactly at offset count, so they are not skipped over.
func reaches(datum SizeAndPosition, offset float64) bool {
	return datum.Offset >= offset || datum.End() > offset
}

// measureToward measures items up to index but stops at the first item that
// reaches offset. It returns the index it stopped at.
func (m *Manager) measureToward(index int, offset float64) (int, error) {
	for i := len(m.data); i <= index; i++ {
		datum, err := m.SizeAndPositionForIndex(i)
		if err != nil {
			return 0, err
		}
		if reaches(datum, offset) {
			return i, nil
		}
	}
	return index, nil
}

package sizepos

import "math"

// SizeGetter returns the size of the item at index along the scroll axis.
// A missing size is reported as NaN.
type SizeGetter func(index int) float64

// Fixed returns a SizeGetter where every item has the same size.
func Fixed(size float64) SizeGetter {
	return func(int) float64 { return size }
}

// Sizes returns a SizeGetter backed by a slice. Indices past the end of the
// slice report a missing size.
func Sizes(sizes []float64) SizeGetter {
	return func(index int) float64 {
		if index < 0 || index >= len(sizes) {
			return math.NaN()
		}
		return sizes[index]
	}
}

// Func adapts an integer size function, such as a rendered line count.
func Func(fn func(index int) int) SizeGetter {
	return func(index int) float64 { return float64(fn(index)) }
}

// validSize reports whether size can be recorded as a measurement.
func validSize(size float64) bool {
	return !math.IsNaN(size) && !math.IsInf(size, 0) && size >= 0
}

package sizepos

import "errors"

// Index errors. Compare with errors.Is; returned errors wrap these with context.
var (
	// ErrIndexOutOfRange indicates an index outside [0, itemCount).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidMeasurement indicates the size getter returned NaN, an infinity
	// or a negative size.
	ErrInvalidMeasurement = errors.New("invalid item size")

	// ErrInvalidOffset indicates a search was asked to resolve a NaN offset.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidConfig indicates a configuration that cannot drive an index.
	ErrInvalidConfig = errors.New("invalid index configuration")
)

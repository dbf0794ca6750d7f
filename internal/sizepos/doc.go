// Package sizepos tracks the size and offset of items in a virtualized list.
//
// A Manager measures items lazily and in index order. It keeps a high-water mark
// below which every measurement is trusted, and it estimates everything above it.
// Key features:
//   - Visible range queries measure only the items they walk over
//   - Binary search over measured items, exponential search beyond them
//   - Total extent combines measured sizes with an estimate for the rest
//   - ResetFrom drops trust from an index onward after an item changes size
//
// A Manager is owned by a single caller and is not safe for concurrent use.
package sizepos

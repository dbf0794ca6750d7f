// Package listview provides a virtual scrolling list for Bubble Tea TUI applications.
//
// Items may have different heights (or widths, when scrolling horizontally).
// Each item's size is measured from its rendered output the first time the
// list needs it, and placement comes from a sizepos index, so only the
// items intersecting the viewport plus an overscan margin are ever rendered.
// Key features:
//   - Variable-size items measured lazily, with estimates for the rest
//   - Keyboard, mouse-wheel and programmatic scroll-to-item with alignment
//   - Optional snapping to the nearest item once scrolling pauses
//   - Vertical and horizontal layouts
package listview

package listview

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/vlist/internal/sizepos"
)

// Direction is the scroll axis.
type Direction int

const (
	// Vertical stacks items top to bottom; item size is its rendered height.
	Vertical Direction = iota
	// Horizontal places items left to right; item size is its rendered width.
	Horizontal
)

// defaultOverscan is the number of extra items rendered on each side of the viewport.
const defaultOverscan = 3

// defaultSnapDelay is how long scrolling must pause before snapping.
const defaultSnapDelay = 100 * time.Millisecond

type options struct {
	width, height     int
	direction         Direction
	overscan          int
	align             sizepos.Align
	estimatedItemSize float64
	scrollOffset      float64
	scrollToIndex     int
	snap              bool
	snapDelay         time.Duration
	keys              KeyMap
	onItemsRendered   func(start, stop int)
	onScroll          func(offset float64)
	onAlign           func(index int)
	logger            zerolog.Logger
}

func defaultOptions() options {
	return options{
		overscan:          defaultOverscan,
		align:             sizepos.AlignStart,
		estimatedItemSize: 1,
		scrollToIndex:     -1,
		snapDelay:         defaultSnapDelay,
		keys:              DefaultKeyMap(),
		logger:            zerolog.Nop(),
	}
}

// Option configures a Model.
type Option func(*options)

// WithSize sets the viewport size in cells.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithDirection sets the scroll axis.
func WithDirection(d Direction) Option {
	return func(o *options) { o.direction = d }
}

// WithOverscan sets how many items beyond the viewport are rendered.
func WithOverscan(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.overscan = n
		}
	}
}

// WithAlign sets the alignment used by ScrollToIndex and snapping.
func WithAlign(a sizepos.Align) Option {
	return func(o *options) { o.align = a }
}

// WithEstimatedItemSize sets the size assumed for unmeasured items.
func WithEstimatedItemSize(size float64) Option {
	return func(o *options) { o.estimatedItemSize = size }
}

// WithScrollOffset sets the initial scroll offset. It wins over WithScrollToIndex.
func WithScrollOffset(offset float64) Option {
	return func(o *options) { o.scrollOffset = offset }
}

// WithScrollToIndex scrolls the given item into view once the list has a size.
func WithScrollToIndex(index int) Option {
	return func(o *options) { o.scrollToIndex = index }
}

// WithSnap aligns the viewport to the nearest item after scrolling pauses for delay.
// A zero delay uses the default of 100ms.
func WithSnap(delay time.Duration) Option {
	return func(o *options) {
		o.snap = true
		if delay > 0 {
			o.snapDelay = delay
		}
	}
}

// WithKeyMap replaces the default keybindings.
func WithKeyMap(keys KeyMap) Option {
	return func(o *options) { o.keys = keys }
}

// WithOnItemsRendered registers a callback fired when the rendered range changes.
func WithOnItemsRendered(fn func(start, stop int)) Option {
	return func(o *options) { o.onItemsRendered = fn }
}

// WithOnScroll registers a callback fired on user scrolling.
func WithOnScroll(fn func(offset float64)) Option {
	return func(o *options) { o.onScroll = fn }
}

// WithOnAlign registers a callback fired after the list snaps to an item.
func WithOnAlign(fn func(index int)) Option {
	return func(o *options) { o.onAlign = fn }
}

// WithLogger sets the logger for the list and its index.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

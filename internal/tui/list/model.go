package listview

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/vlist/internal/sizepos"
)

// wheelStep is the number of cells one mouse wheel notch scrolls.
const wheelStep = 3

// RenderFunc renders a single item. width is the viewport width in vertical
// mode and 0 in horizontal mode, where items size themselves.
type RenderFunc[T any] func(item T, index int, selected bool, width int) string

// scrollReason records what moved the viewport.
type scrollReason int

const (
	// scrollRequested is a programmatic scroll; no callbacks fire.
	scrollRequested scrollReason = iota
	// scrollFollow keeps the selection in view after a keypress.
	scrollFollow
	// scrollFree is a wheel, page or line scroll and may trigger snapping.
	scrollFree
)

// Model is a virtualized list of variable-size items. Only items in the
// visible range plus overscan are measured and rendered.
type Model[T any] struct {
	id     int
	items  []T
	render RenderFunc[T]
	index  *sizepos.Manager
	opts   options
	keys   KeyMap
	logger zerolog.Logger

	width, height int
	offset        float64
	selected      int
	visible       sizepos.Range

	// pendingIndex is scrolled to once the viewport has a size. -1 means none.
	pendingIndex int
	pendingAlign sizepos.Align
	snapSeq      int

	err error
}

// New creates a list over items.
func New[T any](items []T, render RenderFunc[T], opts ...Option) (*Model[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Model[T]{
		id:           nextID(),
		items:        items,
		render:       render,
		opts:         o,
		keys:         o.keys,
		logger:       o.logger.With().Str("component", "listview").Logger(),
		width:        o.width,
		height:       o.height,
		visible:      sizepos.EmptyRange,
		pendingIndex: -1,
	}

	index, err := sizepos.New(sizepos.Config{
		ItemCount:         len(items),
		ItemSizeGetter:    m.measure,
		EstimatedItemSize: o.estimatedItemSize,
		ContainerSize:     m.containerSize(),
		Align:             o.align,
	}, sizepos.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	m.index = index

	switch {
	case o.scrollOffset != 0:
		m.offset = math.Max(0, o.scrollOffset)
	case o.scrollToIndex >= 0:
		m.pendingIndex = o.scrollToIndex
		if o.scrollToIndex < len(items) {
			m.selected = o.scrollToIndex
		}
	}

	m.applyPending()
	m.refresh()
	return m, nil
}

// measure is the size getter handed to the index.
func (m *Model[T]) measure(i int) float64 {
	if i < 0 || i >= len(m.items) {
		return math.NaN()
	}
	if m.opts.direction == Horizontal {
		return float64(lipgloss.Width(m.render(m.items[i], i, false, 0)))
	}
	return float64(lipgloss.Height(m.render(m.items[i], i, false, m.width)))
}

func (m *Model[T]) containerSize() float64 {
	if m.opts.direction == Horizontal {
		return float64(max(0, m.width))
	}
	return float64(max(0, m.height))
}

// syncIndex pushes the current item count and viewport size to the index.
func (m *Model[T]) syncIndex() {
	err := m.index.UpdateConfig(sizepos.Update{
		ItemCount:         len(m.items),
		EstimatedItemSize: m.opts.estimatedItemSize,
		ContainerSize:     m.containerSize(),
		Align:             m.opts.align,
	})
	if err != nil {
		m.err = err
		m.logger.Error().Err(err).Msg("updating index config")
	}
}

// refresh recomputes the visible range and clamps the offset to the scrollable extent.
func (m *Model[T]) refresh() {
	container := m.containerSize()
	m.offset = math.Max(0, m.offset)

	r, err := m.index.VisibleRange(container, m.offset, m.opts.overscan)
	if err == nil {
		if limit := math.Max(0, m.index.TotalSize()-container); m.offset > limit {
			m.offset = limit
			r, err = m.index.VisibleRange(container, m.offset, m.opts.overscan)
		}
	}
	if err != nil {
		m.err = err
		m.logger.Error().Err(err).Float64("offset", m.offset).Msg("computing visible range")
		return
	}
	m.err = nil

	if r != m.visible {
		m.visible = r
		if m.opts.onItemsRendered != nil && !r.IsEmpty() {
			m.opts.onItemsRendered(r.Start, r.Stop)
		}
	}
}

func (m *Model[T]) applyPending() {
	if m.pendingIndex < 0 || m.containerSize() <= 0 {
		return
	}
	index, align := m.pendingIndex, m.pendingAlign
	m.pendingIndex, m.pendingAlign = -1, ""
	m.scrollToIndex(index, align, scrollRequested)
}

// scrollTo moves the viewport. Free scrolls schedule a snap when snapping is enabled.
func (m *Model[T]) scrollTo(offset float64, reason scrollReason) tea.Cmd {
	if math.IsNaN(offset) {
		return nil
	}
	before := m.offset
	m.offset = offset
	m.refresh()

	if reason == scrollRequested || m.offset == before {
		return nil
	}
	if m.opts.onScroll != nil {
		m.opts.onScroll(m.offset)
	}
	if reason != scrollFree || !m.opts.snap {
		return nil
	}
	return m.scheduleSnap()
}

func (m *Model[T]) scrollToIndex(index int, align sizepos.Align, reason scrollReason) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	if index < 0 || index >= len(m.items) {
		index = 0
	}
	offset, err := m.index.OffsetForIndex(sizepos.OffsetRequest{
		Align:         align,
		ContainerSize: m.containerSize(),
		CurrentOffset: m.offset,
		TargetIndex:   index,
	})
	if err != nil {
		m.err = err
		m.logger.Error().Err(err).Int("index", index).Msg("computing offset for index")
		return nil
	}
	return m.scrollTo(offset, reason)
}

// Init returns no initial command.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard, mouse, resize and snap messages.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case snapMsg:
		m.handleSnap(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	container := m.containerSize()

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.selectAndFollow(m.selected-1, sizepos.AlignAuto)
	case key.Matches(msg, m.keys.Down):
		return m.selectAndFollow(m.selected+1, sizepos.AlignAuto)
	case key.Matches(msg, m.keys.Home):
		return m.selectAndFollow(0, sizepos.AlignStart)
	case key.Matches(msg, m.keys.End):
		return m.selectAndFollow(len(m.items)-1, sizepos.AlignEnd)
	case key.Matches(msg, m.keys.PageUp):
		cmd := m.scrollTo(m.offset-container, scrollFree)
		m.selectNearest()
		return cmd
	case key.Matches(msg, m.keys.PageDown):
		cmd := m.scrollTo(m.offset+container, scrollFree)
		m.selectNearest()
		return cmd
	case key.Matches(msg, m.keys.ScrollUp):
		return m.scrollTo(m.offset-1, scrollFree)
	case key.Matches(msg, m.keys.ScrollDown):
		return m.scrollTo(m.offset+1, scrollFree)
	}
	return nil
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		return m.scrollTo(m.offset-wheelStep, scrollFree)
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		return m.scrollTo(m.offset+wheelStep, scrollFree)
	}
	return nil
}

func (m *Model[T]) selectAndFollow(index int, align sizepos.Align) tea.Cmd {
	index = max(0, min(index, len(m.items)-1))
	m.selected = index
	return m.scrollToIndex(index, align, scrollFollow)
}

// selectNearest selects the item at the leading edge of the viewport.
func (m *Model[T]) selectNearest() {
	if len(m.items) == 0 {
		return
	}
	index, err := m.index.FindNearestItem(m.offset)
	if err != nil {
		m.err = err
		return
	}
	m.selected = index
}

// SetSize sets the viewport size. A width change in vertical mode invalidates
// every measurement since items may wrap differently.
func (m *Model[T]) SetSize(width, height int) {
	if m.opts.direction == Vertical && width != m.width {
		m.index.ResetFrom(0)
	}
	m.width = width
	m.height = height
	m.syncIndex()
	m.applyPending()
	m.refresh()
}

// SetItems replaces the items and discards every measurement.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.syncIndex()
	m.index.ResetFrom(0)
	m.selected = max(0, min(m.selected, len(items)-1))
	m.refresh()
}

// SetItem replaces one item. Measurements from index onwards are discarded.
func (m *Model[T]) SetItem(index int, item T) {
	if index < 0 || index >= len(m.items) {
		return
	}
	m.items[index] = item
	m.RecomputeSizes(index)
}

// RecomputeSizes discards measurements from index onwards, for items whose
// rendered size changed outside the list.
func (m *Model[T]) RecomputeSizes(index int) {
	m.index.ResetFrom(index)
	m.refresh()
}

// ScrollToIndex scrolls the item into view using align. An empty align uses the
// configured alignment; an out-of-range index scrolls to the first item.
func (m *Model[T]) ScrollToIndex(index int, align sizepos.Align) {
	if m.containerSize() <= 0 {
		m.pendingIndex, m.pendingAlign = index, align
		return
	}
	m.scrollToIndex(index, align, scrollRequested)
}

// SetScrollOffset scrolls to offset without firing callbacks.
func (m *Model[T]) SetScrollOffset(offset float64) {
	m.scrollTo(offset, scrollRequested)
}

// SetSelected selects the item at index and scrolls it into view.
func (m *Model[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		return
	}
	m.selected = max(0, min(index, len(m.items)-1))
	m.ScrollToIndex(m.selected, sizepos.AlignAuto)
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int { return m.selected }

// SelectedItem returns the selected item, or false when the list is empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	var zero T
	if m.selected < 0 || m.selected >= len(m.items) {
		return zero, false
	}
	return m.items[m.selected], true
}

// ScrollOffset returns the current scroll offset in cells.
func (m *Model[T]) ScrollOffset() float64 { return m.offset }

// VisibleRange returns the rendered range, overscan included.
func (m *Model[T]) VisibleRange() sizepos.Range { return m.visible }

// TotalSize returns the estimated extent of the whole list.
func (m *Model[T]) TotalSize() float64 { return m.index.TotalSize() }

// LastMeasuredIndex returns the highest measured item index.
func (m *Model[T]) LastMeasuredIndex() int { return m.index.LastMeasuredIndex() }

// ItemCount returns the number of items.
func (m *Model[T]) ItemCount() int { return len(m.items) }

// Err returns the last index error, if any.
func (m *Model[T]) Err() error { return m.err }

// Width returns the viewport width.
func (m *Model[T]) Width() int { return m.width }

// Height returns the viewport height.
func (m *Model[T]) Height() int { return m.height }

// KeyMap returns the active keybindings.
func (m *Model[T]) KeyMap() KeyMap { return m.keys }

package listview

import (
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/vlist/internal/sizepos"
)

//nolint:gochecknoglobals // Model identity counter, shared by every list.
var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// snapMsg fires once scrolling has paused. Only the latest snap of the list
// that scheduled it is applied.
type snapMsg struct {
	id  int
	seq int
}

func (m *Model[T]) scheduleSnap() tea.Cmd {
	m.snapSeq++
	msg := snapMsg{id: m.id, seq: m.snapSeq}
	return tea.Tick(m.opts.snapDelay, func(time.Time) tea.Msg {
		return msg
	})
}

func (m *Model[T]) handleSnap(msg snapMsg) {
	if msg.id != m.id || msg.seq != m.snapSeq || len(m.items) == 0 {
		return
	}

	index, err := m.alignedIndex()
	if err != nil {
		m.err = err
		m.logger.Error().Err(err).Float64("offset", m.offset).Msg("snapping to item")
		return
	}

	m.scrollToIndex(index, m.opts.align, scrollRequested)
	m.logger.Debug().Int("index", index).Float64("offset", m.offset).Msg("snapped to item")
	if m.opts.onAlign != nil {
		m.opts.onAlign(index)
	}
}

// alignedIndex returns the item nearest to the alignment point of the viewport.
func (m *Model[T]) alignedIndex() (int, error) {
	offset := m.offset
	container := m.containerSize()

	switch m.opts.align {
	case sizepos.AlignEnd:
		offset += container - m.opts.estimatedItemSize
	case sizepos.AlignCenter:
		offset += math.Round(container / 2)
	}

	return m.index.FindNearestItem(offset)
}

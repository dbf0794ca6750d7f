package listview

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// View renders the items in the visible range clipped to the viewport.
func (m *Model[T]) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.err != nil {
		return ansi.Truncate("error: "+m.err.Error(), m.width, "…")
	}
	if m.visible.IsEmpty() {
		return strings.Repeat("\n", m.height-1)
	}
	if m.opts.direction == Horizontal {
		return m.viewHorizontal()
	}
	return m.viewVertical()
}

// viewVertical stacks item lines at their measured rows.
func (m *Model[T]) viewVertical() string {
	rows := make([]string, m.height)

	for i := m.visible.Start; i <= m.visible.Stop; i++ {
		sp, err := m.index.SizeAndPositionForIndex(i)
		if err != nil {
			break
		}
		top := int(math.Floor(sp.Offset - m.offset))
		if top >= m.height {
			break
		}

		content := m.render(m.items[i], i, i == m.selected, m.width)
		for j, line := range strings.Split(content, "\n") {
			y := top + j
			if y < 0 {
				continue
			}
			if y >= m.height || j >= int(sp.Size) {
				break
			}
			rows[y] = ansi.Truncate(line, m.width, "")
		}
	}

	return strings.Join(rows, "\n")
}

// viewHorizontal places items side by side as columns, cutting the ones that
// straddle the viewport edges.
func (m *Model[T]) viewHorizontal() string {
	rows := make([]strings.Builder, m.height)
	cursor := make([]int, m.height)

	for i := m.visible.Start; i <= m.visible.Stop; i++ {
		sp, err := m.index.SizeAndPositionForIndex(i)
		if err != nil {
			break
		}
		left := int(math.Floor(sp.Offset - m.offset))
		size := int(sp.Size)
		from := max(0, -left)
		to := min(size, m.width-left)
		if to <= from {
			continue
		}

		lines := strings.Split(m.render(m.items[i], i, i == m.selected, 0), "\n")
		for y := 0; y < m.height; y++ {
			var line string
			if y < len(lines) {
				line = lines[y]
			}
			if pad := size - ansi.StringWidth(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}
			if gap := left + from - cursor[y]; gap > 0 {
				rows[y].WriteString(strings.Repeat(" ", gap))
			}
			rows[y].WriteString(ansi.Cut(line, from, to))
			cursor[y] = left + to
		}
	}

	out := make([]string, m.height)
	for y := range rows {
		out[y] = rows[y].String()
	}
	return strings.Join(out, "\n")
}

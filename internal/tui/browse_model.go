package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vlist/internal/logging"
	"github.com/rshade/vlist/internal/sizepos"
	listview "github.com/rshade/vlist/internal/tui/list"
)

// BrowseConfig configures the interactive browser.
type BrowseConfig struct {
	Title             string
	Horizontal        bool
	Wrap              bool
	Overscan          int
	Align             sizepos.Align
	EstimatedItemSize float64
	Snap              bool
	SnapDelay         time.Duration

	// ScrollToIndex is brought into view on start. -1 means none.
	ScrollToIndex int
}

type browseKeyMap struct {
	list listview.KeyMap
	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

func newBrowseKeyMap(list listview.KeyMap) browseKeyMap {
	return browseKeyMap{
		list: list,
		Copy: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy item")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return append(k.list.ShortHelp(), k.Copy, k.Help, k.Quit)
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return append(k.list.FullHelp(), []key.Binding{k.Copy, k.Help, k.Quit})
}

// BrowseModel is the Bubble Tea model behind `vlist browse`: a virtualized
// list with a title, a status line and a help footer.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowseModel struct {
	ctx    context.Context
	cfg    BrowseConfig
	list   *listview.Model[string]
	keys   browseKeyMap
	help   help.Model
	logger zerolog.Logger

	width, height int

	copyFn  func(string) error
	notice  string
	printer *message.Printer
}

// NewBrowseModel creates a browser over items.
func NewBrowseModel(ctx context.Context, items []string, cfg BrowseConfig) (BrowseModel, error) {
	logger := logging.FromContext(ctx).With().Ctx(ctx).Str("component", "browse").Logger()

	opts := []listview.Option{
		listview.WithOverscan(cfg.Overscan),
		listview.WithAlign(cfg.Align),
		listview.WithLogger(logger),
		listview.WithOnItemsRendered(func(start, stop int) {
			logger.Trace().Int("start", start).Int("stop", stop).Msg("items rendered")
		}),
		listview.WithOnAlign(func(index int) {
			logger.Debug().Int("index", index).Msg("snapped")
		}),
	}
	if cfg.EstimatedItemSize > 0 {
		opts = append(opts, listview.WithEstimatedItemSize(cfg.EstimatedItemSize))
	}
	if cfg.Horizontal {
		opts = append(opts, listview.WithDirection(listview.Horizontal))
	}
	if cfg.Snap {
		opts = append(opts, listview.WithSnap(cfg.SnapDelay))
	}
	if cfg.ScrollToIndex >= 0 {
		opts = append(opts, listview.WithScrollToIndex(cfg.ScrollToIndex))
	}

	list, err := listview.New(items, browseRenderer(cfg), opts...)
	if err != nil {
		return BrowseModel{}, fmt.Errorf("creating list: %w", err)
	}

	m := BrowseModel{
		ctx:     ctx,
		cfg:     cfg,
		list:    list,
		keys:    newBrowseKeyMap(list.KeyMap()),
		help:    help.New(),
		logger:  logger,
		copyFn:  clipboard.WriteAll,
		printer: message.NewPrinter(language.English),
	}
	m.resize(defaultWidth, defaultHeight)
	return m, nil
}

// browseRenderer styles items. Selection only changes colors, so selected and
// unselected items measure the same.
func browseRenderer(cfg BrowseConfig) listview.RenderFunc[string] {
	return func(item string, _ int, selected bool, width int) string {
		style := ItemStyle
		if selected {
			style = SelectedItemStyle
		}
		if cfg.Horizontal {
			return style.PaddingRight(1).Render(item)
		}
		if cfg.Wrap && width > 0 {
			style = style.Width(width)
		}
		return style.Render(item)
	}
}

// Init initializes the model (Bubble Tea interface).
func (m BrowseModel) Init() tea.Cmd {
	return m.list.Init()
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize(m.width, m.height)
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			m.copySelected()
			return m, nil
		}
		m.notice = ""
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *BrowseModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.list.SetSize(width, m.listHeight())
}

// listHeight is what remains after the title, status line and help footer.
func (m *BrowseModel) listHeight() int {
	chrome := 2 + lipgloss.Height(m.help.View(m.keys))
	return max(0, m.height-chrome)
}

func (m *BrowseModel) copySelected() {
	item, ok := m.list.SelectedItem()
	if !ok {
		return
	}
	if err := m.copyFn(item); err != nil {
		m.logger.Warn().Err(err).Msg("clipboard unavailable")
		m.notice = ErrorStyle.Render("copy failed: " + err.Error())
		return
	}
	m.notice = NoticeStyle.Render(m.printer.Sprintf("copied item %d", m.list.Selected()+1))
}

// View renders the browser (Bubble Tea interface).
func (m BrowseModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.list.View(),
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m BrowseModel) renderTitle() string {
	title := m.cfg.Title
	if title == "" {
		title = "vlist"
	}
	count := m.printer.Sprintf("  %d items", m.list.ItemCount())
	return HeaderStyle.Render(title) + SubtleStyle.Render(count)
}

func (m BrowseModel) renderStatus() string {
	if err := m.list.Err(); err != nil {
		return ErrorStyle.Render("error: " + err.Error())
	}
	if m.list.ItemCount() == 0 {
		return SubtleStyle.Render("no items")
	}

	r := m.list.VisibleRange()
	status := LabelStyle.Render(m.printer.Sprintf("item %d/%d", m.list.Selected()+1, m.list.ItemCount())) +
		SubtleStyle.Render(m.printer.Sprintf("  offset %.0f/%.0f  rendering %d-%d  measured %d",
			m.list.ScrollOffset(), m.list.TotalSize(), r.Start, r.Stop, m.list.LastMeasuredIndex()+1))
	if m.notice != "" {
		status += "  " + m.notice
	}
	return status
}

// Selected returns the selected item index.
func (m BrowseModel) Selected() int {
	return m.list.Selected()
}

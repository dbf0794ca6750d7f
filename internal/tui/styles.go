package tui

import "github.com/charmbracelet/lipgloss"

// Default terminal size used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Color palette.
//
//nolint:gochecknoglobals // Shared style palette.
var (
	ColorHeader    = lipgloss.AdaptiveColor{Light: "#1E3A8A", Dark: "#93C5FD"}
	ColorLabel     = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	ColorValue     = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorSelected  = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorOK        = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
)

// Reusable styles. None of them add padding or borders, so an item renders to
// the same size whether or not it is selected.
//
//nolint:gochecknoglobals // Shared style palette.
var (
	HeaderStyle       = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle        = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle        = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle        = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	NoticeStyle       = lipgloss.NewStyle().Foreground(ColorOK)
	ItemStyle         = lipgloss.NewStyle().Foreground(ColorValue)
	SelectedItemStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Background(ColorSelected).Bold(true)
)

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/tui"
)

// generatedDetailLines caps the extra lines of a generated item.
const generatedDetailLines = 4

var errNeedsTerminal = errors.New("browse needs an interactive terminal; use `vlist layout` for piped output")

type browseParams struct {
	paragraphs bool
	generate   int
	horizontal bool
	align      string
	overscan   int
	snap       bool
	snapDelay  time.Duration
	wrap       bool
	scrollTo   int
	title      string
}

// NewBrowseCmd creates the browse command, the interactive list viewer.
func NewBrowseCmd() *cobra.Command {
	params := browseParams{scrollTo: -1}

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse items in an interactive virtualized list",
		Long: `Opens a full-screen list over the lines (or paragraphs) of a file or of standard
input. Items are measured only as they scroll into view, so files with millions
of lines open instantly.

Keys: ↑/↓ or j/k select, pgup/pgdn page, g/G first/last, ctrl+y/ctrl+e scroll one
line, y copies the selected item, ? toggles help, q quits. The mouse wheel scrolls.`,
		Example: `  # One item per line
  vlist browse server.log

  # Paragraphs from a pipe, snapping to the nearest item after scrolling
  git log | vlist browse --paragraphs --snap

  # A million generated items of varying height, starting at item 500000
  vlist browse --generate 1000000 --scroll-to 500000 --align center`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, params, args)
		},
	}

	cmd.Flags().BoolVar(&params.paragraphs, "paragraphs", false, "split items on blank lines instead of newlines")
	cmd.Flags().IntVar(&params.generate, "generate", 0, "browse N generated items instead of a file")
	cmd.Flags().BoolVar(&params.horizontal, "horizontal", false, "lay items out left to right")
	cmd.Flags().StringVar(&params.align, "align", "", "scroll alignment: start, center, end or auto")
	cmd.Flags().IntVar(&params.overscan, "overscan", 0, "extra items rendered outside the viewport")
	cmd.Flags().BoolVar(&params.snap, "snap", false, "snap to the nearest item when scrolling stops")
	cmd.Flags().DurationVar(&params.snapDelay, "snap-delay", config.DefaultSnapDelay, "pause before snapping")
	cmd.Flags().BoolVar(&params.wrap, "wrap", true, "wrap long items to the terminal width")
	cmd.Flags().IntVar(&params.scrollTo, "scroll-to", -1, "item to bring into view on start")
	cmd.Flags().StringVar(&params.title, "title", "", "title shown above the list")

	return cmd
}

// browseConfig merges the list config with the flags the user set.
func browseConfig(cmd *cobra.Command, params browseParams, list config.ListConfig) (tui.BrowseConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("align") {
		list.Align = params.align
	}
	if flags.Changed("overscan") {
		list.Overscan = params.overscan
	}
	if flags.Changed("snap") {
		list.Snap = params.snap
	}
	if flags.Changed("snap-delay") {
		list.SnapDelay = params.snapDelay
	}
	if flags.Changed("wrap") {
		list.Wrap = params.wrap
	}
	if flags.Changed("horizontal") {
		list.Direction = config.DirectionVertical
		if params.horizontal {
			list.Direction = config.DirectionHorizontal
		}
	}
	if err := list.Validate(); err != nil {
		return tui.BrowseConfig{}, err
	}

	return tui.BrowseConfig{
		Title:             params.title,
		Horizontal:        list.Horizontal(),
		Wrap:              list.Wrap,
		Overscan:          list.Overscan,
		Align:             list.AlignValue(),
		EstimatedItemSize: list.EstimatedItemSize,
		Snap:              list.Snap,
		SnapDelay:         list.SnapDelay,
		ScrollToIndex:     params.scrollTo,
	}, nil
}

func runBrowse(cmd *cobra.Command, params browseParams, args []string) error {
	ctx := cmd.Context()

	browseCfg, err := browseConfig(cmd, params, config.FromContext(ctx).List)
	if err != nil {
		return err
	}

	items, source, err := browseItems(cmd, params, args)
	if err != nil {
		return err
	}
	if browseCfg.Title == "" {
		browseCfg.Title = source
	}

	if !isTerminal(os.Stdout) {
		return errNeedsTerminal
	}

	model, err := tui.NewBrowseModel(ctx, items, browseCfg)
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if !isTerminal(os.Stdin) {
		opts = append(opts, tea.WithInputTTY())
	}

	logger.Info().Ctx(ctx).Int("items", len(items)).Str("source", source).Msg("starting browser")
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

// browseItems loads the items and names their source.
func browseItems(cmd *cobra.Command, params browseParams, args []string) ([]string, string, error) {
	if params.generate > 0 {
		if len(args) > 0 {
			return nil, "", errors.New("--generate cannot be combined with a file argument")
		}
		return generateItems(params.generate), fmt.Sprintf("%d generated items", params.generate), nil
	}

	path := stdinPath
	if len(args) == 1 {
		path = args[0]
	} else if isTerminal(os.Stdin) {
		return nil, "", errors.New("nothing to browse: pass a file, pipe input or use --generate")
	}

	items, err := readItems(cmd.InOrStdin(), path, params.paragraphs)
	if err != nil {
		return nil, "", err
	}
	source := "stdin"
	if path != stdinPath {
		source = filepath.Base(path)
	}
	return items, source, nil
}

// generateItems builds n items of one to five lines.
func generateItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "Item %d", i)
		for line := 0; line < i%(generatedDetailLines+1); line++ {
			fmt.Fprintf(&b, "\n  detail %d of item %d", line+1, i)
		}
		items[i] = b.String()
	}
	return items
}

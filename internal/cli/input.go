package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/logging"
	"github.com/rshade/vlist/internal/sizepos"
)

// stdinPath reads input from standard input.
const stdinPath = "-"

var (
	errNoSizes       = errors.New("one of --sizes, --sizes-file or --count is required")
	errTooManySizes  = errors.New("--sizes, --sizes-file and --count are mutually exclusive")
	errInvalidSizeLn = errors.New("invalid size")
)

// indexFlags describes the list an index command measures.
type indexFlags struct {
	sizes         []float64
	sizesFile     string
	count         int
	size          float64
	estimatedSize float64
	align         string

	// lookups counts size getter calls made by the index.
	lookups int
}

func (f *indexFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&f.sizes, "sizes", nil, "comma-separated item sizes, e.g. 10,20,30")
	cmd.Flags().StringVar(&f.sizesFile, "sizes-file", "",
		"file of item sizes: one per line, or a JSON/YAML array ('-' for stdin)")
	cmd.Flags().IntVar(&f.count, "count", 0, "number of items of --size each")
	cmd.Flags().Float64Var(&f.size, "size", 1, "item size used with --count")
	cmd.Flags().Float64Var(&f.estimatedSize, "estimated-size", 0,
		"size assumed for unmeasured items (0 = list.estimated_item_size from config)")
	cmd.Flags().StringVar(&f.align, "align", "", "alignment: start, center, end or auto (default from config)")
}

// source resolves the item count and size getter from the flags.
func (f *indexFlags) source(cmd *cobra.Command) (int, sizepos.SizeGetter, error) {
	set := 0
	for _, name := range []string{"sizes", "sizes-file", "count"} {
		if cmd.Flags().Changed(name) {
			set++
		}
	}
	switch {
	case set == 0:
		return 0, nil, errNoSizes
	case set > 1:
		return 0, nil, errTooManySizes
	}

	switch {
	case cmd.Flags().Changed("sizes"):
		return len(f.sizes), sizepos.Sizes(f.sizes), nil
	case cmd.Flags().Changed("count"):
		if f.count < 0 {
			return 0, nil, fmt.Errorf("--count must be >= 0, got %d", f.count)
		}
		return f.count, sizepos.Fixed(f.size), nil
	}

	sizes, err := loadSizes(cmd.InOrStdin(), f.sizesFile)
	if err != nil {
		return 0, nil, err
	}
	return len(sizes), sizepos.Sizes(sizes), nil
}

// newIndex builds an index from the flags, falling back to the config for the
// estimated size and alignment.
func (f *indexFlags) newIndex(cmd *cobra.Command, containerSize float64) (*sizepos.Manager, error) {
	return f.newIndexAligned(cmd, containerSize, f.align)
}

// newIndexAligned is newIndex with an explicit index alignment. An empty
// alignName uses list.align from the config.
func (f *indexFlags) newIndexAligned(cmd *cobra.Command, containerSize float64, alignName string) (*sizepos.Manager, error) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	estimated := f.estimatedSize
	if estimated == 0 {
		estimated = cfg.List.EstimatedItemSize
	}
	if alignName == "" {
		alignName = cfg.List.Align
	}
	align, err := sizepos.ParseAlign(alignName)
	if err != nil {
		return nil, err
	}

	count, getter, err := f.source(cmd)
	if err != nil {
		return nil, err
	}
	f.lookups = 0
	counted := func(i int) float64 {
		f.lookups++
		return getter(i)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Int("item_count", count).
		Float64("estimated_size", estimated).
		Float64("container_size", containerSize).
		Str("align", string(align)).
		Msg("building index")

	return sizepos.New(sizepos.Config{
		ItemCount:         count,
		ItemSizeGetter:    counted,
		EstimatedItemSize: estimated,
		ContainerSize:     containerSize,
		Align:             align,
	}, sizepos.WithLogger(*logging.FromContext(ctx)))
}

// loadSizes reads sizes from path, or from stdin when path is "-".
func loadSizes(stdin io.Reader, path string) ([]float64, error) {
	if path == stdinPath {
		return parseSizeLines(stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sizes: %w", err)
	}

	var sizes []float64
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &sizes); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sizes); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return parseSizeLines(strings.NewReader(string(data)))
	}
	return sizes, nil
}

// parseSizeLines reads one size per line. Blank lines and lines starting with
// '#' are skipped.
func parseSizeLines(r io.Reader) ([]float64, error) {
	var sizes []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w on line %d: %q", errInvalidSizeLn, line, text)
		}
		sizes = append(sizes, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sizes: %w", err)
	}
	return sizes, nil
}

// readItems reads browse items from path ("-" for stdin). Items are lines, or
// blank-line separated paragraphs when paragraphs is set.
func readItems(stdin io.Reader, path string, paragraphs bool) ([]string, error) {
	var r io.Reader = stdin
	if path != stdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var (
		items   []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			items = append(items, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !paragraphs {
			items = append(items, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	flush()
	return items, nil
}

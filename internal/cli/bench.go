package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/sizepos"
)

// Bench defaults.
const (
	defaultBenchCount     = 1_000_000
	defaultBenchContainer = 50
	defaultBenchSteps     = 1000
	defaultBenchMaxSize   = 5
	// sizeHashMultiplier spreads indices across the size range (Knuth's multiplicative hash).
	sizeHashMultiplier = 2654435761
)

// BenchWorker is one worker's result.
type BenchWorker struct {
	Worker   int           `json:"worker"    yaml:"worker"`
	Steps    int           `json:"steps"     yaml:"steps"`
	Measured int           `json:"measured"  yaml:"measured"`
	Elapsed  time.Duration `json:"elapsed"   yaml:"elapsed"`
	PerStep  time.Duration `json:"per_step"  yaml:"per_step"`
	LastStop int           `json:"last_stop" yaml:"last_stop"`
}

// BenchResult is the output of `vlist bench`.
type BenchResult struct {
	Count     int           `json:"count"     yaml:"count"`
	Container float64       `json:"container" yaml:"container"`
	Overscan  int           `json:"overscan"  yaml:"overscan"`
	Workers   []BenchWorker `json:"workers"   yaml:"workers"`
	Elapsed   time.Duration `json:"elapsed"   yaml:"elapsed"`
}

type benchParams struct {
	count     int
	minSize   int
	maxSize   int
	container float64
	steps     int
	workers   int
	overscan  int
	output    string
}

// NewBenchCmd creates the bench command, which scrolls synthetic lists through
// the index in parallel and reports timings.
func NewBenchCmd() *cobra.Command {
	params := benchParams{
		count:     defaultBenchCount,
		minSize:   1,
		maxSize:   defaultBenchMaxSize,
		container: defaultBenchContainer,
		steps:     defaultBenchSteps,
		workers:   runtime.GOMAXPROCS(0),
		overscan:  -1,
	}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark scroll sweeps over a synthetic list",
		Long: `Each worker builds its own index over --count items of pseudo-random size and
sweeps the viewport from top to bottom in --steps jumps, computing the visible
range at every stop. Workers start at different phases so they exercise both
exponential search past the high-water mark and binary search behind it.`,
		Example: `  vlist bench --count 5000000 --workers 4 --steps 2000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.count, "count", params.count, "number of items")
	cmd.Flags().IntVar(&params.minSize, "min-size", params.minSize, "smallest item size")
	cmd.Flags().IntVar(&params.maxSize, "max-size", params.maxSize, "largest item size")
	cmd.Flags().Float64Var(&params.container, "container", params.container, "viewport size")
	cmd.Flags().IntVar(&params.steps, "steps", params.steps, "viewport positions per sweep")
	cmd.Flags().IntVar(&params.workers, "workers", params.workers, "parallel workers")
	cmd.Flags().IntVar(&params.overscan, "overscan", params.overscan, "overscan (-1 = list.overscan from config)")
	cmd.Flags().StringVar(&params.output, "output", outputTable, "Output format: table, json, ndjson or yaml")

	return cmd
}

func (p benchParams) validate() error {
	switch {
	case p.count <= 0:
		return errors.New("--count must be > 0")
	case p.minSize < 0 || p.maxSize < p.minSize:
		return fmt.Errorf("need 0 <= --min-size <= --max-size, got %d and %d", p.minSize, p.maxSize)
	case p.maxSize == 0:
		return errors.New("--max-size must be > 0")
	case p.steps <= 0:
		return errors.New("--steps must be > 0")
	case p.workers <= 0:
		return errors.New("--workers must be > 0")
	case p.container <= 0:
		return errors.New("--container must be > 0")
	}
	return nil
}

// sizeOf is a deterministic pseudo-random size in [minSize, maxSize].
func (p benchParams) sizeOf(index int) float64 {
	span := uint64(p.maxSize - p.minSize + 1)
	return float64(p.minSize) + float64((uint64(index)*sizeHashMultiplier)%span)
}

func runBench(cmd *cobra.Command, params benchParams) error {
	if err := validateOutput(params.output); err != nil {
		return err
	}
	if params.overscan < 0 {
		params.overscan = config.FromContext(cmd.Context()).List.Overscan
	}
	if err := params.validate(); err != nil {
		return err
	}

	started := time.Now()
	workers := make([]BenchWorker, params.workers)

	g, ctx := errgroup.WithContext(cmd.Context())
	for w := 0; w < params.workers; w++ {
		w := w
		g.Go(func() error {
			result, err := sweep(ctx, params, w)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			workers[w] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	result := BenchResult{
		Count:     params.count,
		Container: params.container,
		Overscan:  params.overscan,
		Workers:   workers,
		Elapsed:   time.Since(started),
	}
	return render(cmd.OutOrStdout(), params.output, result, func(tw *tabwriter.Writer) error {
		return renderBenchTable(tw, result)
	})
}

// sweep scrolls one index through the list. Worker w starts its sweep at
// phase w/workers of the list and wraps around.
func sweep(ctx context.Context, params benchParams, w int) (BenchWorker, error) {
	index, err := sizepos.New(sizepos.Config{
		ItemCount:         params.count,
		ItemSizeGetter:    params.sizeOf,
		EstimatedItemSize: float64(params.minSize+params.maxSize) / 2,
		ContainerSize:     params.container,
	})
	if err != nil {
		return BenchWorker{}, err
	}

	result := BenchWorker{Worker: w, Steps: params.steps}
	started := time.Now()
	for step := 0; step < params.steps; step++ {
		if err := ctx.Err(); err != nil {
			return BenchWorker{}, err
		}
		phase := float64((step+params.steps*w/params.workers)%params.steps) / float64(params.steps)
		offset := phase * index.TotalSize()

		r, err := index.VisibleRange(params.container, offset, params.overscan)
		if err != nil {
			return BenchWorker{}, err
		}
		result.LastStop = r.Stop
	}
	result.Elapsed = time.Since(started)
	result.PerStep = result.Elapsed / time.Duration(params.steps)
	result.Measured = index.LastMeasuredIndex() + 1

	logger.Debug().Ctx(ctx).Int("worker", w).Dur("elapsed", result.Elapsed).Int("measured", result.Measured).
		Msg("sweep finished")
	return result, nil
}

func renderBenchTable(tw *tabwriter.Writer, result BenchResult) error {
	p := message.NewPrinter(language.English)

	p.Fprintf(tw, "Items:\t%d\n", result.Count)
	p.Fprintf(tw, "Viewport:\t%d cells, overscan %d\n", int(result.Container), result.Overscan)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "WORKER\tSTEPS\tMEASURED\tELAPSED\tPER STEP")
	for _, w := range result.Workers {
		p.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", w.Worker, w.Steps, w.Measured, w.Elapsed.Round(time.Microsecond), w.PerStep)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total:\t%s\n", result.Elapsed.Round(time.Microsecond))
	return nil
}

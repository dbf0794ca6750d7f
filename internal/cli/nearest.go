package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NearestResult maps one offset to the item covering it.
type NearestResult struct {
	Offset float64 `json:"offset" yaml:"offset"`
	Index  int     `json:"index"  yaml:"index"`
}

type nearestParams struct {
	index   indexFlags
	offsets []float64
	output  string
}

// NewNearestCmd creates the nearest command, which resolves offsets to items.
func NewNearestCmd() *cobra.Command {
	var params nearestParams

	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Find the item at each scroll offset",
		Long: `Finds the item covering each offset, or the nearest item before it.
Offsets below zero resolve to the first item and offsets past the end to the last.`,
		Example: `  vlist nearest --sizes 10,20,30,15,25 --at 0,35,60,1000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNearest(cmd, params)
		},
	}

	params.index.addFlags(cmd)
	cmd.Flags().Float64SliceVar(&params.offsets, "at", nil, "comma-separated offsets to resolve")
	cmd.Flags().StringVar(&params.output, "output", outputTable, "Output format: table, json, ndjson or yaml")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func runNearest(cmd *cobra.Command, params nearestParams) error {
	if err := validateOutput(params.output); err != nil {
		return err
	}
	if len(params.offsets) == 0 {
		return errors.New("--at needs at least one offset")
	}

	index, err := params.index.newIndex(cmd, 0)
	if err != nil {
		return err
	}

	results := make([]NearestResult, 0, len(params.offsets))
	for _, offset := range params.offsets {
		found, err := index.FindNearestItem(offset)
		if err != nil {
			return fmt.Errorf("offset %s: %w", formatFloat(offset), err)
		}
		results = append(results, NearestResult{Offset: offset, Index: found})
	}

	return render(cmd.OutOrStdout(), params.output, results, func(tw *tabwriter.Writer) error {
		fmt.Fprintln(tw, "OFFSET\tINDEX")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%d\n", formatFloat(r.Offset), r.Index)
		}
		return nil
	})
}

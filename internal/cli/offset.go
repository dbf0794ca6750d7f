package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/sizepos"
)

// OffsetResult is the output of `vlist offset`.
type OffsetResult struct {
	Index     int                     `json:"index"      yaml:"index"`
	Align     string                  `json:"align"      yaml:"align"`
	Offset    float64                 `json:"offset"     yaml:"offset"`
	Item      sizepos.SizeAndPosition `json:"item"       yaml:"item"`
	TotalSize float64                 `json:"total_size" yaml:"total_size"`
}

type offsetParams struct {
	index     indexFlags
	container float64
	current   float64
	target    int
	output    string
}

// NewOffsetCmd creates the offset command, which computes the scroll offset
// that brings an item into view.
func NewOffsetCmd() *cobra.Command {
	var params offsetParams

	cmd := &cobra.Command{
		Use:   "offset",
		Short: "Compute the scroll offset that brings an item into view",
		Long: `Computes the scroll offset that shows --index under the requested alignment,
clamped to [0, total-container].

  start   item at the leading edge
  end     item at the trailing edge
  center  item centered
  auto    the smallest move from --current that shows the whole item`,
		Example: `  # End-align item 3 in a 50-cell viewport
  vlist offset --sizes 10,20,30,15,25 --container 50 --index 3 --align end

  # Scroll just enough from offset 0 to show item 3
  vlist offset --sizes 10,20,30,15,25 --container 50 --index 3 --align auto --current 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOffset(cmd, params)
		},
	}

	params.index.addFlags(cmd)
	cmd.Flags().Float64Var(&params.container, "container", 0, "viewport size along the scroll axis")
	cmd.Flags().Float64Var(&params.current, "current", 0, "current scroll offset, used by auto alignment")
	cmd.Flags().IntVar(&params.target, "index", 0, "target item index")
	cmd.Flags().StringVar(&params.output, "output", outputTable, "Output format: table, json, ndjson or yaml")
	_ = cmd.MarkFlagRequired("container")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func runOffset(cmd *cobra.Command, params offsetParams) error {
	if err := validateOutput(params.output); err != nil {
		return err
	}

	// --align picks where the item lands; the index itself keeps the
	// configured layout alignment.
	var align sizepos.Align
	if params.index.align != "" {
		parsed, err := sizepos.ParseAlign(params.index.align)
		if err != nil {
			return err
		}
		align = parsed
	}

	index, err := params.index.newIndexAligned(cmd, params.container, "")
	if err != nil {
		return err
	}
	if align == "" {
		align = index.Config().Align
	}

	offset, err := index.OffsetForIndex(sizepos.OffsetRequest{
		Align:         align,
		ContainerSize: params.container,
		CurrentOffset: params.current,
		TargetIndex:   params.target,
	})
	if err != nil {
		return err
	}

	result := OffsetResult{
		Index:     params.target,
		Align:     align.String(),
		Offset:    offset,
		TotalSize: index.TotalSize(),
	}
	if params.container > 0 {
		// Already measured by OffsetForIndex.
		result.Item, _ = index.SizeAndPositionForIndex(params.target)
	}

	return render(cmd.OutOrStdout(), params.output, result, func(tw *tabwriter.Writer) error {
		fmt.Fprintf(tw, "Offset:\t%s\n", formatFloat(result.Offset))
		fmt.Fprintf(tw, "Item:\t%d (offset %s, size %s)\n",
			result.Index, formatFloat(result.Item.Offset), formatFloat(result.Item.Size))
		fmt.Fprintf(tw, "Align:\t%s\n", result.Align)
		fmt.Fprintf(tw, "Total size:\t%s\n", formatFloat(result.TotalSize))
		return nil
	})
}

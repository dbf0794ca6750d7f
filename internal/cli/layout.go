package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/cli/pagination"
)

// Placement is one measured item.
type Placement struct {
	Index  int     `json:"index"  yaml:"index"`
	Offset float64 `json:"offset" yaml:"offset"`
	Size   float64 `json:"size"   yaml:"size"`
	End    float64 `json:"end"    yaml:"end"`
}

// LayoutResult is the output of `vlist layout`.
type LayoutResult struct {
	Items      []Placement     `json:"items"      yaml:"items"`
	Pagination pagination.Meta `json:"pagination" yaml:"pagination"`
	TotalSize  float64         `json:"total_size" yaml:"total_size"`
}

// placementSorter sorts a printed page.
func placementSorter() *pagination.Sorter[Placement] {
	return pagination.NewSorter(map[string]pagination.CompareFunc[Placement]{
		"index":  pagination.By(func(p Placement) int { return p.Index }),
		"offset": pagination.By(func(p Placement) float64 { return p.Offset }),
		"size":   pagination.By(func(p Placement) float64 { return p.Size }),
	})
}

type layoutParams struct {
	index   indexFlags
	page    *pagination.Params
	filters []string
	output  string
}

// NewLayoutCmd creates the layout command, which prints item placements one
// page at a time.
func NewLayoutCmd() *cobra.Command {
	params := layoutParams{page: pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the offset and size of each item",
		Long: `Prints the placement of each item on the requested page. Items are measured in
order up to the end of the page; nothing after it is measured. --filter and
--sort apply to the printed page only.`,
		Example: `  # First 100 placements
  vlist layout --sizes-file sizes.txt

  # Third page of 20, largest items first
  vlist layout --sizes-file sizes.txt --page 3 --page-size 20 --sort size:desc

  # Tall items on the first page
  vlist layout --sizes-file sizes.txt --filter 'size>=10'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayout(cmd, params)
		},
	}

	params.index.addFlags(cmd)
	params.page.AddFlags(cmd)
	cmd.Flags().StringArrayVar(&params.filters, "filter", nil,
		"keep placements matching field<op>value (fields: index, offset, size, end); repeatable")
	cmd.Flags().StringVar(&params.output, "output", outputTable, "Output format: table, json, ndjson or yaml")

	return cmd
}

func runLayout(cmd *cobra.Command, params layoutParams) error {
	if err := validateOutput(params.output); err != nil {
		return err
	}
	if err := params.page.Validate(); err != nil {
		return err
	}
	sorter := placementSorter()
	if err := sorter.Validate(params.page.Sort); err != nil {
		return err
	}

	index, err := params.index.newIndex(cmd, 0)
	if err != nil {
		return err
	}

	start, end := params.page.Window(index.ItemCount())
	items := make([]Placement, 0, end-start)
	for i := start; i < end; i++ {
		sp, err := index.SizeAndPositionForIndex(i)
		if err != nil {
			return err
		}
		items = append(items, Placement{Index: i, Offset: sp.Offset, Size: sp.Size, End: sp.End()})
	}

	items, err = applyFilters(cmd.Context(), items, params.filters)
	if err != nil {
		return err
	}

	field, order, _ := pagination.ParseSort(params.page.Sort)
	items = sorter.Sort(items, field, order)

	result := LayoutResult{
		Items:      items,
		Pagination: pagination.NewMeta(*params.page, index.ItemCount()),
		TotalSize:  index.TotalSize(),
	}
	logger.Debug().Ctx(cmd.Context()).
		Int("start", start).Int("end", end).
		Int("last_measured_index", index.LastMeasuredIndex()).
		Msg("layout page measured")

	if params.output == outputNDJSON {
		return render(cmd.OutOrStdout(), params.output, result.Items, nil)
	}
	return render(cmd.OutOrStdout(), params.output, result, func(tw *tabwriter.Writer) error {
		return renderLayoutTable(tw, result)
	})
}

func renderLayoutTable(tw *tabwriter.Writer, result LayoutResult) error {
	if len(result.Items) == 0 {
		fmt.Fprintln(tw, "No items")
		return nil
	}

	fmt.Fprintln(tw, "INDEX\tOFFSET\tSIZE\tEND")
	for _, p := range result.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.Index, formatFloat(p.Offset), formatFloat(p.Size), formatFloat(p.End))
	}
	meta := result.Pagination
	fmt.Fprintf(tw, "\nPage %d of %d (%d items, total size %s)\n",
		meta.CurrentPage, meta.TotalPages, meta.TotalItems, formatFloat(result.TotalSize))
	return nil
}

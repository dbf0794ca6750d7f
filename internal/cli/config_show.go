package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the effective
// configuration after file and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  vlist config show
  VLIST_OVERSCAN=10 vlist config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == outputTable {
				output = outputYAML
			}
			if err := validateOutput(output); err != nil {
				return err
			}
			cfg := config.FromContext(cmd.Context())
			return render(cmd.OutOrStdout(), output, cfg, nil)
		},
	}

	cmd.Flags().StringVar(&output, "output", outputYAML, "Output format: yaml, json or ndjson")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax, schema version and field values.
Environment overrides are applied before validation.`,
		Example: `  vlist config validate
  vlist --config ./vlist.yaml config validate`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFlag, _ := cmd.Flags().GetString("config")
			path := config.ResolvePath(configFlag)
			if _, err := config.Load(path); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Printf("Configuration is valid: %s\n", path)
			return nil
		},
	}
}

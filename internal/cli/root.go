package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/logging"
)

// annotationSkipConfig marks commands that run with the default config when
// the config file is missing or broken.
const annotationSkipConfig = "vlist/skip-config"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the vlist CLI.
// It loads the config file, wires up logging and tracing, and registers the
// browse, index and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "vlist",
		Short:   "Virtualized list browser and layout index",
		Long:    "vlist: Browse huge lists of variable-size items and query a lazy size/position index",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $VLIST_CONFIG or ~/.vlist/config.yaml)")
	cmd.AddCommand(
		NewBrowseCmd(),
		NewRangeCmd(),
		NewOffsetCmd(),
		NewNearestCmd(),
		NewLayoutCmd(),
		NewBenchCmd(),
		newConfigCmd(),
	)

	return cmd
}

// loadConfig reads the config file. Commands annotated with
// annotationSkipConfig fall back to the defaults when it cannot be loaded.
func loadConfig(cmd *cobra.Command, flagValue string) (*config.Config, error) {
	path := config.ResolvePath(flagValue)
	cfg, err := config.Load(path)
	if err != nil {
		if cmd.Annotations[annotationSkipConfig] == "" {
			return nil, err
		}
		cfg = config.DefaultConfig()
	}
	cmd.SetContext(config.ContextWithConfig(cmd.Context(), cfg))
	return cfg, nil
}

const rootCmdExample = `  # Browse a log file, one item per line
  vlist browse /var/log/syslog

  # Browse paragraphs piped from another command
  git log | vlist browse --paragraphs

  # Which items are visible in a 50-cell viewport scrolled to 35?
  vlist range --sizes 10,20,30,15,25 --container 50 --offset 35

  # Where must the viewport scroll to end-align item 3?
  vlist offset --sizes 10,20,30,15,25 --container 50 --index 3 --align end

  # Print the placements of the second page of items
  vlist layout --sizes-file sizes.txt --page 2 --page-size 20

  # Initialize configuration
  vlist config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

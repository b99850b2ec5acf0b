package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/viant/protodef/logging"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

// newRootCmd assembles the command tree
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "protodef",
		Short: "Protocol definition maintenance",
		Long: `protodef merges vendor API descriptions (BGAPI XML, EZ-Serial JSON) into
hand-curated protocol definition documents without losing curated annotations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error), overrides config and PROTODEF_LOG_LEVEL")

	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newAnnotateCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newLogger builds the diagnostics logger on stderr, the --log-level flag wins over cfg
func newLogger(cmd *cobra.Command, cfg *logging.Config) (*log.Logger, error) {
	if cfg == nil {
		cfg = &logging.Config{}
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Level = level
	}
	return logging.New(cmd.ErrOrStderr(), cfg)
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

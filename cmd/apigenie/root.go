package apigenie

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagNoColor bool
	flagVerbose bool
	flagConfig  string
	flagNoCache bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the apigenie CLI.
var rootCmd = &cobra.Command{
	Use:           "apigenie",
	Short:         "Secret scanning and API metadata compliance for git hooks",
	Long:          "apigenie scans staged and outgoing changes for secrets and validates api.meta descriptors against the compliance rules, from pre-commit and pre-push hooks or directly.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

// Execute runs the apigenie CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "explicit config file path")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the clean-file scan cache")
}

// logger builds the CLI logger honoring --verbose.
func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: flagNoColor}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

package main

import (
	"fmt"

	"github.com/praetorian-inc/phonefind/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	quiet     bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "phonefind [path-to-file]",
	Short: "Find +3(000)-000-0000 phone numbers in text",
	Long: `phonefind prints every phone number written as +3(000)-000-0000 in a file
or in text typed at the console.

With a file argument the file is read (PDF, XLSX, DOCX, ZIP and 7z files have
their text extracted). Without one, or when the file does not exist, lines are
read from the console until an empty line or end of input.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setupLogging,
	RunE:              runFind,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")

	registerFindFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs the default slog logger on stderr.
func setupLogging(cmd *cobra.Command, args []string) error {
	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("unknown log format: %s", logFormat)
	}

	level := "warn"
	switch {
	case quiet:
		level = "error"
	case verbose:
		level = "debug"
	}

	logging.Init(logging.Config{
		Level:  level,
		Format: logFormat,
		Writer: cmd.ErrOrStderr(),
	})
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

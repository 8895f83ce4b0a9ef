package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/notwillk/databundle/internal/logger"
	"github.com/notwillk/databundle/internal/version"
)

var showVersion bool
var logFormat string
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "databundle [root]",
	Short: "Embed a directory's JSON files in a generated script",
	Long: `databundle merges every JSON file directly inside a root directory into one
object, keyed by file name without extension, and writes it to data.js as an
assignment to window.QuranData.

Without a root argument the root is the parent of the directory holding the
databundle executable. Running without a subcommand is the same as "build".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger(cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "databundle %s\n", version.Version)
			return nil
		}
		return runBuild(cmd, args)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print version and exit")
	addBuildFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Diagnostic log format: text, json")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(buildCmd, configSchemaCmd)
}

func initLogger(w io.Writer) error {
	switch logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", logFormat)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger.InitWriter(w, logFormat, level)
	return nil
}

// Execute runs the root cobra command and returns an exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

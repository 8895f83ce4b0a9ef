package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notwillk/databundle/internal/builder"
	"github.com/notwillk/databundle/internal/config"
	"github.com/notwillk/databundle/internal/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build [root]",
	Short: "Generate the data script from the root directory's JSON files",
	Long: `Parse every data file directly inside the root directory and write them,
merged into one object, to the generated script. Files that fail to parse are
skipped with a warning unless --invalid says otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

var buildOutputFile string
var buildInvalid string

func init() {
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&buildOutputFile, "output-file", "o", "", `Output script path, or "-" for stdout (default: <root>/data.js)`)
	cmd.Flags().StringVar(&buildInvalid, "invalid", "", "Behavior on unparseable files: silent, warn, fail (default: warn)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = cfg.WithInvalid(buildInvalid)

	opts := builder.Options{
		RootDir:    rootDir,
		OutputFile: buildOutputFile,
		Config:     cfg,
	}
	if toStdout(buildOutputFile) {
		opts.OutputFile = ""
		opts.Writer = cmd.OutOrStdout()
	}

	result, err := builder.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}

	logger.Debug("build finished", "entries", result.Entries, "skipped", len(result.Skipped), "duration", result.Duration)
	reportWritten(cmd, result.OutputFile, fmt.Sprintf("with %d entries", result.Entries))
	return nil
}

func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return config.DefaultRoot()
}

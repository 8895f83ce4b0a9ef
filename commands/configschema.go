package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/notwillk/databundle/internal/jsonschema"
)

var configSchemaCmd = &cobra.Command{
	Use:   "config-schema",
	Short: "Print the JSON Schema for databundle.yaml",
	Long: `Print a JSON Schema describing databundle.yaml, for editors and CI checks
that validate the config before a build. Use -o to write it to a file instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := jsonschema.GenerateConfigSchema()
		if err != nil {
			return fmt.Errorf("generating config schema: %w", err)
		}
		err = writeOutput(cmd, configSchemaOutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s\n", schema)
			return err
		})
		if err != nil {
			return err
		}
		reportWritten(cmd, configSchemaOutputFile, "")
		return nil
	},
}

var configSchemaOutputFile string

func init() {
	configSchemaCmd.Flags().StringVarP(&configSchemaOutputFile, "output-file", "o", "", `Schema path, or "-" for stdout (default: stdout)`)
}

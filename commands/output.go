package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// stdoutPath as an --output-file value sends the product to stdout.
const stdoutPath = "-"

func toStdout(path string) bool {
	return path == stdoutPath
}

// writeOutput runs write against path, or against the command's stdout when
// path is empty or "-". A file is created (or truncated) and always closed.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" || toStdout(path) {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return w.Flush()
}

// reportWritten prints the one-line summary for a file a command produced.
// Nothing is printed when the product itself went to stdout.
func reportWritten(cmd *cobra.Command, path, detail string) {
	if path == "" || toStdout(path) {
		return
	}
	if detail != "" {
		detail = " " + detail
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s%s\n", path, detail)
}

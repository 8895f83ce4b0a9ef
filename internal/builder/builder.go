package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/notwillk/databundle/internal/bundle"
	"github.com/notwillk/databundle/internal/config"
	"github.com/notwillk/databundle/internal/loader"
	"github.com/notwillk/databundle/internal/logger"
	"github.com/notwillk/databundle/internal/scanner"
)

// Options configures a build run.
type Options struct {
	RootDir string

	// OutputFile overrides the config's output name when non-empty.
	OutputFile string

	// Writer, when set, receives the script instead of the output file.
	// The output file's name is still excluded from the scan.
	Writer io.Writer

	Config *config.Config
}

// Result holds the outcome of a build.
type Result struct {
	OutputFile   string
	FilesScanned int
	Entries      int
	Skipped      []*loader.ParseError
	Duration     time.Duration
}

// Build executes the full build pipeline:
// 1. List the data files directly inside the root
// 2. Parse each file, skipping (or failing on) unparseable ones per config
// 3. Merge the values into one mapping keyed by file stem
// 4. Write the mapping as a script assigning it to the configured variable
func Build(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	// Load config if not provided.
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(opts.RootDir)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = filepath.Join(opts.RootDir, cfg.OutputFile)
	}

	files, err := scanner.Scan(opts.RootDir, scanner.Options{
		Extension: cfg.Extension,
		Exclude:   excludedName(opts.RootDir, outputFile),
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("scanned root", "root", opts.RootDir, "files", len(files))

	result := &Result{
		OutputFile:   outputFile,
		FilesScanned: len(files),
	}

	m := bundle.NewMapping()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fr, err := loader.Load(path)
		if err != nil {
			var pe *loader.ParseError
			if !errors.As(err, &pe) {
				return nil, err
			}
			if cfg.Invalid == config.InvalidFail {
				return nil, fmt.Errorf("parsing %w", pe)
			}
			if cfg.Invalid == config.InvalidWarn {
				warnSkipped(pe)
			}
			result.Skipped = append(result.Skipped, pe)
			continue
		}

		if fr.Wrapped {
			logger.Debug("parsed after wrapping in braces", "file", filepath.Base(path))
		}
		m.Set(fr.Key, fr.Value)
	}
	result.Entries = m.Len()

	format := bundle.Format{
		Header:   cfg.Header,
		Variable: cfg.Variable,
		Indent:   cfg.Indent,
	}
	if opts.Writer != nil {
		if err := bundle.Render(opts.Writer, m, format); err != nil {
			return nil, fmt.Errorf("writing script: %w", err)
		}
		result.OutputFile = ""
		result.Duration = time.Since(start)
		return result, nil
	}

	// Ensure output directory exists.
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if err := bundle.WriteFile(outputFile, m, format); err != nil {
		return nil, fmt.Errorf("writing %q: %w", outputFile, err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func warnSkipped(pe *loader.ParseError) {
	args := []any{"file", filepath.Base(pe.Path), "error", pe.Err}
	if pe.WrappedErr != nil {
		args = append(args, "wrapped_error", pe.WrappedErr)
	}
	logger.Warn("failed to parse, skipping", args...)
}

// excludedName returns the output file's name if it lives directly in root,
// so a generated file sharing the data extension is never read back in.
func excludedName(root, outputFile string) string {
	absRoot, err1 := filepath.Abs(root)
	absDir, err2 := filepath.Abs(filepath.Dir(outputFile))
	if err1 != nil || err2 != nil {
		absRoot, absDir = filepath.Clean(root), filepath.Clean(filepath.Dir(outputFile))
	}
	if absRoot != absDir {
		return ""
	}
	return filepath.Base(outputFile)
}

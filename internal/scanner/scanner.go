// Package scanner finds the data files that make up a bundle.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options selects which direct children of the root are data files.
type Options struct {
	// Extension is matched case-sensitively against the final extension, e.g. ".json".
	Extension string
	// Exclude is a file name that is never returned, typically the generated output.
	Exclude string
}

// Scan lists the regular files directly inside root whose extension matches
// opts.Extension, sorted by path. Subdirectories are not descended into.
// An error is returned only if root itself cannot be listed.
func Scan(root string, opts Options) ([]string, error) {
	if opts.Extension == "" {
		panic("scanner: extension must not be empty")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", root, err)
	}

	cleanRoot := filepath.Clean(root)
	var files []string
	for _, e := range entries {
		name := e.Name()
		if name == opts.Exclude || !hasStem(name, opts.Extension) {
			continue
		}

		path := filepath.Join(root, name)
		if filepath.Dir(path) != cleanRoot {
			continue
		}

		// Stat follows symlinks; dangling links and non-regular targets are dropped.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}

// Stem returns name without its final extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// hasStem reports whether name ends in ext and has something in front of it.
// A bare ".json" is a hidden file with no extension, not an empty-named entry.
func hasStem(name, ext string) bool {
	return filepath.Ext(name) == ext && len(name) > len(ext)
}

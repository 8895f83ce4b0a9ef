package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/notwillk/databundle/internal/scanner"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// FileRecord is the result of loading one data file.
type FileRecord struct {
	// Key is the file name without its extension.
	Key  string
	Path string
	// Value is the parsed JSON in compact form: key order and number literals
	// as written, duplicate keys collapsed to their last value, strings unescaped.
	Value json.RawMessage
	// Wrapped is set when the content only parsed after enclosing it in braces.
	Wrapped bool
}

// ParseError reports a file that could not be turned into a value.
// Err is the strict parse (or read) failure; WrappedErr is the failure of the
// brace-wrapped retry and is nil when no retry was attempted.
type ParseError struct {
	Path       string
	Err        error
	WrappedErr error
}

func (e *ParseError) Error() string {
	name := filepath.Base(e.Path)
	if e.WrappedErr == nil {
		return fmt.Sprintf("%s: %v", name, e.Err)
	}
	return fmt.Sprintf("%s: %v (wrapped attempt: %v)", name, e.Err, e.WrappedErr)
}

func (e *ParseError) Unwrap() []error {
	if e.WrappedErr == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.WrappedErr}
}

// Load reads path and parses it as a single JSON value. If that fails, the
// content is parsed again inside a pair of braces, which recovers files that
// hold bare `"key": value` pairs. Any failure is returned as a *ParseError.
func Load(path string) (*FileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	fr := &FileRecord{
		Key:  scanner.Stem(path),
		Path: path,
	}

	value, err := parse(text)
	if err == nil {
		fr.Value = value
		return fr, nil
	}

	wrapped := make([]byte, 0, len(text)+2)
	wrapped = append(wrapped, '{')
	wrapped = append(wrapped, text...)
	wrapped = append(wrapped, '}')

	value, wrappedErr := parse(wrapped)
	if wrappedErr != nil {
		return nil, &ParseError{Path: path, Err: err, WrappedErr: wrappedErr}
	}
	fr.Value = value
	fr.Wrapped = true
	return fr, nil
}

// decodeText checks that data is UTF-8 and drops a leading byte order mark.
func decodeText(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return nil, err
	}
	return text, nil
}

// parse validates text as exactly one JSON value and returns it normalized.
func parse(text []byte) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(text, &raw); err != nil {
		return nil, err
	}
	return normalize(raw)
}

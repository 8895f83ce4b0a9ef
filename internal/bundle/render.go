package bundle

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format describes the text wrapped around the serialized mapping.
type Format struct {
	// Header is written verbatim as the first line.
	Header string
	// Variable is the assignment target, e.g. "window.QuranData".
	Variable string
	// Indent is the number of spaces per nesting level.
	Indent int
}

// Render writes the script for m to w:
//
//	<Header>
//	<Variable> = { ...indented JSON... };
//
// Values are re-indented, never re-marshaled, so the key order, number
// literals and raw non-ASCII text of their JSON come through unchanged.
func Render(w io.Writer, m *Mapping, f Format) error {
	var buf bytes.Buffer
	buf.WriteString(f.Header)
	buf.WriteByte('\n')
	buf.WriteString(f.Variable)
	buf.WriteString(" = ")
	if err := writeObject(&buf, m, strings.Repeat(" ", f.Indent)); err != nil {
		return err
	}
	buf.WriteString(";\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeObject(buf *bytes.Buffer, m *Mapping, indent string) error {
	if m.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteString("{\n")
	for i, key := range m.keys {
		buf.WriteString(indent)
		if err := writeKey(buf, key); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := json.Indent(buf, m.values[key], indent, indent); err != nil {
			return fmt.Errorf("formatting %q: %w", key, err)
		}
		if i < len(m.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return nil
}

// writeKey encodes key as a JSON string without escaping <, > or &.
func writeKey(buf *bytes.Buffer, key string) error {
	var kb bytes.Buffer
	enc := json.NewEncoder(&kb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(key); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(kb.Bytes(), []byte("\n")))
	return nil
}

// WriteFile renders m into path, replacing any existing file. The file is
// closed before WriteFile returns, whether or not rendering succeeded.
func WriteFile(path string, m *Mapping, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	if err := Render(w, m, f); err != nil {
		return err
	}
	return w.Flush()
}

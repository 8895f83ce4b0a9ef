package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// normalize re-encodes a validated JSON value compactly. Object keys keep the
// position of their first occurrence and take the last value given for them.
// Strings are written with non-ASCII characters and <, >, & unescaped.
// Number literals are copied as written.
func normalize(raw []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeValue(&buf, dec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return writeObject(buf, dec)
		case '[':
			return writeArray(buf, dec)
		}
		return fmt.Errorf("unexpected %q", t)
	case string:
		return writeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

type member struct {
	key   string
	value []byte
}

func writeObject(buf *bytes.Buffer, dec *json.Decoder) error {
	var members []member
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("object key %v is not a string", tok)
		}

		var vb bytes.Buffer
		if err := writeValue(&vb, dec); err != nil {
			return err
		}
		if i, dup := index[key]; dup {
			members[i].value = vb.Bytes()
			continue
		}
		index[key] = len(members)
		members = append(members, member{key: key, value: vb.Bytes()})
	}
	if _, err := dec.Token(); err != nil { // '}'
		return err
	}

	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, m.key); err != nil {
			return err
		}
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, dec *json.Decoder) error {
	buf.WriteByte('[')
	for first := true; dec.More(); first = false {
		if !first {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil { // ']'
		return err
	}
	buf.WriteByte(']')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var sb bytes.Buffer
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(sb.Bytes(), []byte("\n")))
	return nil
}

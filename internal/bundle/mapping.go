// Package bundle aggregates loaded values and renders them as a script that
// assigns one object literal to a global variable.
package bundle

import "encoding/json"

// Mapping is a string-keyed collection of JSON values that remembers the
// order in which keys were first set.
type Mapping struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]json.RawMessage)}
}

// Set stores value under key. Setting an existing key replaces its value
// but keeps the key's original position.
func (m *Mapping) Set(key string, value json.RawMessage) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Mapping) Get(key string) (json.RawMessage, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mapping) Len() int { return len(m.keys) }

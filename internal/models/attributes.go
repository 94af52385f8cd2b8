// internal/models/attributes.go
package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

type ValueKind int

const (
	ValueText ValueKind = iota
	ValueNumber
	ValueBool
)

// AttributeValue is a tagged scalar. Non-scalar JSON (objects, arrays) is
// kept verbatim as text so nothing a caller submits is lost.
type AttributeValue struct {
	Kind   ValueKind
	Text   string
	Number float64
	Bool   bool
}

func Text(s string) AttributeValue {
	return AttributeValue{Kind: ValueText, Text: s}
}

func Number(n float64) AttributeValue {
	return AttributeValue{Kind: ValueNumber, Number: n}
}

func Bool(b bool) AttributeValue {
	return AttributeValue{Kind: ValueBool, Bool: b}
}

// Display renders the value for human-readable output (report key/value
// sections, log lines).
func (v AttributeValue) Display() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Number)
	case ValueBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Text)
	}
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	*v = valueFromRaw(data)
	return nil
}

func valueFromRaw(raw json.RawMessage) AttributeValue {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Text("")
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return Text(s)
		}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return Bool(b)
		}
	case 'n':
		return Text("")
	case '{', '[':
		return Text(string(raw))
	default:
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return Number(n)
		}
	}

	return Text(string(raw))
}

// AttributeMap is an insertion-ordered mapping from attribute keys to scalar
// values. Keys are only ever added or overwritten; overwriting keeps the
// key's original position so report rendering stays deterministic across
// repeated scoring rounds.
type AttributeMap struct {
	keys   []string
	values map[string]AttributeValue
}

func NewAttributeMap() AttributeMap {
	return AttributeMap{values: make(map[string]AttributeValue)}
}

func (m *AttributeMap) Len() int {
	return len(m.keys)
}

func (m *AttributeMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *AttributeMap) Get(key string) (AttributeValue, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *AttributeMap) Set(key string, value AttributeValue) {
	if m.values == nil {
		m.values = make(map[string]AttributeValue)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *AttributeMap) SetText(key, text string) {
	m.Set(key, Text(text))
}

// Merge applies every entry of other onto m in other's order. Colliding keys
// take other's value (last write wins).
func (m *AttributeMap) Merge(other AttributeMap) {
	for _, key := range other.keys {
		m.Set(key, other.values[key])
	}
}

func (m AttributeMap) Clone() AttributeMap {
	out := NewAttributeMap()
	for _, key := range m.keys {
		out.Set(key, m.values[key])
	}
	return out
}

func (m AttributeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object token by token so the wire order of keys is
// preserved; encoding/json's map decoding would lose it.
func (m *AttributeMap) UnmarshalJSON(data []byte) error {
	*m = NewAttributeMap()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attributes: non-string key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		m.Set(key, valueFromRaw(raw))
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// GORM jsonb storage.

func (m AttributeMap) Value() (driver.Value, error) {
	return m.MarshalJSON()
}

func (m *AttributeMap) Scan(value interface{}) error {
	if value == nil {
		*m = NewAttributeMap()
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return m.UnmarshalJSON(v)
	case string:
		return m.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("attributes: unsupported scan source %T", value)
	}
}

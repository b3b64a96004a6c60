package caret

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ============================================================================
// JSON Encoding
// ============================================================================

// MarshalJSON returns the compact JSON encoding of v. Map keys keep their
// insertion order, numbers are written with all their digits, and strings
// are written as UTF-8 without HTML escaping.
func MarshalJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent is like MarshalJSON but indents the output like
// json.MarshalIndent.
func MarshalJSONIndent(v Value, prefix, indent string) ([]byte, error) {
	compact, err := MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case Number:
		buf.WriteString(v.String())
	case Text:
		return encodeJSONString(buf, string(v))
	case List:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Map:
		buf.WriteByte('{')
		for i, e := range v.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSONString(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("caret: cannot encode %T as JSON", v)
	}
	return nil
}

// encodeJSONString writes s as a JSON string literal.
func encodeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) { return MarshalJSON(n) }

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) { return MarshalJSON(l) }

// MarshalJSON implements json.Marshaler.
func (m Map) MarshalJSON() ([]byte, error) { return MarshalJSON(m) }

package caret

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// YAML Encoding
// ============================================================================

// MarshalYAML returns v as a YAML document indented by two spaces. The value
// is converted to a yaml.Node tree first so map keys keep their insertion
// order.
func MarshalYAML(v Value) ([]byte, error) {
	return MarshalYAMLIndent(v, 2)
}

// MarshalYAMLIndent is like MarshalYAML with the given indentation. Block
// YAML cannot nest with less than two spaces, so smaller values mean two.
func MarshalYAMLIndent(v Value, spaces int) ([]byte, error) {
	node, err := yamlNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(max(spaces, 2))
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlNode(v Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.String()}, nil
	case Text:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}, nil
	case List:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if v.Len() == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, item := range v.items {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case Map:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if v.Len() == 0 {
			mapping.Style = yaml.FlowStyle
		}
		for _, e := range v.Entries() {
			child, err := yamlNode(e.Value)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
			mapping.Content = append(mapping.Content, key, child)
		}
		return mapping, nil
	default:
		return nil, fmt.Errorf("caret: cannot encode %T as YAML", v)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (n Number) MarshalYAML() (any, error) { return yamlNode(n) }

// MarshalYAML implements yaml.Marshaler.
func (l List) MarshalYAML() (any, error) { return yamlNode(l) }

// MarshalYAML implements yaml.Marshaler.
func (m Map) MarshalYAML() (any, error) { return yamlNode(m) }

package caret

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "number", value: NumberFromUint64(8080), want: `8080`},
		{name: "text", value: Text("server"), want: `"server"`},
		{name: "text is not html escaped", value: Text("<a & b>"), want: `"<a & b>"`},
		{name: "text keeps unicode", value: Text("héllo"), want: `"héllo"`},
		{name: "quotes and control characters", value: Text("a\\b\nc"), want: `"a\\b\nc"`},
		{name: "empty list", value: NewList(), want: `[]`},
		{name: "empty map", value: NewMap(), want: `{}`},
		{
			name:  "nested",
			value: NewList(NumberFromUint64(1), Text("two"), NewList(NumberFromUint64(3))),
			want:  `[1,"two",[3]]`,
		},
		{
			name: "map order",
			value: NewMap(
				MapEntry{Key: "Z", Value: NumberFromUint64(1)},
				MapEntry{Key: "A", Value: NewMap(MapEntry{Key: "B", Value: Text("x")})},
			),
			want: `{"Z":1,"A":{"B":"x"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalJSON(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalJSONBigNumber(t *testing.T) {
	v, err := Unmarshal([]byte("123456789012345678901234567890"))
	require.NoError(t, err)
	got, err := MarshalJSON(v)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", string(got))
}

func TestMarshalJSONIndent(t *testing.T) {
	v, err := Unmarshal([]byte("{ A: 1; B: array(1,2,3); C: {}; }"))
	require.NoError(t, err)

	got, err := MarshalJSONIndent(v, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, `{
  "A": 1,
  "B": [
    1,
    2,
    3
  ],
  "C": {}
}`, string(got))
}

func TestMarshalJSONNil(t *testing.T) {
	_, err := MarshalJSON(nil)
	assert.Error(t, err)
}

func TestJSONMarshaler(t *testing.T) {
	v := NewMap(
		MapEntry{Key: "PORTS", Value: NewList(NumberFromUint64(80), NumberFromUint64(443))},
		MapEntry{Key: "HOST", Value: Text("example")},
	)
	got, err := json.Marshal(struct {
		Config Map `json:"config"`
	}{Config: v})
	require.NoError(t, err)
	assert.Equal(t, `{"config":{"PORTS":[80,443],"HOST":"example"}}`, string(got))
}

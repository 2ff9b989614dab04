package parameter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Zero(t *testing.T) {
	var v Value
	assert.True(t, v.IsNil())
	assert.Nil(t, v.Interface())
	assert.Equal(t, "nil", v.String())
}

func TestValue_Accessors(t *testing.T) {
	f, ok := Int(3).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = Float(3).AsInt()
	assert.False(t, ok)

	s, ok := String("hi").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, "2.0", Float(2).String())
	assert.Equal(t, "0.7", Float(0.7).String())
	assert.Equal(t, "42", Int(42).String())
}

func TestValue_JSON(t *testing.T) {
	var got struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d"`
		E Value `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":100,"b":0.5,"c":"x","d":true,"e":null}`), &got))

	assert.True(t, got.A.IsInteger())
	f, _ := got.B.AsFloat()
	assert.Equal(t, 0.5, f)
	s, _ := got.C.AsString()
	assert.Equal(t, "x", s)
	b, _ := got.D.AsBool()
	assert.True(t, b)
	assert.True(t, got.E.IsNil())

	out, err := json.Marshal(Params{"n": Int(5), "f": Float(0.25)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":5,"f":0.25}`, string(out))
}

func TestValue_UnmarshalRejectsObjects(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &v))
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(7)
	require.NoError(t, err)
	assert.True(t, v.IsInteger())

	v, err = FromAny(json.Number("1.5"))
	require.NoError(t, err)
	f, _ := v.AsFloat()
	assert.Equal(t, 1.5, f)

	_, err = FromAny([]string{"x"})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		kind    Kind
		raw     string
		want    any
		wantErr bool
	}{
		{KindFloat, "0.7", 0.7, false},
		{KindFloat, "1", 1.0, false},
		{KindFloat, "warm", nil, true},
		{KindFloat, "nan", nil, true},
		{KindFloat, "NaN", nil, true},
		{KindFloat, "+Inf", nil, true},
		{KindInteger, "256", int64(256), false},
		{KindInteger, "2.5", nil, true},
		{KindBoolean, "true", true, false},
		{KindBoolean, "maybe", nil, true},
		{KindString, "END", "END", false},
		{KindEnum, "json", "json", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.raw, func(t *testing.T) {
			v, err := Parse(tt.kind, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}

package parameter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type valueType uint8

const (
	typeNil valueType = iota
	typeFloat
	typeInt
	typeString
	typeBool
)

// Value is a tagged parameter value: a float, an integer, a string, a bool,
// or nil. The zero Value is nil.
type Value struct {
	typ valueType
	f   float64
	i   int64
	s   string
	b   bool
}

// Float returns a float Value.
func Float(f float64) Value { return Value{typ: typeFloat, f: f} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{typ: typeInt, i: i} }

// String returns a string Value.
func String(s string) Value { return Value{typ: typeString, s: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{typ: typeBool, b: b} }

// IsNil reports whether v carries no value.
func (v Value) IsNil() bool { return v.typ == typeNil }

// IsInteger reports whether v holds an integer.
func (v Value) IsInteger() bool { return v.typ == typeInt }

// AsFloat returns the numeric value of v. Integers are widened.
func (v Value) AsFloat() (float64, bool) {
	switch v.typ {
	case typeFloat:
		return v.f, true
	case typeInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsInt returns v's integer value. Floats are not converted.
func (v Value) AsInt() (int64, bool) {
	if v.typ != typeInt {
		return 0, false
	}
	return v.i, true
}

// AsString returns v's string value.
func (v Value) AsString() (string, bool) {
	if v.typ != typeString {
		return "", false
	}
	return v.s, true
}

// AsBool returns v's boolean value.
func (v Value) AsBool() (bool, bool) {
	if v.typ != typeBool {
		return false, false
	}
	return v.b, true
}

// Interface returns v as a plain Go value (float64, int64, string, bool or nil).
func (v Value) Interface() any {
	switch v.typ {
	case typeFloat:
		return v.f
	case typeInt:
		return v.i
	case typeString:
		return v.s
	case typeBool:
		return v.b
	default:
		return nil
	}
}

// String formats v for display.
func (v Value) String() string {
	switch v.typ {
	case typeFloat:
		return formatFloat(v.f)
	case typeInt:
		return strconv.FormatInt(v.i, 10)
	case typeString:
		return v.s
	case typeBool:
		return strconv.FormatBool(v.b)
	default:
		return "nil"
	}
}

// MarshalJSON encodes v as its plain JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar. Numbers without a fraction or
// exponent become integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// MarshalYAML encodes v as its plain YAML form.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// FromAny converts a decoded JSON or YAML scalar into a Value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows int64", t)
		}
		return Int(int64(t)), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Float(f), nil
	default:
		return Value{}, fmt.Errorf("unsupported parameter value of type %T", x)
	}
}

// Parse coerces raw text into a Value of the given kind. It is used for
// command-line input where every value arrives as a string.
func Parse(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("%q is not a number", raw)
		}
		return Float(f), nil
	case KindInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not an integer", raw)
		}
		return Int(i), nil
	case KindBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, fmt.Errorf("%q is not true or false", raw)
		}
		return Bool(b), nil
	case KindString, KindEnum:
		return String(raw), nil
	default:
		return Value{}, fmt.Errorf("unknown parameter kind %q", kind)
	}
}

// formatFloat prints f with at least one decimal place so that bounds read
// as floats ("2.0", not "2").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

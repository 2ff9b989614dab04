package parameter

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the type of value a parameter accepts.
type Kind string

const (
	KindFloat   Kind = "float"
	KindInteger Kind = "integer"
	KindString  Kind = "string"
	KindEnum    Kind = "enum"
	KindBoolean Kind = "boolean"
)

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFloat, KindInteger, KindString, KindEnum, KindBoolean:
		return true
	}
	return false
}

// ErrInvalidDefinition is returned by New when a definition is malformed.
var ErrInvalidDefinition = errors.New("invalid parameter definition")

// Error reports a parameter that is unknown or whose value was rejected.
type Error struct {
	// Name is the offending parameter.
	Name    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func errorf(name, format string, args ...any) *Error {
	return &Error{Name: name, Message: fmt.Sprintf(format, args...)}
}

// Constraints bound the values a parameter accepts. Only the fields relevant
// to the definition's kind are consulted.
type Constraints struct {
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int     `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Values    []string `json:"values,omitempty" yaml:"values,omitempty"`
}

func (c *Constraints) clone() *Constraints {
	if c == nil {
		return nil
	}
	out := &Constraints{Values: slices.Clone(c.Values)}
	if c.Min != nil {
		v := *c.Min
		out.Min = &v
	}
	if c.Max != nil {
		v := *c.Max
		out.Max = &v
	}
	if c.MinLength != nil {
		v := *c.MinLength
		out.MinLength = &v
	}
	if c.MaxLength != nil {
		v := *c.MaxLength
		out.MaxLength = &v
	}
	return out
}

// Definition describes one named parameter. It is immutable once built.
type Definition struct {
	name        string
	kind        Kind
	description string
	def         Value
	constraints *Constraints
}

// Option configures a Definition during construction.
type Option func(*Definition)

// WithDefault sets the value used when the parameter is not supplied.
func WithDefault(v Value) Option {
	return func(d *Definition) { d.def = v }
}

// WithRange sets inclusive numeric bounds.
func WithRange(lo, hi float64) Option {
	return func(d *Definition) {
		c := d.ensureConstraints()
		c.Min, c.Max = &lo, &hi
	}
}

// WithMin sets an inclusive numeric lower bound.
func WithMin(lo float64) Option {
	return func(d *Definition) { d.ensureConstraints().Min = &lo }
}

// WithMax sets an inclusive numeric upper bound.
func WithMax(hi float64) Option {
	return func(d *Definition) { d.ensureConstraints().Max = &hi }
}

// WithLength sets inclusive bounds on a string's character count.
func WithLength(lo, hi int) Option {
	return func(d *Definition) {
		c := d.ensureConstraints()
		c.MinLength, c.MaxLength = &lo, &hi
	}
}

// WithMaxLength sets an inclusive upper bound on a string's character count.
func WithMaxLength(hi int) Option {
	return func(d *Definition) { d.ensureConstraints().MaxLength = &hi }
}

// WithValues sets the members accepted by an enum.
func WithValues(values ...string) Option {
	return func(d *Definition) { d.ensureConstraints().Values = slices.Clone(values) }
}

func (d *Definition) ensureConstraints() *Constraints {
	if d.constraints == nil {
		d.constraints = &Constraints{}
	}
	return d.constraints
}

// New builds a Definition. Name, kind and description are required and kind
// must be one of the recognized kinds.
func New(name string, kind Kind, description string, opts ...Option) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if kind == "" {
		return nil, fmt.Errorf("%w: %s: type is required", ErrInvalidDefinition, name)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: %s: description is required", ErrInvalidDefinition, name)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s: invalid type: %s", ErrInvalidDefinition, name, kind)
	}

	d := &Definition{name: name, kind: kind, description: description}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustNew is like New but panics on error. It is meant for static
// declarations.
func MustNew(name string, kind Kind, description string, opts ...Option) *Definition {
	d, err := New(name, kind, description, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the parameter name.
func (d *Definition) Name() string { return d.name }

// Kind returns the parameter kind.
func (d *Definition) Kind() Kind { return d.kind }

// Description returns the human-readable description.
func (d *Definition) Description() string { return d.description }

// Default returns the default value and whether one is declared.
func (d *Definition) Default() (Value, bool) { return d.def, !d.def.IsNil() }

// Constraints returns a copy of the declared constraints, or nil.
func (d *Definition) Constraints() *Constraints { return d.constraints.clone() }

// Validate checks v against the definition's kind and constraints. A nil
// value is accepted; deciding whether a parameter is required is up to the
// caller.
func (d *Definition) Validate(v Value) error {
	if v.IsNil() {
		return nil
	}
	if err := d.validateKind(v); err != nil {
		return err
	}
	if d.constraints == nil {
		return nil
	}
	return d.validateConstraints(v)
}

func (d *Definition) validateKind(v Value) error {
	switch d.kind {
	case KindFloat:
		f, ok := v.AsFloat()
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return errorf(d.name, "%s must be a number", d.name)
		}
	case KindInteger:
		if !v.IsInteger() {
			return errorf(d.name, "%s must be an integer", d.name)
		}
	case KindString, KindEnum:
		if _, ok := v.AsString(); !ok {
			return errorf(d.name, "%s must be a string", d.name)
		}
	case KindBoolean:
		if _, ok := v.AsBool(); !ok {
			return errorf(d.name, "%s must be true or false", d.name)
		}
	}
	return nil
}

func (d *Definition) validateConstraints(v Value) error {
	c := d.constraints
	switch d.kind {
	case KindFloat, KindInteger:
		n, _ := v.AsFloat()
		if c.Min != nil && n < *c.Min {
			return errorf(d.name, "%s must be greater than or equal to %s", d.name, d.formatBound(*c.Min))
		}
		if c.Max != nil && n > *c.Max {
			return errorf(d.name, "%s must be less than or equal to %s", d.name, d.formatBound(*c.Max))
		}
	case KindString:
		s, _ := v.AsString()
		n := utf8.RuneCountInString(s)
		if c.MinLength != nil && n < *c.MinLength {
			return errorf(d.name, "%s must be at least %d characters", d.name, *c.MinLength)
		}
		if c.MaxLength != nil && n > *c.MaxLength {
			return errorf(d.name, "%s must be no more than %d characters", d.name, *c.MaxLength)
		}
	case KindEnum:
		s, _ := v.AsString()
		if !slices.Contains(c.Values, s) {
			return errorf(d.name, "%s must be one of: %s", d.name, strings.Join(c.Values, ", "))
		}
	}
	return nil
}

func (d *Definition) formatBound(b float64) string {
	if d.kind == KindInteger {
		return strconv.FormatFloat(b, 'f', -1, 64)
	}
	return formatFloat(b)
}

// Representation is the serializable form of a Definition.
type Representation struct {
	Name        string       `json:"name" yaml:"name"`
	Type        Kind         `json:"type" yaml:"type"`
	Description string       `json:"description" yaml:"description"`
	Default     any          `json:"default" yaml:"default"`
	Constraints *Constraints `json:"constraints" yaml:"constraints"`
}

// Representation returns the definition as plain data for display or
// serialization.
func (d *Definition) Representation() Representation {
	return Representation{
		Name:        d.name,
		Type:        d.kind,
		Description: d.description,
		Default:     d.def.Interface(),
		Constraints: d.constraints.clone(),
	}
}

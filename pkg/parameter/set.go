package parameter

import (
	"maps"
	"slices"
)

// Set maps parameter names to their definitions.
type Set map[string]*Definition

// NewSet builds a Set from the given definitions. Later definitions replace
// earlier ones with the same name.
func NewSet(defs ...*Definition) Set {
	s := make(Set, len(defs))
	for _, d := range defs {
		s[d.Name()] = d
	}
	return s
}

// Clone returns a shallow copy of s. Definitions are immutable and shared.
func (s Set) Clone() Set {
	return maps.Clone(s)
}

// With returns a copy of s with defs added, replacing any definition of the
// same name.
func (s Set) With(defs ...*Definition) Set {
	out := make(Set, len(s)+len(defs))
	maps.Copy(out, s)
	for _, d := range defs {
		out[d.Name()] = d
	}
	return out
}

// Lookup returns the definition for name.
func (s Set) Lookup(name string) (*Definition, bool) {
	d, ok := s[name]
	return d, ok
}

// Names returns the parameter names in sorted order.
func (s Set) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Unknown returns the sorted names in params that s does not define.
func (s Set) Unknown(params Params) []string {
	var out []string
	for _, name := range params.Names() {
		if _, ok := s[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Validate checks that every name in params is defined and that every value
// passes its definition. Names are visited in sorted order and the first
// failure is returned as an *Error.
func (s Set) Validate(params Params) error {
	if unknown := s.Unknown(params); len(unknown) > 0 {
		return errorf(unknown[0], "Unknown parameter: %s", unknown[0])
	}
	for _, name := range params.Names() {
		if err := s[name].Validate(params[name]); err != nil {
			return err
		}
	}
	return nil
}

// Representations returns the serializable form of every definition, sorted
// by name.
func (s Set) Representations() []Representation {
	out := make([]Representation, 0, len(s))
	for _, name := range s.Names() {
		out = append(out, s[name].Representation())
	}
	return out
}

// Params is a bag of caller-supplied parameter values keyed by name.
type Params map[string]Value

// Names returns the supplied names in sorted order.
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Has reports whether name was supplied with a non-nil value.
func (p Params) Has(name string) bool {
	v, ok := p[name]
	return ok && !v.IsNil()
}

// Clone returns a copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Without returns a copy of p with the given names removed.
func (p Params) Without(names ...string) Params {
	out := p.Clone()
	for _, n := range names {
		delete(out, n)
	}
	return out
}

// Interface returns p as a plain map, dropping nil values.
func (p Params) Interface() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		if v.IsNil() {
			continue
		}
		out[k] = v.Interface()
	}
	return out
}

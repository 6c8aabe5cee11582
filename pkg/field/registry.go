package field

import (
	"fmt"
)

// Registry holds the ordered set of field descriptors the form
// exposes. Order is declaration order and drives the deterministic
// ordering of validation messages and prompts.
type Registry struct {
	fields []Descriptor
	index  map[string]int
}

// NewRegistry builds a registry from explicit descriptors. Duplicate
// or unnamed descriptors are rejected so the one-entry-per-field
// invariant holds for every captured snapshot.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	reg := &Registry{
		fields: make([]Descriptor, 0, len(descriptors)),
		index:  make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("field registry: descriptor without a name")
		}
		if _, exists := reg.index[d.Name]; exists {
			return nil, fmt.Errorf("field registry: duplicate field %q", d.Name)
		}
		if d.Kind == "" {
			d.Kind = KindText
		}
		reg.index[d.Name] = len(reg.fields)
		reg.fields = append(reg.fields, d)
	}
	return reg, nil
}

// MustRegistry is NewRegistry for static initialisation.
func MustRegistry(descriptors ...Descriptor) *Registry {
	reg, err := NewRegistry(descriptors...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Fields returns the descriptors in declaration order. Callers must
// not mutate the returned slice.
func (r *Registry) Fields() []Descriptor {
	return r.fields
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	idx, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.fields[idx], true
}

// Has reports whether name is a registered field.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// Package option declares the schema of configurable toast fields.
//
// A Registry holds fields in declaration order. That order is the order
// every snapshot iterates in and the order generated code lists record keys,
// so it is part of the output contract. The registry is read-only once the
// session starts.
package option

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maintains the ordered set of field definitions.
type Registry struct {
	mu     sync.RWMutex
	fields []*Field
	byName map[string]*Field
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Field),
	}
}

// Register appends a field definition.
// The default must lie inside the field's domain, including its range.
func (r *Registry) Register(field Field) error {
	if field.Name == "" {
		return fmt.Errorf("%w: empty field name", ErrInvalidDefault)
	}
	if err := field.Validate(field.Default); err != nil {
		return fmt.Errorf("%w for %s: %w", ErrInvalidDefault, field.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[field.Name]; exists {
		return fmt.Errorf("%w: %s", ErrFieldAlreadyRegistered, field.Name)
	}

	f := &field
	f.Choices = append([]string(nil), field.Choices...)
	r.fields = append(r.fields, f)
	r.byName[f.Name] = f
	return nil
}

// MustRegister registers a field and panics on error.
// Used for the built-in registry at init time.
func (r *Registry) MustRegister(field Field) {
	if err := r.Register(field); err != nil {
		panic(err)
	}
}

// Field returns the definition for name.
func (r *Registry) Field(name string) (*Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[name]
	return f, ok
}

// Has reports whether name is declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.Field(name)
	return ok
}

// Fields returns all definitions in declaration order.
func (r *Registry) Fields() []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns field names in declaration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fields)
}

// Defaults returns a snapshot holding every field's default.
func (r *Registry) Defaults() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot{
		names:  make([]string, len(r.fields)),
		values: make(map[string]Value, len(r.fields)),
	}
	for i, f := range r.fields {
		s.names[i] = f.Name
		s.values[f.Name] = f.Default
	}
	return s
}

// Validate checks value against the named field's domain.
func (r *Registry) Validate(name string, value Value) error {
	f, ok := r.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return f.Validate(value)
}

// Snapshot builds a total snapshot from values, which must name every field.
// Values are checked for shape only; range violations are allowed.
func (r *Registry) Snapshot(values map[string]Value) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []string
	s := Snapshot{
		names:  make([]string, len(r.fields)),
		values: make(map[string]Value, len(r.fields)),
	}
	for i, f := range r.fields {
		v, ok := values[f.Name]
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		if err := f.CheckShape(v); err != nil {
			return Snapshot{}, err
		}
		s.names[i] = f.Name
		s.values[f.Name] = v
	}
	if len(missing) > 0 {
		return Snapshot{}, fmt.Errorf("%w: missing %s", ErrIncompleteSnapshot, strings.Join(missing, ", "))
	}
	for name := range values {
		if _, ok := r.byName[name]; !ok {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	return s, nil
}

// Package store holds the mutable toast configuration of one playground session.
//
// A Store is created from a registry, captures the registry defaults once as
// its immutable reset target, and always holds a value for every field.
// Range constraints are advisory: an out-of-range number is stored and
// reported by Advisory, while kind and choice violations are rejected.
package store

import (
	"fmt"
	"sync"

	"github.com/dshills/toasty/internal/notify"
	"github.com/dshills/toasty/internal/option"
)

// Change sources reported with notifications.
const (
	SourceSet    = "set"
	SourceInput  = "input"
	SourceReset  = "reset"
	SourceImport = "import"
)

// Store is the configuration store.
type Store struct {
	mu       sync.RWMutex
	registry *option.Registry
	defaults option.Snapshot
	values   map[string]option.Value
	notifier *notify.Notifier
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier publishes changes through n instead of a private notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// New creates a store initialized from the registry defaults.
func New(registry *option.Registry, opts ...Option) *Store {
	s := &Store{
		registry: registry,
		defaults: registry.Defaults(),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.values = s.copyDefaults()
	return s
}

// Registry returns the schema the store was built from.
func (s *Store) Registry() *option.Registry {
	return s.registry
}

// Get returns the current value of name.
// Every registered field always has a value; unknown names yield the zero Value.
func (s *Store) Get(name string) option.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Lookup returns the current value of name and whether name is registered.
func (s *Store) Lookup(name string) (option.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Set overwrites the value of name.
//
// Kind mismatches and undeclared choices are rejected. Numbers outside the
// advisory range are stored; call Advisory to surface the violation.
func (s *Store) Set(name string, value option.Value) error {
	return s.set(name, value, SourceSet)
}

// SetInput parses raw form-control text for name and stores the result.
func (s *Store) SetInput(name, raw string) error {
	field, ok := s.registry.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", option.ErrUnknownField, name)
	}
	value, err := field.ParseInput(raw)
	if err != nil {
		return err
	}
	return s.set(name, value, SourceInput)
}

func (s *Store) set(name string, value option.Value, source string) error {
	field, ok := s.registry.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", option.ErrUnknownField, name)
	}
	if err := field.CheckShape(value); err != nil {
		return err
	}

	s.mu.Lock()
	old := s.values[name]
	s.values[name] = value
	s.mu.Unlock()

	if !old.Equal(value) {
		s.notifier.NotifySet(name, old, value, source)
	}
	return nil
}

// Apply sets several fields at once. Either every value is stored or none is.
// Fields not named in values keep their current value.
func (s *Store) Apply(values map[string]option.Value) error {
	for name, v := range values {
		field, ok := s.registry.Field(name)
		if !ok {
			return fmt.Errorf("%w: %s", option.ErrUnknownField, name)
		}
		if err := field.CheckShape(v); err != nil {
			return err
		}
	}

	s.mu.Lock()
	for name, v := range values {
		s.values[name] = v
	}
	s.mu.Unlock()

	s.notifier.NotifyReload(SourceImport)
	return nil
}

// ResetToDefaults overwrites every field with its default in one step.
func (s *Store) ResetToDefaults() {
	fresh := s.copyDefaults()

	s.mu.Lock()
	s.values = fresh
	s.mu.Unlock()

	s.notifier.NotifyReload(SourceReset)
}

// Snapshot returns the current values in declaration order.
func (s *Store) Snapshot() option.Snapshot {
	s.mu.RLock()
	values := make(map[string]option.Value, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	s.mu.RUnlock()

	snap, err := s.registry.Snapshot(values)
	if err != nil {
		// Values are seeded from the defaults and only replaced field by field.
		panic(fmt.Sprintf("store: snapshot invariant violated: %v", err))
	}
	return snap
}

// Defaults returns the reset target captured at construction.
func (s *Store) Defaults() option.Snapshot {
	return s.defaults
}

// IsDefault reports whether name currently holds its default value.
func (s *Store) IsDefault(name string) bool {
	d, ok := s.defaults.Get(name)
	if !ok {
		return false
	}
	return s.Get(name).Equal(d)
}

// Advisory returns the advisory range violation for name's current value, if any.
func (s *Store) Advisory(name string) error {
	field, ok := s.registry.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", option.ErrUnknownField, name)
	}
	return field.CheckRange(s.Get(name))
}

// Advisories returns every field currently outside its advisory range.
func (s *Store) Advisories() []error {
	var out []error
	for _, f := range s.registry.Fields() {
		if err := f.CheckRange(s.Get(f.Name)); err != nil {
			out = append(out, err)
		}
	}
	return out
}

// Subscribe registers an observer for every change.
func (s *Store) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// SubscribeField registers an observer for changes to one field and for resets.
func (s *Store) SubscribeField(name string, observer notify.Observer) *notify.Subscription {
	return s.notifier.SubscribePath(name, observer)
}

func (s *Store) copyDefaults() map[string]option.Value {
	values := make(map[string]option.Value, s.defaults.Len())
	for _, e := range s.defaults.Entries() {
		values[e.Name] = e.Value
	}
	return values
}

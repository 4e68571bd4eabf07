package option

// Snapshot is an immutable, ordered mapping from every field name to a value.
// Snapshots are only built by a Registry, so they are always total.
type Snapshot struct {
	names  []string
	values map[string]Value
}

// Entry is one name/value pair of a snapshot.
type Entry struct {
	Name  string
	Value Value
}

// Get returns the value for name.
func (s Snapshot) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// MustGet returns the value for name and panics if the snapshot lacks it.
// A missing field is a programming error: snapshots are total by construction.
func (s Snapshot) MustGet(name string) Value {
	v, ok := s.values[name]
	if !ok {
		panic("option: snapshot has no field " + name)
	}
	return v
}

// Len returns the number of fields.
func (s Snapshot) Len() int {
	return len(s.names)
}

// Names returns field names in declaration order.
func (s Snapshot) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Entries returns the pairs in declaration order.
func (s Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.names))
	for i, name := range s.names {
		out[i] = Entry{Name: name, Value: s.values[name]}
	}
	return out
}

// With returns a copy of s with name set to v.
// Names the snapshot does not hold are ignored.
func (s Snapshot) With(name string, v Value) Snapshot {
	if _, ok := s.values[name]; !ok {
		return s
	}
	out := Snapshot{
		names:  s.names,
		values: make(map[string]Value, len(s.values)),
	}
	for k, val := range s.values {
		out.values[k] = val
	}
	out.values[name] = v
	return out
}

// Equal reports whether two snapshots hold the same fields, order, and values.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for i, name := range s.names {
		if other.names[i] != name {
			return false
		}
		if !s.values[name].Equal(other.values[name]) {
			return false
		}
	}
	return true
}

// Map returns the snapshot as plain Go values keyed by name.
func (s Snapshot) Map() map[string]any {
	out := make(map[string]any, len(s.values))
	for name, v := range s.values {
		out[name] = v.Interface()
	}
	return out
}

package types

// RawField is one decoded metadata entry: the tag name and its display
// rendering as produced by the decoder.
type RawField struct {
	Name string
	Text string

	// Type is the EXIF field type ("ASCII", "SHORT", "RATIONAL", ...).
	// Informational only; it does not influence coercion.
	Type string
	Tag  uint16
}

// Fields maps tag names to coerced values for a single file.
//
// The zero value is not usable; create with make or NewFields.
type Fields map[string]Value

// NewFields builds Fields from raw fields in the order given. A tag name
// that appears more than once keeps the value of its last occurrence.
func NewFields(raw []RawField) Fields {
	f := make(Fields, len(raw))
	for _, r := range raw {
		f.Set(r.Name, Coerce(r.Text))
	}
	return f
}

// Set stores v under name, replacing any earlier value.
func (f Fields) Set(name string, v Value) {
	f[name] = v
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (Value, bool) {
	v, ok := f[name]
	return v, ok
}


// Package types provides the core data structures shared by the image
// metadata decoders: formats, coerced values, field maps and errors.
package types

// File is the result of extracting metadata from one image file.
type File struct {
	Fields   Fields
	Path     string
	Warnings []Warning
	Format   Format
	Size     int64
}

// Metadata is what a container decoder hands back: the rendered fields in
// decode order plus any warnings collected along the way.
type Metadata struct {
	Fields   []RawField
	Warnings []Warning
}

// DecodeOptions carries the per-call decoder switches.
type DecodeOptions struct {
	// AllowPartial keeps the fields read before a non-critical decode
	// error and records the error as a Warning.
	AllowPartial bool
}

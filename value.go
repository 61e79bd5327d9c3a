package imagemeta

import "github.com/simonhull/imagemeta/internal/types"

// Value is a coerced metadata value: exactly one of an int64, a float64 or
// a string.
type Value = types.Value

// Kind identifies the populated variant of a Value.
type Kind = types.Kind

// Re-export the Value kinds.
const (
	KindInteger = types.KindInteger
	KindFloat   = types.KindFloat
	KindText    = types.KindText
)

// Coerce converts a field's display text into a Value: an integer if the
// text parses as a base-10 int64, otherwise a float if it parses as a
// finite decimal float, otherwise the text unchanged.
//
//	imagemeta.Coerce("400")   // Integer 400
//	imagemeta.Coerce("007")   // Integer 7
//	imagemeta.Coerce("4.0")   // Float 4
//	imagemeta.Coerce("1/100") // Text "1/100"
func Coerce(s string) Value {
	return types.Coerce(s)
}

package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant of a Value is populated.
type Kind uint8

const (
	// KindInvalid is the zero Kind. Coerce never produces it.
	KindInvalid Kind = iota
	// KindInteger holds a signed 64-bit integer.
	KindInteger
	// KindFloat holds a finite 64-bit float.
	KindFloat
	// KindText holds a string.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// Value is a coerced metadata value: an integer, a float, or text.
//
// The variant is chosen from the rendered text of a field, not from the
// field's declared EXIF type. A rational exposure of "1/100" is Text, an
// FNumber rendered as "2.8" is a Float.
type Value struct {
	s    string
	i    int64
	f    float64
	kind Kind
}

// IntValue returns an Integer value.
func IntValue(i int64) Value { return Value{kind: KindInteger, i: i} }

// FloatValue returns a Float value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// TextValue returns a Text value.
func TextValue(s string) Value { return Value{kind: KindText, s: s} }

// Coerce converts a field's display rendering into a Value.
//
// Coerce is total. It tries, in order:
//  1. a base-10 signed 64-bit integer ("007" is 7, "+5" is 5),
//  2. a finite decimal float ("4.0", "-3.14", "1e3"),
//  3. the text itself, unmodified.
//
// Hexadecimal floats, digit separators and non-finite values ("NaN",
// "Inf", "1e400") fall through to Text because JSON cannot carry them as
// numbers.
func Coerce(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if isDecimalFloat(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return FloatValue(f)
		}
	}
	return TextValue(s)
}

// isDecimalFloat rejects the Go-literal extensions strconv.ParseFloat
// accepts on top of plain decimal syntax.
func isDecimalFloat(s string) bool {
	if s == "" || strings.ContainsRune(s, '_') {
		return false
	}
	t := strings.TrimLeft(s, "+-")
	return !(len(t) >= 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X'))
}

// Kind reports which variant is populated.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the integer and true if v is an Integer.
func (v Value) Int64() (int64, bool) { return v.i, v.kind == KindInteger }

// Float64 returns the float and true if v is a Float.
func (v Value) Float64() (float64, bool) { return v.f, v.kind == KindFloat }

// Text returns the string and true if v is Text.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }

// Interface returns the populated variant as int64, float64 or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	default:
		return nil
	}
}

// String renders the value the way it appears in JSON, without quoting
// text.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	default:
		return v.s
	}
}

// MarshalJSON encodes integers and floats as JSON numbers and text as a
// JSON string. Integral floats keep a trailing ".0".
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInteger:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return []byte("null"), nil
		}
		return []byte(formatFloat(v.f)), nil
	case KindText:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v.s); err != nil {
			return nil, err
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	default:
		return []byte("null"), nil
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

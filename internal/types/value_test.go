package types

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		i    int64
		f    float64
	}{
		{in: "42", kind: KindInteger, i: 42},
		{in: "007", kind: KindInteger, i: 7},
		{in: "-12", kind: KindInteger, i: -12},
		{in: "+5", kind: KindInteger, i: 5},
		{in: "9223372036854775807", kind: KindInteger, i: math.MaxInt64},
		{in: "42.0", kind: KindFloat, f: 42},
		{in: "4.0", kind: KindFloat, f: 4},
		{in: "-3.14", kind: KindFloat, f: -3.14},
		{in: "+2.5", kind: KindFloat, f: 2.5},
		{in: "1e3", kind: KindFloat, f: 1000},
		{in: ".5", kind: KindFloat, f: 0.5},
		{in: "9223372036854775808", kind: KindFloat, f: 9223372036854775808},
		{in: "99999999999999999999", kind: KindFloat, f: 1e20},
		{in: "abc", kind: KindText},
		{in: "", kind: KindText},
		{in: "1/100", kind: KindText},
		{in: " 42", kind: KindText},
		{in: "42 ", kind: KindText},
		{in: "1_000", kind: KindText},
		{in: "0x1F", kind: KindText},
		{in: "0x1p-2", kind: KindText},
		{in: "NaN", kind: KindText},
		{in: "Inf", kind: KindText},
		{in: "-Infinity", kind: KindText},
		{in: "1e400", kind: KindText},
		{in: "2024-05-01 10:20:30", kind: KindText},
		{in: "8, 8, 8", kind: KindText},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := Coerce(tt.in)
			if v.Kind() != tt.kind {
				t.Fatalf("Coerce(%q).Kind() = %v, want %v", tt.in, v.Kind(), tt.kind)
			}
			switch tt.kind {
			case KindInteger:
				if got, ok := v.Int64(); !ok || got != tt.i {
					t.Errorf("Int64() = %d, %v, want %d", got, ok, tt.i)
				}
			case KindFloat:
				if got, ok := v.Float64(); !ok || got != tt.f {
					t.Errorf("Float64() = %v, %v, want %v", got, ok, tt.f)
				}
			case KindText:
				if got, ok := v.Text(); !ok || got != tt.in {
					t.Errorf("Text() = %q, %v, want %q unchanged", got, ok, tt.in)
				}
			}
		})
	}
}

func TestCoerce_ExactlyOneVariant(t *testing.T) {
	for _, in := range []string{"1", "1.5", "x"} {
		v := Coerce(in)
		_, isInt := v.Int64()
		_, isFloat := v.Float64()
		_, isText := v.Text()

		n := 0
		for _, b := range []bool{isInt, isFloat, isText} {
			if b {
				n++
			}
		}
		if n != 1 {
			t.Errorf("Coerce(%q) populates %d variants, want 1", in, n)
		}
	}
}

func FuzzCoerce(f *testing.F) {
	for _, seed := range []string{"", "0", "-1", "4.0", "1e9", "NaN", "0x10", "Canon"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		v := Coerce(s)
		if v.Kind() == KindInvalid {
			t.Fatalf("Coerce(%q) returned an invalid value", s)
		}
		if text, ok := v.Text(); ok && text != s {
			t.Fatalf("Coerce(%q) altered text to %q", s, text)
		}
		if _, err := json.Marshal(v); err != nil {
			t.Fatalf("Marshal(Coerce(%q)) error = %v", s, err)
		}
	})
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{IntValue(400), `400`},
		{IntValue(-7), `-7`},
		{FloatValue(2.8), `2.8`},
		{FloatValue(42), `42.0`},
		{FloatValue(1e20), `1e+20`},
		{FloatValue(math.Inf(1)), `null`},
		{TextValue("Canon"), `"Canon"`},
		{TextValue(""), `""`},
		{TextValue("<a & b>"), `"<a & b>"`},
		{TextValue("say \"hi\""), `"say \"hi\""`},
		{Value{}, `null`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.v)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tt.v, err)
		}
		// json.Marshal HTML-escapes; compare through a round trip for that case
		if tt.want == `"<a & b>"` {
			var s string
			if err := json.Unmarshal(got, &s); err != nil || s != "<a & b>" {
				t.Errorf("Marshal(%v) = %s", tt.v, got)
			}
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestValue_StringAndInterface(t *testing.T) {
	if got := IntValue(3).String(); got != "3" {
		t.Errorf("String() = %q", got)
	}
	if got := FloatValue(0.5).String(); got != "0.5" {
		t.Errorf("String() = %q", got)
	}
	if got := TextValue("f/2.8").String(); got != "f/2.8" {
		t.Errorf("String() = %q", got)
	}
	if _, ok := IntValue(3).Interface().(int64); !ok {
		t.Error("Interface() of Integer should be int64")
	}
	if _, ok := FloatValue(3).Interface().(float64); !ok {
		t.Error("Interface() of Float should be float64")
	}
	if _, ok := TextValue("x").Interface().(string); !ok {
		t.Error("Interface() of Text should be string")
	}
	if KindText.String() != "text" || KindInvalid.String() != "invalid" {
		t.Error("unexpected Kind names")
	}
}

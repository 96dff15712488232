package pathex

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// Kind identifies the variant held by a Scalar.
type Kind int

const (
	KindText    Kind = iota // Fallback for anything the other rules reject.
	KindInteger             // Base-10 signed 64-bit integer.
	KindFloat               // Decimal float64 (the raw text contained a '.').
	KindBoolean             // Exactly "true" or "false".
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// Scalar is the coerced value of one placeholder segment. The zero value is
// Text("").
type Scalar struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	raw  string
}

// Integer returns an Integer scalar.
func Integer(v int64) Scalar {
	return Scalar{kind: KindInteger, i: v, raw: strconv.FormatInt(v, 10)}
}

// Float returns a Float scalar.
func Float(v float64) Scalar {
	return Scalar{kind: KindFloat, f: v, raw: strconv.FormatFloat(v, 'g', -1, 64)}
}

// Boolean returns a Boolean scalar.
func Boolean(v bool) Scalar {
	return Scalar{kind: KindBoolean, b: v, raw: strconv.FormatBool(v)}
}

// Text returns a Text scalar.
func Text(v string) Scalar { return Scalar{kind: KindText, raw: v} }

func (s Scalar) Kind() Kind { return s.kind }

// Raw returns the segment text the scalar was coerced from.
func (s Scalar) Raw() string { return s.raw }

// Int returns the integer value and whether s is an Integer.
func (s Scalar) Int() (int64, bool) { return s.i, s.kind == KindInteger }

// Float returns the float value and whether s is a Float.
func (s Scalar) Float() (float64, bool) { return s.f, s.kind == KindFloat }

// Bool returns the boolean value and whether s is a Boolean.
func (s Scalar) Bool() (bool, bool) { return s.b, s.kind == KindBoolean }

// Text returns the text value and whether s is Text.
func (s Scalar) Text() (string, bool) { return s.raw, s.kind == KindText }

// Any returns the native Go value: int64, float64, bool or string.
func (s Scalar) Any() any {
	switch s.kind {
	case KindInteger:
		return s.i
	case KindFloat:
		return s.f
	case KindBoolean:
		return s.b
	default:
		return s.raw
	}
}

// Equal compares kind and value. Raw text is ignored, so Float("1.50") and
// Float("1.5") are equal.
func (s Scalar) Equal(o Scalar) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case KindInteger:
		return s.i == o.i
	case KindFloat:
		return s.f == o.f
	case KindBoolean:
		return s.b == o.b
	default:
		return s.raw == o.raw
	}
}

func (s Scalar) String() string {
	if s.kind == KindText {
		return strconv.Quote(s.raw)
	}
	return s.raw
}

// MarshalJSON encodes the native value.
func (s Scalar) MarshalJSON() ([]byte, error) { return json.Marshal(s.Any()) }

package pathex

import (
	"math"
	"strconv"
	"strings"
)

// Coerce turns raw segment text into a Scalar. Rules are tried in order and
// the first match wins:
//
//  1. base-10 signed int64, optional leading '-'  -> Integer
//  2. contains '.' and parses as a finite float64  -> Float
//  3. exactly "true" or "false"                    -> Boolean
//  4. anything else                                -> Text
//
// Coerce never fails. Text such as "3.14.1" or "1e3" ends up as Text.
func Coerce(raw string) Scalar {
	if v, ok := parseInteger(raw); ok {
		return Scalar{kind: KindInteger, i: v, raw: raw}
	}
	if strings.Contains(raw, ".") {
		if v, ok := parseDecimalFloat(raw); ok {
			return Scalar{kind: KindFloat, f: v, raw: raw}
		}
	}
	switch raw {
	case "true":
		return Scalar{kind: KindBoolean, b: true, raw: raw}
	case "false":
		return Scalar{kind: KindBoolean, b: false, raw: raw}
	}
	return Text(raw)
}

// parseInteger rejects the leading '+' strconv would otherwise accept.
func parseInteger(raw string) (int64, bool) {
	if raw == "" || raw[0] == '+' {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDecimalFloat rejects hex floats, infinities and NaN.
func parseDecimalFloat(raw string) (float64, bool) {
	if strings.ContainsAny(raw, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

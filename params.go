package pathex

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
)

// ParameterSet maps placeholder names to coerced values. Keys and Values
// always iterate in ascending lexicographic key order, never template order;
// tuple decoding depends on this.
type ParameterSet struct {
	m map[string]Scalar
}

// NewParameterSet returns an empty set.
func NewParameterSet() ParameterSet { return ParameterSet{m: map[string]Scalar{}} }

// Set binds name, overwriting a previous value.
func (ps *ParameterSet) Set(name string, v Scalar) {
	if ps.m == nil {
		ps.m = map[string]Scalar{}
	}
	ps.m[name] = v
}

// Get returns the value bound to name.
func (ps ParameterSet) Get(name string) (Scalar, bool) {
	v, ok := ps.m[name]
	return v, ok
}

func (ps ParameterSet) Len() int { return len(ps.m) }

// Keys returns the parameter names in ascending order.
func (ps ParameterSet) Keys() []string {
	keys := make([]string, 0, len(ps.m))
	for k := range ps.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the values ordered by ascending key.
func (ps ParameterSet) Values() []Scalar {
	keys := ps.Keys()
	vals := make([]Scalar, len(keys))
	for i, k := range keys {
		vals[i] = ps.m[k]
	}
	return vals
}

// Map returns the native values (int64, float64, bool, string) by name.
func (ps ParameterSet) Map() map[string]any {
	out := make(map[string]any, len(ps.m))
	for k, v := range ps.m {
		out[k] = v.Any()
	}
	return out
}

// Equal reports whether both sets bind the same names to equal values.
func (ps ParameterSet) Equal(o ParameterSet) bool {
	if len(ps.m) != len(o.m) {
		return false
	}
	for k, v := range ps.m {
		ov, ok := o.m[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON writes an object with keys in ascending order.
func (ps ParameterSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range ps.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(ps.m[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

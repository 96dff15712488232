package pathex

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

var (
	scalarType          = reflect.TypeOf(Scalar{})
	parameterSetType    = reflect.TypeOf(ParameterSet{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Into returns a reflection-driven Shape for T.
//
// Record phase: structs (every bindable field must have a parameter unless
// tagged path:",optional"; extra parameters are ignored), map[string]V, and
// ParameterSet itself.
// Tuple phase: structs (bindable fields in declaration order, arity must
// match), arrays (length must match) and slices.
//
// Each value is checked against its destination: Integer fits integer and
// float kinds (range-checked), Float fits float kinds, Boolean fits bool,
// Text fits string and encoding.TextUnmarshaler. Every kind fits Scalar and
// empty interfaces. Pointers are allocated as needed.
func Into[T any]() Shape[T] { return intoShape[T]{} }

type intoShape[T any] struct{}

func (intoShape[T]) DecodeRecord(ps ParameterSet) (T, error) {
	var out T
	if err := decodeRecord(reflect.ValueOf(&out).Elem(), ps); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (intoShape[T]) DecodeTuple(values []Scalar) (T, error) {
	var out T
	if err := decodeTuple(reflect.ValueOf(&out).Elem(), values); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func decodeRecord(rv reflect.Value, ps ParameterSet) error {
	rt := rv.Type()
	if rt == parameterSetType {
		rv.Set(reflect.ValueOf(ps))
		return nil
	}
	switch rt.Kind() {
	case reflect.Pointer:
		nv := reflect.New(rt.Elem())
		if err := decodeRecord(nv.Elem(), ps); err != nil {
			return err
		}
		rv.Set(nv)
		return nil
	case reflect.Struct:
		if rt == scalarType {
			break
		}
		fields := bindableFields(rt)
		if len(fields) == 0 {
			return &DecodeError{Phase: PhaseRecord, Path: "/", Reason: rt.String() + " has no bindable fields"}
		}
		for _, f := range fields {
			v, ok := ps.Get(f.key)
			if !ok {
				if f.optional {
					continue
				}
				return &DecodeError{Phase: PhaseRecord, Path: "/" + f.key, Reason: "missing parameter"}
			}
			if err := assignScalar(rv.Field(f.index), v); err != nil {
				return fieldError(PhaseRecord, "/"+f.key, err)
			}
		}
		return nil
	case reflect.Map:
		if rt.Key().Kind() != reflect.String {
			return &DecodeError{Phase: PhaseRecord, Path: "/", Reason: "map key must be a string kind, got " + rt.Key().String()}
		}
		m := reflect.MakeMapWithSize(rt, ps.Len())
		for _, k := range ps.Keys() {
			v, _ := ps.Get(k)
			ev := reflect.New(rt.Elem()).Elem()
			if err := assignScalar(ev, v); err != nil {
				return fieldError(PhaseRecord, "/"+k, err)
			}
			m.SetMapIndex(reflect.ValueOf(k).Convert(rt.Key()), ev)
		}
		rv.Set(m)
		return nil
	}
	return &DecodeError{Phase: PhaseRecord, Path: "/", Reason: rt.String() + " is not a record type"}
}

func decodeTuple(rv reflect.Value, values []Scalar) error {
	rt := rv.Type()
	switch rt.Kind() {
	case reflect.Pointer:
		nv := reflect.New(rt.Elem())
		if err := decodeTuple(nv.Elem(), values); err != nil {
			return err
		}
		rv.Set(nv)
		return nil
	case reflect.Struct:
		if rt == scalarType || rt == parameterSetType {
			break
		}
		fields := bindableFields(rt)
		if len(fields) == 0 {
			return &DecodeError{Phase: PhaseTuple, Path: "/", Reason: rt.String() + " has no bindable fields"}
		}
		if len(fields) != len(values) {
			return arityError(len(fields), len(values))
		}
		for i, f := range fields {
			if err := assignScalar(rv.Field(f.index), values[i]); err != nil {
				return fieldError(PhaseTuple, "/"+strconv.Itoa(i), err)
			}
		}
		return nil
	case reflect.Array:
		if rt.Len() != len(values) {
			return arityError(rt.Len(), len(values))
		}
		for i, v := range values {
			if err := assignScalar(rv.Index(i), v); err != nil {
				return fieldError(PhaseTuple, "/"+strconv.Itoa(i), err)
			}
		}
		return nil
	case reflect.Slice:
		s := reflect.MakeSlice(rt, len(values), len(values))
		for i, v := range values {
			if err := assignScalar(s.Index(i), v); err != nil {
				return fieldError(PhaseTuple, "/"+strconv.Itoa(i), err)
			}
		}
		rv.Set(s)
		return nil
	}
	return &DecodeError{Phase: PhaseTuple, Path: "/", Reason: rt.String() + " is not a tuple type"}
}

func arityError(want, got int) error {
	return &DecodeError{Phase: PhaseTuple, Path: "/", Reason: fmt.Sprintf("arity mismatch: want %d, got %d", want, got)}
}

// kindError is returned by assignScalar and turned into a DecodeError by the caller.
type kindError struct {
	reason string
	cause  error
}

func (e *kindError) Error() string { return e.reason }

func fieldError(phase, path string, err error) error {
	ke, ok := err.(*kindError)
	if !ok {
		return &DecodeError{Phase: phase, Path: path, Reason: err.Error()}
	}
	return &DecodeError{Phase: phase, Path: path, Reason: ke.reason, Cause: ke.cause}
}

func mismatch(s Scalar, t reflect.Type) error {
	return &kindError{reason: fmt.Sprintf("cannot assign %s %s to %s", s.Kind(), s, t)}
}

// assignScalar stores s into fv when the scalar kind fits the destination.
// fv must be settable and addressable.
func assignScalar(fv reflect.Value, s Scalar) error {
	ft := fv.Type()
	if ft == scalarType {
		fv.Set(reflect.ValueOf(s))
		return nil
	}
	if ft.Kind() == reflect.Pointer {
		nv := reflect.New(ft.Elem())
		if err := assignScalar(nv.Elem(), s); err != nil {
			return err
		}
		fv.Set(nv)
		return nil
	}
	if s.Kind() == KindText && reflect.PointerTo(ft).Implements(textUnmarshalerType) {
		tu := fv.Addr().Interface().(encoding.TextUnmarshaler)
		if err := tu.UnmarshalText([]byte(s.Raw())); err != nil {
			return &kindError{reason: "cannot unmarshal text into " + ft.String(), cause: err}
		}
		return nil
	}

	switch ft.Kind() {
	case reflect.Interface:
		if ft.NumMethod() != 0 {
			return mismatch(s, ft)
		}
		fv.Set(reflect.ValueOf(s.Any()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := s.Int()
		if !ok {
			return mismatch(s, ft)
		}
		if fv.OverflowInt(i) {
			return &kindError{reason: fmt.Sprintf("%d overflows %s", i, ft)}
		}
		fv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, ok := s.Int()
		if !ok {
			return mismatch(s, ft)
		}
		if i < 0 || fv.OverflowUint(uint64(i)) {
			return &kindError{reason: fmt.Sprintf("%d overflows %s", i, ft)}
		}
		fv.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		var f float64
		switch s.Kind() {
		case KindInteger:
			i, _ := s.Int()
			f = float64(i)
		case KindFloat:
			f, _ = s.Float()
		default:
			return mismatch(s, ft)
		}
		if fv.OverflowFloat(f) {
			return &kindError{reason: fmt.Sprintf("%g overflows %s", f, ft)}
		}
		fv.SetFloat(f)
	case reflect.Bool:
		b, ok := s.Bool()
		if !ok {
			return mismatch(s, ft)
		}
		fv.SetBool(b)
	case reflect.String:
		t, ok := s.Text()
		if !ok {
			return mismatch(s, ft)
		}
		fv.SetString(t)
	default:
		return mismatch(s, ft)
	}
	return nil
}

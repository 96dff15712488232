package pathex

import "errors"

// Shape is the caller's target type seen two ways: as a keyed record and as
// a fixed-arity tuple. Each method reports failure instead of panicking.
type Shape[T any] interface {
	// DecodeRecord binds parameters to named fields.
	DecodeRecord(ps ParameterSet) (T, error)
	// DecodeTuple binds values positionally. values are ordered by ascending
	// parameter name.
	DecodeTuple(values []Scalar) (T, error)
}

// Decode tries shape.DecodeRecord, then shape.DecodeTuple with ps.Values().
// When both fail it returns an *Error with CodeUnsupportedType whose Cause
// joins the two phase errors.
//
// The tuple phase orders values by parameter name, not by template
// position: "/{b}/{a}" matched against "/X/Y" yields ("Y", "X").
func Decode[T any](ps ParameterSet, shape Shape[T]) (T, error) {
	var zero T
	if shape == nil {
		return zero, unsupportedType(errors.New("nil shape"), nil)
	}
	v, recordErr := shape.DecodeRecord(ps)
	if recordErr == nil {
		return v, nil
	}
	v, tupleErr := shape.DecodeTuple(ps.Values())
	if tupleErr == nil {
		return v, nil
	}
	return zero, unsupportedType(recordErr, tupleErr)
}

// Phase names used in DecodeError.
const (
	PhaseRecord = "record"
	PhaseTuple  = "tuple"
)

// DecodeError explains why one decode phase rejected the parameters.
type DecodeError struct {
	Phase  string // PhaseRecord or PhaseTuple.
	Path   string // "/name" for a record field, "/0" for a tuple slot, "/" for the whole value.
	Reason string
	Cause  error // Optional: underlying error (for example from UnmarshalText).
}

func (e *DecodeError) Error() string {
	msg := e.Phase + " decode at " + e.Path + ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// ShapeFuncs adapts plain functions to Shape. A nil function fails its phase.
type ShapeFuncs[T any] struct {
	Record func(ps ParameterSet) (T, error)
	Tuple  func(values []Scalar) (T, error)
}

func (f ShapeFuncs[T]) DecodeRecord(ps ParameterSet) (T, error) {
	if f.Record == nil {
		var zero T
		return zero, &DecodeError{Phase: PhaseRecord, Path: "/", Reason: "record decoding not supported"}
	}
	return f.Record(ps)
}

func (f ShapeFuncs[T]) DecodeTuple(values []Scalar) (T, error) {
	if f.Tuple == nil {
		var zero T
		return zero, &DecodeError{Phase: PhaseTuple, Path: "/", Reason: "tuple decoding not supported"}
	}
	return f.Tuple(values)
}

package codec

import "github.com/reoring/pathex"

// Map decodes with s and converts the result with fn. A conversion error
// fails the phase that produced the value, so Decode still falls back from
// record to tuple.
//
//	ids := codec.Map(pathex.Into[pathex.Tuple1[int64]](), func(t pathex.Tuple1[int64]) (UserID, error) {
//		return UserID(t.V0), nil
//	})
func Map[A, B any](s pathex.Shape[A], fn func(A) (B, error)) pathex.Shape[B] {
	return &mapShape[A, B]{inner: s, fn: fn}
}

type mapShape[A, B any] struct {
	inner pathex.Shape[A]
	fn    func(A) (B, error)
}

func (m *mapShape[A, B]) DecodeRecord(ps pathex.ParameterSet) (B, error) {
	a, err := m.inner.DecodeRecord(ps)
	if err != nil {
		var zero B
		return zero, err
	}
	return m.convert(pathex.PhaseRecord, a)
}

func (m *mapShape[A, B]) DecodeTuple(values []pathex.Scalar) (B, error) {
	a, err := m.inner.DecodeTuple(values)
	if err != nil {
		var zero B
		return zero, err
	}
	return m.convert(pathex.PhaseTuple, a)
}

func (m *mapShape[A, B]) convert(phase string, a A) (B, error) {
	b, err := m.fn(a)
	if err != nil {
		var zero B
		return zero, &pathex.DecodeError{Phase: phase, Path: "/", Reason: "convert", Cause: err}
	}
	return b, nil
}

package codec

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/reoring/pathex"
)

// JSONOption configures the JSON bridge.
type JSONOption func(*jsonConfig)

// DisallowUnknownFields rejects record parameters with no matching field.
func DisallowUnknownFields() JSONOption {
	return func(s *jsonConfig) { s.strict = true }
}

// JSON returns a Shape that decodes through a JSON round trip using
// goccy/go-json. The record phase encodes the parameters as an object, the
// tuple phase as an array ordered by parameter name; both are then
// unmarshaled into T.
//
// Field rules are those of encoding/json: missing fields keep their zero
// value and unknown parameters are ignored unless DisallowUnknownFields is
// set. Use Into when every field must be bound. Structs only decode in the tuple
// phase when they implement json.Unmarshaler.
func JSON[T any](opts ...JSONOption) pathex.Shape[T] {
	s := jsonConfig{}
	for _, o := range opts {
		o(&s)
	}
	return jsonBridge[T]{cfg: s}
}

type jsonConfig struct {
	strict bool
}

type jsonBridge[T any] struct {
	cfg jsonConfig
}

func (b jsonBridge[T]) DecodeRecord(ps pathex.ParameterSet) (T, error) {
	return b.roundTrip(pathex.PhaseRecord, ps)
}

func (b jsonBridge[T]) DecodeTuple(values []pathex.Scalar) (T, error) {
	if values == nil {
		values = []pathex.Scalar{}
	}
	return b.roundTrip(pathex.PhaseTuple, values)
}

func (b jsonBridge[T]) roundTrip(phase string, v any) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, &pathex.DecodeError{Phase: phase, Path: "/", Reason: "encode parameters", Cause: err}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if b.cfg.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, &pathex.DecodeError{Phase: phase, Path: "/", Reason: "decode into target", Cause: err}
	}
	return out, nil
}

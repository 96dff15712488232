// Package pathex extracts typed parameters from path-like strings using
// "{name}" templates.
//
// Package pathex provides:
//
// - Segment splitting and literal/placeholder matching (Split, ParsePattern, Match)
// - Best-effort scalar coercion of placeholder text (Coerce)
// - Decoding of the parameters into a caller type, as a record first and a
//   positional tuple second (Decode, Shape, Into)
// - A flat error model via *Error with stable codes
//
// Design policy:
// - Keep only public APIs in the root package; HTTP glue lives under
//   middleware/, alternative shapes under codec/, the CLI under cmd/pathex.
// - Every call is pure: no caching, no I/O, safe for concurrent use.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	type resource struct {
//		ID   int64  `path:"id"`
//		Name string `path:"name"`
//	}
//	r, err := pathex.ExtractInto[resource]("/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
//	if errors.Is(err, pathex.ErrMissingParams) || errors.Is(err, pathex.ErrInvalidFormat) {
//		// try the next template
//	}
//
// Tuple decoding orders values by parameter name, not by their position in
// the template.
package pathex

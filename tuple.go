package pathex

// Tuple types for positional decoding with Into. Slots are filled from
// parameter values in ascending parameter-name order.
//
//	t, err := pathex.ExtractInto[pathex.Tuple2[int64, string]](
//		"/dynamic/resource/42/axum", "/dynamic/resource/{id}/{name}")
//	// t.V0 == 42 ("id" < "name"), t.V1 == "axum"

type Tuple1[A any] struct {
	V0 A
}

type Tuple2[A, B any] struct {
	V0 A
	V1 B
}

type Tuple3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

type Tuple4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

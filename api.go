package pathex

// ExtractParams splits candidate and pattern and matches them. It fails
// with CodeMissingParams or CodeInvalidFormat.
func ExtractParams(candidate, pattern string) (ParameterSet, error) {
	return Match(Split(candidate), ParsePattern(pattern))
}

// Extract runs Split -> Match -> Decode. Any stage failure stops the
// pipeline and is returned as an *Error. Calls share no state; the pattern
// is parsed on every call.
func Extract[T any](candidate, pattern string, shape Shape[T]) (T, error) {
	ps, err := ExtractParams(candidate, pattern)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode(ps, shape)
}

// ExtractInto is Extract with the reflection shape Into[T]().
func ExtractInto[T any](candidate, pattern string) (T, error) {
	return Extract(candidate, pattern, Into[T]())
}

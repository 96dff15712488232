package pathex

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/reoring/pathex/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeMissingParams: candidate and pattern have different segment counts.
	CodeMissingParams = "missing_params"
	// CodeInvalidFormat: a literal pattern segment differs from the candidate.
	CodeInvalidFormat = "invalid_format"
	// CodeUnsupportedType: neither the record nor the tuple decode succeeded.
	CodeUnsupportedType = "unsupported_type"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrMissingParams   = &Error{Code: CodeMissingParams, Index: -1}
	ErrInvalidFormat   = &Error{Code: CodeInvalidFormat, Index: -1}
	ErrUnsupportedType = &Error{Code: CodeUnsupportedType, Index: -1}
)

// Error is the single failure type returned by extraction.
type Error struct {
	Code    string // One of the codes listed above.
	Index   int    // Offending segment index (-1 when not applicable).
	Message string
	// Cause carries the record and tuple decode failures for
	// CodeUnsupportedType, joined with errors.Join.
	Cause error
}

// Error renders "code: message" plus the segment index when known.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = i18n.T(e.Code, nil)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("%s at segment %d: %s", e.Code, e.Index, msg)
	}
	return e.Code + ": " + msg
}

// Unwrap exposes the decode cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func missingParams(got, want int) *Error {
	return &Error{
		Code:  CodeMissingParams,
		Index: -1,
		Message: i18n.T(CodeMissingParams, map[string]string{
			"expected": strconv.Itoa(want),
			"got":      strconv.Itoa(got),
		}),
	}
}

func invalidFormat(index int, want, got string) *Error {
	return &Error{
		Code:  CodeInvalidFormat,
		Index: index,
		Message: i18n.T(CodeInvalidFormat, map[string]string{
			"expected": strconv.Quote(want),
			"got":      strconv.Quote(got),
		}),
	}
}

func unsupportedType(recordErr, tupleErr error) *Error {
	return &Error{
		Code:    CodeUnsupportedType,
		Index:   -1,
		Message: i18n.T(CodeUnsupportedType, nil),
		Cause:   errors.Join(recordErr, tupleErr),
	}
}

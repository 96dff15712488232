// Package middleware exposes path extraction as net/http middleware and
// provides the context carriers and error payloads shared by the echo and
// gin adapters.
package middleware

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/pathex"
)

// ctxKeyParams is a typed context key for storing decoded parameters.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyParams[T any] struct{}

// ContextWithParams attaches decoded parameters to the context.
func ContextWithParams[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyParams[T]{}, v)
}

// ParamsFromContext retrieves parameters stored by ContextWithParams.
func ParamsFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyParams[T]{}).(T)
	return v, ok
}

// StatusFor maps an extraction error to an HTTP status. A path that does
// not fit the pattern is 404; parameters that do not fit the target are 400.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, pathex.ErrMissingParams), errors.Is(err, pathex.ErrInvalidFormat):
		return http.StatusNotFound
	case errors.Is(err, pathex.ErrUnsupportedType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorPayload shapes an extraction error for JSON responses.
func ErrorPayload(err error) map[string]any {
	if e, ok := pathex.AsError(err); ok {
		return map[string]any{"code": e.Code, "message": e.Error()}
	}
	return map[string]any{"code": "internal", "message": err.Error()}
}

// PathParams extracts pattern from r.URL.Path with shape and stores the
// result in the request context. On failure it writes the JSON payload with
// StatusFor's status and does not call next.
func PathParams[T any](pattern string, shape pathex.Shape[T]) func(http.Handler) http.Handler {
	p := pathex.ParsePattern(pattern)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := Extract(r.URL.Path, p, shape)
			if err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithParams(r.Context(), v)))
		})
	}
}

// Extract runs Match and Decode against a pre-parsed pattern. The adapters
// parse the pattern once when the middleware is built.
func Extract[T any](path string, p pathex.Pattern, shape pathex.Shape[T]) (T, error) {
	ps, err := pathex.Match(pathex.Split(path), p)
	if err != nil {
		var zero T
		return zero, err
	}
	return pathex.Decode(ps, shape)
}

// WriteError writes ErrorPayload(err) with StatusFor(err).
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(err))
	_ = json.NewEncoder(w).Encode(ErrorPayload(err))
}

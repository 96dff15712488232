package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/pathex"
	"github.com/reoring/pathex/middleware"
)

// PathParams extracts pattern from the request path with shape and stores
// the result in the request context. On failure it responds with
// middleware.StatusFor(err) and the JSON error payload.
func PathParams[T any](pattern string, shape pathex.Shape[T]) echo.MiddlewareFunc {
	p := pathex.ParsePattern(pattern)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.Extract(c.Request().URL.Path, p, shape)
			if err != nil {
				return c.JSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithParams(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetParams fetches the decoded parameters from echo.Context.
func GetParams[T any](c echo.Context) (T, bool) {
	return middleware.ParamsFromContext[T](c.Request().Context())
}

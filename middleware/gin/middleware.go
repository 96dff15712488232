package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/pathex"
	"github.com/reoring/pathex/middleware"
)

// PathParams extracts pattern from the request path with shape, stores the
// result in the request context, and aborts with middleware.StatusFor(err)
// and the JSON error payload on failure.
func PathParams[T any](pattern string, shape pathex.Shape[T]) gin.HandlerFunc {
	p := pathex.ParsePattern(pattern)
	return func(c *gin.Context) {
		v, err := middleware.Extract(c.Request.URL.Path, p, shape)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithParams(c.Request.Context(), v))
		c.Next()
	}
}

// GetParams fetches the decoded parameters from gin.Context.
func GetParams[T any](c *gin.Context) (T, bool) {
	return middleware.ParamsFromContext[T](c.Request.Context())
}

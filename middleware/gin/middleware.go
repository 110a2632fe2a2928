package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/dsl"
	"github.com/reoring/goserializer/middleware"
)

// ValidateJSON validates the request body with schema s using cfg (or
// middleware.DefaultConfig when zero), stores the normalized result in the
// request context, and on failure aborts with 400 and the error payload.
func ValidateJSON(s *dsl.Schema, cfg middleware.Config) gin.HandlerFunc {
	if cfg == (middleware.Config{}) {
		cfg = middleware.DefaultConfig()
	}
	return func(c *gin.Context) {
		out, err := middleware.Decode(c.Request, s, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithResult(c.Request.Context(), out))
		c.Next()
	}
}

// GetRecord fetches the validated record from gin.Context.
func GetRecord(c *gin.Context) (*goserializer.Record, bool) {
	return middleware.RecordFromContext(c.Request.Context())
}

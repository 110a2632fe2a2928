package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/dsl"
	"github.com/reoring/goserializer/middleware"
)

// ValidateJSON validates the request body with schema s, stores the
// normalized result in the request context on success, or returns 400
// with the error payload.
func ValidateJSON(s *dsl.Schema, cfg middleware.Config) echo.MiddlewareFunc {
	if cfg == (middleware.Config{}) {
		cfg = middleware.DefaultConfig()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			out, err := middleware.Decode(c.Request(), s, cfg)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithResult(c.Request().Context(), out)))
			return next(c)
		}
	}
}

// GetRecord fetches the validated record from echo.Context.
func GetRecord(c echo.Context) (*goserializer.Record, bool) {
	return middleware.RecordFromContext(c.Request().Context())
}

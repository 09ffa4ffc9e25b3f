package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/core/reqctx"
)

// RequestContext gives every inbound request a fresh, anonymous request
// context before any other handler runs. It must be the first middleware.
// The context value is immutable and dies with the request, so nothing is
// left to clear when a handler fails or panics.
func RequestContext(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(reqctx.Init(req.Context())))

			log.Trace().Str("path", req.URL.Path).Msg("> request context initialised")
			err := next(c)
			log.Trace().Str("path", req.URL.Path).Msg("< request context released")
			return err
		}
	}
}

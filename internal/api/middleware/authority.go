package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// RequireAuthority narrows a route beyond the path policy: the principal
// must hold at least one of the given authorities. It must run after Auth.
func RequireAuthority(authorities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, a := range authorities {
				if p.HasAuthority(a) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "access forbidden").SetInternal(domain.ErrForbidden)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pacemaker/pkg/auth"
)

// RequireUser rejects anonymous requests with 401.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := auth.CurrentIdentity(c); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
			}
			return next(c)
		}
	}
}

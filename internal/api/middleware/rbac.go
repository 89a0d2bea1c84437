package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/opsconsole/admin-api/internal/core/domain"
)

// RequireRole enforces the access gate at the route level. It assumes the
// Session middleware ran first; a missing user means it did not.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*domain.User)
			if !ok || user == nil {
				return domain.ErrUnauthenticated
			}
			if !user.Role.Satisfies(required) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

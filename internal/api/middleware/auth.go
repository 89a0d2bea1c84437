package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/opsconsole/admin-api/internal/core/domain"
	"github.com/opsconsole/admin-api/internal/core/ports"
)

// Context keys set by the Session middleware.
const (
	ContextUserKey    = "user"
	ContextSessionKey = "session"
)

// Session resolves the bearer token on every request and injects the
// resolved user and session into the context. This is the only place the
// transport credential is interpreted; everything downstream operates on the
// resolved (user, role) pair.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}

			user, session, err := auth.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextSessionKey, session)
			return next(c)
		}
	}
}

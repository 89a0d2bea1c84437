package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/opsconsole/admin-api/internal/api/middleware"
	"github.com/opsconsole/admin-api/internal/core/domain"
)

// sessionIdentity extracts the resolved user and session injected by the
// Session middleware. Their presence proves the middleware ran; a protected
// handler reached without them is a wiring bug, reported as 401 rather than
// a panic.
func sessionIdentity(c echo.Context) (*domain.User, *domain.Session, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, nil, domain.ErrUnauthenticated
	}
	session, ok := c.Get(middleware.ContextSessionKey).(*domain.Session)
	if !ok || session == nil {
		return nil, nil, domain.ErrUnauthenticated
	}
	return user, session, nil
}

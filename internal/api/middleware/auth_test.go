package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/opsconsole/admin-api/internal/api"
	"github.com/opsconsole/admin-api/internal/api/middleware"
	"github.com/opsconsole/admin-api/internal/core/domain"
)

// stubAuthService resolves a single known token.
type stubAuthService struct {
	token   string
	user    *domain.User
	session *domain.Session
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) Resolve(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	if token != s.token {
		return nil, nil, domain.ErrUnauthenticated
	}
	return s.user, s.session, nil
}

func newAuthStub(role domain.Role) *stubAuthService {
	now := time.Now().UTC()
	return &stubAuthService{
		token:   "tok-valid",
		user:    &domain.User{ID: "u1", Username: "alice", Role: role},
		session: &domain.Session{ID: "tok-valid", UserID: "u1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)},
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession_ValidToken(t *testing.T) {
	e := newTestEcho()
	e.GET("/protected", func(c echo.Context) error {
		user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
		if !ok || user == nil {
			t.Fatalf("user missing from context")
		}
		session, ok := c.Get(middleware.ContextSessionKey).(*domain.Session)
		if !ok || session == nil {
			t.Fatalf("session missing from context")
		}
		return c.String(http.StatusOK, user.Username)
	}, middleware.Session(newAuthStub(domain.RoleUser)))

	rec := doRequest(e, "Bearer tok-valid")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if rec.Body.String() != "alice" {
		t.Fatalf("unexpected body %q", rec.Body)
	}
}

func TestSession_CaseInsensitiveScheme(t *testing.T) {
	e := newTestEcho()
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, middleware.Session(newAuthStub(domain.RoleUser)))

	rec := doRequest(e, "bearer tok-valid")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_Rejections(t *testing.T) {
	e := newTestEcho()
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, middleware.Session(newAuthStub(domain.RoleUser)))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic tok-valid"},
		{"no token", "Bearer"},
		{"unknown token", "Bearer tok-revoked"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(e, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body)
			}
		})
	}
}

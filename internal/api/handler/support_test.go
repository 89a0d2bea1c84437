package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/opsconsole/admin-api/internal/api"
	"github.com/opsconsole/admin-api/internal/api/handler"
	"github.com/opsconsole/admin-api/internal/api/middleware"
	"github.com/opsconsole/admin-api/internal/core/domain"
	"github.com/opsconsole/admin-api/internal/core/ports"
)

// stubAuth implements ports.AuthService over a fixed token table.
type stubAuth struct {
	users    map[string]*domain.User // keyed by token
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	logouts  []string
	logoutFn func(ctx context.Context, sessionID string) error
}

func newStubAuth() *stubAuth {
	return &stubAuth{users: make(map[string]*domain.User)}
}

func (s *stubAuth) grant(token string, user *domain.User) { s.users[token] = user }

func (s *stubAuth) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, username, password)
	}
	return "", nil, domain.ErrInvalidCredentials
}

func (s *stubAuth) Logout(ctx context.Context, sessionID string) error {
	s.logouts = append(s.logouts, sessionID)
	if s.logoutFn != nil {
		return s.logoutFn(ctx, sessionID)
	}
	return nil
}

func (s *stubAuth) Resolve(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, nil, domain.ErrUnauthenticated
	}
	now := time.Now().UTC()
	session := &domain.Session{ID: token, UserID: user.ID, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	return user, session, nil
}

// stubDirectory implements ports.DirectoryService through function fields so
// each test controls exactly the behavior it asserts.
type stubDirectory struct {
	listFn           func(ctx context.Context, caller *domain.User) ([]domain.User, error)
	createFn         func(ctx context.Context, caller *domain.User, in ports.CreateUserInput) (*domain.User, error)
	updateFn         func(ctx context.Context, caller *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error)
	changePasswordFn func(ctx context.Context, caller *domain.User, callerSessionID, id, newPassword string) (int, error)
	deleteFn         func(ctx context.Context, caller *domain.User, id string) (int, error)
}

func (s *stubDirectory) List(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	return s.listFn(ctx, caller)
}

func (s *stubDirectory) Create(ctx context.Context, caller *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubDirectory) Update(ctx context.Context, caller *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubDirectory) ChangePassword(ctx context.Context, caller *domain.User, callerSessionID, id, newPassword string) (int, error) {
	return s.changePasswordFn(ctx, caller, callerSessionID, id, newPassword)
}

func (s *stubDirectory) Delete(ctx context.Context, caller *domain.User, id string) (int, error) {
	return s.deleteFn(ctx, caller, id)
}

// newTestApp wires handlers onto an echo instance the same way the router
// does, minus the infrastructure-backed pieces.
func newTestApp(auth *stubAuth, directory *stubDirectory) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	sessionMW := middleware.Session(auth)

	authHandler := handler.NewAuthHandler(auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, sessionMW)
	e.GET("/auth/me", authHandler.Me, sessionMW)

	if directory != nil {
		adminMW := middleware.RequireRole(domain.RoleAdmin)
		userHandler := handler.NewUserHandler(directory)
		users := e.Group("/users", sessionMW)
		users.GET("", userHandler.List, adminMW)
		users.POST("", userHandler.Create, adminMW)
		users.PUT("/:id", userHandler.Update, adminMW)
		users.DELETE("/:id", userHandler.Delete, adminMW)
		users.POST("/:id/change-password", userHandler.ChangePassword)
	}
	return e
}

func do(e *echo.Echo, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body, err)
	}
}

func adminUser() *domain.User {
	return &domain.User{ID: "u-admin", Username: "root", Role: domain.RoleAdmin, CreatedAt: time.Now().UTC()}
}

func regularUser() *domain.User {
	return &domain.User{ID: "u-alice", Username: "alice", Role: domain.RoleUser, CreatedAt: time.Now().UTC()}
}

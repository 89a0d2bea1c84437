package ports

import (
	"context"

	"github.com/opsconsole/admin-api/internal/core/domain"
)

// AuthService establishes, resolves, and tears down sessions.
//
// Transport policy: the session credential is an opaque bearer token the
// caller re-presents on every request. The token is the session id itself —
// a fixed-length, cryptographically random value — so possession of the
// token is possession of the session. Handlers and services below the
// transport boundary only ever see the resolved user and session.
type AuthService interface {
	// Login verifies the credentials and issues a new session, returning
	// the bearer token and the authenticated user. Fails with
	// domain.ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	// Logout revokes the session behind the token. Idempotent.
	Logout(ctx context.Context, token string) error

	// Resolve maps a bearer token to the live user it denotes. Fails with
	// domain.ErrUnauthenticated when the session is absent, expired,
	// revoked, or its user has been deleted.
	Resolve(ctx context.Context, token string) (*domain.User, *domain.Session, error)
}

package ports

import (
	"context"

	"github.com/opsconsole/admin-api/internal/core/domain"
)

// SessionStore tracks live sessions server-side. Sessions are owned by the
// store; the user they reference is not.
//
// Revocation ordering contract: once Delete, DeleteAllForUser, or
// DeleteOthersForUser returns, every Get issued afterwards observes the
// revoked state.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error

	// Get returns the active session for id, or domain.ErrUnauthenticated
	// when the id is unknown, expired, or revoked.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete revokes a single session. Revoking an unknown or already
	// revoked session is a no-op, not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAllForUser revokes every session referencing userID and
	// reports how many were revoked.
	DeleteAllForUser(ctx context.Context, userID string) (int, error)

	// DeleteOthersForUser revokes every session of userID except keepID
	// and reports how many were revoked. An empty keepID revokes them all.
	DeleteOthersForUser(ctx context.Context, userID, keepID string) (int, error)
}

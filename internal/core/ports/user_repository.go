package ports

import (
	"context"

	"github.com/opsconsole/admin-api/internal/core/domain"
)

// UserPatch carries the mutable fields of a user record. Nil means "leave
// unchanged".
type UserPatch struct {
	Username *string
	Role     *domain.Role
}

// UserRepository defines the persistence contract for the user directory.
//
// Implementations must enforce username uniqueness at the storage layer so
// that exactly one of two racing inserts or renames wins; the loser observes
// domain.ErrUsernameTaken.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	// Insert persists a new user. The ID is assigned when empty.
	Insert(ctx context.Context, user *domain.User) error

	// Update applies the patch and returns the updated record.
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)

	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
}

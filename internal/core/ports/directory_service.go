package ports

import (
	"context"

	"github.com/opsconsole/admin-api/internal/core/domain"
)

// CreateUserInput carries the fields for a new directory entry.
type CreateUserInput struct {
	Username string
	Password string
	Role     domain.Role
}

// UpdateUserInput mirrors UserPatch at the service boundary.
type UpdateUserInput struct {
	Username *string
	Role     *domain.Role
}

// DirectoryService exposes CRUD over the user directory. Every operation
// takes the resolved caller and consults the access gate before touching
// the store.
type DirectoryService interface {
	// List returns all live users. Requires admin.
	List(ctx context.Context, caller *domain.User) ([]domain.User, error)

	// Create adds a user. Requires admin.
	Create(ctx context.Context, caller *domain.User, in CreateUserInput) (*domain.User, error)

	// Update changes username and/or role. Requires admin. Demoting the
	// sole remaining admin fails with domain.ErrLastAdmin.
	Update(ctx context.Context, caller *domain.User, id string, in UpdateUserInput) (*domain.User, error)

	// ChangePassword rotates a password and reports how many sessions were
	// revoked. Allowed for admins on any user and for any user on their
	// own account. Every other session of the target user is revoked;
	// callerSessionID survives when the caller rotates their own password.
	ChangePassword(ctx context.Context, caller *domain.User, callerSessionID, id, newPassword string) (int, error)

	// Delete removes a user, revokes all their sessions, and reports how
	// many were revoked. Requires admin. Deleting the sole remaining admin
	// fails with domain.ErrLastAdmin.
	Delete(ctx context.Context, caller *domain.User, id string) (int, error)
}

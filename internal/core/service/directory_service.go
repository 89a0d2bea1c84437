package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/opsconsole/admin-api/internal/core/domain"
	"github.com/opsconsole/admin-api/internal/core/ports"
)

// DirectoryService implements CRUD over the user directory. Authorization is
// decided here, against the resolved caller, before any store access.
type DirectoryService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewDirectoryService(users ports.UserRepository, sessions ports.SessionStore, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{users: users, sessions: sessions, logger: logger}
}

func (s *DirectoryService) List(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if !caller.Role.Satisfies(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *DirectoryService) Create(ctx context.Context, caller *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if !caller.Role.Satisfies(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unrecognized role %q", domain.ErrInvalidInput, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Str("created_by", caller.Username).Msg("user created")
	return user, nil
}

func (s *DirectoryService) Update(ctx context.Context, caller *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !caller.Role.Satisfies(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if in.Username == nil && in.Role == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if in.Username != nil && *in.Username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unrecognized role %q", domain.ErrInvalidInput, *in.Role)
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Demoting the only admin would leave zero administrators, the same
	// lockout the delete guard prevents.
	if in.Role != nil && target.Role == domain.RoleAdmin && *in.Role != domain.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}

	updated, err := s.users.Update(ctx, id, ports.UserPatch{Username: in.Username, Role: in.Role})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("updated_by", caller.Username).Msg("user updated")
	return updated, nil
}

func (s *DirectoryService) ChangePassword(ctx context.Context, caller *domain.User, callerSessionID, id, newPassword string) (int, error) {
	// Identity check first: a non-admin targeting another account gets
	// Forbidden, never NotFound — they already know their own id exists.
	if !caller.Role.Satisfies(domain.RoleAdmin) && caller.ID != id {
		return 0, domain.ErrForbidden
	}
	if newPassword == "" {
		return 0, fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, id, string(hash)); err != nil {
		return 0, err
	}

	// Rotation kills every other session of the target. When the caller is
	// rotating their own password, the session doing the rotation survives.
	keep := ""
	if caller.ID == id {
		keep = callerSessionID
	}
	revoked, err := s.sessions.DeleteOthersForUser(ctx, id, keep)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions after password change: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("changed_by", caller.Username).Int("sessions_revoked", revoked).Msg("password changed")
	return revoked, nil
}

func (s *DirectoryService) Delete(ctx context.Context, caller *domain.User, id string) (int, error) {
	if !caller.Role.Satisfies(domain.RoleAdmin) {
		return 0, domain.ErrForbidden
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if target.Role == domain.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return 0, err
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return 0, err
	}
	// No session may outlive its user.
	revoked, err := s.sessions.DeleteAllForUser(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions after delete: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("username", target.Username).Str("deleted_by", caller.Username).Int("sessions_revoked", revoked).Msg("user deleted")
	return revoked, nil
}

// ensureNotLastAdmin is check-then-act: two concurrent removals of two
// different admins can both observe a count of 2 and leave zero admins.
// Closing that window needs a multi-document Mongo transaction; the guard
// holds under a single writer.
func (s *DirectoryService) ensureNotLastAdmin(ctx context.Context) error {
	n, err := s.users.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n <= 1 {
		return domain.ErrLastAdmin
	}
	return nil
}

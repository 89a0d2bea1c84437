package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/opsconsole/admin-api/internal/core/domain"
	"github.com/opsconsole/admin-api/internal/core/ports"
)

const seedPasswordBytes = 16

// EnsureAdmin creates the initial admin account on first boot when the
// directory is empty. With an empty password a random one is generated and
// logged once — it must be changed immediately. Returns the created user, or
// nil when seeding was skipped.
func EnsureAdmin(ctx context.Context, users ports.UserRepository, username, password string, logger zerolog.Logger) (*domain.User, error) {
	count, err := users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	if username == "" {
		username = "admin"
	}

	generated := false
	if password == "" {
		raw := make([]byte, seedPasswordBytes)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("generate seed password: %w", err)
		}
		password = hex.EncodeToString(raw)
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Insert(ctx, admin); err != nil {
		return nil, fmt.Errorf("create seed admin: %w", err)
	}

	ev := logger.Warn().Str("username", username)
	if generated {
		ev = ev.Str("password", password).Str("action_required", "change this password immediately")
	}
	ev.Msg("seed admin account created")

	return admin, nil
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/opsconsole/admin-api/internal/core/domain"
	"github.com/opsconsole/admin-api/internal/core/ports"
)

// sessionTokenBytes is the entropy of a session token before encoding.
const sessionTokenBytes = 32

// dummyHash is a valid bcrypt hash of an unguessable value. Login compares
// against it when the username is unknown so that the unknown-username and
// wrong-password paths cost the same; both return ErrInvalidCredentials.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("login-timing-equalizer"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService implements session establishment, resolution, and teardown.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, sessionTTL: sessionTTL, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("mint session token: %w", err)
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        token,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("login")
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	if token == "" {
		return nil, nil, domain.ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The referenced user is gone; the session must not outlive it.
			_ = s.sessions.Delete(ctx, token)
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, err
	}

	return user, session, nil
}

// newSessionToken returns a fixed-length, cryptographically unpredictable
// session identifier encoded as unpadded base64url.
func newSessionToken() (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

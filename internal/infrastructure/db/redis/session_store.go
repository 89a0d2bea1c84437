package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsconsole/admin-api/internal/core/domain"
)

// SessionStore keeps live sessions in Redis.
//
// Layout:
//
//	session:<id>        JSON session record, TTL = remaining lifetime
//	sessions:user:<uid> set of the user's session ids, for bulk revocation
//
// Redis DEL is linearizable per key, so once a revocation call returns every
// subsequent Get observes the revoked state.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id string) string       { return "session:" + id }
func userSessionsKey(uid string) string { return "sessions:user:" + uid }

func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", session.ExpiresAt)
	}

	blob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), blob, ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.ID)
	// The index set must live at least as long as its longest session; a
	// stale member in it is harmless, a missing one would orphan a session.
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	blob, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	// The TTL already bounds the lifetime; the explicit check covers clock
	// drift between the issuing process and Redis.
	if !session.Active(time.Now().UTC()) {
		return nil, domain.ErrUnauthenticated
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	blob, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil // already gone, revocation is idempotent
		}
		return fmt.Errorf("delete session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		// Corrupt record: drop the key anyway.
		return s.client.Del(ctx, sessionKey(id)).Err()
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, userSessionsKey(session.UserID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteAllForUser(ctx context.Context, userID string) (int, error) {
	return s.deleteForUser(ctx, userID, "")
}

func (s *SessionStore) DeleteOthersForUser(ctx context.Context, userID, keepID string) (int, error) {
	return s.deleteForUser(ctx, userID, keepID)
}

func (s *SessionStore) deleteForUser(ctx context.Context, userID, keepID string) (int, error) {
	ids, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("list user sessions: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	pipe := s.client.TxPipeline()
	dels := make([]*redis.IntCmd, 0, len(ids))
	for _, id := range ids {
		if id == keepID {
			continue
		}
		dels = append(dels, pipe.Del(ctx, sessionKey(id)))
		pipe.SRem(ctx, userSessionsKey(userID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("revoke user sessions: %w", err)
	}

	// The index set may hold ids whose session key already expired; count
	// only the keys DEL actually removed.
	revoked := 0
	for _, del := range dels {
		revoked += int(del.Val())
	}
	return revoked, nil
}

package domain

import "time"

// Session is the ephemeral proof of authentication. It references a user but
// does not own it: deleting the user revokes every session pointing at it.
//
// Lifecycle: Active → Expired (time-driven) or Active → Revoked (logout,
// password rotation, user deletion). Neither terminal state can be left; a
// caller presenting a non-active session id is treated as unauthenticated.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the session is still valid at the given instant.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

package domain

import "time"

// Role is the coarse capability tier attached to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the recognised roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Satisfies is the single authorization rule of the system: a role satisfies
// a requirement iff it is admin or matches the requirement exactly. Every
// access decision goes through this method; no caller compares roles inline.
func (r Role) Satisfies(required Role) bool {
	return r == RoleAdmin || r == required
}

// User models an account in the directory. The password hash is opaque and
// never serialized outward.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

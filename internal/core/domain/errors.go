package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP statuses by the
// transport layer. Repositories and stores raise the specific kind; services
// never downgrade them to generic errors.
var (
	// ErrInvalidCredentials is returned by login only. It is deliberately
	// uninformative: an unknown username and a wrong password produce the
	// same error, in the same amount of time.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means no session, or an expired/revoked one.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the caller is authenticated but the access gate
	// denied the operation.
	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidInput  = errors.New("invalid input")

	// ErrLastAdmin guards against removing or demoting the only remaining
	// admin, which would lock every administrative operation out forever.
	ErrLastAdmin = errors.New("cannot remove the last admin")
)

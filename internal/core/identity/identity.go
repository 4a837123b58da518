package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when a session token does not resolve to a user.
var ErrUnauthenticated = errors.New("unauthenticated")

// User is the identity this system reads. Account management lives entirely
// in the external provider; only the fields needed for ordering are exposed.
type User struct {
	// Email is the primary email address and the key cart rows are stored under.
	Email string `json:"email"`
	// FullName is the display name, used to prefill delivery details.
	FullName string `json:"full_name,omitempty"`
	// Phone is the primary phone number, if the provider has one.
	Phone string `json:"phone,omitempty"`
}

// Provider resolves a session token into the current user.
// This is a Secondary Port (Driven Port).
type Provider interface {
	// CurrentUser returns the user the token belongs to,
	// or ErrUnauthenticated when the token is invalid or expired.
	CurrentUser(ctx context.Context, token string) (*User, error)
}

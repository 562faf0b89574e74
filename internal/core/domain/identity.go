package domain

import "time"

// Identity represents a login-capable account from the auth provider.
// These records are created by the provider and are read-only here.
type Identity struct {
	ID             string
	Email          string
	FullName       *string // Nullable
	EmailConfirmed bool
	CreatedAt      time.Time
	LastSignInAt   *time.Time // Nullable, nil means never signed in
}

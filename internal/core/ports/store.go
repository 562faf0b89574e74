package ports

import (
	"ImaniConsole/internal/core/domain"
	"context"
	"time"
)

// IdentityDirectory lists login accounts from the auth provider.
// Listing is a privileged operation and may fail with
// domain.ErrPermissionDenied; callers are expected to degrade, not abort.
type IdentityDirectory interface {
	List(ctx context.Context) ([]domain.Identity, error)
}

// ProfileRepository defines the persistence operations for seller profiles.
type ProfileRepository interface {
	// List returns all profiles, newest first.
	List(ctx context.Context) ([]domain.Profile, error)

	// ApproveSeller marks a pending profile verified and promotes its
	// role flag in a single conditional update. Returns
	// domain.ErrConflict when the profile is no longer pending review.
	ApproveSeller(ctx context.Context, id string, at time.Time) error

	// RejectSeller marks a pending profile rejected. The role flag is
	// left untouched. Returns domain.ErrConflict when the profile is no
	// longer pending review.
	RejectSeller(ctx context.Context, id string, at time.Time) error
}

// ListingRepository defines the persistence operations for listings.
type ListingRepository interface {
	// List returns all listings, newest first.
	List(ctx context.Context) ([]domain.Listing, error)

	// SetState moves a pending listing to the given terminal state.
	// The update is conditional on the listing still being pending;
	// domain.ErrConflict is returned when it is not.
	SetState(ctx context.Context, id string, state domain.ProductState, at time.Time) error
}

// NotificationRepository writes user-facing notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
}

package console

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Notification content for listing transitions.
const (
	keyProductApproved = "notifications.messages.productApproved"
	keyProductRejected = "notifications.messages.productRejected"
	notificationType   = "product"
	myItemsURL         = "/(tabs)/profile?tab=myItems"
)

// Engine executes moderation transitions: the remote write is awaited and
// observed before any local patch or notification, so patches never race
// ahead of confirmed writes. A single busy flag serializes all moderation
// calls; it is an operational guard for the one-operator surface, not a
// per-entity lock.
type Engine struct {
	log      zerolog.Logger
	view     *View
	profiles ports.ProfileRepository
	listings ports.ListingRepository
	notifier *Notifier
	bus      ports.EventBus
	busy     atomic.Bool
	clock    func() time.Time
}

// NewEngine creates the moderation engine.
func NewEngine(
	view *View,
	profiles ports.ProfileRepository,
	listings ports.ListingRepository,
	notifier *Notifier,
	bus ports.EventBus,
	baseLogger *zerolog.Logger,
) *Engine {
	return &Engine{
		log:      baseLogger.With().Str("component", "moderation").Logger(),
		view:     view,
		profiles: profiles,
		listings: listings,
		notifier: notifier,
		bus:      bus,
		clock:    time.Now,
	}
}

// ApproveListing moves a pending listing to active, patches the view and
// notifies the seller.
func (e *Engine) ApproveListing(ctx context.Context, id string) (*domain.Listing, error) {
	return e.transitionListing(ctx, id, domain.ProductActive, keyProductApproved, ports.TopicListingApproved)
}

// RejectListing moves a pending listing to rejected, patches the view and
// notifies the seller.
func (e *Engine) RejectListing(ctx context.Context, id string) (*domain.Listing, error) {
	return e.transitionListing(ctx, id, domain.ProductRejected, keyProductRejected, ports.TopicListingRejected)
}

func (e *Engine) transitionListing(
	ctx context.Context,
	id string,
	target domain.ProductState,
	translationKey, topic string,
) (*domain.Listing, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer e.busy.Store(false)

	log := e.log.With().Str("listing_id", id).Str("target", string(target)).Logger()

	listing, ok := e.view.Listing(id)
	if !ok {
		log.Warn().Msg("Listing not in view, aborting before remote call")
		return nil, domain.ErrNotFound
	}
	if listing.ProductState != domain.ProductPending {
		log.Warn().Str("state", string(listing.ProductState)).Msg("Listing is not pending")
		return nil, domain.ErrNotPending
	}

	now := e.clock()
	if err := e.listings.SetState(ctx, id, target, now); err != nil {
		log.Error().Err(err).Msg("Remote listing update failed, no local patch applied")
		return nil, err
	}

	e.view.PatchListing(id, func(l domain.Listing) domain.Listing {
		l.ProductState = target
		l.UpdatedAt = now
		return l
	})
	updated, _ := e.view.Listing(id)

	log.Info().Msg("Listing transition applied")

	e.notifier.Emit(ctx, listing.SellerID, translationKey, notificationType,
		strPtr(myItemsURL), map[string]any{"productName": listing.Name})

	if err := e.bus.Publish(ctx, topic, &updated); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to publish moderation event")
	}
	return &updated, nil
}

// ApproveSeller marks a pending profile verified and promotes its role
// flag; both fields go out in one store update.
func (e *Engine) ApproveSeller(ctx context.Context, profileID string) (*domain.Profile, error) {
	return e.transitionSeller(ctx, profileID, true)
}

// RejectSeller marks a pending profile rejected. The role flag is left
// alone.
func (e *Engine) RejectSeller(ctx context.Context, profileID string) (*domain.Profile, error) {
	return e.transitionSeller(ctx, profileID, false)
}

func (e *Engine) transitionSeller(ctx context.Context, profileID string, approve bool) (*domain.Profile, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer e.busy.Store(false)

	action := "reject"
	if approve {
		action = "approve"
	}
	log := e.log.With().Str("profile_id", profileID).Str("action", action).Logger()

	profile, ok := e.view.Profile(profileID)
	if !ok {
		log.Warn().Msg("Profile not in view, aborting before remote call")
		return nil, domain.ErrNotFound
	}
	if profile.VerificationStatus != domain.VerificationPendingReview {
		log.Warn().Str("status", string(profile.VerificationStatus)).Msg("Profile is not pending review")
		return nil, domain.ErrNotPending
	}

	now := e.clock()
	var err error
	if approve {
		err = e.profiles.ApproveSeller(ctx, profileID, now)
	} else {
		err = e.profiles.RejectSeller(ctx, profileID, now)
	}
	if err != nil {
		log.Error().Err(err).Msg("Remote profile update failed, no local patch applied")
		return nil, err
	}

	e.view.PatchProfile(profileID, func(p domain.Profile) domain.Profile {
		if approve {
			p.VerificationStatus = domain.VerificationVerified
			p.UserRole = domain.RoleSellerVerified
		} else {
			p.VerificationStatus = domain.VerificationRejected
		}
		p.UpdatedAt = now
		return p
	})
	updated, _ := e.view.Profile(profileID)

	log.Info().Msg("Seller transition applied")

	topic := ports.TopicSellerRejected
	if approve {
		topic = ports.TopicSellerApproved
	}
	if err := e.bus.Publish(ctx, topic, &updated); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to publish moderation event")
	}
	return &updated, nil
}

func strPtr(s string) *string { return &s }

package telegram

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// OpsAlertHandler listens for moderation events on the bus and mirrors
// them into the operators' chat. It is a system component, not part of
// the moderation transition: a lost alert changes nothing.
type OpsAlertHandler struct {
	log    zerolog.Logger
	sender ports.AlertSender
}

// NewOpsAlertHandler creates the handler.
func NewOpsAlertHandler(sender ports.AlertSender, baseLogger *zerolog.Logger) *OpsAlertHandler {
	return &OpsAlertHandler{
		log:    baseLogger.With().Str("component", "ops_alerts").Logger(),
		sender: sender,
	}
}

// Register subscribes the handler to all moderation topics.
func (h *OpsAlertHandler) Register(bus ports.EventBus) {
	bus.Subscribe(ports.TopicListingApproved, h.handleListing("approved"))
	bus.Subscribe(ports.TopicListingRejected, h.handleListing("rejected"))
	bus.Subscribe(ports.TopicSellerApproved, h.handleSeller("approved"))
	bus.Subscribe(ports.TopicSellerRejected, h.handleSeller("rejected"))
}

func (h *OpsAlertHandler) handleListing(verb string) ports.EventHandler {
	return func(ctx context.Context, event ports.Event) error {
		listing, ok := event.Data.(*domain.Listing)
		if !ok {
			h.log.Error().Str("topic", event.Topic).Msg("Received invalid payload for listing event")
			return nil // Don't retry
		}
		text := fmt.Sprintf("Listing %s (%q) by seller %s", verb, listing.Name, listing.SellerID)
		if err := h.sender.Send(ctx, text); err != nil {
			return err
		}
		return nil
	}
}

func (h *OpsAlertHandler) handleSeller(verb string) ports.EventHandler {
	return func(ctx context.Context, event ports.Event) error {
		profile, ok := event.Data.(*domain.Profile)
		if !ok {
			h.log.Error().Str("topic", event.Topic).Msg("Received invalid payload for seller event")
			return nil // Don't retry
		}
		text := fmt.Sprintf("Seller %s: profile %s", verb, profile.ID)
		if err := h.sender.Send(ctx, text); err != nil {
			return err
		}
		return nil
	}
}

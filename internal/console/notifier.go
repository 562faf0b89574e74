package console

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier writes moderation notifications to the store. Emission is best
// effort by design: a failed insert is logged and swallowed so it can
// never roll back or fail the moderation transition that triggered it.
type Notifier struct {
	log   zerolog.Logger
	repo  ports.NotificationRepository
	clock func() time.Time
}

// NewNotifier creates the notification emitter.
func NewNotifier(repo ports.NotificationRepository, baseLogger *zerolog.Logger) *Notifier {
	return &Notifier{
		log:   baseLogger.With().Str("component", "notifier").Logger(),
		repo:  repo,
		clock: time.Now,
	}
}

// Emit inserts an unread notification for the recipient. Returns nil when
// the insert failed.
func (n *Notifier) Emit(
	ctx context.Context,
	recipientID, translationKey, typ string,
	actionURL *string,
	params map[string]any,
) *domain.Notification {
	notif := &domain.Notification{
		ID:                uuid.New(),
		UserID:            recipientID,
		TranslationKey:    translationKey,
		Type:              typ,
		Status:            domain.NotificationUnread,
		ActionURL:         actionURL,
		TranslationParams: params,
		CreatedAt:         n.clock(),
	}

	if err := n.repo.Insert(ctx, notif); err != nil {
		n.log.Error().Err(err).
			Str("user_id", recipientID).
			Str("translation_key", translationKey).
			Msg("Failed to create notification")
		return nil
	}

	n.log.Info().
		Str("user_id", recipientID).
		Str("translation_key", translationKey).
		Msg("Notification created")
	return notif
}

package postgres

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

type notificationRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.NotificationRepository = (*notificationRepository)(nil) // Ensure compliance

// NewNotificationRepository creates a new repository for user
// notifications.
func NewNotificationRepository(db *DB, baseLogger *zerolog.Logger) ports.NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: baseLogger.With().Str("component", "notification_repo").Logger(),
	}
}

// Insert writes a new notification row. translation_params is a jsonb
// column; pgx encodes the map directly.
func (r *notificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (
			id, user_id, translation_key, type, status, action_url,
			translation_params, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.pool.Exec(ctx, query,
		n.ID,
		n.UserID,
		n.TranslationKey,
		n.Type,
		n.Status,
		n.ActionURL,
		n.TranslationParams,
		n.CreatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", n.UserID).Msg("Failed to insert notification")
	}
	return err
}

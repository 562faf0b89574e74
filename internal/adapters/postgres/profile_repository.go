package postgres

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"time"

	"github.com/rs/zerolog"
)

type profileRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.ProfileRepository = (*profileRepository)(nil) // Ensure compliance

// NewProfileRepository creates a new repository for seller profiles.
func NewProfileRepository(db *DB, baseLogger *zerolog.Logger) ports.ProfileRepository {
	return &profileRepository{
		db:  db,
		log: baseLogger.With().Str("component", "profile_repo").Logger(),
	}
}

const profileQueryCols = `
	id, phone_number, city, address, birth_date, identity_type, identity_number,
	verification_status, user_role, profile_picture_url, identity_document_url,
	created_at, updated_at
`

// List returns all seller profiles, newest first.
func (r *profileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileQueryCols + ` FROM user_profiles ORDER BY created_at DESC`

	rows, err := r.db.pool.Query(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query profiles")
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var identityType, userRole *string
		if err := rows.Scan(
			&p.ID,
			&p.PhoneNumber,
			&p.City,
			&p.Address,
			&p.BirthDate,
			&identityType,
			&p.IdentityNumber,
			&p.VerificationStatus,
			&userRole,
			&p.ProfilePictureURL,
			&p.IdentityDocumentURL,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			r.log.Error().Err(err).Msg("Failed to scan profile row")
			return nil, err
		}
		p.IdentityType = domain.IdentityTypeNone
		if identityType != nil {
			p.IdentityType = domain.IdentityType(*identityType)
		}
		if userRole != nil {
			p.UserRole = *userRole
		}
		if p.VerificationStatus == "" {
			p.VerificationStatus = domain.VerificationNotSubmitted
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Msg("Profile row iteration failed")
		return nil, err
	}
	return profiles, nil
}

// ApproveSeller promotes a pending profile to verified and sets the
// seller role flag in one update. The WHERE clause re-checks the pending
// state so a concurrent operator cannot overwrite a finished review.
func (r *profileRepository) ApproveSeller(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE user_profiles
		SET verification_status = $2, user_role = $3, updated_at = $4
		WHERE id = $1 AND verification_status = $5
	`
	tag, err := r.db.pool.Exec(ctx, query,
		id,
		domain.VerificationVerified,
		domain.RoleSellerVerified,
		at,
		domain.VerificationPendingReview,
	)
	if err != nil {
		r.log.Error().Err(err).Str("profile_id", id).Msg("Failed to approve seller")
		return err
	}
	if tag.RowsAffected() == 0 {
		r.log.Warn().Str("profile_id", id).Msg("Approve matched no pending profile")
		return domain.ErrConflict
	}
	return nil
}

// RejectSeller marks a pending profile rejected; the role flag stays as it
// was.
func (r *profileRepository) RejectSeller(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE user_profiles
		SET verification_status = $2, updated_at = $3
		WHERE id = $1 AND verification_status = $4
	`
	tag, err := r.db.pool.Exec(ctx, query,
		id,
		domain.VerificationRejected,
		at,
		domain.VerificationPendingReview,
	)
	if err != nil {
		r.log.Error().Err(err).Str("profile_id", id).Msg("Failed to reject seller")
		return err
	}
	if tag.RowsAffected() == 0 {
		r.log.Warn().Str("profile_id", id).Msg("Reject matched no pending profile")
		return domain.ErrConflict
	}
	return nil
}

package postgres

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// insufficient_privilege: the connected role may not read the admin view.
const pgInsufficientPrivilege = "42501"

type identityDirectory struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.IdentityDirectory = (*identityDirectory)(nil) // Ensure compliance

// NewIdentityDirectory creates the directory over the admin-only
// auth_users_view. The view belongs to the auth provider; this side only
// reads it.
func NewIdentityDirectory(db *DB, baseLogger *zerolog.Logger) ports.IdentityDirectory {
	return &identityDirectory{
		db:  db,
		log: baseLogger.With().Str("component", "identity_directory").Logger(),
	}
}

// List returns all identities, newest first. A privilege rejection maps to
// domain.ErrPermissionDenied so the caller can fall back instead of abort.
func (d *identityDirectory) List(ctx context.Context) ([]domain.Identity, error) {
	query := `
		SELECT id, email, full_name, email_confirmed, created_at, last_sign_in_at
		FROM auth_users_view
		ORDER BY created_at DESC
	`
	rows, err := d.db.pool.Query(ctx, query)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgInsufficientPrivilege {
			d.log.Warn().Msg("Identity listing rejected: insufficient privilege")
			return nil, domain.ErrPermissionDenied
		}
		d.log.Error().Err(err).Msg("Failed to query identities")
		return nil, err
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		var id domain.Identity
		if err := rows.Scan(
			&id.ID,
			&id.Email,
			&id.FullName,
			&id.EmailConfirmed,
			&id.CreatedAt,
			&id.LastSignInAt,
		); err != nil {
			d.log.Error().Err(err).Msg("Failed to scan identity row")
			return nil, err
		}
		identities = append(identities, id)
	}
	if err := rows.Err(); err != nil {
		d.log.Error().Err(err).Msg("Identity row iteration failed")
		return nil, err
	}
	return identities, nil
}

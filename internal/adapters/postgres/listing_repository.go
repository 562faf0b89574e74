package postgres

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type listingRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.ListingRepository = (*listingRepository)(nil) // Ensure compliance

// NewListingRepository creates a new repository for product listings.
func NewListingRepository(db *DB, baseLogger *zerolog.Logger) ports.ListingRepository {
	return &listingRepository{
		db:  db,
		log: baseLogger.With().Str("component", "listing_repo").Logger(),
	}
}

const listingQueryCols = `
	id, seller_id, name, category, sub_category, price, location, condition,
	thumbnail, images, views, product_state, created_at, updated_at
`

// List returns all listings, newest first.
func (r *listingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT ` + listingQueryCols + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.pool.Query(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query listings")
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		var condition *string
		if err := rows.Scan(
			&l.ID,
			&l.SellerID,
			&l.Name,
			&l.Category,
			&l.SubCategory,
			&l.Price,
			&l.Location,
			&condition,
			&l.Thumbnail,
			&l.Images,
			&l.Views,
			&l.ProductState,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			r.log.Error().Err(err).Msg("Failed to scan listing row")
			return nil, err
		}
		l.Condition = domain.ConditionUnspecified
		if condition != nil {
			l.Condition = domain.Condition(*condition)
		}
		if l.Price < 0 {
			return nil, fmt.Errorf("listing %s has negative price %f", l.ID, l.Price)
		}
		if l.Views < 0 {
			l.Views = 0
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Msg("Listing row iteration failed")
		return nil, err
	}
	return listings, nil
}

// SetState moves a pending listing to a terminal state. Conditional on the
// listing still being pending; zero affected rows means another operator
// got there first.
func (r *listingRepository) SetState(ctx context.Context, id string, state domain.ProductState, at time.Time) error {
	query := `
		UPDATE products
		SET product_state = $2, updated_at = $3
		WHERE id = $1 AND product_state = $4
	`
	tag, err := r.db.pool.Exec(ctx, query, id, state, at, domain.ProductPending)
	if err != nil {
		r.log.Error().Err(err).Str("listing_id", id).Str("state", string(state)).Msg("Failed to update listing state")
		return err
	}
	if tag.RowsAffected() == 0 {
		r.log.Warn().Str("listing_id", id).Msg("Update matched no pending listing")
		return domain.ErrConflict
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const listingColumns = `id, title, description, price, area, location, property_type,
	contact_name, contact_phone, contact_email, images, status, user_id, created_at, updated_at`

// ListingRepository implements domain.ListingRepository on PostgreSQL.
type ListingRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

func NewListingRepository(pool *pgxpool.Pool, log *logger.Logger) (*ListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingRepository{pool: pool, logger: log.Named("PostgresListingRepository")}, nil
}

// parseUUID maps a malformed id to ErrNotFound.
func parseUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed id '%s'", domain.ErrNotFound, id)
	}
	return parsed, nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		l            domain.Listing
		id           uuid.UUID
		propertyType string
		status       string
	)
	err := row.Scan(&id, &l.Title, &l.Description, &l.Price, &l.Area, &l.Location, &propertyType,
		&l.ContactName, &l.ContactPhone, &l.ContactEmail, &l.Images, &status, &l.UserID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.ID = id.String()
	l.PropertyType = domain.PropertyType(propertyType)
	l.Status = domain.ListingStatus(status)
	if l.Images == nil {
		l.Images = []string{}
	}
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return &l, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	id := uuid.New()
	images := listing.Images
	if images == nil {
		images = []string{}
	}

	query := `INSERT INTO property_listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(ctx, query, id, listing.Title, listing.Description, listing.Price, listing.Area,
		listing.Location, string(listing.PropertyType), listing.ContactName, listing.ContactPhone,
		listing.ContactEmail, images, string(listing.Status), listing.UserID, listing.CreatedAt, listing.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert listing", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	listing.ID = id.String()
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `SELECT `+listingColumns+` FROM property_listings WHERE id = $1`, uid)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get listing", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("db select failed: %w", err)
	}
	return listing, nil
}

// Find returns all matching listings, newest first.
func (r *ListingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PropertyType != nil {
		args = append(args, string(*filter.PropertyType))
		conditions = append(conditions, fmt.Sprintf("property_type = $%d", len(args)))
	}

	query := `SELECT ` + listingColumns + ` FROM property_listings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query listings", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("db select failed: %w", err)
	}
	defer rows.Close()

	out := []*domain.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		out = append(out, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during listings iteration: %w", err)
	}
	return out, nil
}

// Update overwrites the editable fields and images. Status is untouched.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	uid, err := parseUUID(listing.ID)
	if err != nil {
		return err
	}
	images := listing.Images
	if images == nil {
		images = []string{}
	}

	query := `UPDATE property_listings SET
		title = $2, description = $3, price = $4, area = $5, location = $6, property_type = $7,
		contact_name = $8, contact_phone = $9, contact_email = $10, images = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, uid, listing.Title, listing.Description, listing.Price, listing.Area,
		listing.Location, string(listing.PropertyType), listing.ContactName, listing.ContactPhone,
		listing.ContactEmail, images, listing.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.Error(err), zap.String("listing_id", listing.ID))
		return fmt.Errorf("db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ListingStatus, updatedAt time.Time) error {
	uid, err := parseUUID(id)
	if err != nil {
		return err
	}
	// an empty $4 matches any stored status
	tag, err := r.pool.Exec(ctx,
		`UPDATE property_listings SET status = $2, updated_at = $3 WHERE id = $1 AND ($4::text = '' OR status = $4::text)`,
		uid, string(to), updatedAt, string(from))
	if err != nil {
		r.logger.Error("Failed to update listing status", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if from == "" {
		return domain.ErrNotFound
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM property_listings WHERE id = $1)`, uid).Scan(&exists); err != nil {
		return fmt.Errorf("db query failed: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: listing is no longer %s", domain.ErrInvalidTransition, from)
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	uid, err := parseUUID(id)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM property_listings WHERE id = $1`, uid)
	if err != nil {
		r.logger.Error("Failed to delete listing", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"ctchen222/ShareBnB/internal/api/apperror"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/db"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const listingColumns = `id, name, address, image, price, description, location, created, rented`

// ListingRepository defines the interface for listing data operations.
type ListingRepository interface {
	Search(ctx context.Context, location string) ([]models.Listing, error)
	GetListing(ctx context.Context, id int64) (*models.Listing, error)
	CreateListing(ctx context.Context, listing *models.Listing) error
	UpdateListing(ctx context.Context, listing *models.Listing) error
	DeleteListing(ctx context.Context, id int64) error
}

type sqlListingRepository struct {
	db      *sqlx.DB
	dialect db.Dialect
}

// NewListingRepository creates a new sqlx-based ListingRepository.
func NewListingRepository(conn *sqlx.DB, dialect db.Dialect) ListingRepository {
	return &sqlListingRepository{db: conn, dialect: dialect}
}

// Search returns every listing whose location contains the given term, ordered by id.
// An empty term returns all listings.
func (r *sqlListingRepository) Search(ctx context.Context, location string) ([]models.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingRepository.Search", trace.WithAttributes(
		attribute.String("listing.search", location),
	))
	defer span.End()

	query := `SELECT ` + listingColumns + ` FROM listings`
	var args []any
	if location != "" {
		query += ` WHERE ` + r.dialect.Contains("location")
		args = append(args, location)
	}
	query += ` ORDER BY id`

	listings := []models.Listing{}
	if err := r.db.SelectContext(ctx, &listings, r.db.Rebind(query), args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search listings")
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	span.SetAttributes(attribute.Int("listing.count", len(listings)))
	return listings, nil
}

// GetListing retrieves a listing by id.
func (r *sqlListingRepository) GetListing(ctx context.Context, id int64) (*models.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingRepository.GetListing", trace.WithAttributes(
		attribute.Int64("listing.id", id),
	))
	defer span.End()

	var listing models.Listing
	query := r.db.Rebind(`SELECT ` + listingColumns + ` FROM listings WHERE id = ?`)
	if err := r.db.GetContext(ctx, &listing, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get listing")
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// CreateListing inserts listing and sets its ID.
// An unknown creator yields apperror.ErrReference.
func (r *sqlListingRepository) CreateListing(ctx context.Context, listing *models.Listing) error {
	ctx, span := tracer.Start(ctx, "ListingRepository.CreateListing", trace.WithAttributes(
		attribute.String("listing.created", listing.Created),
	))
	defer span.End()

	query := r.db.Rebind(`INSERT INTO listings (name, address, image, price, description, location, created, rented)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		listing.Name, listing.Address, listing.Image, listing.Price, listing.Description,
		listing.Location, listing.Created, listing.Rented,
	).Scan(&listing.ID)
	if err != nil {
		err = translateError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create listing")
		return fmt.Errorf("failed to create listing: %w", err)
	}
	span.SetAttributes(attribute.Int64("listing.id", listing.ID))
	return nil
}

// UpdateListing writes the mutable fields of listing: address, image, price and description.
func (r *sqlListingRepository) UpdateListing(ctx context.Context, listing *models.Listing) error {
	ctx, span := tracer.Start(ctx, "ListingRepository.UpdateListing", trace.WithAttributes(
		attribute.Int64("listing.id", listing.ID),
	))
	defer span.End()

	query := r.db.Rebind(`UPDATE listings SET address = ?, image = ?, price = ?, description = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		listing.Address, listing.Image, listing.Price, listing.Description, listing.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update listing")
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return expectAffected(res.RowsAffected())
}

// DeleteListing removes a listing and, through ON DELETE CASCADE, its messages.
func (r *sqlListingRepository) DeleteListing(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "ListingRepository.DeleteListing", trace.WithAttributes(
		attribute.Int64("listing.id", id),
	))
	defer span.End()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM listings WHERE id = ?`), id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete listing")
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return expectAffected(res.RowsAffected())
}

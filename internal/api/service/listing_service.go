package service

import (
	"context"
	"ctchen222/ShareBnB/internal/api/apperror"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/repository"
	"ctchen222/ShareBnB/internal/storage"
	"ctchen222/ShareBnB/internal/validator"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// maxPrice is the first value that no longer fits NUMERIC(10, 2).
var maxPrice = decimal.New(1, 8)

// ListingService defines the interface for listing business logic.
type ListingService interface {
	Search(ctx context.Context, location string) ([]models.Listing, error)
	GetListing(ctx context.Context, id int64) (*models.Listing, error)
	CreateListing(ctx context.Context, in *models.NewListing) (*models.Listing, error)
	UpdateListing(ctx context.Context, id int64, req *models.UpdateListingRequest) (*models.Listing, error)
	DeleteListing(ctx context.Context, id int64) error
}

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	store       storage.ObjectStore
}

// NewListingService creates a new ListingService that keeps images in store.
func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository, store storage.ObjectStore) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		store:       store,
	}
}

func (s *listingService) Search(ctx context.Context, location string) ([]models.Listing, error) {
	return s.listingRepo.Search(ctx, location)
}

func (s *listingService) GetListing(ctx context.Context, id int64) (*models.Listing, error) {
	return s.listingRepo.GetListing(ctx, id)
}

// CreateListing uploads the image, if any, and stores the listing.
// The creator must exist; otherwise apperror.ErrReference is returned and nothing is uploaded.
func (s *listingService) CreateListing(ctx context.Context, in *models.NewListing) (*models.Listing, error) {
	if err := validator.Struct(ctx, in); err != nil {
		return nil, err
	}
	price, err := checkPrice(in.Price)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByUsername(ctx, in.CreatedBy); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperror.ErrReference, in.CreatedBy)
		}
		return nil, err
	}

	image := models.DefaultImage
	var imageKey string
	if in.Image != nil {
		imageKey = storage.ListingImageKey(in.Image.Filename)
		image, err = s.store.Put(ctx, imageKey, in.Image.Body, in.Image.Size, in.Image.ContentType)
		if err != nil {
			return nil, err
		}
	}

	listing := &models.Listing{
		Name:        in.Name,
		Address:     in.Address,
		Image:       image,
		Price:       price,
		Description: in.Description,
		Location:    in.Location,
		Created:     in.CreatedBy,
	}
	if err := s.listingRepo.CreateListing(ctx, listing); err != nil {
		if imageKey != "" {
			s.discardImage(ctx, imageKey)
		}
		return nil, err
	}

	listingCounter.Add(ctx, 1)
	slog.InfoContext(ctx, "Listing created", "listing.id", listing.ID, "user.username", listing.Created)
	return listing, nil
}

// discardImage removes an image whose listing was never stored. It runs even when
// the request context is already cancelled.
func (s *listingService) discardImage(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.store.Delete(ctx, key); err != nil {
		slog.ErrorContext(ctx, "Orphaned listing image left in storage", "storage.key", key, "error", err)
	}
}

// UpdateListing changes address, image, price and description. Name, location and
// creator cannot change. Any authenticated user may update any listing.
func (s *listingService) UpdateListing(ctx context.Context, id int64, req *models.UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.listingRepo.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		listing.Address = *req.Address
	}
	if req.Image != nil {
		listing.Image = *req.Image
	}
	if req.Price != nil {
		price, err := checkPrice(*req.Price)
		if err != nil {
			return nil, err
		}
		listing.Price = price
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}

	if err := s.listingRepo.UpdateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing removes a listing and its messages.
func (s *listingService) DeleteListing(ctx context.Context, id int64) error {
	return s.listingRepo.DeleteListing(ctx, id)
}

func checkPrice(price decimal.Decimal) (decimal.Decimal, error) {
	price = price.Round(2)
	if price.IsNegative() || price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: price %s out of range", apperror.ErrValidation, price)
	}
	return price, nil
}

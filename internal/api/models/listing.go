package models

import (
	"database/sql"
	"io"

	"github.com/shopspring/decimal"
)

// DefaultImage is used for listings created without an uploaded image.
const DefaultImage = "https://sharebnb-dnd.s3.us-east-2.amazonaws.com/defaultImage.png"

// Listing represents a rentable property in the database.
type Listing struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Address     string          `db:"address"`
	Image       string          `db:"image"`
	Price       decimal.Decimal `db:"price"`
	Description string          `db:"description"`
	Location    string          `db:"location"`
	Created     string          `db:"created"`
	Rented      sql.NullString  `db:"rented"`
}

// ListingResponse is the JSON representation of a listing. Price is a two-decimal string.
type ListingResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Image       string  `json:"image"`
	Price       string  `json:"price"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Created     string  `json:"created"`
	Rented      *string `json:"rented"`
}

// Serialize converts the listing into its JSON representation.
func (l *Listing) Serialize() ListingResponse {
	resp := ListingResponse{
		ID:          l.ID,
		Name:        l.Name,
		Address:     l.Address,
		Image:       l.Image,
		Price:       l.Price.StringFixed(2),
		Description: l.Description,
		Location:    l.Location,
		Created:     l.Created,
	}
	if l.Rented.Valid {
		rented := l.Rented.String
		resp.Rented = &rented
	}
	return resp
}

// CreateListingForm is the multipart form accepted by POST /listings.
// The image file is read separately from the "image" part.
type CreateListingForm struct {
	Name        string `form:"name" binding:"required"`
	Address     string `form:"address" binding:"required"`
	Price       string `form:"price"`
	Description string `form:"description"`
	Location    string `form:"location" binding:"required"`
	Created     string `form:"created"`
}

// UpdateListingRequest carries the only fields of a listing that can change after creation.
type UpdateListingRequest struct {
	Address     *string          `json:"address"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// ImageUpload is an image file on its way to object storage.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// NewListing is the validated input for creating a listing.
type NewListing struct {
	Name        string          `validate:"required"`
	Address     string          `validate:"required"`
	Price       decimal.Decimal `validate:"-"`
	Description string
	Location    string       `validate:"required"`
	CreatedBy   string       `validate:"required,max=50"`
	Image       *ImageUpload `validate:"-"`
}

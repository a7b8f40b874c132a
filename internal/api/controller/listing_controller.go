package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ctchen222/ShareBnB/internal/api/apperror"
	"ctchen222/ShareBnB/internal/api/middleware"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/response"
	"ctchen222/ShareBnB/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	// maxImageSize caps the multipart image part of POST /listings.
	maxImageSize = 10 << 20
	// maxListingFormSize caps the whole POST /listings body: the image plus the text fields.
	maxListingFormSize = maxImageSize + 1<<20
)

// ListingController handles listing-related HTTP requests.
type ListingController struct {
	listingService service.ListingService
}

// NewListingController creates a new ListingController.
func NewListingController(listingService service.ListingService) *ListingController {
	return &ListingController{
		listingService: listingService,
	}
}

// Search lists every listing, or those whose location contains ?location=.
func (lc *ListingController) Search(c *gin.Context) {
	listings, err := lc.listingService.Search(c.Request.Context(), c.Query("location"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	serialized := make([]models.ListingResponse, 0, len(listings))
	for i := range listings {
		serialized = append(serialized, listings[i].Serialize())
	}
	response.SuccessResponse(c, gin.H{"listings": serialized})
}

func (lc *ListingController) GetListing(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	listing, err := lc.listingService.GetListing(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"listing": listing.Serialize()})
}

// CreateListing accepts a multipart form with an optional "image" file part.
func (lc *ListingController) CreateListing(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxListingFormSize)

	var form models.CreateListingForm
	if err := c.ShouldBind(&form); err != nil {
		if bodyTooLarge(err) {
			response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Image is too large")
			return
		}
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	price := decimal.Zero
	if p := strings.TrimSpace(form.Price); p != "" {
		parsed, err := decimal.NewFromString(p)
		if err != nil {
			response.FromError(c, fmt.Errorf("%w: price %q is not a number", apperror.ErrValidation, p))
			return
		}
		price = parsed
	}

	in := &models.NewListing{
		Name:        form.Name,
		Address:     form.Address,
		Price:       price,
		Description: form.Description,
		Location:    form.Location,
		CreatedBy:   form.Created,
	}
	if in.CreatedBy == "" {
		in.CreatedBy = middleware.CurrentUser(c)
	}

	header, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case bodyTooLarge(err):
		response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Image is too large")
		return
	case err != nil:
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	default:
		if header.Size > maxImageSize {
			response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Image is too large")
			return
		}
		file, err := header.Open()
		if err != nil {
			response.FromError(c, err)
			return
		}
		defer file.Close()

		in.Image = &models.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	}

	listing, err := lc.listingService.CreateListing(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"listing": listing.Serialize()})
}

func (lc *ListingController) UpdateListing(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := lc.listingService.UpdateListing(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"listing": listing.Serialize()})
}

func (lc *ListingController) DeleteListing(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := lc.listingService.DeleteListing(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"deleted": id})
}

// bodyTooLarge reports whether err comes from hitting the http.MaxBytesReader limit.
// mime/multipart does not always wrap the reader error, so the message is checked too.
func bodyTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

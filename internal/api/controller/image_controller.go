package controller

import (
	"errors"
	"net/http"
	"strings"

	"ctchen222/ShareBnB/internal/api/response"
	"ctchen222/ShareBnB/internal/storage"

	"github.com/gin-gonic/gin"
)

// ImageController serves listing images kept in a store without its own public endpoint.
type ImageController struct {
	reader storage.ObjectReader
}

// NewImageController creates a new ImageController.
func NewImageController(reader storage.ObjectReader) *ImageController {
	return &ImageController{
		reader: reader,
	}
}

// GetImage streams the object stored under the *key wildcard.
func (ic *ImageController) GetImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		response.ErrorResponse(c, http.StatusNotFound, response.MsgNotFound)
		return
	}

	body, contentType, err := ic.reader.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, response.MsgNotFound)
			return
		}
		response.FromError(c, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}

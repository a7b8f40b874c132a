package controller

import (
	"fmt"
	"strconv"

	"ctchen222/ShareBnB/internal/api/apperror"

	"github.com/gin-gonic/gin"
)

// idParam reads a positive integer path parameter. Anything else is treated as
// an unknown resource.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", apperror.ErrNotFound, name, c.Param(name))
	}
	return id, nil
}

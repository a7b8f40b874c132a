package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Errors is the body of every failed request.
type Errors struct {
	Errors []string `json:"errors"`
}

func NewErrors(messages ...string) Errors {
	return Errors{Errors: messages}
}

// SuccessResponse writes extras with 200 OK.
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, extras)
}

// CreatedResponse writes extras with 201 Created. Deletions answer with 201 as well.
func CreatedResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusCreated, extras)
}

// ErrorResponse aborts the request with the error envelope.
func ErrorResponse(c *gin.Context, code int, messages ...string) {
	c.AbortWithStatusJSON(code, NewErrors(messages...))
}

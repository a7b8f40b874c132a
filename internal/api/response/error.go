package response

import (
	"errors"
	"log/slog"
	"net/http"

	"ctchen222/ShareBnB/internal/api/apperror"

	"github.com/gin-gonic/gin"
)

const (
	MsgUsernameTaken      = "Username is already taken"
	MsgEmailTaken         = "Email is already taken"
	MsgNotFound           = "Not Found"
	MsgInvalidUsername    = "Invalid Username"
	MsgForbidden          = "Forbidden"
	MsgInvalidReference   = "Referenced record does not exist"
	MsgInternal           = "Internal Server Error"
	MsgInvalidCredentials = "Invalid username or password"
)

// Status maps err onto an HTTP status and the messages shown to the client.
// Validation messages are passed through; everything else gets a fixed text.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperror.ErrEmailTaken):
		return http.StatusBadRequest, MsgEmailTaken
	case errors.Is(err, apperror.ErrDuplicate):
		return http.StatusBadRequest, MsgUsernameTaken
	case errors.Is(err, apperror.ErrReference):
		return http.StatusBadRequest, MsgInvalidReference
	case errors.Is(err, apperror.ErrRejected):
		return http.StatusNotFound, MsgInvalidUsername
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, MsgNotFound
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden, MsgForbidden
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// FromError answers the request for err. Unexpected errors are logged and hidden.
func FromError(c *gin.Context, err error) {
	code, msg := Status(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "Request failed", "error", err, "http.route", c.FullPath())
	}
	_ = c.Error(err)
	ErrorResponse(c, code, msg)
}

package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ctchen222/ShareBnB/internal/api/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"duplicate", fmt.Errorf("insert user: %w", apperror.ErrDuplicate), http.StatusBadRequest, MsgUsernameTaken},
		{"email taken", fmt.Errorf("update user: %w", apperror.ErrEmailTaken), http.StatusBadRequest, MsgEmailTaken},
		{"not found", apperror.ErrNotFound, http.StatusNotFound, MsgNotFound},
		{"rejected", fmt.Errorf("%w: self", apperror.ErrRejected), http.StatusNotFound, MsgInvalidUsername},
		{"reference", apperror.ErrReference, http.StatusBadRequest, MsgInvalidReference},
		{"forbidden", apperror.ErrForbidden, http.StatusForbidden, MsgForbidden},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, MsgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Status(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}

	code, msg := Status(fmt.Errorf("%w: Name failed on required", apperror.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, msg, "Name failed on required")
}

func TestFromErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FromError(c, errors.New("pq: connection refused to 10.0.0.3"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body Errors
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{MsgInternal}, body.Errors)
	assert.True(t, c.IsAborted())
}

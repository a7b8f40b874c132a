package validator

import (
	"context"
	"testing"

	"ctchen222/ShareBnB/internal/api/apperror"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `validate:"required,max=5"`
	Email    string `validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, Struct(ctx, sample{Username: "bob"}))

	err := Struct(ctx, sample{Username: "bobbybob", Email: "nope"})
	require.ErrorIs(t, err, apperror.ErrValidation)
	require.ErrorContains(t, err, "Username failed on max")
	require.ErrorContains(t, err, "Email failed on email")

	err = Struct(ctx, nil)
	require.ErrorIs(t, err, apperror.ErrValidation)
}

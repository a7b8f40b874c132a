// Package apperror holds the error taxonomy shared by repositories, services and handlers.
package apperror

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrReference = errors.New("referenced record does not exist")
)

// business logic errors
var (
	ErrValidation = errors.New("validation failed")
	ErrRejected   = errors.New("request rejected")
	ErrForbidden  = errors.New("forbidden")
)

// ErrEmailTaken is a duplicate on a profile update, where the username cannot be the clash.
var ErrEmailTaken = fmt.Errorf("%w: email is already taken", ErrDuplicate)

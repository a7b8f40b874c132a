package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ctchen222/ShareBnB/internal/api/apperror"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func GetValidator() *validator.Validate {
	return validate
}

// Struct validates v against its `validate` tags. Failures wrap apperror.ErrValidation
// and name each offending field with the rule it broke.
func Struct(ctx context.Context, v any) error {
	err := validate.StructCtx(ctx, v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", apperror.ErrValidation, strings.Join(parts, ", "))
	}
	return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
}

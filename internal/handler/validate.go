package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// TierTextRequest replaces the text of one tier.
// The id limit in ClickRequest matches Text so every rendered node is clickable.
type TierTextRequest struct {
	Text string `json:"text" validate:"max=65536"`
}

// ClickRequest is one click on a rendered node; Tier is checked by domain.ParseTier
type ClickRequest struct {
	Tier string `json:"tier" validate:"required"`
	ID   string `json:"id" validate:"required,max=65536"`
}

// GenerateRequest starts .inc file generation; an empty path means the workdir
type GenerateRequest struct {
	Path string `json:"path" validate:"omitempty,max=4096"`
}

func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "max":
			return fmt.Errorf("%s: must not exceed %s characters", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}

package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ValidationError struct {
	fieldErrors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.fieldErrors))
	for _, fe := range e.fieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) ToErrorDetails() []ErrorDetail {
	details := make([]ErrorDetail, 0, len(e.fieldErrors))
	for _, fe := range e.fieldErrors {
		details = append(details, ErrorDetail{
			Field:   fe.Namespace(),
			Message: describe(fe),
		})
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// ValidateRequest runs struct tag validation and returns *ValidationError on
// field failures.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return &ValidationError{fieldErrors: ve}
	}
	return err
}

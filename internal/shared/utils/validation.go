package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/supportdesk/supportdesk/internal/shared/errors"
)

// BindError converts a gin ShouldBind* failure into a validation AppError.
func BindError(err error) error {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fe))
		}
		return errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.Is(err, io.EOF):
		return errors.NewValidationError("Request body is required")
	case stderrors.As(err, &syntaxErr):
		return errors.NewValidationError("Malformed JSON", fmt.Sprintf("syntax error at offset %d", syntaxErr.Offset))
	case stderrors.As(err, &typeErr):
		return errors.NewValidationError("Malformed JSON", fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type))
	}
	return errors.NewValidationError("Invalid request body", err.Error())
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "ticketstatus":
		return fmt.Sprintf("%s must be one of [open in-progress resolved]", field)
	case "ticketpriority":
		return fmt.Sprintf("%s must be one of [low medium high]", field)
	case "userrole":
		return fmt.Sprintf("%s must be one of [user admin]", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

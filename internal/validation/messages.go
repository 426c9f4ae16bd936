package validation

import (
	"fmt"
	"reflect"

	apierrors "txn-search/internal/errors"

	"github.com/go-playground/validator/v10"
)

// ErrorCode picks the response code for a set of field failures: the tag's own
// code when every failure shares it, VALIDATION_001 otherwise
func ErrorCode(errs validator.ValidationErrors) apierrors.ErrorCode {
	code := apierrors.ValidationGeneral
	for i, fe := range errs {
		c := tagErrorCode(fe.Tag())
		if i > 0 && c != code {
			return apierrors.ValidationGeneral
		}
		code = c
	}
	return code
}

func tagErrorCode(tag string) apierrors.ErrorCode {
	switch tag {
	case "required", "required_with":
		return apierrors.ValidationRequiredField
	case "calendar_date":
		return apierrors.ValidationInvalidDate
	case "min", "max":
		return apierrors.ValidationOutOfRange
	case "iso4217", "account_number", "transaction_type", "sort_field", "sort_direction", "amount":
		return apierrors.ValidationInvalidFormat
	}
	return apierrors.ValidationGeneral
}

// FieldErrors flattens validator errors into field -> message pairs
func FieldErrors(errs validator.ValidationErrors) map[string]string {
	fieldErrors := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		fieldErrors[fieldErr.Field()] = FormatFieldError(fieldErr)
	}
	return fieldErrors
}

// FormatFieldError converts a validator.FieldError to a human-readable message
func FormatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return fmt.Sprintf("is required when %s is set", fe.Param())
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		default:
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		default:
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "account_number":
		return "must be 1 to 34 letters, digits or . / - characters"
	case "transaction_type":
		return "must be a valid transaction type such as TRANSFER, WITHDRAWAL or DEPOSIT"
	case "sort_field":
		return "is not a sortable field"
	case "sort_direction":
		return "must be asc or desc"
	case "calendar_date":
		return "must be a date in YYYY-MM-DD format"
	case "amount":
		return "must be a non-negative decimal amount"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}

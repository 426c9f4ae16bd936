package validation

import (
	"reflect"
	"regexp"
	"strings"

	"txn-search/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	accountNumberPattern   = regexp.MustCompile(`^[A-Za-z0-9./-]{1,34}$`)
	transactionTypePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z_ -]{0,31}$`)
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("sort_field", validateSortField)
	_ = v.RegisterValidation("sort_direction", validateSortDirection)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	_ = v.RegisterValidation("amount", validateAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate implements the echo.Validator interface
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Custom validation functions

// validateAccountNumber accepts up to 34 letters, digits, dots, slashes or hyphens
func validateAccountNumber(fl validator.FieldLevel) bool {
	return accountNumberPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateTransactionType accepts a free-form type code such as TRANSFER or DIRECT_DEBIT
func validateTransactionType(fl validator.FieldLevel) bool {
	return transactionTypePattern.MatchString(fl.Field().String())
}

func validateSortField(fl validator.FieldLevel) bool {
	return models.SortableFields[fl.Field().String()]
}

func validateSortDirection(fl validator.FieldLevel) bool {
	switch models.SortDirection(strings.ToLower(fl.Field().String())) {
	case models.SortAsc, models.SortDesc:
		return true
	}
	return false
}

// validateCalendarDate accepts an empty value or a YYYY-MM-DD date
func validateCalendarDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := parseDate(value)
	return err == nil
}

// validateAmount accepts an empty value or a non-negative decimal number
func validateAmount(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	amount, err := parseAmount(value)
	return err == nil && !amount.IsNegative()
}

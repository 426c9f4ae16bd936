package validation

import (
	"errors"
	"testing"

	apierrors "txn-search/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	Name     string   `json:"name" validate:"required,min=3"`
	Tags     []string `json:"tags" validate:"max=1"`
	Currency string   `json:"currency" validate:"omitempty,iso4217"`
	Account  string   `json:"account" validate:"omitempty,account_number"`
	Day      string   `json:"day" validate:"omitempty,calendar_date"`
	Amount   string   `json:"amount" validate:"omitempty,amount"`
}

func validationErrorsFor(t *testing.T, fixture messageFixture) validator.ValidationErrors {
	t.Helper()
	err := NewValidator().Validate(fixture)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	return verrs
}

func fieldErrorsFor(t *testing.T, fixture messageFixture) map[string]string {
	t.Helper()
	return FieldErrors(validationErrorsFor(t, fixture))
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	got := fieldErrorsFor(t, messageFixture{
		Name:     "ab",
		Tags:     []string{"a", "b"},
		Currency: "XXQ",
		Account:  "12 34",
		Day:      "2024-02-30",
		Amount:   "-1",
	})

	assert.Equal(t, map[string]string{
		"name":     "must be at least 3 characters long",
		"tags":     "must contain at most 1 items",
		"currency": "must be an ISO 4217 currency code",
		"account":  "must be 1 to 34 letters, digits or . / - characters",
		"day":      "must be a date in YYYY-MM-DD format",
		"amount":   "must be a non-negative decimal amount",
	}, got)
}

func TestFieldErrorsRequired(t *testing.T) {
	got := fieldErrorsFor(t, messageFixture{})
	assert.Equal(t, "is required", got["name"])
	assert.Len(t, got, 1)
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name    string
		fixture messageFixture
		want    apierrors.ErrorCode
	}{
		{"missing name", messageFixture{}, apierrors.ValidationRequiredField},
		{"bad date", messageFixture{Name: "abc", Day: "2024-02-30"}, apierrors.ValidationInvalidDate},
		{"short name", messageFixture{Name: "ab"}, apierrors.ValidationOutOfRange},
		{"bad formats", messageFixture{Name: "abc", Currency: "XXQ", Amount: "x"}, apierrors.ValidationInvalidFormat},
		{"mixed failures", messageFixture{Name: "abc", Currency: "XXQ", Day: "2024-02-30"}, apierrors.ValidationGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(validationErrorsFor(t, tt.fixture)))
		})
	}
}

func TestErrorCode_UnknownTag(t *testing.T) {
	type fixture struct {
		Email string `json:"email" validate:"email"`
	}
	err := NewValidator().Validate(fixture{Email: "nope"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, apierrors.ValidationGeneral, ErrorCode(verrs))
}

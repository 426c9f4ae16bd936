package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func allCodes() []ErrorCode {
	return []ErrorCode{
		ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat,
		ValidationOutOfRange, ValidationInvalidDate,
		SearchMissingAccountNumber, SearchMissingDateRange, SearchRangeTooWide,
		SearchRangeTooOld, SearchTransportError, SearchRangeReversed,
		SystemInternalError, SystemServiceUnavailable, SystemConfigurationError,
		SystemUnexpectedError, SystemRateLimitExceeded, SystemNotFound,
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Missing account number",
			code:     SearchMissingAccountNumber,
			expected: "Mandatory Field Missing: AccNmbr is required.",
		},
		{
			name:     "Range too wide",
			code:     SearchRangeTooWide,
			expected: "Date range cannot exceed 95 days.",
		},
		{
			name:     "Range too old",
			code:     SearchRangeTooOld,
			expected: "You cannot select dates older than 2 years.",
		},
		{
			name:     "Rate limit",
			code:     SystemRateLimitExceeded,
			expected: "Rate limit exceeded. Please try again later",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("NOPE_999")))
}

func (s *CodesTestSuite) TestIsValidErrorCode() {
	for _, code := range allCodes() {
		s.True(IsValidErrorCode(code), "code %s should be registered", code)
	}
	s.False(IsValidErrorCode(ErrorCode("SEARCH_999")))
	s.False(IsValidErrorCode(ErrorCode("")))
}

func (s *CodesTestSuite) TestErrorCodeConstants_Uniqueness() {
	seen := make(map[ErrorCode]bool)
	for _, code := range allCodes() {
		s.False(seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func (s *CodesTestSuite) TestErrorCodeConstants_Format() {
	pattern := regexp.MustCompile(`^(VALIDATION|SEARCH|SYSTEM)_\d{3}$`)
	for _, code := range allCodes() {
		s.Regexp(pattern, string(code))
	}
}

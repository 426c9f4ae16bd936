package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_007"
)

// Search error codes (SEARCH_*)
const (
	SearchMissingAccountNumber ErrorCode = "SEARCH_001"
	SearchMissingDateRange     ErrorCode = "SEARCH_002"
	SearchRangeTooWide         ErrorCode = "SEARCH_003"
	SearchRangeTooOld          ErrorCode = "SEARCH_004"
	SearchTransportError       ErrorCode = "SEARCH_005"
	SearchRangeReversed        ErrorCode = "SEARCH_006"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemNotFound           ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Search errors
	SearchMissingAccountNumber: "Mandatory Field Missing: AccNmbr is required.",
	SearchMissingDateRange:     "Conditional Mandatory Fields Missing: One of EntrDte, TxnEntDte, or ValDte is required.",
	SearchRangeTooWide:         "Date range cannot exceed 95 days.",
	SearchRangeTooOld:          "You cannot select dates older than 2 years.",
	SearchTransportError:       "Error fetching transactions",
	SearchRangeReversed:        "End date cannot be before start date.",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemNotFound:           "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "trace-123"
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	resp := NewErrorResponse(SearchMissingDateRange, s.traceID)

	s.Equal(string(SearchMissingDateRange), resp.Error.Code)
	s.Equal(GetErrorMessage(SearchMissingDateRange), resp.Error.Message)
	s.Equal(s.traceID, resp.Error.TraceID)
	s.Empty(resp.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithOptions() {
	resp := NewErrorResponse(SearchTransportError, s.traceID,
		WithMessage("Error fetching transactions: connection refused"),
		WithDetails("dial tcp 127.0.0.1:9200"),
	)

	s.Equal("Error fetching transactions: connection refused", resp.Error.Message)
	s.Equal([]string{"dial tcp 127.0.0.1:9200"}, resp.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationError_SortedDetails() {
	resp := NewValidationError(ValidationGeneral, map[string]string{
		"sortFields":     "must have maximum length/value of 2",
		"accountNumbers": "is required",
	}, s.traceID)

	s.Equal(string(ValidationGeneral), resp.Error.Code)
	s.Equal([]string{
		"accountNumbers: is required",
		"sortFields: must have maximum length/value of 2",
	}, resp.Error.Details)
}

func (s *ResponseTestSuite) TestWrapSystemError_NoInternalDetailsExposed() {
	internal := fmt.Errorf("engine password=hunter2 rejected")
	resp, err := WrapSystemError(internal, s.traceID)

	s.Equal(internal, err)
	s.Equal(string(SystemInternalError), resp.Error.Code)
	s.NotContains(resp.Error.Message, "hunter2")
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code   ErrorCode
		status int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{SearchMissingAccountNumber, http.StatusBadRequest},
		{SearchMissingDateRange, http.StatusBadRequest},
		{SearchRangeTooWide, http.StatusBadRequest},
		{SearchRangeTooOld, http.StatusBadRequest},
		{SearchTransportError, http.StatusBadGateway},
		{SystemNotFound, http.StatusNotFound},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{SystemInternalError, http.StatusInternalServerError},
		{ErrorCode("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.status, GetHTTPStatus(tc.code))
		})
	}
}

func (s *ResponseTestSuite) TestNewValidationError_SpecificCode() {
	resp := NewValidationError(ValidationInvalidDate, map[string]string{
		"end": "must be a date in YYYY-MM-DD format",
	}, s.traceID)

	s.Equal(string(ValidationInvalidDate), resp.Error.Code)
	s.Equal("Invalid date format or range", resp.Error.Message)
	s.Equal(400, resp.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestServerClassification() {
	s.False(NewErrorResponse(SearchRangeTooOld, s.traceID).IsServerError())
	s.True(NewErrorResponse(SearchTransportError, s.traceID).IsServerError())
	s.True(NewErrorResponse(SystemConfigurationError, s.traceID).IsServerError())
}

func (s *ResponseTestSuite) TestString_FormatsCorrectly() {
	resp := NewErrorResponse(SearchRangeTooWide, s.traceID)
	s.Equal("[SEARCH_003] Date range cannot exceed 95 days. (trace: trace-123)", resp.String())
}

func (s *ResponseTestSuite) TestErrorResponseStructure_MatchesAPIShape() {
	data, err := json.Marshal(NewErrorResponse(SearchMissingAccountNumber, s.traceID, WithDetails("accountNumbers")))
	s.Require().NoError(err)

	var decoded map[string]map[string]interface{}
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal("SEARCH_001", decoded["error"]["code"])
	s.Equal("trace-123", decoded["error"]["trace_id"])
	s.Equal([]interface{}{"accountNumbers"}, decoded["error"]["details"])
}

func (s *ResponseTestSuite) TestProxyErrorResponse_Shape() {
	data, err := json.Marshal(ProxyErrorResponse{Error: "Internal Server Error", Details: "timeout"})
	s.Require().NoError(err)
	s.JSONEq(`{"error":"Internal Server Error","details":"timeout"}`, string(data))
}

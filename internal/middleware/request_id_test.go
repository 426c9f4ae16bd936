package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"txn-search/internal/searchengine"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RequestIDTestSuite defines the test suite for request ID middleware
type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) TestGeneratesTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var seen string
	handler := RequestID()(func(c echo.Context) error {
		seen = GetTraceID(c)
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	_, err := uuid.Parse(seen)
	s.NoError(err)
	s.Equal(seen, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestReusesIncomingTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "upstream-trace")
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		s.Equal("upstream-trace", GetTraceID(c))
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	s.Equal("upstream-trace", rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestAttachesOpaqueIDToRequestContext() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "trace-42")
	c := s.echo.NewContext(req, httptest.NewRecorder())

	handler := RequestID()(func(c echo.Context) error {
		s.Equal("trace-42", searchengine.OpaqueID(c.Request().Context()))
		return nil
	})

	s.Require().NoError(handler(c))
}

func (s *RequestIDTestSuite) TestGetTraceIDMissing() {
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	s.Empty(GetTraceID(c))
	s.Equal("unknown", traceIDOrUnknown(c))
}

package services

import (
	"context"
	"sync"

	"txn-search/internal/models"
)

// SessionState is a snapshot of what a search screen displays
type SessionState struct {
	Filters          models.FilterState
	Pagination       models.Pagination
	Loading          bool
	Transactions     []models.Transaction
	Total            int64
	AppliedDateField models.DateField
	Err              error
}

// SearchSession holds the filter and page state of one user and reacts to its changes.
// Editing filters never searches; submitting or changing the page does.
// Each issued search gets a generation number and only the latest generation
// may write its outcome, so an earlier response that arrives late is dropped.
type SearchSession struct {
	service SearchServiceInterface

	mu         sync.Mutex
	filters    models.FilterState
	pagination models.Pagination
	generation uint64
	inFlight   int
	state      SessionState
}

// NewSearchSession creates a session on the first page with the default page size
func NewSearchSession(service SearchServiceInterface) *SearchSession {
	return &SearchSession{
		service:    service,
		pagination: models.DefaultPagination(),
	}
}

// SetFilters replaces the pending filters without searching
func (s *SearchSession) SetFilters(filters models.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters
}

// Submit searches with the current filters and page
func (s *SearchSession) Submit(ctx context.Context) error {
	return s.run(ctx, nil)
}

// ChangePage moves to another page or page size and searches again
func (s *SearchSession) ChangePage(ctx context.Context, page, pageSize int) error {
	return s.run(ctx, &models.Pagination{Page: page, PageSize: pageSize})
}

// State returns a copy of the current display state
func (s *SearchSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Filters = s.filters
	st.Pagination = s.pagination
	st.Loading = s.inFlight > 0
	st.Transactions = append([]models.Transaction(nil), s.state.Transactions...)
	return st
}

func (s *SearchSession) run(ctx context.Context, pagination *models.Pagination) error {
	s.mu.Lock()
	if pagination != nil {
		s.pagination = *pagination
	}
	s.generation++
	gen := s.generation
	filters, page := s.filters, s.pagination
	s.inFlight++
	s.state.Err = nil
	s.mu.Unlock()

	result, err := s.service.Search(ctx, filters, page)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if gen != s.generation {
		return err
	}

	if err != nil {
		s.state.Transactions = nil
		s.state.Total = 0
		s.state.AppliedDateField = ""
		s.state.Err = err
		return err
	}

	s.state.Transactions = result.Transactions
	s.state.Total = result.Total
	s.state.AppliedDateField = result.AppliedDateField
	s.state.Err = nil
	return nil
}

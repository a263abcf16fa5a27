// Package store holds the dashboard's shared state: the business record, the
// loading flag, the view mode and the last operation errors.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/models"
)

const (
	SubmitErrorMessage     = "Failed to fetch business data. Please try again."
	RegenerateErrorMessage = "Failed to regenerate headline. Please try again."
)

var (
	ErrBusy     = errors.New("another request is in flight")
	ErrNoRecord = errors.New("no business record to regenerate a headline for")
)

type ViewMode int

const (
	ViewForm ViewMode = iota
	ViewCard
)

func (v ViewMode) String() string {
	if v == ViewCard {
		return "card"
	}
	return "form"
}

func (v ViewMode) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// OperationErrors carries one user-facing message per operation kind.
type OperationErrors struct {
	Submit     string `json:"submit,omitempty"`
	Regenerate string `json:"regenerate,omitempty"`
}

type State struct {
	Loading   bool                  `json:"loading"`
	ViewMode  ViewMode              `json:"viewMode"`
	Record    models.BusinessRecord `json:"record"`
	LastError *OperationErrors      `json:"lastError,omitempty"`
}

// Backend is the remote service the store reads business data from.
type Backend interface {
	FetchBusinessData(ctx context.Context, name, location string) (*models.BusinessDataResponse, error)
	RegenerateHeadline(ctx context.Context, name, location string) (*models.HeadlineResponse, error)
}

// Store is created once per process and shared by reference with the views.
// Operations start synchronously (Loading flips before they return) and
// finish in their own goroutine; the returned channel closes once the result
// is visible in the state.
type Store struct {
	backend Backend
	log     logger.ILogger

	mu    sync.RWMutex
	state State
}

func New(backend Backend, log logger.ILogger) *Store {
	return &Store{
		backend: backend,
		log:     log,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	if s.state.LastError != nil {
		errs := *s.state.LastError
		out.LastError = &errs
	}
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

// begin claims the single in-flight slot.
func (s *Store) begin(check func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Loading {
		return ErrBusy
	}
	if check != nil {
		if err := check(); err != nil {
			return err
		}
	}
	s.state.Loading = true
	return nil
}

// Fetch loads business data for the given name and location. On success the
// record is replaced, both error slots are cleared and the view switches to
// the card. On failure only the submit error is set.
func (s *Store) Fetch(ctx context.Context, businessName, location string) (<-chan struct{}, error) {
	if err := s.begin(nil); err != nil {
		return nil, err
	}

	s.log.Info("store", "fetching business data", map[string]interface{}{
		"name":     businessName,
		"location": location,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)

		data, err := s.backend.FetchBusinessData(context.WithoutCancel(ctx), businessName, location)

		s.mu.Lock()
		defer s.mu.Unlock()
		defer func() { s.state.Loading = false }()

		if err != nil {
			s.log.Error("store", "error fetching business data", map[string]interface{}{
				"error":    err.Error(),
				"name":     businessName,
				"location": location,
			})
			s.setError(func(e *OperationErrors) { e.Submit = SubmitErrorMessage })
			return
		}

		s.state.Record = models.BusinessRecord{
			Name:     businessName,
			Location: location,
			Rating:   data.Rating,
			Reviews:  data.Reviews,
			Headline: data.Headline,
		}
		s.state.ViewMode = ViewCard
		s.state.LastError = nil
	}()

	return done, nil
}

// RegenerateHeadline asks for a new headline for the current record. Only
// the headline changes on success; the record is left alone on failure.
func (s *Store) RegenerateHeadline(ctx context.Context) (<-chan struct{}, error) {
	var name, location string
	err := s.begin(func() error {
		if s.state.ViewMode != ViewCard {
			return ErrNoRecord
		}
		name, location = s.state.Record.Name, s.state.Record.Location
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("store", "regenerating headline", map[string]interface{}{
		"name":     name,
		"location": location,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)

		data, err := s.backend.RegenerateHeadline(context.WithoutCancel(ctx), name, location)

		s.mu.Lock()
		defer s.mu.Unlock()
		defer func() { s.state.Loading = false }()

		if err != nil {
			s.log.Error("store", "error regenerating headline", map[string]interface{}{
				"error":    err.Error(),
				"name":     name,
				"location": location,
			})
			s.setError(func(e *OperationErrors) { e.Regenerate = RegenerateErrorMessage })
			return
		}

		s.state.Record.Headline = data.Headline
		s.clearError(func(e *OperationErrors) { e.Regenerate = "" })
	}()

	return done, nil
}

// setError and clearError must be called with mu held.
func (s *Store) setError(apply func(*OperationErrors)) {
	if s.state.LastError == nil {
		s.state.LastError = &OperationErrors{}
	}
	apply(s.state.LastError)
}

func (s *Store) clearError(apply func(*OperationErrors)) {
	if s.state.LastError == nil {
		return
	}
	apply(s.state.LastError)
	if *s.state.LastError == (OperationErrors{}) {
		s.state.LastError = nil
	}
}

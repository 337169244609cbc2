package services

import (
	"context"
	"errors"
	"sync"

	"dinein-dashboard/analytics"
	"dinein-dashboard/models"
)

var (
	ErrSuperseded = errors.New("result superseded by a newer dataset or filter")
	ErrNoDataset  = errors.New("no dataset loaded")
)

// Session is one viewer's working state: the loaded dataset snapshot, the
// filter, and the last published dashboard. Loading a dataset or changing
// the filter starts a new generation and cancels computations of the old
// one; their results are never published.
type Session struct {
	mu       sync.Mutex
	gen      uint64
	genCtx   context.Context
	cancel   context.CancelFunc
	prepared *analytics.Prepared
	filter   models.FilterState
	dash     *models.Dashboard

	compute func(context.Context, *analytics.Prepared, models.FilterState) (*models.Dashboard, error)
}

func NewSession() *Session {
	s := &Session{filter: models.DefaultFilter(), compute: analytics.Compute}
	s.bump()
	return s
}

// bump must be called with mu held.
func (s *Session) bump() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
	}
	s.genCtx, s.cancel = context.WithCancel(context.Background())
	s.dash = nil
}

// Load replaces the dataset. The date range and kitchen selection reset;
// the remaining filters carry over.
func (s *Session) Load(ds *models.Dataset) *analytics.Prepared {
	p := analytics.Prepare(ds)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.prepared = p
	s.filter.DateRange = models.DateRange{}
	s.filter.Kitchens = []string{models.AllValues}
	return p
}

// Clear drops the dataset and resets the filter.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.prepared = nil
	s.filter = models.DefaultFilter()
}

// Name is the loaded dataset's name, empty when none is loaded.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prepared == nil {
		return ""
	}
	return s.prepared.Name
}

func (s *Session) Filter() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// UpdateFilter applies fn to the filter and starts a new generation.
func (s *Session) UpdateFilter(fn func(*models.FilterState)) models.FilterState {
	f, _, _ := s.TryUpdateFilter(func(_ *analytics.Prepared, f *models.FilterState) (bool, error) {
		fn(f)
		return true, nil
	})
	return f
}

// TryUpdateFilter runs fn on a copy of the current filter under the session
// lock, so concurrent updates never overwrite each other. The copy replaces
// the filter and a new generation starts only when fn reports a change and
// no error. fn receives the loaded dataset, nil when none is loaded, and
// must not call back into the session.
func (s *Session) TryUpdateFilter(fn func(*analytics.Prepared, *models.FilterState) (bool, error)) (models.FilterState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.filter
	f.Kitchens = append([]string(nil), f.Kitchens...)
	f.Categories = append([]string(nil), f.Categories...)
	f.ItemTypes = append([]string(nil), f.ItemTypes...)
	changed, err := fn(s.prepared, &f)
	if err != nil || !changed {
		return s.filter, false, err
	}
	s.filter = f
	s.bump()
	return f, true, nil
}

// Dashboard returns the published dashboard of the current generation,
// computing it if needed. ErrSuperseded means a Load or UpdateFilter
// happened while computing.
func (s *Session) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	s.mu.Lock()
	if s.prepared == nil {
		s.mu.Unlock()
		return nil, ErrNoDataset
	}
	if s.dash != nil {
		d := s.dash
		s.mu.Unlock()
		return d, nil
	}
	gen, genCtx, p, f := s.gen, s.genCtx, s.prepared, s.filter
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(genCtx, cancel)
	defer stop()

	dash, err := s.compute(ctx, p, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	s.dash = dash
	return dash, nil
}

// Prepared returns the loaded dataset snapshot, nil when none is loaded.
func (s *Session) Prepared() *analytics.Prepared {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prepared
}

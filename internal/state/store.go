// Package state owns the dashboard session: form inputs, the latest
// prediction, and the UI selection. All transitions are pure functions from
// one AppState value to the next, applied under a single lock, so a snapshot
// taken at any moment is internally consistent and a new result always lands
// atomically.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
	"github.com/ankiibott/Forest-fire-prediction/internal/predict"
)

var (
	// ErrRunInFlight rejects a second submission while one is running.
	ErrRunInFlight = errors.New("a prediction run is already in flight")
	// ErrFormInvalid rejects submission of an incomplete form.
	ErrFormInvalid = errors.New("form is incomplete or bounds are invalid")
	// ErrHorizonOutOfRange rejects selection of a horizon the result lacks.
	ErrHorizonOutOfRange = errors.New("horizon index out of range")
	// ErrStaleRun rejects completion of a run the store no longer tracks.
	ErrStaleRun = errors.New("run id does not match the in-flight run")
)

// RunResult is a completed run as held by the session.
type RunResult struct {
	RunID       string
	Outcome     predict.Outcome
	CompletedAt time.Time
}

// AppState is the full session state. Treated as a value: transitions build
// a modified copy rather than mutating in place.
type AppState struct {
	Form            domain.FormState
	Bounds          domain.RawBounds
	Result          *RunResult
	SelectedHorizon int
	InFlight        bool
	InFlightRunID   string
	LastWarning     string
}

// Valid reports whether the current form state permits a submission.
func (s AppState) Valid() bool {
	return domain.ComputeValidity(s.Form, s.Bounds)
}

// Store serializes state transitions for one dashboard session.
type Store struct {
	clock clockwork.Clock

	mu  sync.Mutex
	cur AppState
}

// NewStore creates a session store with an empty form.
func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		clock: clock,
		cur:   AppState{Form: domain.NewFormState()},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// SetChannelFiles replaces one channel's uploaded file names, truncating to
// the channel's required count.
func (s *Store) SetChannelFiles(abbrev string, files []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	next.Form = s.cur.Form.SetChannelFiles(abbrev, files)
	s.cur = next
}

// SetBound stores one coordinate field's raw text verbatim.
func (s *Store) SetBound(field domain.BoundField, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	next.Bounds = s.cur.Bounds.Set(field, raw)
	s.cur = next
}

// SelectHorizon changes which forecast hour the grid shows.
func (s *Store) SelectHorizon(h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur.Result == nil || s.cur.Result.Outcome.Prediction.Horizon(h) == nil {
		return ErrHorizonOutOfRange
	}
	next := s.cur
	next.SelectedHorizon = h
	s.cur = next
	return nil
}

// BeginRun gates and starts a prediction run. On success it marks the
// session in flight, resets the selection and warning, and returns the run
// id plus the frozen inputs the run should use. The gate refuses concurrent
// runs and invalid forms.
func (s *Store) BeginRun() (runID string, bounds domain.Bounds, manifest domain.Manifest, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur.InFlight {
		return "", domain.Bounds{}, nil, ErrRunInFlight
	}
	parsed, ok := s.cur.Bounds.Parse()
	if !ok || !domain.ComputeValidity(s.cur.Form, s.cur.Bounds) {
		return "", domain.Bounds{}, nil, ErrFormInvalid
	}

	runID = uuid.NewString()
	next := s.cur
	next.InFlight = true
	next.InFlightRunID = runID
	next.SelectedHorizon = 0
	next.LastWarning = ""
	s.cur = next

	return runID, parsed, domain.BuildManifest(domain.Channels, s.cur.Form), nil
}

// CompleteRun lands a run's outcome atomically and clears the in-flight
// gate. Outcomes for a run id other than the in-flight one are dropped.
func (s *Store) CompleteRun(runID string, outcome predict.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cur.InFlight || s.cur.InFlightRunID != runID {
		return ErrStaleRun
	}

	next := s.cur
	next.Result = &RunResult{
		RunID:       runID,
		Outcome:     outcome,
		CompletedAt: s.clock.Now(),
	}
	next.SelectedHorizon = 0
	next.InFlight = false
	next.InFlightRunID = ""
	next.LastWarning = outcome.Warning
	s.cur = next
	return nil
}

// AbortRun releases the in-flight gate without landing a result, leaving the
// previous result untouched. Used when a run dies on context cancellation.
func (s *Store) AbortRun(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cur.InFlight || s.cur.InFlightRunID != runID {
		return
	}
	next := s.cur
	next.InFlight = false
	next.InFlightRunID = ""
	s.cur = next
}

// CheckReadiness reports whether the session store can serve traffic. The
// store is ready as soon as it exists; the method satisfies the ops server's
// readiness contract.
func (s *Store) CheckReadiness(_ context.Context) error {
	return nil
}

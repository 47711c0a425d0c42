// Package app ties the stores and domain packages together into the
// operations the CLI exposes. Every mutating operation clones the
// persisted state, applies all changes to the clone, and writes it back
// in a single save, so a failure partway through changes nothing.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/store"
)

// Service exposes the tutor's state operations.
type Service struct {
	Store *store.Store

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

// New returns a Service over the given store.
func New(s *store.Store) *Service {
	return &Service{Store: s, Now: time.Now}
}

// State loads the current persisted state.
func (s *Service) State() (*state.UserState, error) {
	return s.Store.LoadState()
}

// Today returns the current calendar date in the user's configured
// timezone, falling back to local time before onboarding.
func (s *Service) Today() string {
	st, err := s.Store.LoadState()
	if err != nil {
		return s.Now().Format(state.DateLayout)
	}
	return s.Now().In(st.Schedule.Location()).Format(state.DateLayout)
}

// UpdateSchedule validates and saves a new reminder schedule. An invalid
// schedule leaves the stored one untouched.
func (s *Service) UpdateSchedule(sched state.Schedule) error {
	if err := sched.Validate(); err != nil {
		return err
	}
	st, err := s.Store.LoadState()
	if err != nil {
		return err
	}
	next := st.Clone()
	next.Schedule = sched
	if err := s.Store.SaveState(next); err != nil {
		return err
	}
	s.logEvent(store.EventScheduleUpdated, map[string]any{
		"keypoint_time": sched.KeypointTime,
		"quiz_time":     sched.QuizTime,
		"timezone":      sched.Timezone,
	})
	return nil
}

// UpdatePreferences validates and saves new learning preferences.
func (s *Service) UpdatePreferences(prefs state.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	st, err := s.Store.LoadState()
	if err != nil {
		return err
	}
	next := st.Clone()
	next.Preferences = prefs
	if err := s.Store.SaveState(next); err != nil {
		return err
	}
	s.logEvent(store.EventPrefsUpdated, map[string]any{
		"cefr_level":  string(prefs.CEFRLevel),
		"tutor_style": string(prefs.TutorStyle),
	})
	return nil
}

// AdvanceOnboarding moves onboarding to the given step and persists it.
func (s *Service) AdvanceOnboarding(step int) (*state.UserState, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return nil, err
	}
	next := st.Clone()
	next.AdvanceOnboarding(step)
	if err := s.Store.SaveState(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset replaces all state with defaults. Daily content and event logs
// are left on disk.
func (s *Service) Reset() error {
	return s.Store.SaveState(state.Default())
}

// logEvent appends to the audit log. Event logging is best effort: a
// failed append must not fail the operation that triggered it.
func (s *Service) logEvent(t store.EventType, data map[string]any) {
	if err := s.Store.AppendEvent(t, data); err != nil {
		fmt.Fprintln(os.Stderr, "warning: event log append failed:", err)
	}
}

package state

import (
	"fmt"
	"time"
)

// Schedule holds the two daily push times and the timezone used for all
// calendar-day comparisons (streaks, dedup windows, completion flags).
type Schedule struct {
	KeypointTime string `json:"keypoint_time"`
	QuizTime     string `json:"quiz_time"`
	Timezone     string `json:"timezone"`
}

// InvalidScheduleError reports a schedule update rejected before
// persistence; the prior schedule is retained.
type InvalidScheduleError struct {
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

// Validate checks time formats, the timezone, and the ordering invariant:
// the quiz push must be strictly later than the keypoint push within the
// same day.
func (s *Schedule) Validate() error {
	kp, err := parseClock(s.KeypointTime)
	if err != nil {
		return &InvalidScheduleError{Reason: fmt.Sprintf("keypoint time %q: %v", s.KeypointTime, err)}
	}
	qz, err := parseClock(s.QuizTime)
	if err != nil {
		return &InvalidScheduleError{Reason: fmt.Sprintf("quiz time %q: %v", s.QuizTime, err)}
	}
	if !qz.After(kp) {
		return &InvalidScheduleError{Reason: fmt.Sprintf("quiz time %s must be later than keypoint time %s", s.QuizTime, s.KeypointTime)}
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return &InvalidScheduleError{Reason: fmt.Sprintf("timezone %q: %v", s.Timezone, err)}
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC if the
// persisted value no longer loads (e.g. stale tzdata).
func (s *Schedule) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseClock(v string) (time.Time, error) {
	return time.Parse("15:04", v)
}

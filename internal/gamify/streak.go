package gamify

import (
	"fmt"
	"time"

	"github.com/abhisek/lingua/internal/state"
)

// StreakResult describes the outcome of a streak update.
type StreakResult struct {
	Streak     int
	Continued  bool
	FreezeUsed bool
	Message    string
}

// UpdateStreak advances the consecutive-day counter for activity on
// today (a calendar date in the user's timezone):
//
//   - last study today: no-op, already counted
//   - last study yesterday: streak + 1
//   - older gap with a streak freeze available: consume it, streak + 1
//   - older gap otherwise: streak resets to 1 (today is day 1)
//
// Always stamps last_study_date with today.
func UpdateStreak(st *state.UserState, today string) (StreakResult, error) {
	todayDate, err := time.Parse(state.DateLayout, today)
	if err != nil {
		return StreakResult{}, &state.ValidationError{Field: "date", Err: err}
	}

	last := st.Progress.LastStudyDate
	if last == "" {
		st.User.Streak = 1
		st.Progress.LastStudyDate = today
		return StreakResult{Streak: 1, Continued: true, Message: "Started a new streak!"}, nil
	}

	lastDate, err := time.Parse(state.DateLayout, last)
	if err != nil {
		return StreakResult{}, &state.ValidationError{Field: "last_study_date", Err: err}
	}

	gap := daysBetween(lastDate, todayDate)
	switch {
	case gap <= 0:
		// Same day (or a clock that ran backwards): already counted.
		return StreakResult{Streak: st.User.Streak, Message: "Already studied today"}, nil

	case gap == 1:
		st.User.Streak++
		st.Progress.LastStudyDate = today
		return StreakResult{
			Streak:    st.User.Streak,
			Continued: true,
			Message:   fmt.Sprintf("Streak continued: %d days", st.User.Streak),
		}, nil

	default:
		if st.User.StreakFreeze > 0 {
			st.User.StreakFreeze--
			st.User.Streak++
			st.Progress.LastStudyDate = today
			return StreakResult{
				Streak:     st.User.Streak,
				Continued:  true,
				FreezeUsed: true,
				Message:    fmt.Sprintf("Streak freeze used — %d days preserved", st.User.Streak),
			}, nil
		}
		st.User.Streak = 1
		st.Progress.LastStudyDate = today
		return StreakResult{Streak: 1, Message: "Streak broken — starting over at day 1"}, nil
	}
}

// daysBetween counts calendar days from a to b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

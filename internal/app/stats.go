package app

import (
	"github.com/abhisek/lingua/internal/gamify"
	"github.com/abhisek/lingua/internal/scorer"
	"github.com/abhisek/lingua/internal/state"
)

// Summary is the profile snapshot the stats command renders.
type Summary struct {
	Level            int
	LevelName        string
	XP               int
	XPToNext         int
	XPIntoLevel      int
	Streak           int
	StreakFreezes    int
	StreakMultiplier float64
	Gems             int
	Badges           []gamify.Badge
	Progress         state.Progress
}

// Summarize assembles the profile snapshot from current state.
func (s *Service) Summarize() (*Summary, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return nil, err
	}

	needed, into := gamify.XPForNextLevel(st.User.XP)
	badges := make([]gamify.Badge, 0, len(st.User.Badges))
	for _, id := range st.User.Badges {
		if b, ok := gamify.BadgeByID(id); ok {
			badges = append(badges, b)
		}
	}

	return &Summary{
		Level:            st.User.Level,
		LevelName:        gamify.LevelName(st.User.Level),
		XP:               st.User.XP,
		XPToNext:         needed,
		XPIntoLevel:      into,
		Streak:           st.User.Streak,
		StreakFreezes:    st.User.StreakFreeze,
		StreakMultiplier: scorer.Multiplier(st.User.Streak),
		Gems:             st.User.Gems,
		Badges:           badges,
		Progress:         st.Progress,
	}, nil
}

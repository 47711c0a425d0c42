package gamify

import "github.com/abhisek/lingua/internal/state"

// Badge is a one-time achievement with a gem reward.
type Badge struct {
	ID     string
	Name   string
	Icon   string
	Gems   int
	Earned func(*state.UserState) bool
}

// AllBadges returns the badge definitions in display order.
func AllBadges() []Badge {
	return []Badge{
		{
			ID: "first_steps", Name: "First Steps", Icon: "👣", Gems: 10,
			Earned: func(st *state.UserState) bool { return st.Progress.TotalQuizzes >= 1 },
		},
		{
			ID: "week_warrior", Name: "Week Warrior", Icon: "🔥", Gems: 25,
			Earned: func(st *state.UserState) bool { return st.User.Streak >= 7 },
		},
		{
			ID: "month_master", Name: "Month Master", Icon: "🏆", Gems: 100,
			Earned: func(st *state.UserState) bool { return st.User.Streak >= 30 },
		},
		{
			ID: "perfect_10", Name: "Perfect 10", Icon: "💯", Gems: 50,
			Earned: func(st *state.UserState) bool { return st.Progress.PerfectQuizzes >= 10 },
		},
		{
			ID: "vocab_hunter", Name: "Vocab Hunter", Icon: "📚", Gems: 50,
			Earned: func(st *state.UserState) bool { return st.Progress.ExpressionsLearned >= 100 },
		},
		{
			ID: "error_slayer", Name: "Error Slayer", Icon: "⚔️", Gems: 50,
			Earned: func(st *state.UserState) bool { return st.Progress.ErrorsCleared >= 30 },
		},
	}
}

// BadgeByID looks up a badge definition.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range AllBadges() {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// CheckBadges evaluates every badge condition against the current
// counters and awards any newly satisfied ones, crediting each badge's
// gem reward exactly once. Re-checking already-earned badges is a no-op,
// so the call is idempotent. Earned badges are never removed.
func CheckBadges(st *state.UserState) []Badge {
	var earned []Badge
	for _, b := range AllBadges() {
		if st.User.HasBadge(b.ID) {
			continue
		}
		if !b.Earned(st) {
			continue
		}
		st.User.Badges = append(st.User.Badges, b.ID)
		st.User.Gems += b.Gems
		earned = append(earned, b)
	}
	return earned
}

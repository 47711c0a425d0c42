package gamify

import (
	"testing"

	"github.com/abhisek/lingua/internal/state"
)

func TestAwardGems(t *testing.T) {
	tests := []struct {
		reason GemReason
		want   int
	}{
		{GemQuizComplete, 5},
		{GemPerfectQuiz, 10},
		{GemLevelUp, 25},
		{GemReason("unknown"), 0},
	}

	for _, tt := range tests {
		st := state.Default()
		if got := AwardGems(st, tt.reason); got != tt.want {
			t.Errorf("AwardGems(%s) = %d, want %d", tt.reason, got, tt.want)
		}
		if st.User.Gems != tt.want {
			t.Errorf("Gems after %s = %d, want %d", tt.reason, st.User.Gems, tt.want)
		}
	}
}

func TestSpendGems_StreakFreeze(t *testing.T) {
	st := state.Default()
	st.User.Gems = 60

	cost, err := SpendGems(st, ItemStreakFreeze)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 50 {
		t.Errorf("cost = %d, want 50", cost)
	}
	if st.User.Gems != 10 {
		t.Errorf("Gems = %d, want 10", st.User.Gems)
	}
	if st.User.StreakFreeze != 1 {
		t.Errorf("StreakFreeze = %d, want 1", st.User.StreakFreeze)
	}
}

func TestSpendGems_InsufficientBalance(t *testing.T) {
	st := state.Default()
	st.User.Gems = 49

	if _, err := SpendGems(st, ItemStreakFreeze); err == nil {
		t.Fatal("expected error")
	}
	if st.User.Gems != 49 {
		t.Errorf("Gems = %d, want 49 (untouched)", st.User.Gems)
	}
	if st.User.StreakFreeze != 0 {
		t.Errorf("StreakFreeze = %d, want 0", st.User.StreakFreeze)
	}
}

func TestSpendGems_Hint(t *testing.T) {
	st := state.Default()
	st.User.Gems = 10

	cost, err := SpendGems(st, ItemHint)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 10 || st.User.Gems != 0 {
		t.Errorf("cost %d gems %d, want 10 and 0", cost, st.User.Gems)
	}
}

func TestSpendGems_UnknownItem(t *testing.T) {
	st := state.Default()
	st.User.Gems = 1000

	if _, err := SpendGems(st, GemItem("megaphone")); err == nil {
		t.Error("expected error for unknown item")
	}
}

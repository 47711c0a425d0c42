package dedup

import (
	"testing"
	"time"

	"github.com/abhisek/lingua/internal/state"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Break the Ice", "break_the_ice"},
		{"what's up?", "whats_up"},
		{"touch-base at work", "touch_base_at_work"},
		{"  spaced   out  ", "spaced_out"},
	}

	for _, tt := range tests {
		if got := Fingerprint(tt.in); got != tt.want {
			t.Errorf("Fingerprint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"asking", "ask"},
		{"asked", "ask"},
		{"asks", "ask"},
		{"movies", "mov"},
		{"ice", "ice"},
		{"meeting", "meet"},
	}

	for _, tt := range tests {
		if got := stem(tt.in); got != tt.want {
			t.Errorf("stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func day(s string) time.Time {
	d, err := time.Parse(state.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExcludedTopics_WindowBoundary(t *testing.T) {
	today := day("2026-03-15")
	st := state.Default()
	st.RecentTopics = []state.TopicEntry{
		{Date: "2026-03-01", Fingerprint: "exactly_fourteen"}, // 14 days ago
		{Date: "2026-03-02", Fingerprint: "thirteen_ago"},     // 13 days ago
		{Date: "2026-03-15", Fingerprint: "today_topic"},
	}

	got := ExcludedTopics(st, 14, today)
	if len(got) != 2 {
		t.Fatalf("excluded = %v, want 2 entries", got)
	}
	for _, fp := range got {
		if fp == "exactly_fourteen" {
			t.Error("entry from exactly 14 days ago must be outside the window")
		}
	}
	if got[0] != "today_topic" {
		t.Errorf("first = %q, want newest first", got[0])
	}
}

func TestExcludedTopics_Cap(t *testing.T) {
	today := day("2026-03-15")
	st := state.Default()
	for i := 0; i < 60; i++ {
		st.RecentTopics = append(st.RecentTopics, state.TopicEntry{
			Date:        "2026-03-14",
			Fingerprint: Fingerprint(string(rune('a' + i%26))),
		})
	}

	got := ExcludedTopics(st, 14, today)
	if len(got) > MaxRecentTopics {
		t.Errorf("len = %d, want at most %d", len(got), MaxRecentTopics)
	}
}

func TestAddRecentTopic_PrunesWindow(t *testing.T) {
	st := state.Default()
	st.RecentTopics = []state.TopicEntry{
		{Date: "2026-02-01", Fingerprint: "ancient"},
		{Date: "2026-03-10", Fingerprint: "recent"},
	}

	AddRecentTopic(st, "fresh", day("2026-03-15"), 14)

	if len(st.RecentTopics) != 2 {
		t.Fatalf("RecentTopics = %v, want 2 entries", st.RecentTopics)
	}
	for _, e := range st.RecentTopics {
		if e.Fingerprint == "ancient" {
			t.Error("entry outside the window should be pruned")
		}
	}
}

func TestIsDuplicate_Fingerprint(t *testing.T) {
	cand := Content{TopicFingerprint: "break_the_ice"}
	recent := []Content{{TopicFingerprint: "Break_The_Ice"}}

	dup, reason := IsDuplicate(cand, recent)
	if !dup {
		t.Fatal("identical fingerprint should be a duplicate")
	}
	if reason == "" {
		t.Error("want a reason")
	}
}

func TestIsDuplicate_ExpressionOverlap(t *testing.T) {
	cand := Content{
		TopicFingerprint: "office_smalltalk",
		Expressions: []Expression{
			{Phrase: "touch base"}, {Phrase: "circle back"}, {Phrase: "take five"},
		},
	}

	t.Run("above threshold", func(t *testing.T) {
		recent := []Content{{
			TopicFingerprint: "meeting_phrases",
			Expressions:      []Expression{{Phrase: "touch base"}, {Phrase: "circle back"}, {Phrase: "wrap up"}},
		}}
		if dup, _ := IsDuplicate(cand, recent); !dup {
			t.Error("2/3 shared expressions should be a duplicate")
		}
	})

	t.Run("exactly half is allowed", func(t *testing.T) {
		recent := []Content{{
			TopicFingerprint: "negotiation_talk",
			Expressions:      []Expression{{Phrase: "drive a hard bargain"}, {Phrase: "touch base"}},
		}}
		// Overlap = 1/min(3,2) = 0.5, not strictly greater than 0.5.
		// Root check: no shared roots besides "base"/"touch" vs distinct sets.
		if dup, reason := IsDuplicate(cand, recent); dup && reason[:10] == "expression" {
			t.Errorf("exactly 50%% expression overlap should not fire: %s", reason)
		}
	})
}

func TestIsDuplicate_RootOverlap(t *testing.T) {
	cand := Content{
		TopicFingerprint: "asking_for_help",
		Expressions:      []Expression{{Phrase: "lend a hand"}},
	}
	recent := []Content{{
		TopicFingerprint: "asked_help_politely",
	}}

	// Roots: cand {ask, help, lend, hand}; recent {ask, help, politely}.
	// Overlap = 2/3 ≈ 0.67 ≥ 0.6.
	if dup, _ := IsDuplicate(cand, recent); !dup {
		t.Error("shared roots above threshold should be a duplicate")
	}
}

func TestIsDuplicate_Distinct(t *testing.T) {
	cand := Content{
		TopicFingerprint: "weather_chat",
		Expressions:      []Expression{{Phrase: "raining cats and dogs"}},
	}
	recent := []Content{{
		TopicFingerprint: "movie_reviews",
		Expressions:      []Expression{{Phrase: "box office hit"}},
	}}

	if dup, reason := IsDuplicate(cand, recent); dup {
		t.Errorf("unrelated content flagged as duplicate: %s", reason)
	}
}

func TestExclusionPrompt(t *testing.T) {
	if got := ExclusionPrompt(nil); got != "None" {
		t.Errorf("empty prompt = %q, want None", got)
	}
	got := ExclusionPrompt([]string{"break_the_ice", "touch_base"})
	want := "1. break_the_ice\n2. touch_base"
	if got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestDiversity(t *testing.T) {
	recent := []Content{
		{TopicFingerprint: "workplace_touch_base", Category: "oral"},
		{TopicFingerprint: "workplace_standup", Category: "oral"},
		{TopicFingerprint: "movies_plot_twist", Category: "written"},
		{TopicFingerprint: "movies_plot_twist", Category: "written"},
	}

	score := Diversity(recent)
	if score.UniqueTopics != 3 {
		t.Errorf("UniqueTopics = %d, want 3", score.UniqueTopics)
	}
	if score.TopicDiversity != 0.75 {
		t.Errorf("TopicDiversity = %v, want 0.75", score.TopicDiversity)
	}
	if score.ThemeDistribution["workplace"] != 2 {
		t.Errorf("workplace theme = %d, want 2", score.ThemeDistribution["workplace"])
	}
	if score.CategoryDistribution["oral"] != 2 {
		t.Errorf("oral = %d, want 2", score.CategoryDistribution["oral"])
	}
}

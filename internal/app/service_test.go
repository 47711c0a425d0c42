package app

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/lingua/internal/gamify"
	"github.com/abhisek/lingua/internal/scorer"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := New(st)
	svc.Now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	// The daily flow requires a completed onboarding.
	if _, err := svc.AdvanceOnboarding(state.MaxOnboardingStep); err != nil {
		t.Fatal(err)
	}
	return svc
}

func testQuiz(date string) json.RawMessage {
	return json.RawMessage(`{
		"quiz_date": "` + date + `",
		"questions": [
			{"id": 1, "type": "multiple_choice", "question": "Pick the idiom for starting a conversation.", "options": ["Break the ice", "Hit the sack"], "correct_answer": "Break the ice"},
			{"id": 2, "type": "fill_blank", "question": "Let's touch ____ next week.", "correct_answer": "base"},
			{"id": 3, "type": "chinglish_fix", "question": "Fix: open the light", "correct_answer": "turn on the light", "explanation": "Lights are turned on, not opened."}
		]
	}`)
}

func testKeypoint(date, fingerprint string) json.RawMessage {
	return json.RawMessage(`{
		"date": "` + date + `",
		"topic_fingerprint": "` + fingerprint + `",
		"category": "oral",
		"topic": "Ordering coffee",
		"expressions": [
			{"phrase": "for here or to go", "meaning": "eat in or take away"},
			{"phrase": "room for milk", "meaning": "space left in the cup"}
		]
	}`)
}

func TestCompleteQuiz_AppliesProgression(t *testing.T) {
	svc := newTestService(t)
	date := "2026-03-10"
	if err := svc.SaveQuiz(date, testQuiz(date)); err != nil {
		t.Fatal(err)
	}

	out, err := svc.CompleteQuiz(date, scorer.Answers{
		"1": "break the ice",
		"2": "Base",
		"3": "open the light please",
	})
	if err != nil {
		t.Fatal(err)
	}

	if out.Result.CorrectCount != 2 || !out.Result.Passed || out.Result.Perfect {
		t.Errorf("result = %d correct passed=%v perfect=%v, want 2 correct passed", out.Result.CorrectCount, out.Result.Passed, out.Result.Perfect)
	}
	// Base 22, first-day streak multiplier 1.05 adds 1 bonus XP.
	if out.Result.TotalXP != 23 {
		t.Errorf("TotalXP = %d, want 23", out.Result.TotalXP)
	}
	if out.Streak.Streak != 1 {
		t.Errorf("streak = %d, want 1", out.Streak.Streak)
	}
	// quiz_complete 5 + first_steps badge 10.
	if out.GemsEarned != 15 {
		t.Errorf("GemsEarned = %d, want 15", out.GemsEarned)
	}
	if len(out.BadgesEarned) != 1 || out.BadgesEarned[0].ID != "first_steps" {
		t.Errorf("badges = %v, want first_steps", out.BadgesEarned)
	}

	// Everything lands in the persisted state in one save.
	st, err := svc.State()
	if err != nil {
		t.Fatal(err)
	}
	if st.User.XP != 23 || st.User.Level != 1 || st.User.Gems != 15 {
		t.Errorf("persisted user = XP %d level %d gems %d", st.User.XP, st.User.Level, st.User.Gems)
	}
	if st.Progress.TotalQuizzes != 1 {
		t.Errorf("TotalQuizzes = %d, want 1", st.Progress.TotalQuizzes)
	}
	if st.CompletionStatus.QuizCompletedDate != date {
		t.Errorf("QuizCompletedDate = %q, want %q", st.CompletionStatus.QuizCompletedDate, date)
	}
	if len(st.ErrorNotebook) != 1 || st.ErrorNotebook[0].CorrectAnswer != "turn on the light" {
		t.Fatalf("notebook = %+v, want the missed question", st.ErrorNotebook)
	}
	if st.ErrorNotebook[0].Explanation == "" {
		t.Error("miss should carry the explanation into the notebook")
	}

	// Graded result is written to the day bucket.
	if _, err := svc.Results(date); err != nil {
		t.Errorf("Results(%s) = %v, want saved result", date, err)
	}
}

func TestCompleteQuiz_PerfectLevelsUp(t *testing.T) {
	svc := newTestService(t)
	date := "2026-03-10"
	if err := svc.SaveQuiz(date, testQuiz(date)); err != nil {
		t.Fatal(err)
	}

	out, err := svc.CompleteQuiz(date, scorer.Answers{
		"1": "Break the ice",
		"2": "base",
		"3": "turn on the light",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !out.Result.Perfect {
		t.Fatal("expected a perfect result")
	}
	// Base 37 + bonus 1 + perfect 20 = 58, crossing the level 2 threshold.
	if out.Result.TotalXP != 58 {
		t.Errorf("TotalXP = %d, want 58", out.Result.TotalXP)
	}
	if !out.LeveledUp || out.NewLevel != 2 {
		t.Errorf("leveled=%v to %d, want level 2", out.LeveledUp, out.NewLevel)
	}
	// quiz 5 + perfect 10 + level up 25 + first_steps 10.
	if out.GemsEarned != 50 {
		t.Errorf("GemsEarned = %d, want 50", out.GemsEarned)
	}

	st, _ := svc.State()
	if st.Progress.PerfectQuizzes != 1 {
		t.Errorf("PerfectQuizzes = %d, want 1", st.Progress.PerfectQuizzes)
	}
}

func TestCompleteQuiz_AlreadyCompleted(t *testing.T) {
	svc := newTestService(t)
	date := "2026-03-10"
	if err := svc.SaveQuiz(date, testQuiz(date)); err != nil {
		t.Fatal(err)
	}
	answers := scorer.Answers{"1": "Break the ice", "2": "base", "3": "turn on the light"}
	if _, err := svc.CompleteQuiz(date, answers); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CompleteQuiz(date, answers)
	var ae *AlreadyCompletedError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *AlreadyCompletedError", err)
	}
	if ae.Date != date {
		t.Errorf("Date = %q, want %q", ae.Date, date)
	}
}

func TestCompleteQuiz_NoQuizForDate(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CompleteQuiz("2026-03-10", scorer.Answers{})
	if !store.IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestSaveKeypoint_RecordsTopicAndExpressions(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SaveKeypoint("2026-03-10", testKeypoint("2026-03-10", "ordering_coffee")); err != nil {
		t.Fatal(err)
	}

	st, err := svc.State()
	if err != nil {
		t.Fatal(err)
	}
	if st.Progress.ExpressionsLearned != 2 {
		t.Errorf("ExpressionsLearned = %d, want 2", st.Progress.ExpressionsLearned)
	}
	if len(st.RecentTopics) != 1 || st.RecentTopics[0].Fingerprint != "ordering_coffee" {
		t.Errorf("RecentTopics = %+v", st.RecentTopics)
	}
}

func TestSaveKeypoint_RejectsDuplicate(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SaveKeypoint("2026-03-09", testKeypoint("2026-03-09", "ordering_coffee")); err != nil {
		t.Fatal(err)
	}

	err := svc.SaveKeypoint("2026-03-10", testKeypoint("2026-03-10", "ordering_coffee"))
	var de *DuplicateTopicError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DuplicateTopicError", err)
	}
	if de.Fingerprint != "ordering_coffee" {
		t.Errorf("Fingerprint = %q", de.Fingerprint)
	}

	// The rejected keypoint must not count.
	st, _ := svc.State()
	if st.Progress.ExpressionsLearned != 2 {
		t.Errorf("ExpressionsLearned = %d, want unchanged 2", st.Progress.ExpressionsLearned)
	}
}

func TestUpdateSchedule_InvalidKeepsPrior(t *testing.T) {
	svc := newTestService(t)

	err := svc.UpdateSchedule(state.Schedule{
		KeypointTime: "21:00",
		QuizTime:     "07:30",
		Timezone:     "Asia/Shanghai",
	})
	if err == nil {
		t.Fatal("expected error for quiz before keypoint")
	}

	st, _ := svc.State()
	if st.Schedule.KeypointTime != state.Default().Schedule.KeypointTime {
		t.Errorf("schedule changed after invalid update: %+v", st.Schedule)
	}
}

func TestMarkReviewed_ClearsError(t *testing.T) {
	svc := newTestService(t)

	base, err := svc.State()
	if err != nil {
		t.Fatal(err)
	}
	next := base.Clone()
	next.ErrorNotebook = append(next.ErrorNotebook, state.ErrorRecord{
		Date:          "2026-03-01",
		Question:      "Fix: open the light",
		CorrectAnswer: "turn on the light",
		WrongCount:    1,
	})
	if err := svc.Store.SaveState(next); err != nil {
		t.Fatal(err)
	}

	if err := svc.MarkReviewed("Fix: open the light", true); err != nil {
		t.Fatal(err)
	}

	st, _ := svc.State()
	if !st.ErrorNotebook[0].Reviewed {
		t.Error("entry should be marked reviewed")
	}
	if st.Progress.ErrorsCleared != 1 {
		t.Errorf("ErrorsCleared = %d, want 1", st.Progress.ErrorsCleared)
	}
}

func TestBuy_InsufficientGems(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Buy(gamify.ItemStreakFreeze)
	if err == nil {
		t.Fatal("expected error on zero balance")
	}

	st, _ := svc.State()
	if st.User.Gems != 0 || st.User.StreakFreeze != 0 {
		t.Errorf("state changed after failed purchase: %+v", st.User)
	}
}

func TestDailyFlow_RequiresOnboarding(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Reset(); err != nil {
		t.Fatal(err)
	}

	var ne *NotInitializedError
	err := svc.SaveKeypoint("2026-03-10", testKeypoint("2026-03-10", "ordering_coffee"))
	if !errors.As(err, &ne) {
		t.Fatalf("SaveKeypoint error = %v, want *NotInitializedError", err)
	}

	_, err = svc.CompleteQuiz("2026-03-10", scorer.Answers{})
	if !errors.As(err, &ne) {
		t.Fatalf("CompleteQuiz error = %v, want *NotInitializedError", err)
	}

	st, _ := svc.State()
	if st.Progress.ExpressionsLearned != 0 || len(st.RecentTopics) != 0 {
		t.Errorf("state changed before onboarding: %+v", st.Progress)
	}
}

func TestAdvanceOnboarding_CompletesAtFinalStep(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Reset(); err != nil {
		t.Fatal(err)
	}

	st, err := svc.AdvanceOnboarding(state.MaxOnboardingStep)
	if err != nil {
		t.Fatal(err)
	}
	if !st.Initialized {
		t.Error("reaching the final step should initialize")
	}

	persisted, _ := svc.State()
	if !persisted.Initialized {
		t.Error("initialized flag not persisted")
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	svc := newTestService(t)

	st, _ := svc.State()
	next := st.Clone()
	next.User.XP = 999
	if err := svc.Store.SaveState(next); err != nil {
		t.Fatal(err)
	}

	if err := svc.Reset(); err != nil {
		t.Fatal(err)
	}
	st, _ = svc.State()
	if st.User.XP != 0 {
		t.Errorf("XP = %d after reset, want 0", st.User.XP)
	}
}

package app

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/lingua/internal/gamify"
	"github.com/abhisek/lingua/internal/notebook"
	"github.com/abhisek/lingua/internal/scorer"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/store"
)

// SaveQuiz validates and stores a generated quiz for the given date.
func (s *Service) SaveQuiz(date string, raw json.RawMessage) error {
	if err := s.Store.SaveDailyContent(date, store.ContentQuiz, raw); err != nil {
		return err
	}
	s.logEvent(store.EventQuizGenerated, map[string]any{"date": date})
	return nil
}

// SubmitAnswers persists the user's answer sheet without grading it.
func (s *Service) SubmitAnswers(date string, answers scorer.Answers) error {
	sub := scorer.Submission{QuizDate: date, Answers: answers}
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return s.Store.SaveDailyContent(date, store.ContentUserAnswers, raw)
}

// QuizOutcome is everything a caller needs to report a completed quiz.
type QuizOutcome struct {
	Result       *scorer.Result
	Streak       gamify.StreakResult
	LeveledUp    bool
	NewLevel     int
	GemsEarned   int
	BadgesEarned []gamify.Badge
	State        *state.UserState
}

// CompleteQuiz grades the stored quiz for the date against the given
// answers and applies the full progression update: streak, XP, level,
// counters, missed answers into the notebook, gems and badges. All
// state changes land in one save; the graded result is also written to
// the day's content bucket. Requires completed onboarding. A day whose
// quiz is already completed is refused.
func (s *Service) CompleteQuiz(date string, answers scorer.Answers) (*QuizOutcome, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return nil, err
	}
	if !st.Initialized {
		return nil, &NotInitializedError{Step: st.OnboardingStep}
	}
	if st.CompletionStatus.QuizCompletedDate == date {
		return nil, &AlreadyCompletedError{Date: date}
	}

	rawQuiz, err := s.Store.LoadDailyContent(date, store.ContentQuiz)
	if err != nil {
		return nil, err
	}
	var quiz scorer.Quiz
	if err := json.Unmarshal(rawQuiz, &quiz); err != nil {
		return nil, fmt.Errorf("decode quiz for %s: %w", date, err)
	}

	next := st.Clone()

	// The streak updates first so today's multiplier reflects today's
	// study, matching the day-1-counts rule.
	streak, err := gamify.UpdateStreak(next, date)
	if err != nil {
		return nil, err
	}

	result, err := scorer.Evaluate(&quiz, answers, next.User.Streak, date)
	if err != nil {
		return nil, err
	}

	prevLevel := next.User.Level
	next.User.XP += result.TotalXP
	next.User.Level = gamify.LevelFor(next.User.XP)
	leveled := next.User.Level > prevLevel

	n := next.Progress.TotalQuizzes + 1
	next.Progress.TotalQuizzes = n
	next.Progress.CorrectRate = (next.Progress.CorrectRate*float64(n-1) + result.Accuracy) / float64(n)
	if result.Perfect {
		next.Progress.PerfectQuizzes++
	}

	for _, m := range result.Misses {
		notebook.Add(next, state.ErrorRecord{
			Date:          date,
			Question:      m.Question,
			QuestionType:  string(m.QuestionType),
			UserAnswer:    m.UserAnswer,
			CorrectAnswer: m.CorrectAnswer,
			Explanation:   m.Explanation,
		})
	}

	gems := gamify.AwardGems(next, gamify.GemQuizComplete)
	if result.Perfect {
		gems += gamify.AwardGems(next, gamify.GemPerfectQuiz)
	}
	if leveled {
		gems += gamify.AwardGems(next, gamify.GemLevelUp)
	}

	earned := gamify.CheckBadges(next)
	for _, b := range earned {
		gems += b.Gems
	}

	next.CompletionStatus.QuizCompletedDate = date

	rawResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	if err := s.Store.SaveDailyContent(date, store.ContentResults, rawResult); err != nil {
		return nil, err
	}
	if err := s.Store.SaveState(next); err != nil {
		return nil, err
	}

	s.logEvent(store.EventQuizCompleted, map[string]any{
		"date":      date,
		"accuracy":  result.Accuracy,
		"xp_earned": result.TotalXP,
		"passed":    result.Passed,
		"perfect":   result.Perfect,
	})
	s.logEvent(store.EventStreakUpdated, map[string]any{
		"date":        date,
		"streak":      streak.Streak,
		"freeze_used": streak.FreezeUsed,
	})
	if leveled {
		s.logEvent(store.EventLevelUp, map[string]any{
			"from": prevLevel,
			"to":   next.User.Level,
		})
	}
	for _, b := range earned {
		s.logEvent(store.EventBadgeEarned, map[string]any{"badge": b.ID, "gems": b.Gems})
	}
	if gems > 0 {
		s.logEvent(store.EventGemsAwarded, map[string]any{"date": date, "amount": gems})
	}

	return &QuizOutcome{
		Result:       result,
		Streak:       streak,
		LeveledUp:    leveled,
		NewLevel:     next.User.Level,
		GemsEarned:   gems,
		BadgesEarned: earned,
		State:        next,
	}, nil
}

// Buy spends gems on a consumable item.
func (s *Service) Buy(item gamify.GemItem) (*state.UserState, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return nil, err
	}
	next := st.Clone()
	cost, err := gamify.SpendGems(next, item)
	if err != nil {
		return nil, err
	}
	if err := s.Store.SaveState(next); err != nil {
		return nil, err
	}
	s.logEvent(store.EventGemsSpent, map[string]any{
		"item":    string(item),
		"cost":    cost,
		"balance": next.User.Gems,
	})
	return next, nil
}

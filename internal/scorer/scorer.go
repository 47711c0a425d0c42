// Package scorer grades quiz submissions and computes experience points.
//
// XP rules:
//   - Each correct answer earns its question's XP value (10-15 by type).
//   - Streak multiplier: 1.0 + 0.05 per streak day, capped at 2.0.
//   - Perfect quiz (all correct): +20 bonus XP.
//   - Wrong answers earn nothing and are routed to the error notebook
//     by the caller.
//
// Grading is pure: Evaluate has no side effects beyond its return value.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/lingua/internal/state"
)

const (
	// PerfectQuizBonus is the flat XP bonus for a 100% quiz.
	PerfectQuizBonus = 20

	streakBonusPerDay = 0.05
	streakBonusCap    = 2.0
)

// Multiplier returns the streak XP multiplier: 1.0 + 0.05 per day,
// capped at 2.0.
func Multiplier(streak int) float64 {
	m := 1.0 + float64(streak)*streakBonusPerDay
	if m > streakBonusCap {
		return streakBonusCap
	}
	return m
}

// PassThreshold returns the number of correct answers required to pass
// an n-question quiz: 70% of n, rounded half-up. For the standard
// 3-question quiz this is the "2 of 3" rule (round(2.1) = 2).
func PassThreshold(n int) int {
	return int(math.Floor(0.7*float64(n) + 0.5))
}

// TotalXP computes the XP earned for a quiz: base XP plus the streak
// bonus plus the perfect bonus. The streak bonus truncates toward zero:
// base 25 at streak 10 yields bonus 12, total 37.
func TotalXP(baseXP, streak int, perfect bool) (total, bonus, perfectBonus int) {
	bonus = int(float64(baseXP) * (Multiplier(streak) - 1.0))
	if perfect {
		perfectBonus = PerfectQuizBonus
	}
	return baseXP + bonus + perfectBonus, bonus, perfectBonus
}

// Evaluate grades a submission against the quiz's answer key. Comparison
// is case-insensitive with surrounding whitespace trimmed. The streak is
// the user's current streak with today's study already counted, so the
// first-day multiplier is 1.05; date is today's date in the user's
// timezone.
func Evaluate(quiz *Quiz, answers Answers, streak int, date string) (*Result, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, &state.ValidationError{Field: "quiz", Err: fmt.Errorf("no questions to grade")}
	}
	if streak < 0 {
		return nil, &state.ValidationError{Field: "streak", Err: fmt.Errorf("%d is negative", streak)}
	}

	r := &Result{
		Date:           date,
		QuizDate:       quiz.QuizDate,
		TotalQuestions: len(quiz.Questions),
		Details:        make([]Detail, 0, len(quiz.Questions)),
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		submitted := strings.TrimSpace(answers[string(q.ID)])
		correct := answerMatches(q.CorrectAnswer, submitted)

		d := Detail{
			QuestionID:    string(q.ID),
			QuestionType:  q.Type,
			UserAnswer:    submitted,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
		}
		if correct {
			d.BaseXP = q.xp()
			r.BaseXP += d.BaseXP
			r.CorrectCount++
		} else {
			r.Misses = append(r.Misses, Miss{
				QuestionID:    string(q.ID),
				Question:      q.Question,
				QuestionType:  q.Type,
				UserAnswer:    submitted,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
			})
		}
		r.Details = append(r.Details, d)
	}

	r.WrongCount = r.TotalQuestions - r.CorrectCount
	r.Accuracy = math.Round(float64(r.CorrectCount)/float64(r.TotalQuestions)*1000) / 10
	r.Perfect = r.CorrectCount == r.TotalQuestions
	r.Passed = r.CorrectCount >= PassThreshold(r.TotalQuestions)
	r.StreakMultiplier = Multiplier(streak)
	r.TotalXP, r.BonusXP, r.PerfectBonus = TotalXP(r.BaseXP, streak, r.Perfect)

	return r, nil
}

func answerMatches(correct, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(correct), submitted)
}

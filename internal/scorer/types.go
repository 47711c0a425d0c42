package scorer

import (
	"encoding/json"
	"fmt"
)

// QuestionType identifies a quiz question kind and its base XP value.
type QuestionType string

const (
	MultipleChoice     QuestionType = "multiple_choice"
	FillBlank          QuestionType = "fill_blank"
	DialogueCompletion QuestionType = "dialogue_completion"
	ChinglishFix       QuestionType = "chinglish_fix"
)

// baseXP maps question types to their default XP values, used when the
// generator omits an explicit xp_value.
var baseXP = map[QuestionType]int{
	MultipleChoice:     10,
	FillBlank:          12,
	DialogueCompletion: 15,
	ChinglishFix:       15,
}

// Question is one quiz question with its answer key.
type Question struct {
	ID            IDString     `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	XPValue       int          `json:"xp_value,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
}

// xp returns the question's XP value, falling back to the per-type table.
func (q *Question) xp() int {
	if q.XPValue > 0 {
		return q.XPValue
	}
	if v, ok := baseXP[q.Type]; ok {
		return v
	}
	return baseXP[MultipleChoice]
}

// Quiz is a generated quiz definition.
type Quiz struct {
	QuizDate            string     `json:"quiz_date"`
	KeypointFingerprint string     `json:"keypoint_fingerprint,omitempty"`
	Questions           []Question `json:"questions"`
}

// Answers maps question ID to the submitted value.
type Answers map[string]string

// Submission is the persisted user_answers payload.
type Submission struct {
	QuizDate string  `json:"quiz_date"`
	Answers  Answers `json:"answers"`
}

// Detail records the grading of one question.
type Detail struct {
	QuestionID    string       `json:"question_id"`
	QuestionType  QuestionType `json:"question_type"`
	UserAnswer    string       `json:"user_answer"`
	CorrectAnswer string       `json:"correct_answer"`
	IsCorrect     bool         `json:"is_correct"`
	BaseXP        int          `json:"base_xp"`
}

// Miss carries everything the error notebook needs about a wrong answer.
type Miss struct {
	QuestionID    string       `json:"question_id"`
	Question      string       `json:"question"`
	QuestionType  QuestionType `json:"question_type"`
	UserAnswer    string       `json:"user_answer"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
}

// Result is the outcome of grading one submission.
type Result struct {
	Date             string   `json:"date"`
	QuizDate         string   `json:"quiz_date"`
	TotalQuestions   int      `json:"total_questions"`
	CorrectCount     int      `json:"correct_count"`
	WrongCount       int      `json:"wrong_count"`
	BaseXP           int      `json:"base_xp"`
	StreakMultiplier float64  `json:"streak_multiplier"`
	BonusXP          int      `json:"bonus_xp"`
	PerfectBonus     int      `json:"perfect_bonus"`
	TotalXP          int      `json:"total_xp_earned"`
	Accuracy         float64  `json:"accuracy"`
	Passed           bool     `json:"passed"`
	Perfect          bool     `json:"perfect"`
	Details          []Detail `json:"details"`
	Misses           []Miss   `json:"errors,omitempty"`
}

// IDString decodes a JSON number or string into a string, since
// generators emit question IDs either way.
type IDString string

func (s *IDString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = IDString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("question id must be string or number: %w", err)
	}
	*s = IDString(n.String())
	return nil
}

package state

import (
	"encoding/json"
	"fmt"
)

// DateLayout is the calendar-date format used throughout persisted state.
const DateLayout = "2006-01-02"

// CurrentVersion is the state schema version written by this build.
const CurrentVersion = 2

// MaxOnboardingStep is the final onboarding step; reaching it marks the
// installation as initialized.
const MaxOnboardingStep = 7

// UserState is the aggregate persistent record for one installation.
// It is a plain value: every operation takes it explicitly, so a
// multi-user deployment only needs to key state lookups by user.
type UserState struct {
	Version        int    `json:"version"`
	Initialized    bool   `json:"initialized"`
	OnboardingStep int    `json:"onboarding_step"`

	CompletionStatus CompletionStatus `json:"completion_status"`
	Schedule         Schedule         `json:"schedule"`
	User             Profile          `json:"user"`
	Preferences      Preferences      `json:"preferences"`
	Progress         Progress         `json:"progress"`

	RecentTopics  []TopicEntry  `json:"recent_topics"`
	ErrorNotebook []ErrorRecord `json:"error_notebook"`
	ErrorArchive  []ErrorRecord `json:"error_archive"`
}

// Profile holds the gamification counters.
type Profile struct {
	XP           int      `json:"xp"`
	Level        int      `json:"level"`
	Streak       int      `json:"streak"`
	StreakFreeze int      `json:"streak_freeze"`
	Gems         int      `json:"gems"`
	Badges       []string `json:"badges"`
}

// HasBadge reports whether the badge has already been earned.
func (p *Profile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Progress holds cumulative study statistics.
type Progress struct {
	TotalQuizzes       int     `json:"total_quizzes"`
	CorrectRate        float64 `json:"correct_rate"`
	LastStudyDate      string  `json:"last_study_date,omitempty"`
	PerfectQuizzes     int     `json:"perfect_quizzes"`
	ExpressionsLearned int     `json:"expressions_learned"`
	ErrorsCleared      int     `json:"errors_cleared"`
}

// CompletionStatus tracks daily completion flags.
type CompletionStatus struct {
	QuizCompletedDate   string       `json:"quiz_completed_date,omitempty"`
	KeypointViewHistory []ViewRecord `json:"keypoint_view_history"`
}

// ViewRecord marks one keypoint view.
type ViewRecord struct {
	Date     string `json:"date"`
	ViewedAt string `json:"viewed_at"`
}

// TopicEntry is one recently-taught topic, kept for deduplication.
type TopicEntry struct {
	Date        string `json:"date"`
	Fingerprint string `json:"fingerprint"`
}

// ErrorRecord is one missed quiz answer in the error notebook.
type ErrorRecord struct {
	Date           string `json:"date"`
	Question       string `json:"question"`
	QuestionType   string `json:"question_type,omitempty"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Explanation    string `json:"explanation"`
	Reviewed       bool   `json:"reviewed"`
	WrongCount     int    `json:"wrong_count"`
	ArchivedAt     string `json:"archived_at,omitempty"`
	ArchivedReason string `json:"archived_reason,omitempty"`
}

// Default returns a fresh UserState with documented defaults.
func Default() *UserState {
	return &UserState{
		Version:        CurrentVersion,
		Initialized:    false,
		OnboardingStep: 0,
		CompletionStatus: CompletionStatus{
			KeypointViewHistory: []ViewRecord{},
		},
		Schedule: Schedule{
			KeypointTime: "06:45",
			QuizTime:     "22:45",
			Timezone:     "Asia/Shanghai",
		},
		User: Profile{
			XP:     0,
			Level:  1,
			Badges: []string{},
		},
		Preferences: Preferences{
			CEFRLevel:        CEFRB1,
			OralWrittenRatio: 70,
			Topics: map[string]float64{
				"movies":     0.2,
				"news":       0.15,
				"gaming":     0.15,
				"sports":     0.1,
				"workplace":  0.2,
				"social":     0.1,
				"daily_life": 0.1,
			},
			TutorStyle: StyleHumorous,
			DedupDays:  14,
			TTS: TTSSettings{
				Enabled: true,
				Voice:   "en-US-JennyNeural",
				Speed:   1.0,
			},
		},
		RecentTopics:  []TopicEntry{},
		ErrorNotebook: []ErrorRecord{},
		ErrorArchive:  []ErrorRecord{},
	}
}

// Clone returns a deep copy. Transactional operations mutate a clone and
// persist it in one save, so a failure never leaves partial updates.
func (s *UserState) Clone() *UserState {
	b, err := json.Marshal(s)
	if err != nil {
		// UserState contains only JSON-encodable fields.
		panic(fmt.Sprintf("clone state: %v", err))
	}
	c := &UserState{}
	if err := json.Unmarshal(b, c); err != nil {
		panic(fmt.Sprintf("clone state: %v", err))
	}
	return c
}

// AdvanceOnboarding sets the onboarding step, clamped to [0, 7].
// Reaching the final step marks the state initialized.
func (s *UserState) AdvanceOnboarding(step int) {
	if step < 0 {
		step = 0
	}
	if step > MaxOnboardingStep {
		step = MaxOnboardingStep
	}
	s.OnboardingStep = step
	if step >= MaxOnboardingStep {
		s.Initialized = true
	}
}

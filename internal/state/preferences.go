package state

import "fmt"

// CEFRLevel is a language ability tier (A1 beginner through C2 mastery).
// It governs content difficulty and is independent of the activity level.
type CEFRLevel string

const (
	CEFRA1 CEFRLevel = "A1"
	CEFRA2 CEFRLevel = "A2"
	CEFRB1 CEFRLevel = "B1"
	CEFRB2 CEFRLevel = "B2"
	CEFRC1 CEFRLevel = "C1"
	CEFRC2 CEFRLevel = "C2"
)

// Valid reports whether the level is one of the six CEFR tiers.
func (l CEFRLevel) Valid() bool {
	switch l {
	case CEFRA1, CEFRA2, CEFRB1, CEFRB2, CEFRC1, CEFRC2:
		return true
	}
	return false
}

// TutorStyle selects the register the content generator writes in.
type TutorStyle string

const (
	StyleHumorous TutorStyle = "humorous"
	StyleStrict   TutorStyle = "strict"
	StyleFriendly TutorStyle = "friendly"
	StyleAcademic TutorStyle = "academic"
)

// Valid reports whether the style is a known tutor style.
func (t TutorStyle) Valid() bool {
	switch t {
	case StyleHumorous, StyleStrict, StyleFriendly, StyleAcademic:
		return true
	}
	return false
}

// TTSSettings configure the external audio collaborator. The core only
// stores them; synthesis happens outside this subsystem.
type TTSSettings struct {
	Enabled bool    `json:"enabled"`
	Voice   string  `json:"voice"`
	Speed   float64 `json:"speed"`
}

// Preferences holds user-tunable content settings.
type Preferences struct {
	CEFRLevel        CEFRLevel          `json:"cefr_level"`
	OralWrittenRatio int                `json:"oral_written_ratio"`
	Topics           map[string]float64 `json:"topics"`
	TutorStyle       TutorStyle         `json:"tutor_style"`
	DedupDays        int                `json:"dedup_days"`
	TTS              TTSSettings        `json:"tts"`
}

// ValidationError reports malformed input rejected before it reaches the
// scoring or gamification engines.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks preference values without mutating them.
func (p *Preferences) Validate() error {
	if !p.CEFRLevel.Valid() {
		return &ValidationError{Field: "cefr_level", Err: fmt.Errorf("unknown CEFR level %q", p.CEFRLevel)}
	}
	if !p.TutorStyle.Valid() {
		return &ValidationError{Field: "tutor_style", Err: fmt.Errorf("unknown tutor style %q", p.TutorStyle)}
	}
	if p.OralWrittenRatio < 0 || p.OralWrittenRatio > 100 {
		return &ValidationError{Field: "oral_written_ratio", Err: fmt.Errorf("%d is outside 0-100", p.OralWrittenRatio)}
	}
	if p.DedupDays < 1 {
		return &ValidationError{Field: "dedup_days", Err: fmt.Errorf("%d must be at least 1", p.DedupDays)}
	}
	return nil
}

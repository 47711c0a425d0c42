package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EventType identifies an entry in the append-only event log.
type EventType string

const (
	EventKeypointGenerated EventType = "keypoint_generated"
	EventQuizGenerated     EventType = "quiz_generated"
	EventQuizCompleted     EventType = "quiz_completed"
	EventStreakUpdated     EventType = "streak_updated"
	EventLevelUp           EventType = "level_up"
	EventBadgeEarned       EventType = "badge_earned"
	EventGemsAwarded       EventType = "gems_awarded"
	EventGemsSpent         EventType = "gems_spent"
	EventErrorReviewed     EventType = "error_reviewed"
	EventErrorsArchived    EventType = "errors_archived"
	EventViewRecorded      EventType = "view_recorded"
	EventScheduleUpdated   EventType = "schedule_updated"
	EventPrefsUpdated      EventType = "preferences_updated"
)

// Event is one immutable audit record. Events are written as JSON lines
// to a per-calendar-month log and never rewritten.
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// AppendEvent appends one record to the current month's log, creating
// the file if needed. Prior lines are never rewritten.
func (s *Store) AppendEvent(t EventType, data map[string]any) error {
	return s.appendEventAt(time.Now(), t, data)
}

func (s *Store) appendEventAt(now time.Time, t EventType, data map[string]any) error {
	if err := os.MkdirAll(s.logsDir, 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}

	ev := Event{
		ID:        uuid.NewString(),
		Timestamp: now,
		Type:      t,
		Data:      data,
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	path := s.monthLogPath(now)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ReadEvents returns the events recorded in the given month ("2006-01"),
// in append order. A missing log yields an empty slice. A corrupt tail
// line (torn append) is skipped rather than failing the read.
func (s *Store) ReadEvents(month string) ([]Event, error) {
	path := filepath.Join(s.logsDir, "events_"+month+".jsonl")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	var events []Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var ev Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping corrupt event line in %s: %v\n", path, err)
			continue
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("scan event log: %w", err)
	}
	return events, nil
}

func (s *Store) monthLogPath(now time.Time) string {
	return filepath.Join(s.logsDir, "events_"+now.Format("2006-01")+".jsonl")
}

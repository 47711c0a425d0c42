package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/lingua/internal/state"
)

// SaveDailyContent validates the payload against the content type's
// schema and writes it into the date bucket. Nothing is persisted on
// validation failure.
func (s *Store) SaveDailyContent(date string, ct ContentType, content json.RawMessage) error {
	if !ct.Valid() {
		return fmt.Errorf("unknown content type %q", ct)
	}
	if _, err := time.Parse(state.DateLayout, date); err != nil {
		return fmt.Errorf("bad date %q: %w", date, err)
	}
	if err := validateContent(ct, content); err != nil {
		return err
	}

	dir := filepath.Join(s.dailyDir, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create daily dir: %w", err)
	}

	// Re-indent for readable on-disk buckets.
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	path := filepath.Join(dir, string(ct)+".json")
	if err := writeFileAtomic(path, pretty); err != nil {
		return fmt.Errorf("save %s content: %w", ct, err)
	}
	return nil
}

// LoadDailyContent reads one entry from the date bucket. A missing entry
// is the normal NotFoundError outcome.
func (s *Store) LoadDailyContent(date string, ct ContentType) (json.RawMessage, error) {
	if !ct.Valid() {
		return nil, fmt.Errorf("unknown content type %q", ct)
	}
	path := filepath.Join(s.dailyDir, date, string(ct)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Date: date, ContentType: ct}
		}
		return nil, fmt.Errorf("read %s content: %w", ct, err)
	}
	return json.RawMessage(data), nil
}

// RecentKeypoints returns keypoint payloads from the trailing window
// ending at today, newest first. Missing days are skipped.
func (s *Store) RecentKeypoints(today time.Time, days int) []json.RawMessage {
	var out []json.RawMessage
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i).Format(state.DateLayout)
		raw, err := s.LoadDailyContent(date, ContentKeypoint)
		if err != nil {
			continue
		}
		out = append(out, raw)
	}
	return out
}

package app

import (
	"encoding/json"
	"time"

	"github.com/abhisek/lingua/internal/dedup"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/store"
)

// SaveKeypoint validates a generated keypoint, rejects it when it
// duplicates recently taught content, and otherwise persists it and
// records its topic fingerprint. The expressions counter advances with
// every accepted keypoint. Requires completed onboarding.
func (s *Service) SaveKeypoint(date string, raw json.RawMessage) error {
	st, err := s.Store.LoadState()
	if err != nil {
		return err
	}
	if !st.Initialized {
		return &NotInitializedError{Step: st.OnboardingStep}
	}

	candidate, err := dedup.ParseContent(raw)
	if err != nil {
		return err
	}

	day, err := time.Parse(state.DateLayout, date)
	if err != nil {
		day = s.Now()
	}

	window := st.Preferences.DedupDays
	recentRaw := s.Store.RecentKeypoints(day, window)
	recent := make([]dedup.Content, 0, len(recentRaw))
	for _, r := range recentRaw {
		c, err := dedup.ParseContent(r)
		if err != nil {
			continue
		}
		recent = append(recent, c)
	}
	if dup, reason := dedup.IsDuplicate(candidate, recent); dup {
		return &DuplicateTopicError{Fingerprint: candidate.TopicFingerprint, Reason: reason}
	}

	if err := s.Store.SaveDailyContent(date, store.ContentKeypoint, raw); err != nil {
		return err
	}

	next := st.Clone()
	dedup.AddRecentTopic(next, candidate.TopicFingerprint, day, window)
	next.Progress.ExpressionsLearned += len(candidate.Expressions)
	if err := s.Store.SaveState(next); err != nil {
		return err
	}

	s.logEvent(store.EventKeypointGenerated, map[string]any{
		"date":        date,
		"fingerprint": candidate.TopicFingerprint,
		"topic":       candidate.Topic,
	})
	return nil
}

// Keypoint loads the stored keypoint for a date.
func (s *Service) Keypoint(date string) (json.RawMessage, error) {
	return s.Store.LoadDailyContent(date, store.ContentKeypoint)
}

// Quiz loads the stored quiz for a date.
func (s *Service) Quiz(date string) (json.RawMessage, error) {
	return s.Store.LoadDailyContent(date, store.ContentQuiz)
}

// Results loads the graded result for a date.
func (s *Service) Results(date string) (json.RawMessage, error) {
	return s.Store.LoadDailyContent(date, store.ContentResults)
}

// ExcludedTopics returns the topic fingerprints a generator must avoid,
// newest first, plus a prompt fragment listing them.
func (s *Service) ExcludedTopics(date string) ([]string, string, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return nil, "", err
	}
	day, err := time.Parse(state.DateLayout, date)
	if err != nil {
		day = s.Now()
	}
	excluded := dedup.ExcludedTopics(st, st.Preferences.DedupDays, day)
	return excluded, dedup.ExclusionPrompt(excluded), nil
}

// RecordView appends a keypoint view record for the date.
func (s *Service) RecordView(date string) error {
	st, err := s.Store.LoadState()
	if err != nil {
		return err
	}
	next := st.Clone()
	next.CompletionStatus.KeypointViewHistory = append(
		next.CompletionStatus.KeypointViewHistory,
		state.ViewRecord{
			Date:     date,
			ViewedAt: s.Now().Format(time.RFC3339),
		},
	)
	if err := s.Store.SaveState(next); err != nil {
		return err
	}
	s.logEvent(store.EventViewRecorded, map[string]any{"date": date})
	return nil
}

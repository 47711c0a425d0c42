package app

import (
	"math/rand"
	"time"

	"github.com/abhisek/lingua/internal/notebook"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/store"
)

// ListErrors returns a page of notebook entries, newest first. month
// (YYYY-MM) filters; random returns a shuffled sample of unreviewed
// entries instead of a page.
func (s *Service) ListErrors(page, perPage int, month string, random bool) (notebook.Page, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return notebook.Page{}, err
	}
	if random {
		rng := rand.New(rand.NewSource(s.Now().UnixNano()))
		sample := notebook.Sample(st, perPage, rng)
		return notebook.Page{
			Total:   len(sample),
			Page:    1,
			PerPage: perPage,
			Errors:  sample,
		}, nil
	}
	return notebook.List(st, page, perPage, month), nil
}

// ReviewCandidates returns up to n unreviewed entries for an
// interactive session.
func (s *Service) ReviewCandidates(n int) ([]state.ErrorRecord, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return nil, err
	}
	return notebook.ReviewCandidates(st, n), nil
}

// MarkReviewed applies one review outcome and persists it. Remembered
// entries clear; forgotten ones gain a wrong count and resurface.
// Reviews never award XP.
func (s *Service) MarkReviewed(question string, remembered bool) error {
	st, err := s.Store.LoadState()
	if err != nil {
		return err
	}
	next := st.Clone()
	if err := notebook.Review(next, question, remembered); err != nil {
		return err
	}
	if err := s.Store.SaveState(next); err != nil {
		return err
	}
	s.logEvent(store.EventErrorReviewed, map[string]any{
		"question":   question,
		"remembered": remembered,
	})
	return nil
}

// ErrorStats summarizes the notebook for display.
func (s *Service) ErrorStats() (notebook.Stats, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return notebook.Stats{}, err
	}
	return notebook.Summarize(st), nil
}

// ArchiveStaleErrors moves repeatedly-missed old entries to the archive.
func (s *Service) ArchiveStaleErrors() (int, error) {
	return s.archiveWith(func(next *state.UserState, now time.Time) int {
		return notebook.ArchiveStale(next, now)
	}, "stale")
}

// ClearReviewedErrors archives every reviewed entry.
func (s *Service) ClearReviewedErrors() (int, error) {
	return s.archiveWith(func(next *state.UserState, now time.Time) int {
		return notebook.ClearReviewed(next, now)
	}, "reviewed")
}

func (s *Service) archiveWith(fn func(*state.UserState, time.Time) int, reason string) (int, error) {
	st, err := s.Store.LoadState()
	if err != nil {
		return 0, err
	}
	next := st.Clone()
	n := fn(next, s.Now())
	if n == 0 {
		return 0, nil
	}
	if err := s.Store.SaveState(next); err != nil {
		return 0, err
	}
	s.logEvent(store.EventErrorsArchived, map[string]any{
		"count":  n,
		"reason": reason,
	})
	return n, nil
}

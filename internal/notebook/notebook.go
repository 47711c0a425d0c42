// Package notebook manages the error notebook: missed quiz answers kept
// for spaced review. Review sessions award no XP; gamification is scoped
// to daily quizzes, and clearing errors feeds only the Error Slayer
// badge counter.
package notebook

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/abhisek/lingua/internal/dedup"
	"github.com/abhisek/lingua/internal/state"
)

const (
	// MaxSize caps the notebook; adding beyond it archives the oldest entry.
	MaxSize = 100

	// StaleWrongCount and StaleAgeDays gate stale archival: an entry
	// missed this often and this old moves to the archive.
	StaleWrongCount = 3
	StaleAgeDays    = 30
)

// Add appends a missed answer. If an unreviewed entry with the same
// question fingerprint already exists, its wrong count is incremented
// instead of creating a duplicate record.
func Add(st *state.UserState, rec state.ErrorRecord) {
	if rec.WrongCount < 1 {
		rec.WrongCount = 1
	}
	rec.Reviewed = false

	fp := dedup.Fingerprint(rec.Question)
	for i := range st.ErrorNotebook {
		e := &st.ErrorNotebook[i]
		if !e.Reviewed && dedup.Fingerprint(e.Question) == fp {
			e.WrongCount++
			e.Date = rec.Date
			e.UserAnswer = rec.UserAnswer
			return
		}
	}

	st.ErrorNotebook = append(st.ErrorNotebook, rec)

	// Over the cap: archive the oldest entry.
	if len(st.ErrorNotebook) > MaxSize {
		sort.SliceStable(st.ErrorNotebook, func(i, j int) bool {
			return st.ErrorNotebook[i].Date < st.ErrorNotebook[j].Date
		})
		oldest := st.ErrorNotebook[0]
		st.ErrorNotebook = st.ErrorNotebook[1:]
		oldest.ArchivedAt = rec.Date
		oldest.ArchivedReason = "notebook_full"
		st.ErrorArchive = append(st.ErrorArchive, oldest)
	}
}

// Page is one page of notebook entries, newest first.
type Page struct {
	Total      int
	Page       int
	PerPage    int
	TotalPages int
	HasMore    bool
	HasPrev    bool
	Errors     []state.ErrorRecord
}

// List returns a page of entries sorted newest first. month, when
// non-empty, restricts to records whose date starts with it (YYYY-MM).
func List(st *state.UserState, page, perPage int, month string) Page {
	entries := sortedNewestFirst(st.ErrorNotebook)
	if month != "" {
		filtered := entries[:0:0]
		for _, e := range entries {
			if len(e.Date) >= len(month) && e.Date[:len(month)] == month {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	total := len(entries)
	if perPage < 1 {
		perPage = 5
	}
	totalPages := (total + perPage - 1) / perPage
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
		HasPrev:    page > 1,
		Errors:     entries[start:end],
	}
}

// Sample returns up to n unreviewed entries chosen uniformly at random.
// Under-supply returns fewer entries, never an error.
func Sample(st *state.UserState, n int, rng *rand.Rand) []state.ErrorRecord {
	unreviewed := unreviewedRecords(st)
	if n >= len(unreviewed) {
		return unreviewed
	}
	rng.Shuffle(len(unreviewed), func(i, j int) {
		unreviewed[i], unreviewed[j] = unreviewed[j], unreviewed[i]
	})
	return unreviewed[:n]
}

// ReviewCandidates returns up to n unreviewed entries, newest first, for
// an interactive review session.
func ReviewCandidates(st *state.UserState, n int) []state.ErrorRecord {
	unreviewed := sortedNewestFirst(unreviewedRecords(st))
	if n > 0 && len(unreviewed) > n {
		unreviewed = unreviewed[:n]
	}
	return unreviewed
}

// Review applies a review outcome to the entry matching the question
// text. Remembered marks it reviewed and bumps the errors-cleared
// counter; forgotten increments the wrong count so the entry resurfaces.
func Review(st *state.UserState, question string, remembered bool) error {
	fp := dedup.Fingerprint(question)
	for i := range st.ErrorNotebook {
		e := &st.ErrorNotebook[i]
		if e.Reviewed || dedup.Fingerprint(e.Question) != fp {
			continue
		}
		if remembered {
			e.Reviewed = true
			st.Progress.ErrorsCleared++
		} else {
			e.WrongCount++
		}
		return nil
	}
	return fmt.Errorf("no unreviewed entry matches %q", question)
}

// Stats summarizes the notebook.
type Stats struct {
	Total      int
	Reviewed   int
	Unreviewed int
	ByMonth    map[string]int
}

// Summarize counts entries by review status and month.
func Summarize(st *state.UserState) Stats {
	s := Stats{ByMonth: make(map[string]int)}
	for _, e := range st.ErrorNotebook {
		s.Total++
		if e.Reviewed {
			s.Reviewed++
		} else {
			s.Unreviewed++
		}
		if len(e.Date) >= 7 {
			s.ByMonth[e.Date[:7]]++
		}
	}
	return s
}

// ArchiveStale moves unreviewed entries that were missed at least
// StaleWrongCount times and are at least StaleAgeDays old into the
// archive. Returns the number archived.
func ArchiveStale(st *state.UserState, today time.Time) int {
	remaining := st.ErrorNotebook[:0:0]
	archived := 0

	for _, e := range st.ErrorNotebook {
		if e.Reviewed {
			remaining = append(remaining, e)
			continue
		}
		age := ageDays(e.Date, today)
		if e.WrongCount >= StaleWrongCount && age >= StaleAgeDays {
			e.ArchivedAt = today.Format(state.DateLayout)
			e.ArchivedReason = "stale"
			st.ErrorArchive = append(st.ErrorArchive, e)
			archived++
		} else {
			remaining = append(remaining, e)
		}
	}

	st.ErrorNotebook = remaining
	return archived
}

// ClearReviewed drops reviewed entries from the notebook, keeping them
// in the archive for stats. Returns the number cleared.
func ClearReviewed(st *state.UserState, today time.Time) int {
	remaining := st.ErrorNotebook[:0:0]
	cleared := 0
	for _, e := range st.ErrorNotebook {
		if e.Reviewed {
			e.ArchivedAt = today.Format(state.DateLayout)
			e.ArchivedReason = "reviewed"
			st.ErrorArchive = append(st.ErrorArchive, e)
			cleared++
			continue
		}
		remaining = append(remaining, e)
	}
	st.ErrorNotebook = remaining
	return cleared
}

func unreviewedRecords(st *state.UserState) []state.ErrorRecord {
	out := make([]state.ErrorRecord, 0, len(st.ErrorNotebook))
	for _, e := range st.ErrorNotebook {
		if !e.Reviewed {
			out = append(out, e)
		}
	}
	return out
}

func sortedNewestFirst(entries []state.ErrorRecord) []state.ErrorRecord {
	out := make([]state.ErrorRecord, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

func ageDays(date string, today time.Time) int {
	d, err := time.Parse(state.DateLayout, date)
	if err != nil {
		return 0
	}
	return int(today.Sub(d).Hours() / 24)
}

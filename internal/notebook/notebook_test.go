package notebook

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/abhisek/lingua/internal/state"
)

func record(date, question string) state.ErrorRecord {
	return state.ErrorRecord{
		Date:          date,
		Question:      question,
		UserAnswer:    "wrong",
		CorrectAnswer: "right",
	}
}

func TestAdd_NewEntry(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "Fix: open the light"))

	if len(st.ErrorNotebook) != 1 {
		t.Fatalf("notebook size = %d, want 1", len(st.ErrorNotebook))
	}
	e := st.ErrorNotebook[0]
	if e.WrongCount != 1 || e.Reviewed {
		t.Errorf("got wrong_count %d reviewed %v, want 1 false", e.WrongCount, e.Reviewed)
	}
}

func TestAdd_SameQuestionIncrementsWrongCount(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "Fix: open the light"))
	Add(st, record("2026-03-12", "Fix: Open the light!"))

	if len(st.ErrorNotebook) != 1 {
		t.Fatalf("notebook size = %d, want 1 (merged by fingerprint)", len(st.ErrorNotebook))
	}
	e := st.ErrorNotebook[0]
	if e.WrongCount != 2 {
		t.Errorf("WrongCount = %d, want 2", e.WrongCount)
	}
	if e.Date != "2026-03-12" {
		t.Errorf("Date = %q, want latest miss date", e.Date)
	}
}

func TestAdd_ReviewedEntryNotMerged(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "Fix: open the light"))
	st.ErrorNotebook[0].Reviewed = true

	Add(st, record("2026-03-12", "Fix: open the light"))
	if len(st.ErrorNotebook) != 2 {
		t.Fatalf("notebook size = %d, want 2 (reviewed entry left alone)", len(st.ErrorNotebook))
	}
}

func TestAdd_CapArchivesOldest(t *testing.T) {
	st := state.Default()
	for i := 0; i < MaxSize; i++ {
		Add(st, record(fmt.Sprintf("2026-01-%02d", i%28+1), fmt.Sprintf("question number %d", i)))
	}
	if len(st.ErrorNotebook) != MaxSize {
		t.Fatalf("notebook size = %d, want %d", len(st.ErrorNotebook), MaxSize)
	}

	Add(st, record("2026-03-10", "one more question"))

	if len(st.ErrorNotebook) != MaxSize {
		t.Errorf("notebook size = %d, want %d after overflow", len(st.ErrorNotebook), MaxSize)
	}
	if len(st.ErrorArchive) != 1 {
		t.Fatalf("archive size = %d, want 1", len(st.ErrorArchive))
	}
	if st.ErrorArchive[0].ArchivedReason != "notebook_full" {
		t.Errorf("ArchivedReason = %q, want notebook_full", st.ErrorArchive[0].ArchivedReason)
	}
}

func TestList_NewestFirstAndPaged(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "first"))
	Add(st, record("2026-03-12", "second"))
	Add(st, record("2026-03-14", "third"))

	p := List(st, 1, 2, "")
	if p.Total != 3 || p.TotalPages != 2 {
		t.Fatalf("total %d pages %d, want 3 and 2", p.Total, p.TotalPages)
	}
	if len(p.Errors) != 2 || p.Errors[0].Question != "third" {
		t.Errorf("page 1 = %v, want newest first", p.Errors)
	}
	if !p.HasMore || p.HasPrev {
		t.Errorf("HasMore %v HasPrev %v, want true false", p.HasMore, p.HasPrev)
	}

	p2 := List(st, 2, 2, "")
	if len(p2.Errors) != 1 || p2.Errors[0].Question != "first" {
		t.Errorf("page 2 = %v, want [first]", p2.Errors)
	}
}

func TestList_MonthFilter(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-02-20", "february question"))
	Add(st, record("2026-03-10", "march question"))

	p := List(st, 1, 5, "2026-02")
	if p.Total != 1 || p.Errors[0].Question != "february question" {
		t.Errorf("filtered = %+v, want only February", p.Errors)
	}
}

func TestList_PageClamped(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "only one"))

	p := List(st, 99, 5, "")
	if p.Page != 1 || len(p.Errors) != 1 {
		t.Errorf("page %d with %d entries, want clamped to 1", p.Page, len(p.Errors))
	}
}

func TestSample_UnderSupply(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "alpha"))
	Add(st, record("2026-03-11", "beta"))
	st.ErrorNotebook[1].Reviewed = true

	rng := rand.New(rand.NewSource(1))
	got := Sample(st, 5, rng)
	if len(got) != 1 {
		t.Fatalf("sample size = %d, want 1 (only unreviewed)", len(got))
	}
	if got[0].Question != "alpha" {
		t.Errorf("sampled %q, want alpha", got[0].Question)
	}
}

func TestReview_Remembered(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "Fix: open the light"))

	if err := Review(st, "Fix: open the light", true); err != nil {
		t.Fatal(err)
	}
	if !st.ErrorNotebook[0].Reviewed {
		t.Error("entry should be marked reviewed")
	}
	if st.Progress.ErrorsCleared != 1 {
		t.Errorf("ErrorsCleared = %d, want 1", st.Progress.ErrorsCleared)
	}
}

func TestReview_ForgottenIncrementsWrongCount(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-03-10", "Fix: open the light"))

	if err := Review(st, "Fix: open the light", false); err != nil {
		t.Fatal(err)
	}
	e := st.ErrorNotebook[0]
	if e.Reviewed {
		t.Error("forgotten entry must stay unreviewed")
	}
	if e.WrongCount != 2 {
		t.Errorf("WrongCount = %d, want 2", e.WrongCount)
	}
	if st.Progress.ErrorsCleared != 0 {
		t.Errorf("ErrorsCleared = %d, want 0", st.Progress.ErrorsCleared)
	}
}

func TestReview_NoMatch(t *testing.T) {
	st := state.Default()
	if err := Review(st, "never seen", true); err == nil {
		t.Error("expected error for unknown question")
	}
}

func TestArchiveStale(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	st := state.Default()
	st.ErrorNotebook = []state.ErrorRecord{
		{Date: "2026-01-01", Question: "old and missed", WrongCount: 3},
		{Date: "2026-01-01", Question: "old but rare", WrongCount: 2},
		{Date: "2026-03-10", Question: "fresh and missed", WrongCount: 5},
	}

	n := ArchiveStale(st, now)
	if n != 1 {
		t.Fatalf("archived %d, want 1", n)
	}
	if len(st.ErrorNotebook) != 2 {
		t.Errorf("notebook size = %d, want 2", len(st.ErrorNotebook))
	}
	if st.ErrorArchive[0].Question != "old and missed" {
		t.Errorf("archived %q, want the stale entry", st.ErrorArchive[0].Question)
	}
	if st.ErrorArchive[0].ArchivedReason != "stale" {
		t.Errorf("reason = %q, want stale", st.ErrorArchive[0].ArchivedReason)
	}
}

func TestClearReviewed(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	st := state.Default()
	Add(st, record("2026-03-10", "keep me"))
	Add(st, record("2026-03-11", "clear me"))
	st.ErrorNotebook[1].Reviewed = true

	n := ClearReviewed(st, now)
	if n != 1 {
		t.Fatalf("cleared %d, want 1", n)
	}
	if len(st.ErrorNotebook) != 1 || st.ErrorNotebook[0].Question != "keep me" {
		t.Errorf("notebook = %v, want only the unreviewed entry", st.ErrorNotebook)
	}
	if st.ErrorArchive[0].ArchivedReason != "reviewed" {
		t.Errorf("reason = %q, want reviewed", st.ErrorArchive[0].ArchivedReason)
	}
}

func TestSummarize(t *testing.T) {
	st := state.Default()
	Add(st, record("2026-02-20", "one"))
	Add(st, record("2026-03-10", "two"))
	Add(st, record("2026-03-11", "three"))
	st.ErrorNotebook[0].Reviewed = true

	s := Summarize(st)
	if s.Total != 3 || s.Reviewed != 1 || s.Unreviewed != 2 {
		t.Errorf("stats = %+v, want 3/1/2", s)
	}
	if s.ByMonth["2026-03"] != 2 {
		t.Errorf("March count = %d, want 2", s.ByMonth["2026-03"])
	}
}

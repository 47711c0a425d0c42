// Package dedup prevents content repetition within a rolling window.
//
// A candidate keypoint is rejected when any of three checks fires, in
// order: exact fingerprint match, taught-expression overlap, root-word
// similarity. All checks are pure; retrying generation on rejection is
// the caller's job.
package dedup

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/state"
)

const (
	// DefaultWindowDays is the trailing dedup window.
	DefaultWindowDays = 14

	// MaxRecentTopics bounds the recent-topic list regardless of window.
	MaxRecentTopics = 50

	// ExpressionOverlapThreshold rejects a candidate whose expression set
	// shares strictly more than this fraction with a recent item. The
	// denominator is the smaller set (shared / min(|A|,|B|)), so a small
	// candidate fully contained in a large recent set always trips it.
	ExpressionOverlapThreshold = 0.5

	// RootOverlapThreshold rejects a candidate whose core vocabulary
	// overlaps a recent item's at or above this fraction (shared / min).
	RootOverlapThreshold = 0.6
)

// Expression is a taught phrase inside a keypoint payload.
type Expression struct {
	Phrase string `json:"phrase"`
}

// Content is the dedup-relevant view of a keypoint payload.
type Content struct {
	TopicFingerprint string       `json:"topic_fingerprint"`
	Category         string       `json:"category"`
	Topic            string       `json:"topic"`
	Expressions      []Expression `json:"expressions"`
	Alternatives     []string     `json:"alternatives"`
}

// ParseContent extracts the dedup view from a raw keypoint payload.
func ParseContent(raw json.RawMessage) (Content, error) {
	var c Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return Content{}, fmt.Errorf("parse keypoint for dedup: %w", err)
	}
	return c, nil
}

// ExcludedTopics returns the fingerprints taught within the window:
// the last windowDays days, inclusive of today and exclusive of day
// windowDays+1. An entry from exactly windowDays days ago is outside
// the window. At most MaxRecentTopics fingerprints are returned,
// newest first.
func ExcludedTopics(st *state.UserState, windowDays int, today time.Time) []string {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	entries := withinWindow(st.RecentTopics, windowDays, today)

	// Newest first.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	if len(entries) > MaxRecentTopics {
		entries = entries[:MaxRecentTopics]
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Fingerprint)
	}
	return out
}

// AddRecentTopic appends a topic entry and prunes everything outside
// the window, keeping the invariant that recent_topics never holds an
// entry older than the configured window.
func AddRecentTopic(st *state.UserState, fingerprint string, date time.Time, windowDays int) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	st.RecentTopics = append(st.RecentTopics, state.TopicEntry{
		Date:        date.Format(state.DateLayout),
		Fingerprint: fingerprint,
	})
	st.RecentTopics = withinWindow(st.RecentTopics, windowDays, date)
	if len(st.RecentTopics) > MaxRecentTopics {
		st.RecentTopics = st.RecentTopics[len(st.RecentTopics)-MaxRecentTopics:]
	}
}

// withinWindow keeps entries from the last windowDays days (day offsets
// 0 through windowDays-1 relative to today).
func withinWindow(entries []state.TopicEntry, windowDays int, today time.Time) []state.TopicEntry {
	cutoff := today.AddDate(0, 0, -(windowDays - 1)).Format(state.DateLayout)
	out := make([]state.TopicEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

// IsDuplicate applies the three checks in order, short-circuiting on the
// first match. The returned reason names the check that fired.
func IsDuplicate(candidate Content, recent []Content) (bool, string) {
	candFP := strings.ToLower(strings.TrimSpace(candidate.TopicFingerprint))
	for _, r := range recent {
		if candFP != "" && candFP == strings.ToLower(strings.TrimSpace(r.TopicFingerprint)) {
			return true, fmt.Sprintf("fingerprint %q already taught", candidate.TopicFingerprint)
		}
	}

	candExprs := expressionSet(candidate)
	for _, r := range recent {
		if ov := setOverlap(candExprs, expressionSet(r)); ov > ExpressionOverlapThreshold {
			return true, fmt.Sprintf("expression overlap %.0f%% with %q", ov*100, r.TopicFingerprint)
		}
	}

	candRoots := rootSet(candidate)
	for _, r := range recent {
		if ov := setOverlap(candRoots, rootSet(r)); ov >= RootOverlapThreshold {
			return true, fmt.Sprintf("root-word similarity %.0f%% with %q", ov*100, r.TopicFingerprint)
		}
	}

	return false, ""
}

// expressionSet collects the normalized taught phrases of a content item.
func expressionSet(c Content) map[string]bool {
	out := make(map[string]bool)
	for _, e := range c.Expressions {
		if p := NormalizePhrase(e.Phrase); p != "" {
			out[p] = true
		}
	}
	for _, a := range c.Alternatives {
		if p := NormalizePhrase(a); p != "" {
			out[p] = true
		}
	}
	return out
}

// rootSet collects the stemmed content words of the fingerprint and all
// taught phrases.
func rootSet(c Content) map[string]bool {
	out := roots(c.TopicFingerprint)
	for _, e := range c.Expressions {
		for r := range roots(e.Phrase) {
			out[r] = true
		}
	}
	return out
}

// setOverlap returns shared / min(|a|,|b|), or 0 for an empty side.
func setOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for k := range a {
		if b[k] {
			shared++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(shared) / float64(smaller)
}

// ExclusionPrompt formats the excluded fingerprints as a prompt fragment
// for the content generator. Returns "None" when nothing is excluded.
func ExclusionPrompt(excluded []string) string {
	if len(excluded) == 0 {
		return "None"
	}
	var b strings.Builder
	for i, fp := range excluded {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fp)
	}
	return strings.TrimRight(b.String(), "\n")
}

// DiversityScore summarizes how varied recent content has been.
type DiversityScore struct {
	TotalContent         int            `json:"total_content"`
	UniqueTopics         int            `json:"unique_topics"`
	TopicDiversity       float64        `json:"topic_diversity"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	ThemeDistribution    map[string]int `json:"theme_distribution"`
}

// Diversity computes topic/category/theme distribution over recent
// content. The theme is the first fingerprint segment (e.g. "workplace"
// from "workplace_touch_base").
func Diversity(recent []Content) DiversityScore {
	score := DiversityScore{
		TotalContent:         len(recent),
		TopicDiversity:       1.0,
		CategoryDistribution: make(map[string]int),
		ThemeDistribution:    make(map[string]int),
	}
	if len(recent) == 0 {
		return score
	}

	seen := make(map[string]bool)
	for _, c := range recent {
		seen[c.TopicFingerprint] = true
		if c.Category != "" {
			score.CategoryDistribution[c.Category]++
		}
		if theme, _, ok := strings.Cut(c.TopicFingerprint, "_"); ok && theme != "" {
			score.ThemeDistribution[theme]++
		}
	}
	score.UniqueTopics = len(seen)
	score.TopicDiversity = float64(score.UniqueTopics) / float64(score.TotalContent)
	return score
}

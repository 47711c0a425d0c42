package dedup

import "strings"

// stopwords are function words excluded from fingerprints and root sets.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"to": true, "of": true, "in": true, "on": true, "at": true, "for": true,
	"with": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "do": true, "does": true, "did": true,
	"can": true, "could": true, "will": true, "would": true, "should": true,
	"you": true, "your": true, "we": true, "our": true, "me": true, "my": true,
	"it": true, "its": true, "this": true, "that": true, "lets": true,
	"what": true, "when": true, "where": true, "how": true, "up": true,
}

// Fingerprint derives a normalized topic identifier from salient text:
// lowercase, punctuation stripped, words joined by underscores.
func Fingerprint(text string) string {
	return strings.Join(strings.Fields(normalize(text)), "_")
}

// NormalizePhrase lowercases a phrase and strips punctuation, keeping
// word order, for expression-set comparison.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(normalize(phrase)), " ")
}

// normalize lowercases text and drops everything but letters, digits
// and spaces. Apostrophes vanish rather than split ("what's" → "whats").
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '_' || r == '-':
			b.WriteByte(' ')
		}
		// Everything else (punctuation, apostrophes) is dropped.
	}
	return b.String()
}

// roots extracts the stemmed content words of a text: stopwords and
// short words removed, common suffixes trimmed.
func roots(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(normalize(text)) {
		if len(w) < 3 || stopwords[w] {
			continue
		}
		out[stem(w)] = true
	}
	return out
}

// stem trims common English suffixes. A crude stemmer is enough here:
// the goal is matching "asking"/"asked"/"asks" to one root, not
// linguistic correctness.
func stem(w string) string {
	for _, suf := range []string{"ing", "edly", "ed", "ies", "es", "s"} {
		if strings.HasSuffix(w, suf) && len(w)-len(suf) >= 3 {
			return w[:len(w)-len(suf)]
		}
	}
	return w
}

package prefilter

import (
	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick to rule out content that contains none of a
// pattern's required literals before the regex runs.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string // keyword at each dictionary index
}

// New creates a prefilter from keywords. Empty and repeated keywords are
// ignored; a prefilter with no keywords lets all content through.
func New(keywords []string) *Prefilter {
	pf := &Prefilter{}

	seen := make(map[string]bool)
	for _, keyword := range keywords {
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		pf.keywords = append(pf.keywords, keyword)
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Keywords returns the deduplicated keyword dictionary.
func (pf *Prefilter) Keywords() []string {
	return pf.keywords
}

// MayMatch reports whether content contains at least one keyword.
// Safe for concurrent use.
func (pf *Prefilter) MayMatch(content []byte) bool {
	if pf.matcher == nil {
		return true
	}
	return len(pf.matcher.MatchThreadSafe(content)) > 0
}

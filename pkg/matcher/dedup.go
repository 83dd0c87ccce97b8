package matcher

import (
	"iter"

	"github.com/praetorian-inc/phonefind/pkg/types"
)

// Deduplicator drops matches whose rule and matched text were already seen,
// so the same number appearing twice counts once. Not safe for concurrent use.
type Deduplicator struct {
	seen map[string]struct{}
}

// NewDeduplicator creates an empty deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		seen: make(map[string]struct{}),
	}
}

// IsDuplicate returns true if match was already seen.
func (d *Deduplicator) IsDuplicate(m *types.Match) bool {
	_, ok := d.seen[key(m)]
	return ok
}

// Add marks a match as seen.
func (d *Deduplicator) Add(m *types.Match) {
	d.seen[key(m)] = struct{}{}
}

func key(m *types.Match) string {
	return m.RuleID + "\x00" + m.Value
}

// Unique yields each distinct value of seq once, in first-seen order.
// Every iteration starts with an empty seen set.
func Unique(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for v := range seq {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}
}

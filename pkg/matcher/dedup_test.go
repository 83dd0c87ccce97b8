package matcher

import (
	"slices"
	"testing"

	"github.com/praetorian-inc/phonefind/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestDeduplicator_ByValue(t *testing.T) {
	d := NewDeduplicator()

	first := &types.Match{RuleID: "phone.plus3", Value: "+3(012)-345-6789"}
	again := &types.Match{
		RuleID:   "phone.plus3",
		Value:    "+3(012)-345-6789",
		Location: types.Location{Offset: types.OffsetSpan{Start: 40, End: 56}},
	}

	assert.False(t, d.IsDuplicate(first))
	d.Add(first)
	assert.True(t, d.IsDuplicate(again), "same value at another offset is a duplicate")
}

func TestDeduplicator_DifferentRules(t *testing.T) {
	d := NewDeduplicator()

	d.Add(&types.Match{RuleID: "a", Value: "x"})
	assert.False(t, d.IsDuplicate(&types.Match{RuleID: "b", Value: "x"}))
}

func TestUnique(t *testing.T) {
	seq := slices.Values([]string{"b", "a", "b", "c", "a"})

	assert.Equal(t, []string{"b", "a", "c"}, slices.Collect(Unique(seq)))
	// A second pass starts from scratch
	assert.Equal(t, []string{"b", "a", "c"}, slices.Collect(Unique(seq)))
}

func TestUnique_EarlyStop(t *testing.T) {
	var got []string
	for v := range Unique(slices.Values([]string{"x", "x", "y", "z"})) {
		got = append(got, v)
		if v == "y" {
			break
		}
	}
	assert.Equal(t, []string{"x", "y"}, got)
}

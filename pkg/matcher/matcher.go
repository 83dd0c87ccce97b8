package matcher

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/praetorian-inc/phonefind/pkg/prefilter"
	"github.com/praetorian-inc/phonefind/pkg/types"
)

// DefaultPattern matches phone numbers in the +3(000)-000-0000 format.
const DefaultPattern = `\+3\(\d{3}\)-\d{3}-\d{4}`

// DefaultRuleID identifies matches produced by an unnamed pattern.
const DefaultRuleID = "phone.plus3"

var (
	// ErrInvalidArgument is returned for an empty pattern or absent text.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMatchTimeout is returned when a regexp2 scan exceeds Config.Timeout.
	ErrMatchTimeout = errors.New("match timeout")
)

// Config for matcher initialization.
type Config struct {
	// Pattern is the regular expression to compile. Must not be blank.
	Pattern string

	// RuleID is attached to every Match produced by All (default DefaultRuleID).
	RuleID string

	// Engine selects the regex implementation (default EngineRegexp2).
	Engine Engine

	// Keywords are literals at least one of which must occur for the pattern
	// to match. Empty disables prefiltering.
	Keywords []string

	// ContextLines is the number of lines captured before and after a match
	// in Match.Snippet (0 = only the matched text).
	ContextLines int

	// Timeout bounds a single regexp2 scan step (0 = no timeout).
	Timeout time.Duration
}

// Matcher owns one compiled pattern. It is immutable after construction and
// safe for concurrent use.
type Matcher struct {
	pattern      string
	ruleID       string
	kind         Engine
	engine       engine
	prefilter    *prefilter.Prefilter
	contextLines int
}

// New compiles cfg.Pattern into a Matcher.
func New(cfg Config) (*Matcher, error) {
	if strings.TrimSpace(cfg.Pattern) == "" {
		return nil, fmt.Errorf("%w: pattern cannot be empty or whitespace", ErrInvalidArgument)
	}
	if cfg.ContextLines < 0 {
		return nil, fmt.Errorf("%w: context lines must not be negative", ErrInvalidArgument)
	}

	kind := cfg.Engine
	if kind == "" {
		kind = EngineRegexp2
	}

	var (
		eng engine
		err error
	)
	switch kind {
	case EngineRegexp2:
		eng, err = compileRegexp2(cfg.Pattern, cfg.Timeout)
	case EngineRE2:
		eng, err = compileRE2(cfg.Pattern)
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrInvalidArgument, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", cfg.Pattern, err)
	}

	ruleID := cfg.RuleID
	if ruleID == "" {
		ruleID = DefaultRuleID
	}

	m := &Matcher{
		pattern:      cfg.Pattern,
		ruleID:       ruleID,
		kind:         kind,
		engine:       eng,
		contextLines: cfg.ContextLines,
	}
	if len(cfg.Keywords) > 0 {
		m.prefilter = prefilter.New(cfg.Keywords)
	}
	return m, nil
}

// NewDefault creates a Matcher for DefaultPattern using the regexp2 engine.
func NewDefault() (*Matcher, error) {
	return New(Config{Pattern: DefaultPattern})
}

// NewFromRule creates a Matcher for a rule. Pattern, RuleID and Keywords
// in cfg are taken from the rule.
func NewFromRule(r *types.Rule, cfg Config) (*Matcher, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: rule is nil", ErrInvalidArgument)
	}
	cfg.Pattern = r.Pattern
	cfg.RuleID = r.ID
	cfg.Keywords = r.Keywords
	m, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.ID, err)
	}
	return m, nil
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string { return m.pattern }

// RuleID returns the rule identifier attached to matches.
func (m *Matcher) RuleID() string { return m.ruleID }

// Engine returns the regex engine in use.
func (m *Matcher) Engine() Engine { return m.kind }

// Find returns the successive non-overlapping matches in content, left to
// right. The sequence is lazy and may be ranged over any number of times.
// A nil content slice is rejected with ErrInvalidArgument; an empty one
// yields nothing.
func (m *Matcher) Find(content []byte) (iter.Seq[string], error) {
	if content == nil {
		return nil, fmt.Errorf("%w: text is nil", ErrInvalidArgument)
	}
	return m.findString(string(content), content), nil
}

// FindString is Find for text already held as a string.
//
// If the engine fails mid-scan (a regexp2 timeout), a warning is logged and
// the sequence ends. Use All to observe the error.
func (m *Matcher) FindString(text string) iter.Seq[string] {
	return m.findString(text, nil)
}

func (m *Matcher) findString(text string, content []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !m.mayMatch(text, content) {
			return
		}
		for sp, err := range m.engine.spans(text) {
			if err != nil {
				slog.Warn("pattern scan stopped early", "rule", m.ruleID, "error", err)
				return
			}
			if !yield(text[sp.start:sp.end]) {
				return
			}
		}
	}
}

// All returns the matches in text with their locations and snippets.
// An engine error is yielded once with a nil match and ends the sequence.
func (m *Matcher) All(text string) iter.Seq2[*types.Match, error] {
	return m.all(text, nil)
}

func (m *Matcher) all(text string, content []byte) iter.Seq2[*types.Match, error] {
	return func(yield func(*types.Match, error) bool) {
		if !m.mayMatch(text, content) {
			return
		}
		cursor := types.NewLineCursor(text)
		for sp, err := range m.engine.spans(text) {
			if err != nil {
				yield(nil, fmt.Errorf("rule %s: %w", m.ruleID, err))
				return
			}
			if !yield(m.buildMatch(text, sp, cursor), nil) {
				return
			}
		}
	}
}

// AllBytes is All for raw content. A nil content slice is rejected with
// ErrInvalidArgument.
func (m *Matcher) AllBytes(content []byte) (iter.Seq2[*types.Match, error], error) {
	if content == nil {
		return nil, fmt.Errorf("%w: text is nil", ErrInvalidArgument)
	}
	return m.all(string(content), content), nil
}

// Matches collects All for content into a slice.
func (m *Matcher) Matches(content []byte) ([]*types.Match, error) {
	seq, err := m.AllBytes(content)
	if err != nil {
		return nil, err
	}
	var matches []*types.Match
	for match, err := range seq {
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// mayMatch runs the prefilter. content, when non-nil, holds the same bytes
// as text and saves a conversion.
func (m *Matcher) mayMatch(text string, content []byte) bool {
	if m.prefilter == nil {
		return true
	}
	if content == nil {
		content = []byte(text)
	}
	if !m.prefilter.MayMatch(content) {
		slog.Debug("prefilter ruled out input", "rule", m.ruleID, "keywords", m.prefilter.Keywords(), "bytes", len(content))
		return false
	}
	return true
}

// buildMatch constructs a types.Match from a byte span.
func (m *Matcher) buildMatch(text string, sp span, cursor *types.LineCursor) *types.Match {
	before, after := ExtractContext(text, sp.start, sp.end, m.contextLines)
	return &types.Match{
		RuleID: m.ruleID,
		Value:  text[sp.start:sp.end],
		Location: types.Location{
			Offset: types.OffsetSpan{
				Start: int64(sp.start),
				End:   int64(sp.end),
			},
			Source: types.SourceSpan{
				Start: cursor.Advance(sp.start),
				End:   cursor.Advance(sp.end),
			},
		},
		Snippet: types.Snippet{
			Before:   before,
			Matching: text[sp.start:sp.end],
			After:    after,
		},
	}
}

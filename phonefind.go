// Package phonefind finds phone numbers written as +3(000)-000-0000 in text.
//
// # Basic Usage
//
// Create a finder with the builtin phone rule and range over the matches:
//
//	finder, err := phonefind.NewFinder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for number := range finder.Find("Call +3(012)-345-6789 or +3(000)-000-0000") {
//	    fmt.Println(number)
//	}
//
// # Locations
//
// Matches returns each number with its byte offsets, line and column:
//
//	matches, err := finder.Matches(content)
//	for _, m := range matches {
//	    fmt.Printf("%s at line %d\n", m.Value, m.Location.Source.Start.Line)
//	}
package phonefind

import (
	"fmt"
	"iter"
	"time"

	"github.com/praetorian-inc/phonefind/pkg/input"
	"github.com/praetorian-inc/phonefind/pkg/matcher"
	"github.com/praetorian-inc/phonefind/pkg/rule"
	"github.com/praetorian-inc/phonefind/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/phonefind" without subpackages.
type (
	// Match is a single pattern occurrence with its location.
	Match = types.Match

	// Rule is a pattern plus metadata loaded from YAML.
	Rule = types.Rule

	// Location describes where a match was found within content.
	Location = types.Location

	// Snippet contains the matched text with surrounding context.
	Snippet = types.Snippet

	// Engine names a regex implementation.
	Engine = matcher.Engine
)

const (
	// DefaultPattern matches +3(000)-000-0000 phone numbers.
	DefaultPattern = matcher.DefaultPattern

	EngineRegexp2 = matcher.EngineRegexp2
	EngineRE2     = matcher.EngineRE2
)

// ErrInvalidArgument reports a blank pattern or nil text.
var ErrInvalidArgument = matcher.ErrInvalidArgument

// Finder searches text with one compiled rule. It is safe for concurrent use.
type Finder struct {
	matcher *matcher.Matcher
	rule    *types.Rule
	config  *finderConfig
}

// finderConfig holds finder configuration.
type finderConfig struct {
	rule         *types.Rule
	pattern      string
	engine       matcher.Engine
	contextLines int
	timeout      time.Duration
	limits       input.Limits
}

// Option configures a Finder.
type Option func(*finderConfig)

// WithPattern searches for pattern instead of the builtin phone rule.
func WithPattern(pattern string) Option {
	return func(c *finderConfig) {
		c.pattern = pattern
	}
}

// WithRule searches with r instead of the builtin phone rule.
func WithRule(r *Rule) Option {
	return func(c *finderConfig) {
		c.rule = r
	}
}

// WithEngine selects the regex engine. Default is EngineRegexp2.
func WithEngine(engine Engine) Option {
	return func(c *finderConfig) {
		c.engine = engine
	}
}

// WithContextLines sets the number of context lines captured around matches.
func WithContextLines(lines int) Option {
	return func(c *finderConfig) {
		c.contextLines = lines
	}
}

// WithTimeout bounds regexp2 matching. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *finderConfig) {
		c.timeout = d
	}
}

// WithLimits sets the size limits used by FindFile.
func WithLimits(limits input.Limits) Option {
	return func(c *finderConfig) {
		c.limits = limits
	}
}

// NewFinder creates a Finder. Without WithPattern or WithRule it uses the
// builtin phone rule, including its prefilter keywords.
func NewFinder(opts ...Option) (*Finder, error) {
	config := &finderConfig{
		engine: matcher.EngineRegexp2,
		limits: input.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(config)
	}

	r := config.rule
	switch {
	case config.pattern != "":
		r = &types.Rule{ID: matcher.DefaultRuleID, Name: "Pattern", Pattern: config.pattern}
		r.StructuralID = r.ComputeStructuralID()
	case r == nil:
		builtin, err := rule.NewLoader().LoadBuiltinRule(rule.DefaultRuleID)
		if err != nil {
			return nil, fmt.Errorf("loading builtin rules: %w", err)
		}
		r = builtin
	}

	m, err := matcher.NewFromRule(r, matcher.Config{
		Engine:       config.engine,
		ContextLines: config.contextLines,
		Timeout:      config.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating matcher: %w", err)
	}

	return &Finder{matcher: m, rule: r, config: config}, nil
}

// Find returns the lazy sequence of matched substrings in text.
func (f *Finder) Find(text string) iter.Seq[string] {
	return f.matcher.FindString(text)
}

// FindUnique is Find with repeated numbers dropped, keeping the first
// occurrence of each.
func (f *Finder) FindUnique(text string) iter.Seq[string] {
	return matcher.Unique(f.matcher.FindString(text))
}

// FindBytes is Find for raw bytes. Nil content is rejected with
// ErrInvalidArgument.
func (f *Finder) FindBytes(content []byte) (iter.Seq[string], error) {
	return f.matcher.Find(content)
}

// Matches returns every match in text with its location and snippet.
func (f *Finder) Matches(text string) ([]*Match, error) {
	return f.matcher.Matches([]byte(text))
}

// FindFile reads path, extracting text from documents and archives, and
// returns its matches.
func (f *Finder) FindFile(path string) ([]*Match, error) {
	content, err := input.ReadFile(path, f.config.limits)
	if err != nil {
		return nil, err
	}
	return f.matcher.Matches(content)
}

// Rule returns the rule the finder searches with.
func (f *Finder) Rule() *Rule {
	return f.rule
}

// Pattern returns the compiled pattern.
func (f *Finder) Pattern() string {
	return f.matcher.Pattern()
}

// LoadRulesFromFile loads a rule from a YAML file for use with WithRule.
func LoadRulesFromFile(path string) ([]*Rule, error) {
	loader := rule.NewLoader()
	r, err := loader.LoadRuleFile(path)
	if err != nil {
		return nil, err
	}
	return []*Rule{r}, nil
}

// LoadBuiltinRules returns all builtin rules.
func LoadBuiltinRules() ([]*Rule, error) {
	loader := rule.NewLoader()
	return loader.LoadBuiltinRules()
}

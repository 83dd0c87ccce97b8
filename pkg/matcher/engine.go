package matcher

import (
	"fmt"
	"iter"
	"strings"
)

// Engine names a regular expression implementation.
type Engine string

const (
	// EngineRegexp2 uses github.com/dlclark/regexp2, a port of the .NET
	// regex engine (backtracking, lookaround support). \d and \w are
	// Unicode-aware, so \d also accepts digits such as fullwidth "０".
	EngineRegexp2 Engine = "regexp2"

	// EngineRE2 uses the standard library regexp package (linear time,
	// RE2 syntax only). \d and \w are ASCII-only, so on text holding
	// non-ASCII digits the two engines can disagree.
	EngineRE2 Engine = "re2"
)

// Engines lists the supported engines in display order.
var Engines = []Engine{EngineRegexp2, EngineRE2}

// ParseEngine converts a flag value into an Engine.
func ParseEngine(s string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Engines {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: unknown engine %q (want regexp2 or re2)", ErrInvalidArgument, s)
}

// span is a half-open byte range [start, end) into the scanned text.
type span struct {
	start int
	end   int
}

// engine produces successive non-overlapping match spans.
// Implementations hold no per-scan state, so one engine may serve
// concurrent scans.
type engine interface {
	spans(text string) iter.Seq2[span, error]
}

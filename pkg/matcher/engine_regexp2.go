package matcher

import (
	"fmt"
	"iter"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

type regexp2Engine struct {
	re      *regexp2.Regexp
	timeout time.Duration
}

// compileRegexp2 compiles with default (.NET) semantics first and falls back
// to RE2 syntax for patterns written for Go, such as (?P<name>...) groups.
func compileRegexp2(pattern string, timeout time.Duration) (*regexp2Engine, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		var rerr error
		re, rerr = regexp2.Compile(pattern, regexp2.RE2)
		if rerr != nil {
			return nil, err
		}
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return &regexp2Engine{re: re, timeout: timeout}, nil
}

// spans walks FindStringMatch/FindNextMatch. regexp2 reports rune indexes,
// which are converted to byte offsets as the scan moves forward.
//
// The only error regexp2 returns while running is a timeout, and its
// message quotes the whole input, so it is replaced by ErrMatchTimeout.
func (e *regexp2Engine) spans(text string) iter.Seq2[span, error] {
	return func(yield func(span, error) bool) {
		pos := runePosition{text: text}
		match, err := e.re.FindStringMatch(text)
		for {
			if err != nil {
				yield(span{}, fmt.Errorf("%w after %v", ErrMatchTimeout, e.timeout))
				return
			}
			if match == nil {
				return
			}
			start := pos.byteOffset(match.Index)
			end := pos.byteOffset(match.Index + match.Length)
			if !yield(span{start: start, end: end}, nil) {
				return
			}
			match, err = e.re.FindNextMatch(match)
		}
	}
}

// runePosition maps increasing rune indexes onto byte offsets in text.
// Invalid UTF-8 bytes count as one rune each, as in a []rune conversion.
type runePosition struct {
	text  string
	runes int
	bytes int
}

func (p *runePosition) byteOffset(runeIndex int) int {
	if runeIndex < p.runes {
		p.runes, p.bytes = 0, 0
	}
	for p.runes < runeIndex && p.bytes < len(p.text) {
		_, size := utf8.DecodeRuneInString(p.text[p.bytes:])
		p.bytes += size
		p.runes++
	}
	return p.bytes
}

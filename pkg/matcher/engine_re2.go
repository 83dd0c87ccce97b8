package matcher

import (
	"iter"
	"regexp"
)

type re2Engine struct {
	re *regexp.Regexp
}

func compileRE2(pattern string) (*re2Engine, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &re2Engine{re: re}, nil
}

// spans runs the standard library's leftmost-first scan when iteration
// starts and yields its results in order.
func (e *re2Engine) spans(text string) iter.Seq2[span, error] {
	return func(yield func(span, error) bool) {
		for _, loc := range e.re.FindAllStringIndex(text, -1) {
			if !yield(span{start: loc[0], end: loc[1]}, nil) {
				return
			}
		}
	}
}

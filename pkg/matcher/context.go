package matcher

import "strings"

// ExtractContext returns the text surrounding the match [start, end).
// before runs from the start of the line lines above the match line up to
// start; after runs from end to the end of the line lines below the match
// line, without its trailing newline. Out of range offsets yield no context.
func ExtractContext(content string, start, end int, lines int) (before, after string) {
	if lines <= 0 {
		return "", ""
	}
	if start < 0 || end > len(content) || start > end {
		return "", ""
	}
	return content[contextStart(content, start, lines):start], content[end:contextEnd(content, end, lines)]
}

// contextStart walks back over lines+1 newlines: one to reach the start of
// the match line, then one per context line.
func contextStart(content string, start, lines int) int {
	from := start
	for i := 0; i <= lines; i++ {
		idx := strings.LastIndexByte(content[:from], '\n')
		if idx < 0 {
			return 0
		}
		if i == lines {
			return idx + 1
		}
		from = idx
	}
	return from
}

// contextEnd walks forward over lines+1 newlines.
func contextEnd(content string, end, lines int) int {
	to := end
	for i := 0; i <= lines; i++ {
		idx := strings.IndexByte(content[to:], '\n')
		if idx < 0 {
			return len(content)
		}
		if i == lines {
			return to + idx
		}
		to += idx + 1
	}
	return to
}

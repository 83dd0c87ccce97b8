package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize is the longest console line ReadConsole accepts.
const maxLineSize = 1024 * 1024

// ReadConsole reads lines from r until an empty line or end of input. The
// terminating empty line is not returned. Trailing carriage returns are
// removed, so a line holding only "\r" also ends input.
func ReadConsole(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("reading console: %w", err)
	}
	return lines, nil
}

// JoinLines joins console lines with newlines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

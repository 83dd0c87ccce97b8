package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConsole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "stops at empty line", input: "one\ntwo\n\nthree\n", want: []string{"one", "two"}},
		{name: "stops at EOF", input: "one\ntwo", want: []string{"one", "two"}},
		{name: "CRLF line endings", input: "one\r\ntwo\r\n\r\nthree", want: []string{"one", "two"}},
		{name: "immediate empty line", input: "\nignored\n", want: nil},
		{name: "no input", input: "", want: nil},
		{name: "whitespace line is kept", input: "  \nnext\n", want: []string{"  ", "next"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadConsole(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadConsole_LineTooLong(t *testing.T) {
	input := "short\n" + strings.Repeat("x", maxLineSize+1) + "\n"

	lines, err := ReadConsole(strings.NewReader(input))
	require.Error(t, err)
	assert.Equal(t, []string{"short"}, lines)
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "", JoinLines(nil))
	assert.Equal(t, "a", JoinLines([]string{"a"}))
	assert.Equal(t, "a\nb", JoinLines([]string{"a", "b"}))
}

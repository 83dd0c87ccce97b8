package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineCursor_Advance(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		byteOffset int
		wantLine   int
		wantColumn int
	}{
		{
			name:       "empty content at offset 0",
			content:    "",
			byteOffset: 0,
			wantLine:   1,
			wantColumn: 1,
		},
		{
			name:       "single line at offset 2",
			content:    "hello",
			byteOffset: 2,
			wantLine:   1,
			wantColumn: 3,
		},
		{
			name:       "multi-line at offset 7",
			content:    "hello\nworld",
			byteOffset: 7,
			wantLine:   2,
			wantColumn: 2,
		},
		{
			name:       "offset at newline",
			content:    "hello\nworld",
			byteOffset: 5,
			wantLine:   1,
			wantColumn: 6,
		},
		{
			name:       "offset beyond content length",
			content:    "hello",
			byteOffset: 100,
			wantLine:   1,
			wantColumn: 6,
		},
		{
			name:       "multiple newlines",
			content:    "line1\nline2\nline3",
			byteOffset: 12,
			wantLine:   3,
			wantColumn: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLineCursor(tt.content).Advance(tt.byteOffset)
			if got.Line != tt.wantLine {
				t.Errorf("Advance() line = %v, want %v", got.Line, tt.wantLine)
			}
			if got.Column != tt.wantColumn {
				t.Errorf("Advance() column = %v, want %v", got.Column, tt.wantColumn)
			}
		})
	}
}

func TestLineCursor_IncreasingOffsets(t *testing.T) {
	content := "Contacts:\n+3(012)-345-6789\n\nlast line +3(000)-000-0000"
	cursor := NewLineCursor(content)

	want := map[int]SourcePoint{
		0:            {Line: 1, Column: 1},
		3:            {Line: 1, Column: 4},
		10:           {Line: 2, Column: 1},
		11:           {Line: 2, Column: 2},
		27:           {Line: 3, Column: 1},
		28:           {Line: 4, Column: 1},
		38:           {Line: 4, Column: 11},
		len(content): {Line: 4, Column: 27},
	}
	for _, offset := range []int{0, 3, 10, 11, 27, 28, 38, len(content)} {
		assert.Equal(t, want[offset], cursor.Advance(offset), "offset %d", offset)
	}
}

func TestLineCursor_Rewind(t *testing.T) {
	cursor := NewLineCursor("a\nb\nc")

	assert.Equal(t, SourcePoint{Line: 3, Column: 1}, cursor.Advance(4))
	assert.Equal(t, SourcePoint{Line: 2, Column: 1}, cursor.Advance(2))
}

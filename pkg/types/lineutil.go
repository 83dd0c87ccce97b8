package types

// LineCursor computes line/column positions for increasing byte offsets
// without rescanning content from the start each time. Lines and columns
// are 1-based; columns count bytes, as SARIF consumers expect for UTF-8
// artifacts.
type LineCursor struct {
	content string
	offset  int
	line    int
	column  int
}

// NewLineCursor creates a cursor positioned at the start of content.
func NewLineCursor(content string) *LineCursor {
	return &LineCursor{content: content, line: 1, column: 1}
}

// Advance moves the cursor to byteOffset and returns its position.
// Offsets behind the current position restart the scan from the beginning.
func (c *LineCursor) Advance(byteOffset int) SourcePoint {
	if byteOffset < c.offset {
		c.offset, c.line, c.column = 0, 1, 1
	}
	for ; c.offset < byteOffset && c.offset < len(c.content); c.offset++ {
		if c.content[c.offset] == '\n' {
			c.line++
			c.column = 1
		} else {
			c.column++
		}
	}
	return SourcePoint{Line: c.line, Column: c.column}
}

package input

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extract returns the text content of data, using name's extension to pick a
// format. Unknown extensions are treated as text. On success the result is
// never nil, even when no text was found.
func Extract(name string, data []byte, limits Limits) ([]byte, error) {
	text, err := extract(name, data, limits, 0)
	if err != nil {
		return nil, err
	}
	if text == nil {
		text = []byte{}
	}
	return text, nil
}

// maxArchiveDepth stops archives nested inside archives from being expanded
// further than this.
const maxArchiveDepth = 2

func extract(name string, data []byte, limits Limits, depth int) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extractPDF(data)
	case ".xlsx":
		return extractXLSX(data)
	case ".docx":
		return extractDOCX(data)
	case ".zip":
		if depth >= maxArchiveDepth {
			return []byte{}, nil
		}
		return extractZip(data, limits, depth)
	case ".7z":
		if depth >= maxArchiveDepth {
			return []byte{}, nil
		}
		return extractSevenZip(data, limits, depth)
	default:
		return DecodeText(data)
	}
}

// DecodeText converts raw file bytes to UTF-8. A UTF-8 or UTF-16 byte order
// mark selects the encoding and is stripped; without one the data is taken
// as UTF-8 and invalid sequences become U+FFFD.
func DecodeText(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}
	return out, nil
}

// joinParts concatenates extracted parts, one newline between each.
func joinParts(parts [][]byte) []byte {
	if len(parts) == 0 {
		return []byte{}
	}
	return bytes.Join(parts, []byte("\n"))
}

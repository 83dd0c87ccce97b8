package input

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/bodgit/sevenzip"
)

// archiveEntry is the part of zip.File and sevenzip.File that extraction needs.
type archiveEntry interface {
	FileInfo() fs.FileInfo
	Open() (io.ReadCloser, error)
}

// extractZip extracts text from every file in a zip archive.
func extractZip(data []byte, limits Limits, depth int) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	entries := make([]namedEntry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, namedEntry{name: f.Name, entry: f})
	}
	return extractEntries(entries, limits, depth)
}

// extractSevenZip extracts text from every file in a 7z archive.
func extractSevenZip(data []byte, limits Limits, depth int) ([]byte, error) {
	zr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}

	entries := make([]namedEntry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, namedEntry{name: f.Name, entry: f})
	}
	return extractEntries(entries, limits, depth)
}

type namedEntry struct {
	name  string
	entry archiveEntry
}

func extractEntries(entries []namedEntry, limits Limits, depth int) ([]byte, error) {
	var parts [][]byte
	count := 0
	for _, e := range entries {
		if e.entry.FileInfo().IsDir() {
			continue
		}
		if limits.MaxEntries > 0 && count >= limits.MaxEntries {
			slog.Debug("archive entry limit reached", "limit", limits.MaxEntries)
			break
		}
		count++

		data, err := readEntry(e.entry, limits.MaxEntrySize)
		if err != nil {
			slog.Debug("skipping archive entry", "name", e.name, "error", err)
			continue
		}
		text, err := extract(e.name, data, limits, depth+1)
		if err != nil {
			slog.Debug("skipping archive entry", "name", e.name, "error", err)
			continue
		}
		if len(text) > 0 {
			parts = append(parts, text)
		}
	}
	return joinParts(parts), nil
}

func readEntry(entry archiveEntry, maxSize int64) ([]byte, error) {
	if maxSize > 0 && entry.FileInfo().Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, entry.FileInfo().Size(), maxSize)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if maxSize > 0 {
		r = io.LimitReader(rc, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: limit %d", ErrFileTooLarge, maxSize)
	}
	return data, nil
}

// Package input reads the text that phonefind scans: files on disk, with
// text extracted from common document and archive formats, and lines typed
// at the console.
package input

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrFileTooLarge is returned when a file or archive entry exceeds Limits.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNotRegularFile is returned when ReadFile is given a directory or device.
	ErrNotRegularFile = errors.New("not a regular file")
)

// Limits bounds how much data is read from a file and its archive entries.
type Limits struct {
	MaxFileSize  int64 // maximum size of the file on disk (0 = unlimited)
	MaxEntries   int   // maximum archive entries extracted (0 = unlimited)
	MaxEntrySize int64 // maximum uncompressed size of one archive entry (0 = unlimited)
}

// DefaultLimits returns limits suitable for interactive use.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:  100 * 1024 * 1024,
		MaxEntries:   1000,
		MaxEntrySize: 10 * 1024 * 1024,
	}
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadFile reads path and returns its text. Documents and archives are
// recognised by extension; everything else is decoded as text.
func ReadFile(path string, limits Limits) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("reading %s: %w", path, ErrNotRegularFile)
	}
	if limits.MaxFileSize > 0 && info.Size() > limits.MaxFileSize {
		return nil, fmt.Errorf("reading %s: %w (%d bytes, limit %d)", path, ErrFileTooLarge, info.Size(), limits.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := Extract(path, data, limits)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

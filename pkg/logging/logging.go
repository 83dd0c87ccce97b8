// Package logging builds the slog logger used by phonefind. Logs go to
// stderr so that stdout carries only results.
package logging

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// Config holds configuration for the structured logger.
type Config struct {
	Level  string    // "debug", "info", "warn", "error"
	Format string    // "text" or "json"
	Writer io.Writer // defaults to os.Stderr
}

// maskedKeys are attribute keys whose values are phone numbers found in
// user text. They are masked so logs never hold a complete number. Keys
// match exactly, ignoring case.
var maskedKeys = []string{
	"value",
	"match",
	"phone",
}

// ParseLevel maps a level name to a slog.Level. Unknown names give info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger from cfg.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: maskPhones,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init creates a logger from cfg and installs it as the slog default.
func Init(cfg Config) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}

func maskPhones(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	if slices.Contains(maskedKeys, strings.ToLower(a.Key)) {
		return slog.String(a.Key, Mask(a.Value.String()))
	}
	return a
}

// Mask replaces every digit except the last four with '*', so
// "+3(012)-345-6789" becomes "+*(***)-***-6789".
func Mask(s string) string {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	seen := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			seen++
			if seen <= digits-4 {
				b.WriteByte('*')
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

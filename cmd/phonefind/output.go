package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/praetorian-inc/phonefind/pkg/matcher"
	"github.com/praetorian-inc/phonefind/pkg/sarif"
	"github.com/praetorian-inc/phonefind/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// styles holds color formatters for human output.
type styles struct {
	heading *color.Color
	match   *color.Color
	notice  *color.Color
}

// newStyles creates color formatters; enabled=false prints plain text.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		match:   color.New(color.FgHiGreen),
		notice:  color.New(color.FgYellow),
	}

	for _, c := range []*color.Color{s.heading, s.match, s.notice} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves a --color mode for output written to w.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		// Check if the writer is a TTY and NO_COLOR is not set
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) || os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return true, nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}

// outputHuman prints a heading naming the rule, then each match on its own
// line, or a notice when there are none. A scan that stops on an engine
// error returns the error instead of the notice.
func outputHuman(cmd *cobra.Command, r *types.Rule, m *matcher.Matcher, text []byte) error {
	out := cmd.OutOrStdout()

	enabled, err := colorEnabled(findColor, out)
	if err != nil {
		return err
	}
	s := newStyles(enabled)

	found, err := m.AllBytes(text)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	s.heading.Fprintf(out, "Matches for %s:\n", r.Name)

	count := 0
	dedup := matcher.NewDeduplicator()
	for match, err := range found {
		if err != nil {
			return fmt.Errorf("matching: %w", err)
		}
		if findUnique {
			if dedup.IsDuplicate(match) {
				continue
			}
			dedup.Add(match)
		}
		logMatch(match)
		s.match.Fprintln(out, match.Value)
		count++
	}
	if count == 0 {
		s.notice.Fprintln(out, "Nothing found.")
	}
	return nil
}

// logMatch records a match at debug level. The value is masked by the
// logging handler.
func logMatch(match *types.Match) {
	start := match.Location.Source.Start
	slog.Debug("match found", "rule", match.RuleID, "value", match.Value, "line", start.Line, "column", start.Column)
}

// findReport is the JSON output document.
type findReport struct {
	Source  string         `json:"source"`
	RuleID  string         `json:"rule_id"`
	Rule    string         `json:"rule"`
	Pattern string         `json:"pattern"`
	Engine  string         `json:"engine"`
	Count   int            `json:"count"`
	Matches []*types.Match `json:"matches"`
}

func outputJSON(cmd *cobra.Command, r *types.Rule, m *matcher.Matcher, source string, text []byte) error {
	matches, err := collectMatches(m, text)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(findReport{
		Source:  sourceName(source),
		RuleID:  r.ID,
		Rule:    r.Name,
		Pattern: m.Pattern(),
		Engine:  string(m.Engine()),
		Count:   len(matches),
		Matches: matches,
	})
}

func outputSARIF(cmd *cobra.Command, r *types.Rule, m *matcher.Matcher, source string, text []byte) error {
	matches, err := collectMatches(m, text)
	if err != nil {
		return err
	}

	report := sarif.NewReport(version)
	report.AddRule(r)
	for _, match := range matches {
		report.AddResult(match, source)
	}

	if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}

// collectMatches returns all matches in text, dropping repeated values when
// --unique is set. The result is never nil.
func collectMatches(m *matcher.Matcher, text []byte) ([]*types.Match, error) {
	matches, err := m.Matches(text)
	if err != nil {
		return nil, fmt.Errorf("matching: %w", err)
	}

	result := make([]*types.Match, 0, len(matches))
	dedup := matcher.NewDeduplicator()
	for _, match := range matches {
		if findUnique {
			if dedup.IsDuplicate(match) {
				continue
			}
			dedup.Add(match)
		}
		logMatch(match)
		result = append(result, match)
	}
	return result, nil
}

package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/phonefind/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "phonefind"

	// ConsoleURI is the artifact URI used for text typed at the console.
	ConsoleURI = "stdin"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes the pattern that produced the results.
type Rule struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription Text     `json:"shortDescription"`
	FullDescription  *Text    `json:"fullDescription,omitempty"`
	HelpURI          string   `json:"helpUri,omitempty"`
	Properties       RuleTags `json:"properties,omitzero"`
}

// RuleTags carries rule categories as SARIF tags.
type RuleTags struct {
	Tags    []string `json:"tags,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// Text is a SARIF message string.
type Text struct {
	Text string `json:"text"`
}

// Result is one matched phone number.
type Result struct {
	RuleID    string     `json:"ruleId"`
	RuleIndex int        `json:"ruleIndex"`
	Level     string     `json:"level"`
	Message   Text       `json:"message"`
	Locations []Location `json:"locations"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
	ContextRegion    *Region          `json:"contextRegion,omitempty"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region locates a match by line/column and by byte range.
type Region struct {
	StartLine   int   `json:"startLine"`
	StartColumn int   `json:"startColumn"`
	EndLine     int   `json:"endLine"`
	EndColumn   int   `json:"endColumn"`
	ByteOffset  int64 `json:"byteOffset"`
	ByteLength  int64 `json:"byteLength"`
	Snippet     *Text `json:"snippet,omitempty"`
}

// NewReport creates a report with a single run for the given tool version.
func NewReport(toolVersion string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules:   []Rule{},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddRule registers rule with the driver and returns its index.
func (r *Report) AddRule(rule *types.Rule) int {
	driver := &r.Runs[0].Tool.Driver
	for i, existing := range driver.Rules {
		if existing.ID == rule.ID {
			return i
		}
	}

	sarifRule := Rule{
		ID:               rule.ID,
		Name:             rule.Name,
		ShortDescription: Text{Text: rule.Name},
		Properties: RuleTags{
			Tags:    rule.Categories,
			Pattern: rule.Pattern,
		},
	}
	if rule.Description != "" {
		sarifRule.FullDescription = &Text{Text: rule.Description}
	}
	if len(rule.References) > 0 {
		sarifRule.HelpURI = rule.References[0]
	}

	driver.Rules = append(driver.Rules, sarifRule)
	return len(driver.Rules) - 1
}

// AddResult records match as found in the artifact at path. An empty path
// stands for console input.
func (r *Report) AddResult(match *types.Match, path string) {
	ruleIndex := -1
	for i, rule := range r.Runs[0].Tool.Driver.Rules {
		if rule.ID == match.RuleID {
			ruleIndex = i
			break
		}
	}

	loc := match.Location
	region := Region{
		StartLine:   loc.Source.Start.Line,
		StartColumn: loc.Source.Start.Column,
		EndLine:     loc.Source.End.Line,
		EndColumn:   loc.Source.End.Column,
		ByteOffset:  loc.Offset.Start,
		ByteLength:  loc.Offset.Len(),
		Snippet:     &Text{Text: match.Value},
	}

	physical := PhysicalLocation{
		ArtifactLocation: ArtifactLocation{URI: formatFileURI(path)},
		Region:           region,
	}
	if match.Snippet.Before != "" || match.Snippet.After != "" {
		physical.ContextRegion = &Region{
			StartLine:   loc.Source.Start.Line - strings.Count(match.Snippet.Before, "\n"),
			StartColumn: 1,
			EndLine:     loc.Source.End.Line + strings.Count(match.Snippet.After, "\n"),
			EndColumn:   1,
			ByteOffset:  loc.Offset.Start - int64(len(match.Snippet.Before)),
			ByteLength:  int64(len(match.Snippet.String())),
			Snippet:     &Text{Text: match.Snippet.String()},
		}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:    match.RuleID,
		RuleIndex: ruleIndex,
		Level:     "note",
		Message:   Text{Text: fmt.Sprintf("Phone number %s", match.Value)},
		Locations: []Location{{PhysicalLocation: physical}},
	})
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteTo writes the indented report followed by a newline.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	data, err := r.ToJSON()
	if err != nil {
		return 0, fmt.Errorf("failed to encode SARIF: %w", err)
	}
	n, err := w.Write(append(data, '\n'))
	return int64(n), err
}

// formatFileURI converts a file path to SARIF URI format.
// Absolute paths get file:// prefix, relative paths stay as-is.
func formatFileURI(path string) string {
	if path == "" {
		return ConsoleURI
	}
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}

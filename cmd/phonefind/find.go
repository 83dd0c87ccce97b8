package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/praetorian-inc/phonefind/pkg/input"
	"github.com/praetorian-inc/phonefind/pkg/matcher"
	"github.com/praetorian-inc/phonefind/pkg/rule"
	"github.com/praetorian-inc/phonefind/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// demoText is scanned when nothing is typed at the console.
const demoText = "Contacts: +3(012)-345-6789, text, +3(000)-000-0000; bad +3(12)-123-1234; one more +3(123)-456-7890."

// customRuleID identifies matches of a --pattern given on the command line.
const customRuleID = "custom"

var (
	findPattern      string
	findRulesPath    string
	findEngine       string
	findFormat       string
	findColor        string
	findContextLines int
	findUnique       bool
	findTimeout      time.Duration
	findMaxFileSize  int64
	findNoDemo       bool
	findPause        bool
)

func registerFindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&findPattern, "pattern", "", "Regular expression to search for instead of the builtin phone rule")
	cmd.Flags().StringVar(&findRulesPath, "rules", "", "Path to a YAML rule file")
	cmd.Flags().StringVar(&findEngine, "engine", string(matcher.EngineRegexp2), "Regex engine: regexp2, re2")
	cmd.Flags().StringVar(&findFormat, "format", "human", "Output format: human, json, sarif")
	cmd.Flags().StringVar(&findColor, "color", "auto", "Color output: auto, always, never")
	cmd.Flags().IntVar(&findContextLines, "context-lines", 0, "Lines of context captured around matches in json and sarif output")
	cmd.Flags().BoolVar(&findUnique, "unique", false, "Print each distinct number once")
	cmd.Flags().DurationVar(&findTimeout, "timeout", 0, "Match timeout for the regexp2 engine (0 to disable)")
	cmd.Flags().Int64Var(&findMaxFileSize, "max-file-size", input.DefaultLimits().MaxFileSize, "Maximum file size to read (bytes)")
	cmd.Flags().BoolVar(&findNoDemo, "no-demo", false, "Do not fall back to the example text when no input is typed")
	cmd.Flags().BoolVar(&findPause, "pause", false, "Wait for a key press before exiting (interactive terminals only)")
}

func runFind(cmd *cobra.Command, args []string) error {
	switch findFormat {
	case "human", "json", "sarif":
	default:
		return fmt.Errorf("unknown output format: %s", findFormat)
	}

	r, err := resolveRule(findPattern, findRulesPath)
	if err != nil {
		return err
	}

	engine, err := matcher.ParseEngine(findEngine)
	if err != nil {
		return err
	}

	m, err := matcher.NewFromRule(r, matcher.Config{
		Engine:       engine,
		ContextLines: findContextLines,
		Timeout:      findTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating matcher: %w", err)
	}

	// Prompts and echoes must not mix with machine-readable output.
	prompts := cmd.OutOrStdout()
	if findFormat != "human" {
		prompts = cmd.ErrOrStderr()
	}

	source, text, err := readInput(cmd, prompts, args)
	if err != nil {
		return err
	}
	slog.Debug("scanning input", "source", sourceName(source), "bytes", len(text), "rule", r.ID, "engine", engine)

	switch findFormat {
	case "human":
		err = outputHuman(cmd, r, m, text)
	case "json":
		err = outputJSON(cmd, r, m, source, text)
	case "sarif":
		err = outputSARIF(cmd, r, m, source, text)
	}
	if err != nil {
		return err
	}

	if findPause {
		waitForKey(cmd, prompts)
	}
	return nil
}

// resolveRule picks the rule to search with: an explicit pattern, then a
// rule file, then the builtin phone rule.
func resolveRule(pattern, rulesPath string) (*types.Rule, error) {
	if pattern != "" {
		r := &types.Rule{
			ID:      customRuleID,
			Name:    "Custom pattern",
			Pattern: pattern,
		}
		r.StructuralID = r.ComputeStructuralID()
		return r, nil
	}

	loader := rule.NewLoader()
	if rulesPath != "" {
		r, err := loader.LoadRuleFile(rulesPath)
		if err != nil {
			return nil, fmt.Errorf("loading rules from %s: %w", rulesPath, err)
		}
		return r, nil
	}

	r, err := loader.LoadBuiltinRule(rule.DefaultRuleID)
	if err != nil {
		return nil, fmt.Errorf("loading builtin rules: %w", err)
	}
	return r, nil
}

// readInput returns the text to scan and the path it came from ("" for the
// console).
func readInput(cmd *cobra.Command, prompts io.Writer, args []string) (string, []byte, error) {
	if len(args) == 1 {
		path := args[0]
		if input.FileExists(path) {
			limits := input.DefaultLimits()
			limits.MaxFileSize = findMaxFileSize
			text, err := input.ReadFile(path, limits)
			if err != nil {
				return "", nil, err
			}
			return path, text, nil
		}
		slog.Warn("file not found, reading from console", "path", path)
	}

	fmt.Fprintln(prompts, "Enter text to search (finish with an empty line):")
	lines, err := input.ReadConsole(cmd.InOrStdin())
	if err != nil {
		return "", nil, err
	}

	if len(lines) == 0 && !findNoDemo {
		fmt.Fprintln(prompts)
		fmt.Fprintln(prompts, "No text entered. Using example:")
		fmt.Fprintln(prompts, demoText)
		fmt.Fprintln(prompts)
		return "", []byte(demoText), nil
	}
	return "", []byte(input.JoinLines(lines)), nil
}

func sourceName(source string) string {
	if source == "" {
		return "stdin"
	}
	return source
}

// waitForKey reads a single key press in raw mode. Nothing happens unless
// stdin is a terminal.
func waitForKey(cmd *cobra.Command, prompts io.Writer) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	fd := int(f.Fd())

	fmt.Fprintln(prompts)
	fmt.Fprintln(prompts, "Press any key to exit...")

	state, err := term.MakeRaw(fd)
	if err != nil {
		slog.Debug("cannot enter raw mode", "error", err)
		return
	}
	defer term.Restore(fd, state)

	var b [1]byte
	_, _ = f.Read(b[:])
}

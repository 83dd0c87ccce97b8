package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/praetorian-inc/phonefind/pkg/matcher"
	"github.com/praetorian-inc/phonefind/pkg/rule"
	"github.com/praetorian-inc/phonefind/pkg/types"
	"github.com/spf13/cobra"
)

var (
	rulesPath    string
	rulesFormat  string
	rulesEngine  string
	errRuleCheck = errors.New("rule check failed")
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect detection rules",
	Long:  "Commands for listing and checking the rules phonefind searches with",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available rules",
	Long:  "Display the builtin rules, or the rule in a YAML file, with their IDs and patterns",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check rules against their examples",
	Long: `Compile each rule and verify that every example is matched in full and that
no negative example produces a match.`,
	Args: cobra.NoArgs,
	RunE: runRulesCheck,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rulesCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Path to a YAML rule file")
	rulesListCmd.Flags().StringVar(&rulesFormat, "format", "table", "Output format: table, json")
	rulesCheckCmd.Flags().StringVar(&rulesEngine, "engine", string(matcher.EngineRegexp2), "Regex engine: regexp2, re2")
}

func runRulesList(cmd *cobra.Command, args []string) error {
	rules, err := loadRules(rulesPath)
	if err != nil {
		return err
	}

	switch rulesFormat {
	case "json":
		return outputRulesJSON(cmd, rules)
	case "table":
		return outputRulesTable(cmd, rules)
	default:
		return fmt.Errorf("unknown output format: %s", rulesFormat)
	}
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	engine, err := matcher.ParseEngine(rulesEngine)
	if err != nil {
		return err
	}

	rules, err := loadRules(rulesPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range rules {
		err := rule.ValidateRule(r, engine)
		if err == nil {
			err = rule.CheckExamples(r, engine)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s\n", r.ID)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "      %s\n", line)
			}
			continue
		}
		fmt.Fprintf(out, "ok    %s (%d examples, %d negative examples)\n",
			r.ID, len(r.Examples), len(r.NegativeExamples))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d rules", errRuleCheck, failed, len(rules))
	}
	return nil
}

// loadRules returns the rule in path, or the builtin rules when path is empty.
func loadRules(path string) ([]*types.Rule, error) {
	loader := rule.NewLoader()

	if path != "" {
		r, err := loader.LoadRuleFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading rules from %s: %w", path, err)
		}
		return []*types.Rule{r}, nil
	}

	rules, err := loader.LoadBuiltinRules()
	if err != nil {
		return nil, fmt.Errorf("loading builtin rules: %w", err)
	}
	return rules, nil
}

func outputRulesJSON(cmd *cobra.Command, rules []*types.Rule) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(rules)
}

func outputRulesTable(cmd *cobra.Command, rules []*types.Rule) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tPattern\tCategories\n")
	fmt.Fprintf(w, "--\t----\t-------\t----------\n")

	for _, r := range rules {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Pattern, strings.Join(r.Categories, ","))
	}

	return nil
}

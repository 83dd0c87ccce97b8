package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/praetorian-inc/phonefind/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetRulesFlags() {
	rulesPath = ""
	rulesFormat = "table"
	rulesEngine = "regexp2"
}

func TestRunRulesList(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	resetRulesFlags()

	err := runRulesList(cmd, []string{})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Pattern")
	assert.Contains(t, output, "phone.plus3")
	assert.Contains(t, output, `\+3\(\d{3}\)-\d{3}-\d{4}`)
	assert.Contains(t, output, "pii,phone")
}

func TestRunRulesListJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	resetRulesFlags()
	rulesFormat = "json"

	err := runRulesList(cmd, []string{})
	require.NoError(t, err)

	var rules []*types.Rule
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rules))
	require.NotEmpty(t, rules)
	assert.Equal(t, "phone.plus3", rules[0].ID)
	assert.Equal(t, []string{"+3("}, rules[0].Keywords)
}

func TestRunRulesListCustomFile(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	resetRulesFlags()
	rulesPath = writeTestFile(t, "rule.yml", "rules:\n  - id: test.digits\n    name: Digits\n    pattern: '\\d+'\n")

	require.NoError(t, runRulesList(cmd, nil))
	assert.Contains(t, buf.String(), "test.digits")
	assert.NotContains(t, buf.String(), "phone.plus3")
}

func TestRunRulesListErrors(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	resetRulesFlags()
	rulesFormat = "yaml"
	assert.ErrorContains(t, runRulesList(cmd, nil), "unknown output format")

	resetRulesFlags()
	rulesPath = "/nonexistent/rule.yml"
	assert.ErrorContains(t, runRulesList(cmd, nil), "loading rules")
}

func TestRunRulesCheckBuiltin(t *testing.T) {
	for _, engine := range []string{"regexp2", "re2"} {
		t.Run(engine, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)
			resetRulesFlags()
			rulesEngine = engine

			require.NoError(t, runRulesCheck(cmd, nil))
			assert.Contains(t, buf.String(), "ok    phone.plus3 (3 examples, 6 negative examples)")
		})
	}
}

func TestRunRulesCheckFailure(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	resetRulesFlags()
	rulesPath = writeTestFile(t, "loose.yml", `rules:
  - id: phone.loose
    name: Loose phone
    pattern: '\+3\(\d+\)'
    examples:
      - "+3(012)"
    negative_examples:
      - "+3(12)-123-1234"
`)

	err := runRulesCheck(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errRuleCheck)
	assert.Contains(t, buf.String(), "FAIL  phone.loose")
	assert.Contains(t, buf.String(), `negative example "+3(12)-123-1234" matched`)
}

func TestRunRulesCheckInvalidPattern(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	resetRulesFlags()
	rulesPath = writeTestFile(t, "broken.yml", "rules:\n  - id: broken\n    name: Broken\n    pattern: '(\\d'\n")

	err := runRulesCheck(cmd, nil)
	assert.ErrorIs(t, err, errRuleCheck)
	assert.Contains(t, buf.String(), "FAIL  broken")
}

package rule

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/praetorian-inc/phonefind/pkg/matcher"
	"github.com/praetorian-inc/phonefind/pkg/types"
)

// ValidateRule checks rule consistency and required fields, and that the
// pattern compiles with the given engine.
func ValidateRule(r *types.Rule, engine matcher.Engine) error {
	if r == nil {
		return fmt.Errorf("rule is nil")
	}

	if r.ID == "" {
		return fmt.Errorf("rule ID is required")
	}
	if r.Name == "" {
		return fmt.Errorf("rule %s: name is required", r.ID)
	}
	if strings.TrimSpace(r.Pattern) == "" {
		return fmt.Errorf("rule %s: %w: pattern is required", r.ID, matcher.ErrInvalidArgument)
	}

	if _, err := matcher.NewFromRule(r, matcher.Config{Engine: engine}); err != nil {
		return fmt.Errorf("invalid pattern for rule %s: %w", r.ID, err)
	}

	expectedID := r.ComputeStructuralID()
	if r.StructuralID != "" && r.StructuralID != expectedID {
		return fmt.Errorf("rule %s has inconsistent StructuralID: got %s, expected %s",
			r.ID, r.StructuralID, expectedID)
	}

	return nil
}

// CheckExamples verifies that every example is matched in full and that no
// negative example produces any match. All failures are reported together.
func CheckExamples(r *types.Rule, engine matcher.Engine) error {
	m, err := matcher.NewFromRule(r, matcher.Config{Engine: engine})
	if err != nil {
		return err
	}

	var errs []error
	for _, example := range r.Examples {
		found := slices.Collect(m.FindString(example))
		if !slices.Contains(found, example) {
			errs = append(errs, fmt.Errorf("rule %s: example %q not matched in full (got %q)", r.ID, example, found))
		}
	}
	for _, example := range r.NegativeExamples {
		if found := slices.Collect(m.FindString(example)); len(found) > 0 {
			errs = append(errs, fmt.Errorf("rule %s: negative example %q matched %q", r.ID, example, found))
		}
	}
	return errors.Join(errs...)
}

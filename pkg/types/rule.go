package types

import (
	"crypto/sha1"
	"encoding/hex"
)

// Rule is a detection pattern with metadata.
type Rule struct {
	ID               string   `json:"id"`   // e.g., "phone.plus3"
	Name             string   `json:"name"` // human-readable name
	Pattern          string   `json:"pattern"`
	StructuralID     string   `json:"structural_id"` // SHA-1 of pattern (computed)
	Description      string   `json:"description,omitempty"`
	Keywords         []string `json:"keywords,omitempty"` // literals for Aho-Corasick prefiltering
	Examples         []string `json:"examples,omitempty"`
	NegativeExamples []string `json:"negative_examples,omitempty"`
	References       []string `json:"references,omitempty"`
	Categories       []string `json:"categories,omitempty"`
}

// ComputeStructuralID computes the SHA-1 of the pattern.
// Two rules with the same pattern share a structural ID regardless of name.
func (r *Rule) ComputeStructuralID() string {
	h := sha1.New()
	h.Write([]byte(r.Pattern))
	return hex.EncodeToString(h.Sum(nil))
}

package types

// Match is a single pattern occurrence in scanned text.
type Match struct {
	RuleID   string   `json:"rule_id"`
	Value    string   `json:"value"` // exact matched substring
	Location Location `json:"location"`
	Snippet  Snippet  `json:"snippet"`
}

package types

// Snippet contains context around a match.
type Snippet struct {
	Before   string `json:"before,omitempty"`
	Matching string `json:"matching"`
	After    string `json:"after,omitempty"`
}

// String joins the snippet parts back into contiguous text.
func (s Snippet) String() string {
	return s.Before + s.Matching + s.After
}

package complete

import "encoding/json"

// jsonCandidate is the per-candidate object shape of the JSON encoding.
type jsonCandidate struct {
	Completion string `json:"completion"`
	Signature  string `json:"signature"`
	Annotation string `json:"annotation,omitempty"`
	Parent     string `json:"parent,omitempty"`
	Brief      string `json:"brief,omitempty"`
	Priority   int    `json:"priority"`
	Distance   int    `json:"distance"`
	CursorKind string `json:"kind"`
}

type jsonCompletions struct {
	Completions []jsonCandidate `json:"completions"`
}

// formatJSON emits a top-level object with a "completions" array
// (spec.md §4.3).
func formatJSON(candidates []Candidate) []byte {
	doc := jsonCompletions{Completions: make([]jsonCandidate, len(candidates))}
	for i, c := range candidates {
		doc.Completions[i] = jsonCandidate{
			Completion: c.Completion,
			Signature:  c.Signature,
			Annotation: c.Annotation,
			Parent:     c.Parent,
			Brief:      c.Brief,
			Priority:   c.Priority,
			Distance:   c.Distance,
			CursorKind: c.CursorKind,
		}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return []byte(`{"completions":[]}`)
	}
	return out
}

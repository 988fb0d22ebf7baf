package complete

import (
	"math"
	"sort"
)

// maxDistance stands in for the spec's INT_MAX: the distance assigned to
// a candidate whose completion text is not a token in the unsaved buffer
// at all (spec.md §4.3).
const maxDistance = math.MaxInt32

// buildCandidates filters raw library results (skipping "not available"
// ones) and assigns each surviving candidate a distance, using tokens to
// bias ranking toward identifiers recently typed in the visible buffer
// (spec.md §4.3).
func buildCandidates(raw []RawResult, tokens map[string]int, point int) []Candidate {
	candidates := make([]Candidate, 0, len(raw))
	for _, r := range raw {
		if !r.Available {
			continue
		}
		candidates = append(candidates, Candidate{
			Completion: r.Completion,
			Signature:  r.Signature,
			Annotation: r.Annotation,
			Parent:     r.Parent,
			Brief:      r.Brief,
			Priority:   r.Priority,
			CursorKind: r.CursorKind,
			Distance:   distanceFor(r.Completion, tokens, point),
		})
	}
	return candidates
}

// distanceFor is the byte distance between a completion's earliest
// occurrence in the unsaved buffer and the completion point, or
// maxDistance if the completion never occurs as a token.
func distanceFor(completion string, tokens map[string]int, point int) int {
	offset, ok := tokens[completion]
	if !ok {
		return maxDistance
	}
	d := point - offset
	if d < 0 {
		d = -d
	}
	return d
}

// sortCandidates orders candidates per spec.md §4.3's strict weak order:
// priority, then distance, then completion text, all ascending. The sort
// is stable so ties between otherwise-identical candidates never reorder
// relative to their library-reported order.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return less(candidates[i], candidates[j])
	})
}

func less(l, r Candidate) bool {
	if l.Priority != r.Priority {
		return l.Priority < r.Priority
	}
	if l.Distance != r.Distance {
		return l.Distance < r.Distance
	}
	return l.Completion < r.Completion
}

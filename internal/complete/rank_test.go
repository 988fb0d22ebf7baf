package complete

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildCandidatesSkipsUnavailable(t *testing.T) {
	raw := []RawResult{
		{Completion: "foo", Available: true},
		{Completion: "bar", Available: false},
	}
	got := buildCandidates(raw, map[string]int{}, 0)
	require.Len(t, got, 1)
	require.Equal(t, "foo", got[0].Completion)
}

func TestDistanceForUsesTokenIndex(t *testing.T) {
	tokens := map[string]int{"foo": 4}
	require.Equal(t, 6, distanceFor("foo", tokens, 10))
	require.Equal(t, maxDistance, distanceFor("missing", tokens, 10))
}

func TestSortCandidatesOrdering(t *testing.T) {
	candidates := []Candidate{
		{Completion: "zeta", Priority: 1, Distance: 5},
		{Completion: "alpha", Priority: 1, Distance: 1},
		{Completion: "beta", Priority: 0, Distance: 100},
	}
	sortCandidates(candidates)
	require.Equal(t, []string{"beta", "alpha", "zeta"}, []string{
		candidates[0].Completion, candidates[1].Completion, candidates[2].Completion,
	})
}

func TestSortCandidatesTieBreaksByCompletionText(t *testing.T) {
	candidates := []Candidate{
		{Completion: "bb", Priority: 1, Distance: 1},
		{Completion: "aa", Priority: 1, Distance: 1},
	}
	sortCandidates(candidates)
	require.Equal(t, "aa", candidates[0].Completion)
}

func TestSortIsStableAcrossRepeatedSorts(t *testing.T) {
	candidates := []Candidate{
		{Completion: "a", Priority: 0, Distance: 0},
		{Completion: "b", Priority: 0, Distance: 0},
		{Completion: "c", Priority: 0, Distance: 0},
	}
	first := append([]Candidate(nil), candidates...)
	sortCandidates(first)
	second := append([]Candidate(nil), first...)
	sortCandidates(second)
	require.Equal(t, first, second)
}

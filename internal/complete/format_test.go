package complete

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCandidates() []Candidate {
	return []Candidate{
		{Completion: "foo", Signature: "void foo()", Annotation: "", Parent: "Widget", Brief: "does foo", Priority: 1, Distance: 4, CursorKind: "CXXMethod"},
		{Completion: "bar\"baz\\", Signature: "int bar", Parent: "", Brief: "", Priority: 2, Distance: maxDistance, CursorKind: "VarDecl"},
	}
}

func TestFormatPlainOneLinePerCandidate(t *testing.T) {
	out := string(formatPlain(sampleCandidates()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "foo")
	require.Contains(t, lines[0], "void foo()")
}

func TestFormatElispEscapesBackslashesAndQuotes(t *testing.T) {
	out := string(formatElisp(sampleCandidates()))
	require.True(t, strings.HasPrefix(out, "("))
	require.True(t, strings.HasSuffix(out, ")"))
	require.Contains(t, out, `\"baz\\`)
}

func TestFormatXMLRoundTripsCandidateCount(t *testing.T) {
	out := formatXML(sampleCandidates())
	var doc xmlCompletions
	require.NoError(t, xml.Unmarshal(out, &doc))
	require.Len(t, doc.Items, 2)
	require.Equal(t, "foo", doc.Items[0].Completion)
}

func TestFormatJSONRoundTripsCandidateCount(t *testing.T) {
	out := formatJSON(sampleCandidates())
	var doc jsonCompletions
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Completions, 2)
	require.Equal(t, "bar\"baz\\", doc.Completions[1].Completion)
}

func TestFormatDispatchesOnEncoding(t *testing.T) {
	candidates := sampleCandidates()
	require.Equal(t, formatPlain(candidates), format(EncodingPlain, candidates))
	require.Equal(t, formatElisp(candidates), format(EncodingElisp, candidates))
	require.Equal(t, formatXML(candidates), format(EncodingXML, candidates))
	require.Equal(t, formatJSON(candidates), format(EncodingJSON, candidates))
}

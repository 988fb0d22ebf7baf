package complete

import (
	"encoding/xml"
	"strings"
)

// xmlCompletions and xmlCandidate mirror the <completions><completion .../>
// shape spec.md §4.3 describes; encoding/xml handles attribute escaping.
type xmlCompletions struct {
	XMLName xml.Name       `xml:"completions"`
	Items   []xmlCandidate `xml:"completion"`
}

type xmlCandidate struct {
	Completion string `xml:"completion,attr"`
	Signature  string `xml:"signature,attr"`
	Annotation string `xml:"annotation,attr"`
	Parent     string `xml:"parent,attr"`
	Brief      string `xml:"brief,attr"`
	Priority   int    `xml:"priority,attr"`
	Distance   int    `xml:"distance,attr"`
	CursorKind string `xml:"kind,attr"`
}

// formatXML emits a <completions> element with one <completion> child
// per candidate.
func formatXML(candidates []Candidate) []byte {
	doc := xmlCompletions{Items: make([]xmlCandidate, len(candidates))}
	for i, c := range candidates {
		doc.Items[i] = xmlCandidate{
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

	out, err := xml.Marshal(doc)
	if err != nil {
		// candidates are plain strings/ints; Marshal cannot fail on them.
		return []byte("<completions></completions>")
	}
	var b strings.Builder
	b.WriteString(xml.Header)
	b.Write(out)
	return []byte(b.String())
}

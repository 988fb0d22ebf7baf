package complete

// format encodes candidates according to enc. All encodings preserve the
// candidate order produced by sortCandidates (spec.md §4.3).
func format(enc Encoding, candidates []Candidate) []byte {
	switch enc {
	case EncodingElisp:
		return formatElisp(candidates)
	case EncodingXML:
		return formatXML(candidates)
	case EncodingJSON:
		return formatJSON(candidates)
	default:
		return formatPlain(candidates)
	}
}

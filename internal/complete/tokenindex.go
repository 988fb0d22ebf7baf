package complete

// isIdentChar reports whether b can be part of a C/C++ identifier.
func isIdentChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// buildTokenIndex scans an unsaved buffer right-to-left (spec.md §4.5):
// a maximal run of identifier characters forms a token whose value is
// the earliest byte offset at which that exact byte sequence appears.
// Scanning right-to-left means later (later = earlier in file, since we
// walk backwards) occurrences are overwritten by earlier ones as we go,
// so the map ends up holding the first occurrence of each identifier.
func buildTokenIndex(buf []byte) map[string]int {
	index := make(map[string]int)

	end := len(buf)
	for i := len(buf) - 1; i >= 0; i-- {
		if isIdentChar(buf[i]) {
			continue
		}
		if end-i-1 > 0 {
			tok := string(buf[i+1 : end])
			index[tok] = i + 1
		}
		end = i
	}
	if end > 0 {
		index[string(buf[0:end])] = 0
	}
	return index
}

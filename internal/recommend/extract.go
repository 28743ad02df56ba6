package recommend

// extractDelimited returns the first balanced open..close span in s. Model
// responses often wrap the JSON payload in prose or markdown fences, so the
// caller extracts a candidate substring first and only then attempts a
// strict parse.
func extractDelimited(s string, open, close byte) (string, bool) {
	depth := 0
	start := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth > 0 {
				depth--
			}
			if depth == 0 && start != -1 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// extractJSONArray returns the first bracket-delimited substring of s.
func extractJSONArray(s string) (string, bool) {
	return extractDelimited(s, '[', ']')
}

// extractJSONObject returns the first brace-delimited substring of s.
func extractJSONObject(s string) (string, bool) {
	return extractDelimited(s, '{', '}')
}

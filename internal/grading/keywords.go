package grading

// minKeywordLen is the shortest token that can become a keyword.
const minKeywordLen = 3

// ExtractKeywords returns up to limit significant tokens of text in order of
// first occurrence. Stop words and tokens shorter than three characters are
// skipped. Text without usable tokens yields an empty slice.
func ExtractKeywords(text string, limit int) []string {
	keywords := []string{}
	if limit <= 0 {
		return keywords
	}

	seen := make(map[string]bool)
	for _, tok := range words(Normalize(text)) {
		if len(tok) < minKeywordLen || IsStopWord(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
		if len(keywords) == limit {
			break
		}
	}
	return keywords
}

// splitMatches partitions keywords into those present in the answer's word
// set and those missing. Both slices keep the order of keywords.
func splitMatches(keywords []string, normalizedAnswer string) (matched, missing []string) {
	present := make(map[string]bool)
	for _, w := range words(normalizedAnswer) {
		present[w] = true
	}

	matched = []string{}
	missing = []string{}
	for _, kw := range keywords {
		if present[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return matched, missing
}

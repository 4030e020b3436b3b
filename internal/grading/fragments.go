package grading

import (
	"fmt"
	"strings"
)

const (
	maxFragments       = 3
	maxFragmentRunes   = 110
	fallbackKeywordMax = 4
	ellipsis           = "..."
)

// RecognizedFragments returns up to three sentence-like excerpts of the raw
// answer whose normalized form contains one of the matched keywords. When
// no single fragment qualifies, a synthesized line listing up to four
// matched keywords is returned instead. No keywords means no fragments.
func RecognizedFragments(raw string, matched []string) []string {
	fragments := []string{}
	if len(matched) == 0 {
		return fragments
	}

	seen := make(map[string]bool)
	for _, frag := range splitFragments(raw) {
		if !containsAny(Normalize(frag), matched) {
			continue
		}
		short := truncateRunes(frag, maxFragmentRunes)
		if seen[short] {
			continue
		}
		seen[short] = true
		fragments = append(fragments, short)
		if len(fragments) == maxFragments {
			break
		}
	}

	if len(fragments) == 0 {
		shown := matched
		if len(shown) > fallbackKeywordMax {
			shown = shown[:fallbackKeywordMax]
		}
		fragments = append(fragments, fmt.Sprintf("Erkannte Begriffe: %s", strings.Join(shown, ", ")))
	}
	return fragments
}

// splitFragments cuts raw text at sentence punctuation and line breaks.
func splitFragments(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case '.', ';', '!', '?', '\n', '\r':
			return true
		}
		return false
	})

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// truncateRunes shortens s to at most max runes, ending in an ellipsis
// when it had to cut.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	keep := max - len(ellipsis)
	return strings.TrimRight(string(r[:keep]), " ") + ellipsis
}

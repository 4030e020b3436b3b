package grading

import (
	"fmt"
	"strings"
)

const (
	feedbackEmpty           = "Noch keine Antwort eingegeben."
	feedbackExact           = "Perfekt! Deine Antwort stimmt exakt mit der Musterlösung überein."
	feedbackNoKeywords      = "Die Musterlösung enthält keine auswertbaren Schlüsselbegriffe. Vergleiche deine Antwort direkt mit der Lösung."
	fragmentFullyReproduced = "Die komplette Musterlösung wurde wiedergegeben."

	maxSuggestedPartial = 4
	maxSuggestedWrong   = 6
)

func feedbackFor(v Verdict, matched, total int, missing []string) string {
	switch v {
	case VerdictCorrect:
		return fmt.Sprintf("Richtig! %d von %d Schlüsselbegriffen erkannt.", matched, total)
	case VerdictPartial:
		return fmt.Sprintf("Teilweise richtig: %d von %d Schlüsselbegriffen erkannt. Ergänze noch: %s.",
			matched, total, joinFirst(missing, maxSuggestedPartial))
	default:
		if total == 0 {
			return feedbackNoKeywords
		}
		return fmt.Sprintf("Noch nicht richtig: %d von %d Schlüsselbegriffen erkannt. Prüfe besonders: %s.",
			matched, total, joinFirst(missing, maxSuggestedWrong))
	}
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

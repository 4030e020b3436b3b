package grading

// stopWords are dropped during keyword extraction. Entries are stored in
// normalized form ("für" is "fur"). Negations stay out of this table since
// they change the meaning of an answer.
var stopWords = toSet(
	// German
	"aber", "alle", "allem", "allen", "aller", "alles", "als", "also", "am",
	"an", "auch", "auf", "aus", "bei", "beim", "bin", "bis", "bzw", "da",
	"dabei", "dadurch", "dafur", "damit", "dann", "das", "dass", "dein",
	"dem", "den", "denn", "der", "des", "deshalb", "die", "dies", "diese",
	"diesem", "diesen", "dieser", "dieses", "doch", "dort", "du", "durch",
	"ein", "eine", "einem", "einen", "einer", "eines", "er", "es", "etwa",
	"etwas", "fur", "gegen", "genau", "gibt", "hat", "hatte", "haben",
	"hier", "hierbei", "ich", "ihr", "ihre", "im", "immer", "in", "ins",
	"ist", "jede", "jedem", "jeden", "jeder", "jedes", "jeweils", "kann",
	"konnen", "man", "mit", "muss", "mussen", "nach", "noch", "nun", "nur",
	"ob", "oder", "ohne", "sehr", "sein", "seine", "sich", "sie", "sind",
	"so", "somit", "sowie", "uber", "um", "und", "uns", "unter", "usw",
	"vom", "von", "vor", "war", "waren", "was", "weil", "wenn", "wer",
	"werden", "wie", "wir", "wird", "wo", "wurde", "wurden", "zu", "zum",
	"zur", "zwar",

	// English
	"about", "all", "also", "and", "any", "are", "because", "but", "can",
	"each", "for", "from", "has", "have", "how", "into", "its", "just",
	"than", "that", "the", "their", "then", "there", "these", "they",
	"this", "those", "was", "were", "what", "when", "where", "which",
	"while", "who", "why", "will", "with", "you", "your",

	// Instructional filler
	"antwort", "antworten", "beispiel", "beispiele", "einfach", "frage",
	"fragen", "klasse", "schritt", "zeile", "zeilen",
	"answer", "example", "question", "step",
)

func toSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// IsStopWord reports whether the normalized token is ignored during
// keyword extraction.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

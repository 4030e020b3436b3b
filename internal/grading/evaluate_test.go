package grading

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_EmptyAnswer(t *testing.T) {
	for _, answer := range []string{"", "   ", "?!.", "\n\t"} {
		res := Evaluate("Objekte werden im Heap gespeichert.", answer, false)
		assert.Equal(t, VerdictWrong, res.Verdict)
		assert.Zero(t, res.Score)
		assert.Equal(t, feedbackEmpty, res.Feedback)
		assert.Empty(t, res.MatchedKeywords)
		assert.Equal(t, []string{"objekte", "heap", "gespeichert"}, res.MissingKeywords)
		assert.Empty(t, res.RecognizedFragments)
	}
}

func TestEvaluate_EmptyAnswerUsesSummaryCap(t *testing.T) {
	expected := "eins zwei drei vier funf sechs sieben acht neun zehn elf zwolf"
	assert.Len(t, Evaluate(expected, "", false).MissingKeywords, 8)
	assert.Len(t, Evaluate(expected, "", true).MissingKeywords, 10)
}

func TestEvaluate_SelfMatch(t *testing.T) {
	inputs := []string{
		"Objekte werden im Heap gespeichert, Referenzen im Stack.",
		"B) Weil statische Methoden keinen impliziten Objektbezug (this) haben.",
		"int x = 5;",
		"und oder",
		"x",
	}
	for _, e := range inputs {
		for _, coding := range []bool{false, true} {
			res := Evaluate(e, e, coding)
			assert.Equal(t, VerdictCorrect, res.Verdict, "expected=%q", e)
			assert.Equal(t, 1.0, res.Score, "expected=%q", e)
			assert.Empty(t, res.MissingKeywords)
			assert.Equal(t, []string{fragmentFullyReproduced}, res.RecognizedFragments)
		}
	}
}

func TestEvaluate_ScenarioA(t *testing.T) {
	res := Evaluate("Objekte werden im Heap gespeichert, Referenzen im Stack.",
		"objekte heap referenzen stack", false)

	assert.Contains(t, []Verdict{VerdictCorrect, VerdictPartial}, res.Verdict)
	assert.Greater(t, res.Score, 0.45)
	assert.Equal(t, VerdictPartial, res.Verdict)
	assert.InDelta(t, 0.8, res.Score, 1e-9)
	assert.Equal(t, []string{"objekte", "heap", "referenzen", "stack"}, res.MatchedKeywords)
	assert.Equal(t, []string{"gespeichert"}, res.MissingKeywords)
	assert.Contains(t, res.Feedback, "4 von 5")
	assert.Contains(t, res.Feedback, "gespeichert")
}

func TestEvaluate_ScenarioB(t *testing.T) {
	res := Evaluate("B) Weil statische Methoden keinen impliziten Objektbezug (this) haben.",
		"weiß ich nicht", false)

	assert.Equal(t, VerdictWrong, res.Verdict)
	assert.Less(t, res.Score, 0.1)
	assert.Empty(t, res.MatchedKeywords)
	assert.Empty(t, res.RecognizedFragments)
	assert.Contains(t, res.Feedback, "Prüfe besonders")
}

func TestEvaluate_ScenarioC(t *testing.T) {
	res := Evaluate("Stack, Heap, Referenz", "stack und heap", false)

	assert.InDelta(t, 2.0/3.0, res.Score, 1e-9)
	assert.Equal(t, VerdictPartial, res.Verdict)
	assert.Equal(t, []string{"referenz"}, res.MissingKeywords)
	assert.Equal(t, []string{"stack und heap"}, res.RecognizedFragments)
}

func TestEvaluate_ScenarioD(t *testing.T) {
	res := Evaluate("Die Methode gibt das Ergebnis zurück.", "DIE METHODE GIBT DAS ERGEBNIS ZURUCK", false)
	assert.Equal(t, VerdictCorrect, res.Verdict)
	assert.Equal(t, 1.0, res.Score)

	res = Evaluate("Crème brûlée", "creme brulee", true)
	assert.Equal(t, VerdictCorrect, res.Verdict)
	assert.Equal(t, 1.0, res.Score)
}

func TestEvaluate_Thresholds(t *testing.T) {
	// Five keywords in a different order so no containment shortcut applies.
	expected := "alpha beta gamma delta epsilon"

	res := Evaluate(expected, "gamma alpha", false)
	assert.InDelta(t, 0.4, res.Score, 1e-9)
	assert.Equal(t, VerdictWrong, res.Verdict)

	res = Evaluate(expected, "epsilon gamma alpha", false)
	assert.InDelta(t, 0.6, res.Score, 1e-9)
	assert.Equal(t, VerdictPartial, res.Verdict)
}

func TestEvaluate_CodingThresholdIsStricter(t *testing.T) {
	// Theory scores the first ten keywords, coding all twelve.
	expected := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda omikron"
	answer := "epsilon delta gamma beta alpha"

	theory := Evaluate(expected, answer, false)
	assert.InDelta(t, 0.5, theory.Score, 1e-9)
	assert.Equal(t, VerdictPartial, theory.Verdict)

	coding := Evaluate(expected, answer, true)
	assert.InDelta(t, 5.0/12.0, coding.Score, 1e-9)
	assert.Equal(t, VerdictWrong, coding.Verdict)
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	strict := NewEvaluator(Thresholds{
		ShortAnswerKeywords: 3,
		Short:               1.0,
		Coding:              0.9,
		Theory:              0.9,
		ContainmentMinLen:   16,
	})
	res := strict.Evaluate("Stack, Heap, Referenz", "heap stack", false)
	assert.Equal(t, VerdictWrong, res.Verdict)
	assert.Equal(t, 1.0, strict.Thresholds().Short)
}

func TestEvaluate_Containment(t *testing.T) {
	// Answer contains the whole expected answer plus extra words.
	res := Evaluate("heap speicher", "Der Heap Speicher wird vom GC verwaltet", false)
	assert.True(t, res.Verdict.Passed())

	// Answer is a substring of a long expected answer.
	expected := "Referenzen zeigen auf Objekte im Heap, nicht auf Kopien"
	res = Evaluate(expected, "referenzen zeigen auf objekte", false)
	assert.Equal(t, VerdictPartial, res.Verdict)
	assert.NotEmpty(t, res.MissingKeywords)

	// Expected answers below the containment length do not accept substrings.
	res = Evaluate("Stack, Heap, Ref", "stack", false)
	assert.Equal(t, VerdictWrong, res.Verdict)
}

func TestEvaluate_ExpectedWithoutKeywords(t *testing.T) {
	res := Evaluate("und oder", "etwas anderes", false)
	assert.Equal(t, VerdictWrong, res.Verdict)
	assert.Zero(t, res.Score)
	assert.Equal(t, feedbackNoKeywords, res.Feedback)

	// An empty expected answer never passes through containment.
	res = Evaluate("", "irgendeine antwort", false)
	assert.Equal(t, VerdictWrong, res.Verdict)
}

func TestEvaluate_PartitionsKeywords(t *testing.T) {
	cases := []struct {
		expected string
		answer   string
		coding   bool
	}{
		{"Objekte werden im Heap gespeichert, Referenzen im Stack.", "heap und stack", false},
		{"for (int i = 0; i < arr.length; i++) sum += arr[i];", "for int i arr length sum", true},
		{"Die Schleife läuft dreimal und summiert die Werte.", "läuft drei mal", false},
		{"Konstruktor initialisiert Attribute", "nichts davon", false},
	}

	for _, tc := range cases {
		res := Evaluate(tc.expected, tc.answer, tc.coding)
		want := ExtractKeywords(tc.expected, MatchCap(tc.coding))

		union := append(append([]string{}, res.MatchedKeywords...), res.MissingKeywords...)
		sort.Strings(union)
		sorted := append([]string{}, want...)
		sort.Strings(sorted)
		assert.Equal(t, sorted, union, "expected=%q", tc.expected)

		matched := make(map[string]bool)
		for _, m := range res.MatchedKeywords {
			matched[m] = true
		}
		for _, m := range res.MissingKeywords {
			assert.False(t, matched[m], "keyword %q both matched and missing", m)
		}
		assert.LessOrEqual(t, len(res.RecognizedFragments), 3)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 1.0)
	}
}

func TestEvaluate_FeedbackListsAtMostSixMissing(t *testing.T) {
	expected := "eins zwei drei vier funf sechs sieben acht neun zehn"
	res := Evaluate(expected, "elf", false)
	require.Equal(t, VerdictWrong, res.Verdict)
	listed := res.Feedback[strings.Index(res.Feedback, "Prüfe besonders: ")+len("Prüfe besonders: "):]
	assert.Len(t, strings.Split(strings.TrimSuffix(listed, "."), ", "), 6)
}

func TestEvaluateInput(t *testing.T) {
	in := Input{Expected: "Stack, Heap, Referenz", Answer: "stack heap referenz", Coding: true}
	assert.Equal(t, Evaluate(in.Expected, in.Answer, in.Coding), EvaluateInput(in))
	assert.Equal(t, VerdictCorrect, EvaluateInput(in).Verdict)
}

func TestVerdictLabel(t *testing.T) {
	assert.Equal(t, "Richtig", VerdictCorrect.Label())
	assert.Equal(t, "Teilweise richtig", VerdictPartial.Label())
	assert.Equal(t, "Noch nicht richtig", VerdictWrong.Label())
	assert.True(t, VerdictPartial.Passed())
	assert.False(t, VerdictWrong.Passed())
}

package review

import "github.com/abhisek/tracetutor/internal/llm"

// OpinionSchema is the structured output a reviewer must return.
var OpinionSchema = &llm.Schema{
	Name:        "answer-review",
	Description: "Judgement of whether a learner answer expresses the reference answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict": map[string]any{
				"type":        "string",
				"enum":        []any{"correct", "partial", "wrong"},
				"description": "correct if the answer covers the reference, partial if it covers some of it, wrong otherwise",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence in the verdict (0.0-1.0)",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One or two sentences in German addressed to the learner",
			},
			"missing_concepts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concepts from the reference answer the learner did not express",
			},
		},
		"required":             []any{"verdict", "confidence", "reasoning", "missing_concepts"},
		"additionalProperties": false,
	},
}

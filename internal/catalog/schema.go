package catalog

// traceFileSchema describes the authored trace file format. Structural
// rules that need cross-references (line ranges, heap references) are
// checked by Validate.
var traceFileSchema = map[string]any{
	"type":     "object",
	"required": []any{"format", "id", "title", "code", "steps"},
	"properties": map[string]any{
		"format":        map[string]any{"type": "string", "pattern": "^v[0-9]+"},
		"id":            map[string]any{"type": "string", "pattern": "^[a-z0-9][a-z0-9-]*$"},
		"title":         map[string]any{"type": "string", "minLength": 1},
		"description":   map[string]any{"type": "string"},
		"code":          map[string]any{"type": "string", "minLength": 1},
		"topic":         map[string]any{"type": "string"},
		"learningGoals": stringArray,
		"sourceRefs":    stringArray,
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"basic", "intermediate", "exam"},
		},
		"steps": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    stepSchema,
		},
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchema,
		},
	},
}

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var stepSchema = map[string]any{
	"type":     "object",
	"required": []any{"line", "explanation"},
	"properties": map[string]any{
		"line":        map[string]any{"type": "integer", "minimum": 1},
		"explanation": map[string]any{"type": "string"},
		"console":     stringArray,
		"frames": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"method"},
				"properties": map[string]any{
					"method": map[string]any{"type": "string"},
					"variables": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"name", "type", "value"},
							"properties": map[string]any{
								"name":        map[string]any{"type": "string"},
								"type":        map[string]any{"type": "string"},
								"value":       map[string]any{"type": "string"},
								"changed":     map[string]any{"type": "boolean"},
								"isReference": map[string]any{"type": "boolean"},
								"refId":       map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
		"heap": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "type", "label"},
				"properties": map[string]any{
					"id":             map[string]any{"type": "string"},
					"type":           map[string]any{"type": "string"},
					"label":          map[string]any{"type": "string"},
					"values":         stringArray,
					"indices":        map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
					"highlightIndex": map[string]any{"type": "integer", "minimum": 0},
				},
			},
		},
	},
}

var questionSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "kind", "prompt"},
	"properties": map[string]any{
		"id":                map[string]any{"type": "string"},
		"kind":              map[string]any{"type": "string", "enum": []any{"choice", "open", "coding"}},
		"prompt":            map[string]any{"type": "string", "minLength": 1},
		"options":           stringArray,
		"correctOption":     map[string]any{"type": "string"},
		"explanation":       map[string]any{"type": "string"},
		"hintQuestion":      map[string]any{"type": "string"},
		"referenceSolution": map[string]any{"type": "string"},
	},
}

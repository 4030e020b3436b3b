package catalog

import (
	"fmt"
	"strings"
)

// ValidationResult lists every structural problem found in a trace.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Err returns the problems as a single error, or nil when the trace is valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("trace validation failed:\n  %s", strings.Join(r.Errors, "\n  "))
}

// Validate checks a trace for structural issues. It collects all problems
// instead of stopping at the first.
func Validate(t Trace) ValidationResult {
	var errs []string

	if strings.TrimSpace(t.ID) == "" {
		errs = append(errs, "missing trace id")
	}
	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, "missing trace title")
	}
	if strings.TrimSpace(t.Code) == "" {
		errs = append(errs, "missing code block")
	}
	if len(t.Steps) == 0 {
		errs = append(errs, "trace must contain at least one step")
	}
	switch t.Difficulty {
	case "", DifficultyBasic, DifficultyIntermediate, DifficultyExam:
	default:
		errs = append(errs, fmt.Sprintf("unknown difficulty %q", t.Difficulty))
	}

	lineCount := len(CodeLines(t))
	for i, step := range t.Steps {
		prefix := fmt.Sprintf("step %d", i+1)
		if step.Line < 1 || step.Line > lineCount {
			errs = append(errs, fmt.Sprintf("%s: line %d outside code (1..%d)", prefix, step.Line, lineCount))
		}

		heap := make(map[string]HeapObject, len(step.Heap))
		for _, obj := range step.Heap {
			if obj.ID == "" {
				errs = append(errs, fmt.Sprintf("%s: heap object without id", prefix))
				continue
			}
			if _, dup := heap[obj.ID]; dup {
				errs = append(errs, fmt.Sprintf("%s: duplicate heap object %q", prefix, obj.ID))
			}
			heap[obj.ID] = obj
			if obj.HighlightIndex != nil && (*obj.HighlightIndex < 0 || *obj.HighlightIndex >= len(obj.Values)) {
				errs = append(errs, fmt.Sprintf("%s: heap object %q highlights index %d of %d values",
					prefix, obj.ID, *obj.HighlightIndex, len(obj.Values)))
			}
		}

		for _, f := range step.Frames {
			if f.Method == "" {
				errs = append(errs, fmt.Sprintf("%s: stack frame without method name", prefix))
			}
			for _, v := range f.Variables {
				if !v.IsReference {
					continue
				}
				if _, ok := heap[v.RefID]; !ok {
					errs = append(errs, fmt.Sprintf("%s: variable %q in %s references unknown heap object %q",
						prefix, v.Name, f.Method, v.RefID))
				}
			}
		}
	}

	seen := make(map[string]bool, len(t.Questions))
	for i, q := range t.Questions {
		errs = append(errs, validateQuestion(i, q, seen)...)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateQuestion(i int, q Question, seen map[string]bool) []string {
	var errs []string
	prefix := fmt.Sprintf("question %d", i+1)

	if q.ID == "" {
		errs = append(errs, prefix+": missing id")
	} else if seen[q.ID] {
		errs = append(errs, fmt.Sprintf("%s: duplicate id %q", prefix, q.ID))
	}
	seen[q.ID] = true

	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, prefix+": missing prompt")
	}

	switch q.Kind {
	case KindChoice:
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("%s: choice question needs at least 2 options, got %d", prefix, len(q.Options)))
		}
		found := false
		for _, o := range q.Options {
			if o == q.CorrectOption {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Sprintf("%s: correct option %q is not among the options", prefix, q.CorrectOption))
		}
	case KindOpen, KindCoding:
		if strings.TrimSpace(q.ReferenceSolution) == "" {
			errs = append(errs, prefix+": free-text question needs a reference solution")
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown kind %q", prefix, q.Kind))
	}
	return errs
}

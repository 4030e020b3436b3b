package catalog

import "strings"

// Difficulty grades how demanding a trace is.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExam         Difficulty = "exam"
)

// Label returns the learner-facing name of a difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyBasic:
		return "Grundlagen"
	case DifficultyIntermediate:
		return "Fortgeschritten"
	case DifficultyExam:
		return "Klausur"
	default:
		return string(d)
	}
}

// Variable is a local variable shown in a stack frame.
type Variable struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`

	// Changed marks variables assigned in this step.
	Changed bool `json:"changed,omitempty"`

	// IsReference marks variables that point into the heap. RefID names
	// the heap object they point to.
	IsReference bool   `json:"isReference,omitempty"`
	RefID       string `json:"refId,omitempty"`
}

// StackFrame is one method activation on the call stack.
type StackFrame struct {
	Method    string     `json:"method"`
	Variables []Variable `json:"variables"`
}

// HeapObject is an object or array living on the heap.
type HeapObject struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`

	// Values holds array elements or field values in display order.
	// Indices holds the matching array indices, if any.
	Values  []string `json:"values,omitempty"`
	Indices []int    `json:"indices,omitempty"`

	// HighlightIndex marks the array element accessed in this step.
	HighlightIndex *int `json:"highlightIndex,omitempty"`
}

// Step is a snapshot of program state after executing one line.
type Step struct {
	Line        int          `json:"line"` // 1-based line in Trace.Code
	Frames      []StackFrame `json:"frames"`
	Heap        []HeapObject `json:"heap"`
	Console     []string     `json:"console"`
	Explanation string       `json:"explanation"`
}

// QuestionKind selects how a question is answered and checked.
type QuestionKind string

const (
	KindChoice QuestionKind = "choice" // pick one of Options
	KindOpen   QuestionKind = "open"   // free text, theory
	KindCoding QuestionKind = "coding" // free text against a reference solution
)

// Question is a quiz item attached to a trace.
type Question struct {
	ID     string       `json:"id"`
	Kind   QuestionKind `json:"kind"`
	Prompt string       `json:"prompt"`

	// Options and CorrectOption are used by choice questions.
	Options       []string `json:"options,omitempty"`
	CorrectOption string   `json:"correctOption,omitempty"`

	Explanation string `json:"explanation,omitempty"`

	// HintQuestion is a guiding question shown on request.
	HintQuestion string `json:"hintQuestion,omitempty"`

	// ReferenceSolution is the model answer for open and coding questions.
	ReferenceSolution string `json:"referenceSolution,omitempty"`
}

// IsFreeText reports whether the question is answered with free text.
func (q Question) IsFreeText() bool {
	return q.Kind == KindOpen || q.Kind == KindCoding
}

// Trace is a hand-authored execution of a small Java program.
type Trace struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Steps       []Step `json:"steps"`

	Topic         string     `json:"topic,omitempty"`
	LearningGoals []string   `json:"learningGoals,omitempty"`
	SourceRefs    []string   `json:"sourceRefs,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Questions     []Question `json:"questions,omitempty"`
}

// CodeLines splits the trace's code into lines. Line n of the program is
// element n-1.
func CodeLines(t Trace) []string {
	return strings.Split(t.Code, "\n")
}

// Line returns the trimmed source of the 1-based line n, or "" when n is
// out of range.
func Line(t Trace, n int) string {
	lines := CodeLines(t)
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[n-1])
}

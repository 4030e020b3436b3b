package progress

import (
	"maps"

	"github.com/abhisek/tracetutor/internal/grading"
)

// ReviewTag is a learner's bookmark on a question.
type ReviewTag string

const (
	TagNone   ReviewTag = ""
	TagReview ReviewTag = "review" // revisit later
	TagUnsure ReviewTag = "unsure" // answered but not confident
	TagKnown  ReviewTag = "known"  // mastered
)

// Valid reports whether t is a known tag or TagNone.
func (t ReviewTag) Valid() bool {
	switch t {
	case TagNone, TagReview, TagUnsure, TagKnown:
		return true
	}
	return false
}

// Label returns the learner-facing name of a tag.
func (t ReviewTag) Label() string {
	switch t {
	case TagReview:
		return "Wiederholen"
	case TagUnsure:
		return "Unsicher"
	case TagKnown:
		return "Sitzt"
	default:
		return ""
	}
}

// State is the learner's work on one question set, keyed by question ID.
type State struct {
	Answers         map[string]string         `json:"answers"`
	HintVisible     map[string]bool           `json:"hintVisible"`
	SolutionVisible map[string]bool           `json:"solutionVisible"`
	Evaluations     map[string]grading.Result `json:"evaluations"`
	ReviewTags      map[string]ReviewTag      `json:"reviewTags"`
}

// NewState returns an empty state.
func NewState() *State {
	s := &State{}
	s.ensureMaps()
	return s
}

// ensureMaps replaces nil maps, e.g. after decoding a partial document.
func (s *State) ensureMaps() {
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	if s.HintVisible == nil {
		s.HintVisible = make(map[string]bool)
	}
	if s.SolutionVisible == nil {
		s.SolutionVisible = make(map[string]bool)
	}
	if s.Evaluations == nil {
		s.Evaluations = make(map[string]grading.Result)
	}
	if s.ReviewTags == nil {
		s.ReviewTags = make(map[string]ReviewTag)
	}
}

// Clone returns a deep copy of the maps. Result slices are shared.
func (s *State) Clone() *State {
	return &State{
		Answers:         maps.Clone(s.Answers),
		HintVisible:     maps.Clone(s.HintVisible),
		SolutionVisible: maps.Clone(s.SolutionVisible),
		Evaluations:     maps.Clone(s.Evaluations),
		ReviewTags:      maps.Clone(s.ReviewTags),
	}
}

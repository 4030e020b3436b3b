package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/progress"
	"github.com/abhisek/tracetutor/internal/review"
	"github.com/abhisek/tracetutor/internal/screen"
	"github.com/abhisek/tracetutor/internal/ui/components"
	"github.com/abhisek/tracetutor/internal/ui/layout"
	"github.com/abhisek/tracetutor/internal/ui/theme"
)

// Deps are the collaborators of a quiz screen. Any of them may be nil.
type Deps struct {
	KV       progress.KV
	Recorder progress.Recorder
	Reviewer *review.Reviewer
}

// reviewDoneMsg carries a finished second opinion.
type reviewDoneMsg struct {
	QuestionID string
	Opinion    *review.Opinion
	Err        error
}

// QuizScreen walks through a question set one question at a time.
type QuizScreen struct {
	title     string
	questions []catalog.Question
	book      *progress.Book
	reviewer  *review.Reviewer

	idx    int
	choice components.MultiChoice
	answer components.AnswerBox

	opinions  map[string]*review.Opinion
	reviewing string // question ID with a pending review
	reviewErr string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Leaver = (*QuizScreen)(nil)

// New creates a quiz over questions. setID scopes the stored progress.
func New(deps Deps, setID, title string, questions []catalog.Question) *QuizScreen {
	book := progress.NewBook(setID, questions, deps.KV, deps.Recorder)
	book.Open(context.Background())

	s := &QuizScreen{
		title:     title,
		questions: questions,
		book:      book,
		reviewer:  deps.Reviewer,
		opinions:  make(map[string]*review.Opinion),
	}
	s.loadQuestion()
	return s
}

// Book exposes the learner state of this quiz.
func (s *QuizScreen) Book() *progress.Book { return s.book }

func (s *QuizScreen) Init() tea.Cmd {
	if s.current().IsFreeText() {
		return s.answer.Focus()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return s.title
}

func (s *QuizScreen) Status() string {
	if len(s.questions) == 0 {
		return ""
	}
	return fmt.Sprintf("Frage %d/%d", s.idx+1, len(s.questions))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "PgUp/PgDn", Description: "Frage"},
		{Key: "Ctrl+S", Description: "Prüfen"},
	}
	q := s.current()
	if q.HintQuestion != "" {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Tipp"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+L", Description: "Lösung"},
		layout.KeyHint{Key: "Ctrl+R", Description: "Zurücksetzen"},
		layout.KeyHint{Key: "Alt+1-3", Description: "Markieren"},
	)
	if s.reviewer != nil && q.IsFreeText() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+O", Description: "Zweitmeinung"})
	}
	return hints
}

func (s *QuizScreen) current() catalog.Question {
	if s.idx < 0 || s.idx >= len(s.questions) {
		return catalog.Question{}
	}
	return s.questions[s.idx]
}

// loadQuestion rebuilds the input widgets from the stored state.
func (s *QuizScreen) loadQuestion() {
	q := s.current()
	stored := s.book.Answer(q.ID)
	if q.IsFreeText() {
		placeholder := "Antwort in eigenen Worten…"
		if q.Kind == catalog.KindCoding {
			placeholder = "Java-Code…"
		}
		s.answer = components.NewAnswerBox(placeholder, q.Kind == catalog.KindCoding)
		s.answer.SetValue(stored)
		return
	}
	chosen := ""
	if _, checked := s.book.Evaluation(q.ID); checked {
		chosen = stored
	}
	s.choice = components.NewMultiChoice(q.Options, q.CorrectOption, chosen)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewDoneMsg:
		return s.handleReviewDone(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.current().IsFreeText() {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if len(s.questions) == 0 {
		return s, nil
	}
	q := s.current()

	switch msg.String() {
	case "pgdown":
		return s, s.move(1)
	case "pgup":
		return s, s.move(-1)
	case "ctrl+s":
		s.check()
		return s, nil
	case "ctrl+t":
		if q.HintQuestion != "" {
			s.book.ToggleHint(q.ID)
			s.save()
		}
		return s, nil
	case "ctrl+l":
		s.book.ToggleSolution(q.ID)
		s.save()
		return s, nil
	case "ctrl+r":
		s.book.Reset(q.ID)
		delete(s.opinions, q.ID)
		s.save()
		s.loadQuestion()
		return s, s.Init()
	case "ctrl+o":
		return s, s.requestReview()
	case "alt+1":
		return s, s.tag(progress.TagReview)
	case "alt+2":
		return s, s.tag(progress.TagUnsure)
	case "alt+3":
		return s, s.tag(progress.TagKnown)
	case "alt+0":
		return s, s.tag(progress.TagNone)
	}

	if q.IsFreeText() {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		s.syncAnswer()
		return s, cmd
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted && s.choice.Chosen != s.book.Answer(q.ID) {
		s.book.SetAnswer(q.ID, s.choice.Chosen)
		s.book.Check(context.Background(), q)
		s.save()
	}
	return s, cmd
}

// syncAnswer stores the editor text when it changed. A changed answer
// invalidates its evaluation and second opinion.
func (s *QuizScreen) syncAnswer() {
	q := s.current()
	text := s.answer.Value()
	if text == s.book.Answer(q.ID) {
		return
	}
	s.book.SetAnswer(q.ID, text)
	delete(s.opinions, q.ID)
	s.save()
}

func (s *QuizScreen) move(delta int) tea.Cmd {
	next := s.idx + delta
	if next < 0 || next >= len(s.questions) {
		return nil
	}
	if s.current().IsFreeText() {
		s.answer.Blur()
	}
	s.idx = next
	s.reviewErr = ""
	s.loadQuestion()
	return s.Init()
}

func (s *QuizScreen) check() {
	q := s.current()
	if !q.IsFreeText() {
		s.choice.Submit()
		s.book.SetAnswer(q.ID, s.choice.Chosen)
	}
	s.book.Check(context.Background(), q)
	s.save()
}

func (s *QuizScreen) tag(t progress.ReviewTag) tea.Cmd {
	if err := s.book.Tag(s.current().ID, t); err == nil {
		s.save()
	}
	return nil
}

func (s *QuizScreen) save() {
	s.book.Flush(context.Background())
}

// Leave saves the question set once more when the quiz is closed.
func (s *QuizScreen) Leave() {
	s.save()
}

func (s *QuizScreen) requestReview() tea.Cmd {
	q := s.current()
	if s.reviewer == nil || !q.IsFreeText() || s.reviewing != "" {
		return nil
	}
	answer := s.book.Answer(q.ID)
	if strings.TrimSpace(answer) == "" {
		s.reviewErr = "Für eine Zweitmeinung zuerst eine Antwort eingeben."
		return nil
	}

	req := review.Request{
		Prompt:   q.Prompt,
		Expected: q.ReferenceSolution,
		Answer:   answer,
		Coding:   q.Kind == catalog.KindCoding,
	}
	if res, ok := s.book.Evaluation(q.ID); ok {
		req.Heuristic = &res
	}

	s.reviewing = q.ID
	s.reviewErr = ""
	reviewer, id := s.reviewer, q.ID
	return func() tea.Msg {
		op, err := reviewer.Review(context.Background(), req)
		return reviewDoneMsg{QuestionID: id, Opinion: op, Err: err}
	}
}

func (s *QuizScreen) handleReviewDone(msg reviewDoneMsg) (screen.Screen, tea.Cmd) {
	s.reviewing = ""
	if msg.Err != nil {
		s.reviewErr = "Zweitmeinung nicht verfügbar: " + msg.Err.Error()
		return s, nil
	}
	s.opinions[msg.QuestionID] = msg.Opinion
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Für diesen Trace gibt es keine Fragen."))
	}

	q := s.current()
	w := max(width-4, 20)
	wrap := lipgloss.NewStyle().Width(w)

	var sections []string
	sections = append(sections, s.renderTally(w))

	heading := theme.Title.Render(kindLabel(q.Kind))
	if tag := s.book.ReviewTag(q.ID); tag != progress.TagNone {
		heading += "  " + theme.Partial.Render("["+tag.Label()+"]")
	}
	sections = append(sections, heading, wrap.Render(theme.Body.Render(q.Prompt)))

	if q.IsFreeText() {
		s.answer.SetWidth(w)
		sections = append(sections, s.answer.View())
	} else {
		sections = append(sections, s.choice.View())
	}

	if res, ok := s.book.Evaluation(q.ID); ok {
		sections = append(sections, wrap.Render(renderResult(res)))
	}
	if s.book.HintVisible(q.ID) && q.HintQuestion != "" {
		sections = append(sections, wrap.Render(theme.Hint.Render("Tipp: "+q.HintQuestion)))
	}
	if s.book.SolutionVisible(q.ID) {
		sections = append(sections, wrap.Render(renderSolution(q)))
	}
	if s.reviewing == q.ID {
		sections = append(sections, theme.Hint.Render("Zweitmeinung wird eingeholt…"))
	} else if op := s.opinions[q.ID]; op != nil {
		sections = append(sections, wrap.Render(renderOpinion(op)))
	}
	if s.reviewErr != "" {
		sections = append(sections, wrap.Render(theme.ErrorText.Render(s.reviewErr)))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Padding(0, 2).MaxHeight(height).Render(content)
}

func (s *QuizScreen) renderTally(width int) string {
	t := s.book.Tally()
	bar := components.TallyBar{Label: "Fortschritt", Right: t.Right, Wrong: t.Wrong, Total: t.Total, Width: width / 2}.View()
	summary := fmt.Sprintf("%d richtig · %d falsch · %d offen · %d %%",
		t.Right, t.Wrong, t.Skipped, t.Accuracy())
	return bar + "  " + theme.Subtitle.Render(summary)
}

func kindLabel(k catalog.QuestionKind) string {
	switch k {
	case catalog.KindOpen:
		return "Offene Frage"
	case catalog.KindCoding:
		return "Programmieraufgabe"
	default:
		return "Auswahlfrage"
	}
}

func verdictStyle(v grading.Verdict) lipgloss.Style {
	switch v {
	case grading.VerdictCorrect:
		return theme.Correct
	case grading.VerdictPartial:
		return theme.Partial
	default:
		return theme.Incorrect
	}
}

func renderResult(res grading.Result) string {
	var b strings.Builder
	b.WriteString(verdictStyle(res.Verdict).Render(res.Verdict.Label()))
	if len(res.MatchedKeywords)+len(res.MissingKeywords) > 0 {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  (%.0f %%)", res.Score*100)))
	}
	b.WriteString("\n" + theme.Body.Render(res.Feedback))
	for _, f := range res.RecognizedFragments {
		b.WriteString("\n" + theme.Hint.Render("✓ "+f))
	}
	return b.String()
}

func renderSolution(q catalog.Question) string {
	solution := q.ReferenceSolution
	if !q.IsFreeText() {
		solution = q.CorrectOption
	}
	out := theme.Title.Render("Musterlösung") + "\n" + theme.Body.Render(solution)
	if q.Explanation != "" && q.IsFreeText() {
		out += "\n" + theme.Hint.Render(q.Explanation)
	}
	return out
}

func renderOpinion(op *review.Opinion) string {
	head := fmt.Sprintf("Zweitmeinung (%s): ", op.Model)
	out := theme.Subtitle.Render(head) +
		verdictStyle(op.Verdict).Render(op.Verdict.Label()) +
		theme.Subtitle.Render(fmt.Sprintf("  %.0f %% sicher", op.Confidence*100))
	if op.Reasoning != "" {
		out += "\n" + theme.Body.Render(op.Reasoning)
	}
	if len(op.MissingConcepts) > 0 {
		out += "\n" + theme.Hint.Render("Fehlt: "+strings.Join(op.MissingConcepts, ", "))
	}
	return out
}

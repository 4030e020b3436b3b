package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/progress"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <trace-id>",
	Short: "Answer the questions of a trace on the command line",
	Long: "Answer the questions of a trace on the command line.\n\n" +
		"Free-text answers end with an empty line. Choice questions take the\n" +
		"option letter. Commands: :hint, :solution, :skip, :tag <review|unsure|known|none>, :quit.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		t, err := cat.Get(args[0])
		if err != nil {
			return err
		}
		if len(t.Questions) == 0 {
			return fmt.Errorf("trace %s has no questions", t.ID)
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		book := progress.NewBook(t.ID, t.Questions, st.KVRepo(), st.EventRepo())
		book.Open(cmd.Context())

		p := &practice{
			book:      book,
			questions: t.Questions,
			in:        bufio.NewScanner(cmd.InOrStdin()),
			out:       cmd.OutOrStdout(),
		}
		return p.run(cmd.Context())
	},
}

// practice runs a question set as a line-oriented dialogue.
type practice struct {
	book      *progress.Book
	questions []catalog.Question
	in        *bufio.Scanner
	out       io.Writer
}

func (p *practice) run(ctx context.Context) error {
	for i, q := range p.questions {
		fmt.Fprintf(p.out, "\nFrage %d/%d (%s)\n%s\n", i+1, len(p.questions), kindLabel(q.Kind), q.Prompt)
		if prev := p.book.Answer(q.ID); prev != "" {
			fmt.Fprintf(p.out, "Bisherige Antwort: %s\n", firstLine(prev))
		}
		for j, o := range q.Options {
			fmt.Fprintf(p.out, "  %c) %s\n", 'a'+j, o)
		}

		quit, err := p.ask(ctx, q)
		p.book.Flush(ctx)
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}

	t := p.book.Tally()
	fmt.Fprintf(p.out, "\n%d von %d beantwortet, %d bestanden (%d%%)\n", t.Answered, t.Total, t.Right, t.Accuracy())
	return nil
}

// ask reads input for q until it is answered or skipped. quit is true
// when the learner ends the session.
func (p *practice) ask(ctx context.Context, q catalog.Question) (quit bool, err error) {
	for {
		fmt.Fprint(p.out, "> ")
		text, ok := p.readAnswer(q)
		if !ok {
			return true, p.in.Err()
		}
		if text == "" {
			continue
		}

		if cmd, arg, isCmd := parseCommand(text); isCmd {
			switch cmd {
			case "quit", "q":
				return true, nil
			case "skip":
				return false, nil
			case "hint":
				if q.HintQuestion == "" {
					fmt.Fprintln(p.out, "Kein Hinweis vorhanden.")
				} else {
					fmt.Fprintln(p.out, "Hinweis: "+q.HintQuestion)
				}
			case "solution":
				p.book.ToggleSolution(q.ID)
				fmt.Fprintln(p.out, "Lösung:\n"+solutionText(q))
			case "tag":
				if err := p.book.Tag(q.ID, progress.ReviewTag(arg)); err != nil {
					fmt.Fprintln(p.out, err)
				}
			default:
				fmt.Fprintf(p.out, "Unbekannter Befehl :%s\n", cmd)
			}
			continue
		}

		if !q.IsFreeText() {
			opt, ok := optionFor(q, text)
			if !ok {
				fmt.Fprintf(p.out, "Bitte einen Buchstaben von a bis %c eingeben.\n", 'a'+len(q.Options)-1)
				continue
			}
			text = opt
		}
		p.book.SetAnswer(q.ID, text)
		res := p.book.Check(ctx, q)
		fmt.Fprintf(p.out, "%s: %s\n", res.Verdict.Label(), res.Feedback)
		for _, f := range res.RecognizedFragments {
			fmt.Fprintf(p.out, "  ✓ %s\n", f)
		}
		return false, nil
	}
}

// readAnswer reads one line for choice questions and lines up to an empty
// line for free-text questions. A leading command is returned as is.
func (p *practice) readAnswer(q catalog.Question) (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	first := p.in.Text()
	if !q.IsFreeText() || strings.HasPrefix(strings.TrimSpace(first), ":") {
		return strings.TrimSpace(first), true
	}
	lines := []string{first}
	for strings.TrimSpace(first) != "" && p.in.Scan() {
		line := p.in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

func parseCommand(text string) (cmd, arg string, ok bool) {
	if !strings.HasPrefix(text, ":") {
		return "", "", false
	}
	cmd, arg, _ = strings.Cut(strings.TrimPrefix(text, ":"), " ")
	if strings.TrimSpace(arg) == "none" {
		arg = ""
	}
	return strings.ToLower(cmd), strings.TrimSpace(arg), true
}

// optionFor maps an option letter, or the option text itself, to the option.
func optionFor(q catalog.Question, input string) (string, bool) {
	if len(input) == 1 {
		i := int(strings.ToLower(input)[0] - 'a')
		if i >= 0 && i < len(q.Options) {
			return q.Options[i], true
		}
	}
	for _, o := range q.Options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}

func solutionText(q catalog.Question) string {
	if q.IsFreeText() {
		return q.ReferenceSolution
	}
	s := q.CorrectOption
	if q.Explanation != "" {
		s += "\n" + q.Explanation
	}
	return s
}

func kindLabel(k catalog.QuestionKind) string {
	switch k {
	case catalog.KindChoice:
		return "Auswahl"
	case catalog.KindCoding:
		return "Code"
	default:
		return "Freitext"
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

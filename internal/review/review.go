// Package review asks a language model for a second opinion on an open
// answer. The opinion is shown next to the heuristic verdict and never
// replaces it.
package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/llm"
)

// Purpose labels review requests in the LLM event log.
const Purpose = "answer-review"

// Config holds generation settings for the reviewer.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one Review call, retries included. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.2,
		Timeout:     30 * time.Second,
	}
}

// Request is one answer to review.
type Request struct {
	Prompt   string
	Expected string
	Answer   string
	Coding   bool

	// Heuristic is the evaluator's result, if already computed. It is
	// passed to the model as context and used for Opinion.Agrees.
	Heuristic *grading.Result
}

// Opinion is the model's judgement.
type Opinion struct {
	Verdict         grading.Verdict `json:"verdict"`
	Confidence      float64         `json:"confidence"`
	Reasoning       string          `json:"reasoning"`
	MissingConcepts []string        `json:"missingConcepts"`
	Model           string          `json:"model"`

	// Agrees is true when a heuristic result was given and its verdict
	// matches the model's.
	Agrees bool `json:"agrees"`
}

// Reviewer produces second opinions through an llm.Provider.
type Reviewer struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Reviewer.
func New(provider llm.Provider, cfg Config) *Reviewer {
	return &Reviewer{provider: provider, cfg: cfg}
}

type opinionOutput struct {
	Verdict         string   `json:"verdict"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	MissingConcepts []string `json:"missing_concepts"`
}

// Review asks the model whether req.Answer expresses req.Expected.
func (r *Reviewer) Review(ctx context.Context, req Request) (*Opinion, error) {
	if strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("review: empty answer")
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildReviewMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build review prompt: %w", err)
	}

	llmReq := llm.UserPrompt(reviewSystemPrompt, userMsg)
	llmReq.Schema = OpinionSchema
	llmReq.MaxTokens = r.cfg.MaxTokens
	llmReq.Temperature = r.cfg.Temperature

	resp, err := r.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM review failed: %w", err)
	}

	// Providers validate natively; this also covers the mock and any
	// provider that returns loosely formed JSON.
	if err := llm.ValidateJSON(OpinionSchema, resp.Content); err != nil {
		return nil, err
	}

	var raw opinionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse review response: %w", err)
	}

	verdict, ok := parseVerdict(raw.Verdict)
	if !ok {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("unknown verdict %q", raw.Verdict),
		}
	}

	op := &Opinion{
		Verdict:         verdict,
		Confidence:      raw.Confidence,
		Reasoning:       strings.TrimSpace(raw.Reasoning),
		MissingConcepts: raw.MissingConcepts,
		Model:           resp.Model,
	}
	if op.MissingConcepts == nil {
		op.MissingConcepts = []string{}
	}
	if req.Heuristic != nil {
		op.Agrees = req.Heuristic.Verdict == verdict
	}
	return op, nil
}

func parseVerdict(s string) (grading.Verdict, bool) {
	switch v := grading.Verdict(strings.ToLower(strings.TrimSpace(s))); v {
	case grading.VerdictCorrect, grading.VerdictPartial, grading.VerdictWrong:
		return v, true
	default:
		return "", false
	}
}

const reviewSystemPrompt = `You are a patient teaching assistant for an introductory Java course taught in German. A learner watched an execution trace of a small Java program (stack frames, heap objects, console output) and answered a question about it in their own words.

Instructions:
- Decide whether the learner's answer expresses the same idea as the reference answer. Wording, spelling and word order do not matter.
- Return "correct" if the core idea is fully there, "partial" if part of it is there, "wrong" otherwise.
- List the concepts from the reference answer that are missing, as short German noun phrases. Return an empty list when nothing is missing.
- A heuristic keyword check has already graded the answer. Treat it as a hint, not as the truth.
- Keep reasoning to at most two sentences, in German, addressed to the learner.`

var reviewUserTemplate = template.Must(template.New("review").Parse(`{{if .Prompt}}Question: {{.Prompt}}
{{end}}Answer type: {{if .Coding}}Java code{{else}}explanation{{end}}
Reference answer:
{{.Expected}}

Learner's answer:
{{.Answer}}
{{with .Heuristic}}
Heuristic verdict: {{.Verdict}} (score {{printf "%.2f" .Score}})
{{- if .MissingKeywords}}, missing keywords: {{range $i, $k := .MissingKeywords}}{{if $i}}, {{end}}{{$k}}{{end}}{{end}}
{{end}}`))

func buildReviewMessage(req Request) (string, error) {
	var buf bytes.Buffer
	if err := reviewUserTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/review"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Grade one free-text answer against a reference solution",
	Long: "Grade one free-text answer against a reference solution.\n\n" +
		"Pass --answer - to read the answer from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		expected, _ := cmd.Flags().GetString("expected")
		answer, _ := cmd.Flags().GetString("answer")
		coding, _ := cmd.Flags().GetBool("coding")
		asJSON, _ := cmd.Flags().GetBool("json")
		second, _ := cmd.Flags().GetBool("second-opinion")

		if answer == "-" {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			answer = string(raw)
		}

		res := grading.EvaluateInput(grading.Input{Expected: expected, Answer: answer, Coding: coding})
		out := checkOutput{Result: res}

		if second {
			op, err := secondOpinion(cmd, review.Request{
				Expected:  expected,
				Answer:    answer,
				Coding:    coding,
				Heuristic: &res,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, "Second opinion unavailable:", err)
			} else {
				out.Opinion = op
			}
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		printResult(cmd.OutOrStdout(), out)
		return nil
	},
}

type checkOutput struct {
	grading.Result
	Opinion *review.Opinion `json:"secondOpinion,omitempty"`
}

// secondOpinion asks the configured LLM to review one answer. LLM calls are
// logged to the store like in the TUI.
func secondOpinion(cmd *cobra.Command, req review.Request) (*review.Opinion, error) {
	st, _, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	r, err := newReviewer(cmd.Context(), st.EventRepo())
	if err != nil {
		return nil, err
	}
	return r.Review(cmd.Context(), req)
}

func printResult(w io.Writer, out checkOutput) {
	res := out.Result
	fmt.Fprintf(w, "Verdict:   %s (%s)\n", res.Verdict.Label(), res.Verdict)
	fmt.Fprintf(w, "Score:     %.0f%%\n", res.Score*100)
	fmt.Fprintf(w, "Feedback:  %s\n", res.Feedback)
	if len(res.MatchedKeywords) > 0 {
		fmt.Fprintf(w, "Matched:   %s\n", strings.Join(res.MatchedKeywords, ", "))
	}
	if len(res.MissingKeywords) > 0 {
		fmt.Fprintf(w, "Missing:   %s\n", strings.Join(res.MissingKeywords, ", "))
	}
	for _, f := range res.RecognizedFragments {
		fmt.Fprintf(w, "  ✓ %s\n", f)
	}

	if op := out.Opinion; op != nil {
		fmt.Fprintln(w)
		agree := "disagrees"
		if op.Agrees {
			agree = "agrees"
		}
		fmt.Fprintf(w, "Second opinion (%s, %s): %s, confidence %.0f%%\n",
			op.Model, agree, op.Verdict.Label(), op.Confidence*100)
		if op.Reasoning != "" {
			fmt.Fprintf(w, "  %s\n", op.Reasoning)
		}
		if len(op.MissingConcepts) > 0 {
			fmt.Fprintf(w, "  Fehlt: %s\n", strings.Join(op.MissingConcepts, ", "))
		}
	}
}

func init() {
	checkCmd.Flags().StringP("expected", "e", "", "Reference solution")
	checkCmd.Flags().StringP("answer", "a", "", "Learner answer (- reads stdin)")
	checkCmd.Flags().Bool("coding", false, "Treat the reference as a code solution (stricter threshold)")
	checkCmd.Flags().Bool("json", false, "Print the result as JSON")
	checkCmd.Flags().Bool("second-opinion", false, "Ask the configured LLM to review the answer")
	_ = checkCmd.MarkFlagRequired("expected")
	_ = checkCmd.MarkFlagRequired("answer")
}

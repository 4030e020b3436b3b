package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded second-opinion requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query LLM events: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No LLM requests recorded.")
			return nil
		}
		fmt.Fprintf(w, "%5s  %-16s  %-14s  %-26s  %11s  %7s  %s\n",
			"ID", "Time", "Purpose", "Model", "Tokens", "Latency", "")
		fmt.Fprintln(w, strings.Repeat("─", 94))
		for _, e := range events {
			status := "✓"
			if !e.Success {
				status = "✗ " + truncate(e.ErrorMessage, 30)
			}
			fmt.Fprintf(w, "%5d  %-16s  %-14s  %-26s  %5d/%-5d  %5dms  %s\n",
				e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(e.Purpose, 14), truncate(e.Provider+"/"+e.Model, 26),
				e.InputTokens, e.OutputTokens, e.LatencyMs, status)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and the raw response of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get LLM event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no LLM request with ID %d", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printLLMEvent(w io.Writer, e *store.LLMEvent) {
	fields := [][2]string{
		{"Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	fmt.Fprintf(w, "Request #%d (sequence %d)\n", e.ID, e.Sequence)
	for _, f := range fields {
		fmt.Fprintf(w, "  %-9s %s\n", f[0]+":", f[1])
	}

	for _, part := range []struct{ title, body string }{
		{"Request", e.RequestBody},
		{"Response", e.ResponseBody},
	} {
		fmt.Fprintf(w, "\n── %s %s\n", part.title, strings.Repeat("─", 50-len(part.title)))
		if part.body == "" {
			fmt.Fprintln(w, "(empty)")
			continue
		}
		fmt.Fprintln(w, part.body)
	}
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show requests with this purpose (e.g. answer-review)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset learning progress",
}

var progressStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer statistics per trace",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().EvaluationStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		w := cmd.OutOrStdout()
		if stats.Total == 0 {
			fmt.Fprintln(w, "No answers checked yet.")
			return nil
		}

		fmt.Fprintf(w, "Answers checked: %d   Average score: %.0f%%\n\n", stats.Total, stats.AvgScore*100)
		for _, vc := range stats.ByVerdict {
			fmt.Fprintf(w, "  %-20s %5d\n", grading.Verdict(vc.Verdict).Label(), vc.Count)
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-32s  %8s  %6s  %9s\n", "Question set", "Attempts", "Passed", "Avg score")
		fmt.Fprintln(w, strings.Repeat("─", 62))
		for _, ts := range stats.ByTrace {
			fmt.Fprintf(w, "%-32s  %8d  %6d  %8.0f%%\n",
				truncate(ts.TraceID, 32), ts.Attempts, ts.Passed, ts.AvgScore*100)
		}
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset [trace-id]",
	Short: "Discard stored answers of one trace, or of all traces",
	Long: "Discard stored answers of one trace, or of all traces.\n\n" +
		"The answer history shown by 'progress stats' is kept.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		target := "all traces"
		prefix := progress.KeyPrefix
		if len(args) == 1 {
			target = "trace " + args[0]
			prefix = progress.SetPrefix(args[0])
		}

		if !force {
			fmt.Fprintf(cmd.OutOrStdout(), "Discard stored answers of %s? [y/N] ", target)
			var reply string
			fmt.Fscanln(cmd.InOrStdin(), &reply)
			if r := strings.ToLower(strings.TrimSpace(reply)); r != "y" && r != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.KVRepo().DeletePrefix(cmd.Context(), prefix)
		if err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stored question sets of %s.\n", n, target)
		return nil
	},
}

func init() {
	progressResetCmd.Flags().BoolP("force", "f", false, "Do not ask for confirmation")

	progressCmd.AddCommand(progressStatsCmd)
	progressCmd.AddCommand(progressResetCmd)
}

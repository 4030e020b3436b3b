package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/playback"
	"github.com/abhisek/tracetutor/internal/screens/player"
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "List, inspect and validate traces",
}

var tracesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available traces",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-24s  %-16s  %5s  %5s  %s\n", "ID", "Niveau", "Steps", "Qs", "Title")
		fmt.Fprintln(w, strings.Repeat("─", 80))
		for _, t := range cat.All() {
			fmt.Fprintf(w, "%-24s  %-16s  %5d  %5d  %s\n",
				truncate(t.ID, 24), t.Difficulty.Label(), len(t.Steps), len(t.Questions), t.Title)
		}
		return nil
	},
}

var tracesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a trace, or one of its steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		t, err := cat.Get(args[0])
		if err != nil {
			return err
		}
		step, _ := cmd.Flags().GetInt("step")

		cur := playback.NewCursor(t)
		if step > 0 {
			if step > cur.Len() {
				return fmt.Errorf("trace %s has %d steps", t.ID, cur.Len())
			}
			cur.Seek(step - 1)
		}
		printStep(cmd.OutOrStdout(), t, cur)
		return nil
	},
}

var tracesValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate an authored trace file or a directory of them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := traceFiles(args[0])
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no trace files in %s", args[0])
		}

		w := cmd.OutOrStdout()
		failed := 0
		for _, f := range files {
			t, err := catalog.LoadFile(f)
			if err != nil {
				failed++
				fmt.Fprintf(w, "✗ %s\n  %v\n", f, err)
				continue
			}
			fmt.Fprintf(w, "✓ %s (%s, %d steps, %d questions)\n", f, t.ID, len(t.Steps), len(t.Questions))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d trace files invalid", failed, len(files))
		}
		return nil
	},
}

var tracesPlayCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Print every step of a trace at a fixed pace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		t, err := cat.Get(args[0])
		if err != nil {
			return err
		}
		interval, _ := cmd.Flags().GetDuration("interval")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		w := cmd.OutOrStdout()
		cur := playback.NewCursor(t)
		printed := 0
		err = cur.RunAll(ctx, interval, func(i int) {
			s, _ := cur.Current()
			fmt.Fprintf(w, "[%d/%d] %3d  %s\n", i+1, cur.Len(), s.Line, catalog.Line(t, s.Line))
			if s.Explanation != "" {
				fmt.Fprintf(w, "         %s\n", s.Explanation)
			}
			// Console output accumulates across steps; print only what is new.
			for _, out := range s.Console[min(printed, len(s.Console)):] {
				fmt.Fprintf(w, "         > %s\n", out)
			}
			printed = len(s.Console)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// printStep renders the code listing and, once started, the state panels.
func printStep(w io.Writer, t catalog.Trace, cur *playback.Cursor) {
	s, started := cur.Current()
	next := 0
	if n, ok := cur.NextStep(); ok {
		next = n.Line
	}

	lipgloss.Fprintln(w, t.Title)
	lipgloss.Fprintln(w, player.RenderCode(catalog.CodeLines(t), cur.CurrentLine(), next))
	fmt.Fprintln(w)
	if started {
		fmt.Fprintf(w, "Schritt %d/%d\n\n", cur.Index()+1, cur.Len())
		lipgloss.Fprintln(w, "Stack:\n"+player.RenderStack(s.Frames, true))
		fmt.Fprintln(w)
		lipgloss.Fprintln(w, "Heap:\n"+player.RenderHeap(s.Heap, true))
		fmt.Fprintln(w)
		lipgloss.Fprintln(w, "Konsole:\n"+player.RenderConsole(s.Console, true))
		fmt.Fprintln(w)
	}
	lipgloss.Fprintln(w, player.RenderExplanation(t, s, started, 80))
}

// traceFiles returns path itself, or the *.json files inside it.
func traceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	matches, err := filepath.Glob(filepath.Join(path, "*.json"))
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	tracesShowCmd.Flags().IntP("step", "s", 0, "Show the state after step N (1-based)")
	tracesPlayCmd.Flags().Duration("interval", playback.DefaultInterval, "Delay between steps")

	tracesCmd.AddCommand(tracesListCmd)
	tracesCmd.AddCommand(tracesShowCmd)
	tracesCmd.AddCommand(tracesValidateCmd)
	tracesCmd.AddCommand(tracesPlayCmd)
}


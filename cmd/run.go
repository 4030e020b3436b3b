package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/app"
	"github.com/abhisek/tracetutor/internal/auth"
	"github.com/abhisek/tracetutor/internal/llm"
	"github.com/abhisek/tracetutor/internal/logging"
	"github.com/abhisek/tracetutor/internal/review"
	"github.com/abhisek/tracetutor/internal/store"
)

const logFileName = "tracetutor.log"

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, dbPath, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal; send logs to a file next to the database.
	logFile, err := logging.OpenFile(filepath.Join(filepath.Dir(dbPath), logFileName))
	if err != nil {
		return err
	}
	defer logFile.Close()
	if _, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: logFile,
	}); err != nil {
		return err
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{
		Catalog: cat,
		Store:   st,
	}
	if cfg.AuthEnabled() {
		opts.Auth = auth.NewLocal(cfg.User, cfg.PasswordHash, st.KVRepo())
	}

	reviewer, err := newReviewer(ctx, st.EventRepo())
	if err != nil {
		slog.Info("second opinions unavailable", "reason", err)
	} else {
		opts.Reviewer = reviewer
	}

	slog.Info("starting tui", "db", dbPath, "traces", len(cat.All()), "auth", cfg.AuthEnabled())
	return app.Run(opts)
}

// newReviewer builds the optional LLM reviewer from the environment.
func newReviewer(ctx context.Context, events store.EventRepo) (*review.Reviewer, error) {
	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	rc := review.DefaultConfig()
	rc.Timeout = llm.ConfigFromEnv().Timeout
	return review.New(provider, rc), nil
}

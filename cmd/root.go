package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/config"
	"github.com/abhisek/tracetutor/internal/logging"
	"github.com/abhisek/tracetutor/internal/store"
)

// cfg is loaded once before any command runs.
var cfg = &config.Config{LogLevel: "info", LogFormat: "text"}

var rootCmd = &cobra.Command{
	Use:   "tracetutor",
	Short: "Step through Java traces and practice exam questions",
	Long: "TraceTutor: a terminal study tool that replays hand-authored Java program traces\n" +
		"step by step and checks free-text answers against reference solutions.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		_, err = logging.Setup(logging.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Output: os.Stderr,
		})
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TRACETUTOR_DB env var)")
	rootCmd.PersistentFlags().String("traces", "", "Directory of authored trace files (overrides TRACETUTOR_TRACES_DIR env var)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tracesCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TRACETUTOR_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	return s, dbPath, nil
}

// loadCatalog returns the built-in traces plus those in the traces
// directory (--traces, then TRACETUTOR_TRACES_DIR).
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	c := catalog.New()
	dir, _ := cmd.Flags().GetString("traces")
	if dir == "" {
		dir = cfg.TracesDir
	}
	if dir == "" {
		return c, nil
	}
	if _, err := c.RegisterDir(dir); err != nil {
		return nil, fmt.Errorf("load traces: %w", err)
	}
	return c, nil
}

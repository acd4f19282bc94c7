package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adidahl/techlingo-agent-framework/internal/app"
	"github.com/adidahl/techlingo-agent-framework/internal/store"
	"github.com/adidahl/techlingo-agent-framework/internal/workflow"
)

const (
	defaultServer  = "ws://localhost:8000"
	defaultOutputs = "outputs"
)

var rootCmd = &cobra.Command{
	Use:   "techlingo",
	Short: "Terminal client for the TechLingo course generator",
	Long: "TechLingo turns any technical text into an interactive course.\n" +
		"Streams generation progress from the workflow service, browses past\n" +
		"runs, and plays generated courses as quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// A missing .env is fine; flags and real env still apply.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Base ws:// URL of the generation service (overrides TECHLINGO_SERVER)")
	rootCmd.PersistentFlags().String("outputs", "", "Directory the service writes run-* dirs to (overrides TECHLINGO_OUTPUTS)")
	rootCmd.PersistentFlags().String("config", "", "Path to a workflow config JSON file")
	rootCmd.PersistentFlags().Int("seed", 0, "Base seed for quiz option shuffling (0 = time-based)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides TECHLINGO_DB)")

	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp resolves configuration, opens the history store, and launches the
// TUI.
func runApp(cmd *cobra.Command) error {
	opts := app.Options{
		Server:   resolveServer(cmd),
		Outputs:  resolveOutputs(cmd),
		BaseSeed: resolveSeed(cmd),
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts.Config = cfg

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "History database unavailable:", err)
	} else if hist, err := store.Open(dbPath); err != nil {
		fmt.Fprintln(os.Stderr, "History database unavailable:", err)
	} else {
		defer hist.Close()
		opts.History = hist
	}

	return app.Run(opts)
}

func resolveServer(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		return s
	}
	if s := os.Getenv("TECHLINGO_SERVER"); s != "" {
		return s
	}
	return defaultServer
}

func resolveOutputs(cmd *cobra.Command) string {
	if o, _ := cmd.Flags().GetString("outputs"); o != "" {
		return o
	}
	if o := os.Getenv("TECHLINGO_OUTPUTS"); o != "" {
		return o
	}
	return defaultOutputs
}

func resolveSeed(cmd *cobra.Command) int {
	if seed, _ := cmd.Flags().GetInt("seed"); seed != 0 {
		return seed
	}
	return int(time.Now().UnixNano() & 0x7FFFFFFF)
}

// resolveConfig loads the workflow config from --config, falling back to
// the built-in default template.
func resolveConfig(cmd *cobra.Command) (*workflow.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		def := workflow.Default()
		return &def, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := workflow.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then TECHLINGO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/eduvantage/internal/config"
	"github.com/abhisek/eduvantage/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "eduvantage",
	Short: "AI study assistant for JEE/NEET and college students",
	Long: "EduVantage: terminal study dashboard with a study planner, a doubt solver " +
		"for text and photos, and a web-grounded resource finder.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUVANTAGE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/eduvantage/config.yaml)")
	rootCmd.PersistentFlags().String("persona", "", "Academic track: jee_neet or college (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config or the default path,
// then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("persona"); p != "" {
		cfg.Persona = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using --db or the config file
// (highest priority), then EDUVANTAGE_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

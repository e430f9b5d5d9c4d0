package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/eduvantage/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the defaults",
	Long: "Write a settings file with the default values. --persona and --provider " +
		"are written into the file. An existing file is kept unless --force is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(cmd)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}

		cfg := config.DefaultConfig()
		if p, _ := cmd.Flags().GetString("persona"); p != "" {
			cfg.Persona = p
		}
		if p, _ := cmd.Flags().GetString("provider"); p != "" {
			cfg.LLM.Provider = p
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

// configPath returns --config or the default settings path.
func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing settings file")
	configInitCmd.Flags().String("provider", "", "LLM provider to record: gemini, anthropic, openai or openrouter")
	configCmd.AddCommand(configInitCmd)
}

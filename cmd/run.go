package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/eduvantage/internal/app"
)

// runApp builds dependencies and launches the dashboard. Without a
// provider the dashboard still opens, with actions disabled.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	d, err := buildDeps(ctx, cmd, depsOptions{})
	if err != nil {
		return err
	}
	defer d.Close()

	opts := app.Options{
		Persona: d.cfg.PersonaValue(),
		Log:     d.log,
	}
	if d.study != nil {
		opts.Study = d.study
	} else {
		fmt.Fprintln(os.Stderr, "LLM provider not configured. Set EDUVANTAGE_GEMINI_API_KEY or GEMINI_API_KEY.")
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	}

	return app.Run(ctx, opts)
}

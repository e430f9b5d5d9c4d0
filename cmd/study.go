package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/format"
	"github.com/abhisek/eduvantage/internal/prompt"
)

var planCmd = &cobra.Command{
	Use:   "plan <subject>",
	Short: "Generate a prioritised weekly study plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, _ := cmd.Flags().GetFloat64("hours")
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := buildDeps(cmd.Context(), cmd, depsOptions{console: true, requireProvider: true})
		if err != nil {
			return err
		}
		defer d.Close()

		persona := d.cfg.PersonaValue()
		plan, err := d.study.GeneratePlan(cmd.Context(), persona, strings.Join(args, " "), hours)
		if err != nil {
			return err
		}

		view := dashboard.ComposePlanner(plan)
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), view)
		}
		printPlan(cmd.OutOrStdout(), view, persona, hours)
		return nil
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve [question]",
	Short: "Solve a doubt from a question, a photo, or both",
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, _ := cmd.Flags().GetString("image")
		asJSON, _ := cmd.Flags().GetBool("json")

		query := strings.Join(args, " ")
		if strings.TrimSpace(query) == "" && imagePath == "" {
			return fmt.Errorf("provide a question, --image, or both")
		}

		var img *prompt.Image
		if imagePath != "" {
			loaded, err := prompt.LoadImage(imagePath)
			if err != nil {
				return err
			}
			img = loaded
		}

		d, err := buildDeps(cmd.Context(), cmd, depsOptions{console: true, requireProvider: true})
		if err != nil {
			return err
		}
		defer d.Close()

		text, err := d.study.SolveDoubt(cmd.Context(), query, img)
		if err != nil {
			return err
		}

		view := dashboard.ComposeDoubt(text)
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), view)
		}
		fmt.Fprintln(cmd.OutOrStdout(), format.Plain(view.Blocks))
		return nil
	},
}

var resourcesCmd = &cobra.Command{
	Use:   "resources <topic>",
	Short: "Find free courses, videos and notes for a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := buildDeps(cmd.Context(), cmd, depsOptions{console: true, requireProvider: true})
		if err != nil {
			return err
		}
		defer d.Close()

		result, err := d.study.FindResources(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		view := dashboard.ComposeResources(result)
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), view)
		}
		printResources(cmd.OutOrStdout(), view)
		return nil
	},
}

func printPlan(w io.Writer, v dashboard.PlannerView, persona prompt.Persona, hours float64) {
	if len(v.Rows) == 0 {
		fmt.Fprintln(w, "No plan returned. Try rephrasing the subject.")
		return
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	high := color.New(color.FgHiRed, color.Bold)

	bold.Fprintf(w, "%s", v.Subject)
	dim.Fprintf(w, "  (%s, %s/week)\n", persona.Label(), dashboard.FormatHours(hours))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%-40s  %-8s  %6s\n", "Topic", "Priority", "Hours")
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, row := range v.Rows {
		name := truncate(row.Name, 40)
		prio := fmt.Sprintf("%-8s", row.Priority)
		if row.Highlight {
			fmt.Fprintf(w, "%s  %s  %6s\n", high.Sprintf("%-40s", name), high.Sprint(prio), row.Hours)
			continue
		}
		fmt.Fprintf(w, "%-40s  %s  %6s\n", name, dim.Sprint(prio), row.Hours)
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%-40s  %-8s  %6s\n", "TOTAL", "", v.TotalHours)
}

func printResources(w io.Writer, v dashboard.ResourceView) {
	fmt.Fprintln(w, format.Plain(v.Blocks))
	if len(v.Sources) == 0 {
		return
	}

	fmt.Fprintln(w)
	color.New(color.Bold).Fprintln(w, "Sources")
	for _, src := range v.Sources {
		fmt.Fprintf(w, "  • %s  %s\n", src.Title, color.New(color.Faint).Sprint(strings.ToUpper(src.Host)))
		fmt.Fprintf(w, "    %s\n", src.URI)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	planCmd.Flags().Float64("hours", dashboard.DefaultWeeklyHours, "Study hours available per week")
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")

	solveCmd.Flags().StringP("image", "i", "", "Path to a photo of the problem")
	solveCmd.Flags().Bool("json", false, "Print classified blocks as JSON")

	resourcesCmd.Flags().Bool("json", false, "Print the result as JSON")
}

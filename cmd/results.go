package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show and export candidate results",
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a candidate's result",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		r, err := a.services.Results().CandidateResult(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSummary(a.out, analytics.SummarizeResult(*r))
		return nil
	}),
}

var resultsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a candidate's result as a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		r, err := a.services.Results().CandidateResult(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = "result_" + args[0] + ".xlsx"
		}
		return writeFile(cmd, output, func(w io.Writer) error {
			return analytics.ExportResultXLSX(*r, w)
		})
	}),
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Assessment analytics",
}

var analyticsShowCmd = &cobra.Command{
	Use:   "show <assessment-id>",
	Short: "Show the analytics dashboard for an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		data, err := a.services.Results().Analytics(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if xlsx, _ := cmd.Flags().GetString("xlsx"); xlsx != "" {
			if err := writeFile(cmd, xlsx, func(w io.Writer) error {
				return analytics.ExportAnalyticsXLSX(*data, w)
			}); err != nil {
				return err
			}
		}
		printDashboard(a.out, analytics.BuildDashboard(*data))
		return nil
	}),
}

func printSummary(w io.Writer, s analytics.ResultSummary) {
	if s.Title != "" {
		fmt.Fprintln(w, s.Title)
		fmt.Fprintln(w, strings.Repeat(rule, len([]rune(s.Title))))
	}
	printCards(w, s.Cards)

	if len(s.Questions) > 0 {
		fmt.Fprintf(w, "\n%-50s  %-8s  %-9s  %-8s  %s\n", "Question", "Type", "Points", "Time", "Tests")
		fmt.Fprintln(w, strings.Repeat(rule, 95))
		for _, q := range s.Questions {
			tests := ""
			if q.TestsTotal > 0 {
				tests = fmt.Sprintf("%d/%d", q.TestsPassed, q.TestsTotal)
			}
			fmt.Fprintf(w, "%-50s  %-8s  %-9s  %-8s  %s\n",
				analytics.TruncateLabel(q.Content, 50), q.Type, q.Points, q.Time, tests)
		}
	}

	if len(s.Skills) > 0 {
		fmt.Fprintln(w, "\nSkills")
		for _, p := range s.Skills {
			fmt.Fprintf(w, "  %-30s %5.1f%%\n", p.Label, p.Value)
		}
	}
	printList(w, "Strengths", s.Strengths)
	printList(w, "Areas to improve", s.Weaknesses)
	if s.Feedback != "" {
		fmt.Fprintf(w, "\nFeedback\n  %s\n", s.Feedback)
	}
}

func printDashboard(w io.Writer, d analytics.Dashboard) {
	printCards(w, d.Cards)

	if len(d.ScoreDistribution.Points) > 0 {
		fmt.Fprintln(w, "\nScore distribution")
		for _, p := range d.ScoreDistribution.Points {
			fmt.Fprintf(w, "  %-10s %s %.0f\n", p.Label, strings.Repeat("█", int(p.Value)), p.Value)
		}
	}

	if len(d.Questions) > 0 {
		fmt.Fprintf(w, "\n%-50s  %9s  %8s  %s\n", "Question", "Avg score", "Success", "Avg time")
		fmt.Fprintln(w, strings.Repeat(rule, 85))
		for _, q := range d.Questions {
			fmt.Fprintf(w, "%-50s  %9s  %8s  %s\n", q.Content, q.AverageScore, q.SuccessRate, q.AverageTime)
		}
	}

	if len(d.SkillBreakdown.Points) > 0 {
		fmt.Fprintln(w, "\nSkills")
		for _, p := range d.SkillBreakdown.Points {
			fmt.Fprintf(w, "  %-30s %5.1f\n", p.Label, p.Value)
		}
	}
}

func printCards(w io.Writer, cards []analytics.Card) {
	for _, c := range cards {
		fmt.Fprintf(w, "%-22s %s\n", c.Label+":", c.Value)
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func writeFile(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	out, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func init() {
	resultsExportCmd.Flags().StringP("output", "o", "", "Output file (default result_<id>.xlsx)")
	analyticsShowCmd.Flags().String("xlsx", "", "Also write the report to this spreadsheet")

	resultsCmd.AddCommand(resultsShowCmd, resultsExportCmd)
	analyticsCmd.AddCommand(analyticsShowCmd)
}

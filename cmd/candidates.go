package cmd

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/format"
	"github.com/SAP-F-2025/assessment-console/internal/listing"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/spf13/cobra"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Browse and invite candidates",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates (optionally filtered by name or email)",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		fetch := func(ctx context.Context, _ listing.Query) ([]models.Candidate, error) {
			return a.services.Candidates().List(ctx, services.CandidateFilters{})
		}
		page := listing.NewPage("candidate", fetch, models.Candidate.SearchFields,
			listing.WithNotifier[models.Candidate](a.hub),
			listing.WithLogger[models.Candidate](utils.ToSlogLogger(a.logger)))
		defer page.Dispose()

		search, _ := cmd.Flags().GetString("search")
		page.SetSearch(search)
		if err := page.Load(cmd.Context()); err != nil {
			return err
		}

		items := page.Items()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No candidates found.")
			return nil
		}
		fmt.Fprintf(a.out, "%-36s  %-24s  %-32s  %11s  %9s  %s\n", "ID", "Name", "Email", "Assessments", "Avg Score", "Last Activity")
		fmt.Fprintln(a.out, strings.Repeat(rule, 135))
		for _, c := range items {
			fmt.Fprintf(a.out, "%-36s  %-24s  %-32s  %11d  %9s  %s\n",
				c.ID, analytics.TruncateLabel(c.DisplayName(), 24), analytics.TruncateLabel(c.Email, 32),
				c.AssessmentsTaken, averageScore(c.AverageScore), lastActivity(c))
		}
		fmt.Fprintf(a.out, "\n%d candidates\n", len(items))
		return nil
	}),
}

var candidatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one candidate",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		c, err := a.services.Candidates().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printCards(a.out, []analytics.Card{
			{Label: "Name", Value: c.DisplayName()},
			{Label: "Email", Value: c.Email},
			{Label: "Status", Value: string(c.Status)},
			{Label: "Assessments", Value: fmt.Sprint(c.AssessmentsTaken)},
			{Label: "Average score", Value: averageScore(c.AverageScore)},
			{Label: "Last activity", Value: lastActivity(*c)},
		})
		return nil
	}),
}

var candidatesInviteCmd = &cobra.Command{
	Use:   "invite --assessment <id> <\"Name <email>\">...",
	Short: "Invite candidates to an assessment",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		invites, err := parseInvites(args)
		if err != nil {
			return err
		}
		assessmentID, _ := cmd.Flags().GetString("assessment")
		message, _ := cmd.Flags().GetString("message")

		result, err := a.services.Candidates().Invite(cmd.Context(), models.InviteDraft{
			AssessmentID: assessmentID,
			Candidates:   invites,
			Message:      message,
		})
		if err != nil {
			a.hub.Error(cmd.Context(), "invite", "Failed to invite candidates")
			return err
		}
		a.emitter.Emit(cmd.Context(), events.NewCandidatesInvitedEvent(assessmentID, result.SuccessCount, result.FailedCount))

		fmt.Fprintf(a.out, "%d invited, %d failed\n", result.SuccessCount, result.FailedCount)
		for _, f := range result.Failed {
			fmt.Fprintf(a.out, "  %s <%s>: %s\n", f.Name, f.Email, f.Reason)
		}
		return nil
	}),
}

var candidatesAssessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "List candidate assessment assignments",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		flags := cmd.Flags()
		var filters services.CandidateAssessmentFilters
		filters.AssessmentID, _ = flags.GetString("assessment")
		filters.CandidateID, _ = flags.GetString("candidate")
		status, _ := flags.GetString("status")
		filters.Status = models.CandidateAssessmentStatus(status)

		rows, err := a.services.Candidates().Assessments(cmd.Context(), filters)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(a.out, "No candidate assessments found.")
			return nil
		}
		printCandidateAssessments(a, rows)
		return nil
	}),
}

func printCandidateAssessments(a *app, rows []models.CandidateAssessment) {
	fmt.Fprintf(a.out, "%-36s  %-36s  %-30s  %-12s  %6s\n", "ID", "Candidate", "Assessment", "Status", "Score")
	fmt.Fprintln(a.out, strings.Repeat(rule, 130))
	for _, r := range rows {
		score := format.NotAvailable
		if r.Score != nil {
			score = format.Score(*r.Score, 1)
		}
		fmt.Fprintf(a.out, "%-36s  %-36s  %-30s  %-12s  %6s\n",
			r.ID, r.CandidateID, analytics.TruncateLabel(r.AssessmentTitle(), 30), r.Status, score)
	}
	fmt.Fprintf(a.out, "\n%d assignments\n", len(rows))
}

// parseInvites reads "Name <email>" or a bare email per argument.
func parseInvites(args []string) ([]models.CandidateInvite, error) {
	invites := make([]models.CandidateInvite, 0, len(args))
	for _, arg := range args {
		addr, err := mail.ParseAddress(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid candidate %q: want \"Name <email>\"", arg)
		}
		name := addr.Name
		if name == "" {
			name = strings.SplitN(addr.Address, "@", 2)[0]
		}
		invites = append(invites, models.CandidateInvite{Name: name, Email: addr.Address})
	}
	return invites, nil
}

func averageScore(v float64) string {
	if v <= 0 {
		return "-"
	}
	return format.Score(v, 1)
}

func lastActivity(c models.Candidate) string {
	if c.LastActivity == nil {
		return format.NotAvailable
	}
	return format.Time(*c.LastActivity)
}

func init() {
	candidatesListCmd.Flags().String("search", "", "Case-insensitive name or email filter")
	candidatesInviteCmd.Flags().String("assessment", "", "Assessment id")
	candidatesInviteCmd.Flags().String("message", "", "Personal note added to the invitation")
	_ = candidatesInviteCmd.MarkFlagRequired("assessment")
	candidatesAssessmentsCmd.Flags().String("assessment", "", "Only this assessment")
	candidatesAssessmentsCmd.Flags().String("candidate", "", "Only this candidate")
	candidatesAssessmentsCmd.Flags().String("status", "", "not_started, in_progress, completed or expired")

	candidatesCmd.AddCommand(candidatesListCmd, candidatesShowCmd, candidatesInviteCmd, candidatesAssessmentsCmd)
	rootCmd.AddCommand(candidatesCmd)
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	"github.com/SAP-F-2025/assessment-console/internal/format"
	"github.com/SAP-F-2025/assessment-console/internal/forms"
	"github.com/SAP-F-2025/assessment-console/internal/listing"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/spf13/cobra"
)

const rule = "─"

var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "List, create and delete tests",
}

var testsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tests (optionally filtered by skill and search term)",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		page := a.testPage()
		defer page.Dispose()
		if err := loadPage(cmd, page); err != nil {
			return err
		}

		items := page.Items()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No tests found.")
			return nil
		}
		printTests(a.out, items)
		return nil
	}),
}

var testsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a test and all of its questions",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		page := a.testPage()
		defer page.Dispose()
		return deleteFromPage(cmd, a, page, args[0])
	}),
}

var testsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a test",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		form := forms.NewTestForm(a.validator, nil, forms.WithNotifier[models.TestDraft](a.hub))
		return submitTest(cmd, form, func(ctx context.Context, d models.TestDraft) (*models.Test, error) {
			return a.services.Tests().Create(ctx, d)
		}, a)
	}),
}

var testsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a test; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		existing, err := a.services.Tests().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		form := forms.NewTestForm(a.validator, existing, forms.WithNotifier[models.TestDraft](a.hub))
		return submitTest(cmd, form, func(ctx context.Context, d models.TestDraft) (*models.Test, error) {
			return a.services.Tests().Update(ctx, existing.ID, d)
		}, a)
	}),
}

func submitTest(cmd *cobra.Command, form *forms.TestForm, save func(context.Context, models.TestDraft) (*models.Test, error), a *app) error {
	flags := cmd.Flags()
	var parseErr error
	_ = form.Update(func(d *models.TestDraft) {
		if flags.Changed("title") {
			d.Title, _ = flags.GetString("title")
		}
		if flags.Changed("description") {
			d.Description, _ = flags.GetString("description")
		}
		if flags.Changed("instructions") {
			d.Instructions, _ = flags.GetString("instructions")
		}
		if flags.Changed("category") {
			d.Category, _ = flags.GetString("category")
		}
		if flags.Changed("difficulty") {
			raw, _ := flags.GetString("difficulty")
			diff, ok := models.ParseDifficulty(raw)
			if !ok {
				parseErr = fmt.Errorf("invalid difficulty %q: want easy, medium or hard", raw)
			}
			d.Difficulty = diff
		}
		if flags.Changed("time-limit") {
			d.TimeLimit, _ = flags.GetInt("time-limit")
		}
		if flags.Changed("active") {
			d.IsActive, _ = flags.GetBool("active")
		}
	})
	if parseErr != nil {
		return parseErr
	}

	var saved *models.Test
	err := form.Submit(cmd.Context(), func(ctx context.Context, d models.TestDraft) error {
		var err error
		saved, err = save(ctx, d)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\n", saved.ID, saved.Title)
	return nil
}

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Browse assessments",
}

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessments (optionally filtered by skill and search term)",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		fetch := func(ctx context.Context, q listing.Query) ([]models.Assessment, error) {
			return a.services.Assessments().List(ctx, services.AssessmentFilters{SkillID: q.SkillID})
		}
		page := listing.NewPage("assessment", fetch, models.Assessment.SearchFields,
			listing.WithNotifier[models.Assessment](a.hub),
			listing.WithLogger[models.Assessment](utils.ToSlogLogger(a.logger)))
		defer page.Dispose()
		if err := loadPage(cmd, page); err != nil {
			return err
		}

		items := page.Items()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No assessments found.")
			return nil
		}
		fmt.Fprintf(a.out, "%-36s  %-40s  %7s  %-20s  %s\n", "ID", "Title", "Passing", "Time Limit", "Created")
		fmt.Fprintln(a.out, strings.Repeat(rule, 120))
		for _, as := range items {
			created := format.NotAvailable
			if as.CreatedAt != nil {
				created = format.Time(*as.CreatedAt)
			}
			fmt.Fprintf(a.out, "%-36s  %-40s  %6d%%  %-20s  %s\n",
				as.ID, analytics.TruncateLabel(as.Title, 40), as.PassingScore, format.TimeLimit(as.TimeLimit), created)
		}
		fmt.Fprintf(a.out, "\n%d assessments\n", len(items))
		return nil
	}),
}

func (a *app) testPage() *listing.Page[models.Test] {
	fetch := func(ctx context.Context, q listing.Query) ([]models.Test, error) {
		return a.services.Tests().List(ctx, services.TestFilters{SkillID: q.SkillID})
	}
	return listing.NewPage("test", fetch, models.Test.SearchFields,
		listing.WithDeleter(a.services.Tests().Delete, func(t models.Test) string { return t.ID }),
		listing.WithNotifier[models.Test](a.hub),
		listing.WithEmitter[models.Test](a.emitter),
		listing.WithLogger[models.Test](utils.ToSlogLogger(a.logger)),
		listing.WithConfirmMessage[models.Test]("Are you sure you want to delete this test? This will also delete all associated questions."),
	)
}

// loadPage applies the --search and --skill flags, then fetches.
func loadPage[T any](cmd *cobra.Command, page *listing.Page[T]) error {
	search, _ := cmd.Flags().GetString("search")
	skill, _ := cmd.Flags().GetString("skill")
	page.SetSearch(search)
	return page.SetSkill(cmd.Context(), skill)
}

func printTests(w io.Writer, tests []models.Test) {
	fmt.Fprintf(w, "%-36s  %-40s  %-16s  %-10s  %9s  %s\n",
		"ID", "Title", "Category", "Difficulty", "Questions", "Created")
	fmt.Fprintln(w, strings.Repeat(rule, 130))
	for _, t := range tests {
		created := format.NotAvailable
		if t.CreatedAt != nil {
			created = format.Time(*t.CreatedAt)
		}
		fmt.Fprintf(w, "%-36s  %-40s  %-16s  %-10s  %9d  %s\n",
			t.ID, analytics.TruncateLabel(t.Title, 40), analytics.TruncateLabel(t.Category, 16),
			t.Difficulty, t.QuestionCount, created)
	}
	fmt.Fprintf(w, "\n%d tests\n", len(tests))
}

func promptYesNo(_ context.Context, message string) bool {
	answer, err := readLine(message + " [y/N] ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "Case-insensitive text filter")
	cmd.Flags().String("skill", "", "Only items linked to this skill id")
}

func addTestFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Title")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("instructions", "", "Instructions shown to candidates")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().String("difficulty", "", "easy, medium or hard")
	cmd.Flags().Int("time-limit", 60, "Time limit in minutes, 0 for none")
	cmd.Flags().Bool("active", true, "Whether candidates can take the test")
}

func init() {
	addListFlags(testsListCmd)
	addListFlags(assessmentsListCmd)
	testsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	addTestFlags(testsCreateCmd)
	addTestFlags(testsUpdateCmd)

	testsCmd.AddCommand(testsListCmd, testsDeleteCmd, testsCreateCmd, testsUpdateCmd)
	assessmentsCmd.AddCommand(assessmentsListCmd)
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	"github.com/SAP-F-2025/assessment-console/internal/forms"
	"github.com/SAP-F-2025/assessment-console/internal/listing"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage the skill catalogue",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		var filters services.SkillFilters
		filters.Category, _ = cmd.Flags().GetString("category")
		filters.Difficulty, _ = cmd.Flags().GetString("difficulty")
		skills, err := a.services.Skills().List(cmd.Context(), filters)
		if err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		printSkills(a, listing.Filter(skills, search, models.Skill.SearchFields))
		return nil
	}),
}

var skillsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a skill",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		form := forms.NewSkillForm(a.validator, nil, forms.WithNotifier[models.SkillDraft](a.hub))
		return submitSkill(cmd, form, a.services.Skills().Create, a)
	}),
}

var skillsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a skill; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		existing, err := a.services.Skills().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		form := forms.NewSkillForm(a.validator, existing, forms.WithNotifier[models.SkillDraft](a.hub))
		return submitSkill(cmd, form, func(ctx context.Context, d models.SkillDraft) (*models.Skill, error) {
			return a.services.Skills().Update(ctx, existing.ID, d)
		}, a)
	}),
}

var skillsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a skill",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		page := listing.NewPage("skill", nil, models.Skill.SearchFields,
			listing.WithDeleter(a.services.Skills().Delete, func(s models.Skill) string { return s.ID }),
			listing.WithNotifier[models.Skill](a.hub),
			listing.WithEmitter[models.Skill](a.emitter),
			listing.WithLogger[models.Skill](utils.ToSlogLogger(a.logger)),
			listing.WithConfirmMessage[models.Skill]("Are you sure you want to delete this skill?"))
		defer page.Dispose()
		return deleteFromPage(cmd, a, page, args[0])
	}),
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage skill categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skill categories",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		categories, err := a.services.Skills().Categories(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%-36s  %-30s  %s\n", "ID", "Name", "Description")
		fmt.Fprintln(a.out, strings.Repeat(rule, 110))
		for _, c := range categories {
			fmt.Fprintf(a.out, "%-36s  %-30s  %s\n", c.ID, analytics.TruncateLabel(c.Name, 30), analytics.TruncateLabel(c.Description, 40))
		}
		return nil
	}),
}

var categoriesSkillsCmd = &cobra.Command{
	Use:   "skills <id>",
	Short: "List the skills in a category",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		skills, err := a.services.Skills().CategorySkills(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSkills(a, skills)
		return nil
	}),
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a skill category",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		form := forms.NewCategoryForm(a.validator, nil, forms.WithNotifier[models.SkillCategoryDraft](a.hub))
		return submitCategory(cmd, form, a.services.Skills().CreateCategory, a)
	}),
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename or describe a skill category",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		categories, err := a.services.Skills().Categories(cmd.Context())
		if err != nil {
			return err
		}
		var existing *models.SkillCategory
		for i := range categories {
			if categories[i].ID == args[0] {
				existing = &categories[i]
				break
			}
		}
		if existing == nil {
			return fmt.Errorf("%w: %s", services.ErrCategoryNotFound, args[0])
		}
		form := forms.NewCategoryForm(a.validator, existing, forms.WithNotifier[models.SkillCategoryDraft](a.hub))
		return submitCategory(cmd, form, func(ctx context.Context, d models.SkillCategoryDraft) (*models.SkillCategory, error) {
			return a.services.Skills().UpdateCategory(ctx, existing.ID, d)
		}, a)
	}),
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a skill category",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		page := listing.NewPage("skill category", nil, models.SkillCategory.SearchFields,
			listing.WithDeleter(a.services.Skills().DeleteCategory, func(c models.SkillCategory) string { return c.ID }),
			listing.WithNotifier[models.SkillCategory](a.hub),
			listing.WithEmitter[models.SkillCategory](a.emitter),
			listing.WithLogger[models.SkillCategory](utils.ToSlogLogger(a.logger)),
			listing.WithConfirmMessage[models.SkillCategory]("Are you sure you want to delete this category?"))
		defer page.Dispose()
		return deleteFromPage(cmd, a, page, args[0])
	}),
}

func submitSkill(cmd *cobra.Command, form *forms.SkillForm, save func(context.Context, models.SkillDraft) (*models.Skill, error), a *app) error {
	flags := cmd.Flags()
	_ = form.Update(func(d *models.SkillDraft) {
		if flags.Changed("name") {
			d.Name, _ = flags.GetString("name")
		}
		if flags.Changed("description") {
			d.Description, _ = flags.GetString("description")
		}
		if flags.Changed("category") {
			d.Category, _ = flags.GetString("category")
		}
		if flags.Changed("difficulty") {
			raw, _ := flags.GetString("difficulty")
			d.Difficulty = models.SkillDifficulty(strings.ToLower(strings.TrimSpace(raw)))
		}
		if flags.Changed("tags") {
			d.Tags, _ = flags.GetStringSlice("tags")
		}
	})

	var saved *models.Skill
	err := form.Submit(cmd.Context(), func(ctx context.Context, d models.SkillDraft) error {
		var err error
		saved, err = save(ctx, d)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\n", saved.ID, saved.Name)
	return nil
}

func submitCategory(cmd *cobra.Command, form *forms.CategoryForm, save func(context.Context, models.SkillCategoryDraft) (*models.SkillCategory, error), a *app) error {
	flags := cmd.Flags()
	_ = form.Update(func(d *models.SkillCategoryDraft) {
		if flags.Changed("name") {
			d.Name, _ = flags.GetString("name")
		}
		if flags.Changed("description") {
			d.Description, _ = flags.GetString("description")
		}
	})

	var saved *models.SkillCategory
	err := form.Submit(cmd.Context(), func(ctx context.Context, d models.SkillCategoryDraft) error {
		var err error
		saved, err = save(ctx, d)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\n", saved.ID, saved.Name)
	return nil
}

// deleteFromPage runs the confirm-then-delete flow of a list page against one id.
func deleteFromPage[T any](cmd *cobra.Command, a *app, page *listing.Page[T], id string) error {
	var confirm listing.Confirmer = listing.ConfirmFunc(promptYesNo)
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		confirm = listing.AlwaysConfirm
	}
	deleted, err := page.Delete(cmd.Context(), id, confirm)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(a.out, "Cancelled.")
	}
	return nil
}

func printSkills(a *app, skills []models.Skill) {
	fmt.Fprintf(a.out, "%-36s  %-30s  %-20s  %s\n", "ID", "Name", "Category", "Difficulty")
	fmt.Fprintln(a.out, strings.Repeat(rule, 100))
	for _, s := range skills {
		fmt.Fprintf(a.out, "%-36s  %-30s  %-20s  %s\n",
			s.ID, analytics.TruncateLabel(s.Name, 30), analytics.TruncateLabel(string(s.Category), 20), s.Difficulty)
	}
	fmt.Fprintf(a.out, "\n%d skills\n", len(skills))
}

func init() {
	skillsListCmd.Flags().String("search", "", "Case-insensitive text filter")
	skillsListCmd.Flags().String("category", "", "Only this category id")
	skillsListCmd.Flags().String("difficulty", "", "beginner, intermediate, advanced or expert")
	for _, c := range []*cobra.Command{skillsCreateCmd, skillsUpdateCmd} {
		c.Flags().String("name", "", "Name")
		c.Flags().String("description", "", "Description")
		c.Flags().String("category", "", "Category id")
		c.Flags().String("difficulty", "", "beginner, intermediate, advanced or expert")
		c.Flags().StringSlice("tags", nil, "Comma-separated tags")
	}
	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().String("name", "", "Name")
		c.Flags().String("description", "", "Description")
	}
	for _, c := range []*cobra.Command{skillsDeleteCmd, categoriesDeleteCmd} {
		c.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	}

	categoriesCmd.AddCommand(categoriesListCmd, categoriesSkillsCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)
	skillsCmd.AddCommand(skillsListCmd, skillsCreateCmd, skillsUpdateCmd, skillsDeleteCmd, categoriesCmd)
	rootCmd.AddCommand(skillsCmd)
}

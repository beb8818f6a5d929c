package forms

import (
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/validator"
)

type (
	TestForm       = Form[models.TestDraft]
	QuestionForm   = Form[models.QuestionDraft]
	AssessmentForm = Form[models.AssessmentDraft]
	LoginForm      = Form[models.LoginDraft]
	RegisterForm   = Form[models.RegisterDraft]
	SkillForm      = Form[models.SkillDraft]
	CategoryForm   = Form[models.SkillCategoryDraft]
)

// NewTestForm edits existing, or creates a new test when existing is nil.
func NewTestForm(v *validator.Validator, existing *models.Test, opts ...Option[models.TestDraft]) *TestForm {
	defaults := models.DefaultTestDraft
	msg := "Test created successfully"
	if existing != nil {
		draft := existing.Draft()
		defaults = func() models.TestDraft { return draft }
		msg = "Test updated successfully"
	}
	opts = append([]Option[models.TestDraft]{WithSuccessMessage[models.TestDraft](msg)}, opts...)
	return newForm("test", v, defaults, opts...)
}

// NewQuestionForm edits existing, or creates a question in testID.
func NewQuestionForm(v *validator.Validator, testID string, existing *models.Question, opts ...Option[models.QuestionDraft]) *QuestionForm {
	defaults := func() models.QuestionDraft { return models.DefaultQuestionDraft(testID) }
	msg := "Question created successfully"
	if existing != nil {
		draft := existing.Draft()
		if draft.TestID == "" {
			draft.TestID = testID
		}
		defaults = func() models.QuestionDraft { return cloneQuestion(draft) }
		msg = "Question updated successfully"
	}
	opts = append([]Option[models.QuestionDraft]{
		WithSuccessMessage[models.QuestionDraft](msg),
		withClone(cloneQuestion),
		withNormalize(models.QuestionDraft.Normalized),
	}, opts...)
	return newForm("question", v, defaults, opts...)
}

func NewAssessmentForm(v *validator.Validator, existing *models.Assessment, opts ...Option[models.AssessmentDraft]) *AssessmentForm {
	defaults := models.DefaultAssessmentDraft
	msg := "Assessment created successfully"
	if existing != nil {
		draft := existing.Draft()
		defaults = func() models.AssessmentDraft { return cloneAssessment(draft) }
		msg = "Assessment updated successfully"
	}
	opts = append([]Option[models.AssessmentDraft]{
		WithSuccessMessage[models.AssessmentDraft](msg),
		withClone(cloneAssessment),
	}, opts...)
	return newForm("assessment", v, defaults, opts...)
}

func NewSkillForm(v *validator.Validator, existing *models.Skill, opts ...Option[models.SkillDraft]) *SkillForm {
	defaults := func() models.SkillDraft { return models.SkillDraft{} }
	msg := "Skill created successfully"
	if existing != nil {
		draft := existing.Draft()
		defaults = func() models.SkillDraft { return cloneSkill(draft) }
		msg = "Skill updated successfully"
	}
	opts = append([]Option[models.SkillDraft]{
		WithSuccessMessage[models.SkillDraft](msg),
		withClone(cloneSkill),
	}, opts...)
	return newForm("skill", v, defaults, opts...)
}

func NewCategoryForm(v *validator.Validator, existing *models.SkillCategory, opts ...Option[models.SkillCategoryDraft]) *CategoryForm {
	defaults := func() models.SkillCategoryDraft { return models.SkillCategoryDraft{} }
	msg := "Category created successfully"
	if existing != nil {
		draft := existing.Draft()
		defaults = func() models.SkillCategoryDraft { return draft }
		msg = "Category updated successfully"
	}
	opts = append([]Option[models.SkillCategoryDraft]{WithSuccessMessage[models.SkillCategoryDraft](msg)}, opts...)
	return newForm("skill category", v, defaults, opts...)
}

func NewLoginForm(v *validator.Validator, opts ...Option[models.LoginDraft]) *LoginForm {
	return newForm("login", v, func() models.LoginDraft { return models.LoginDraft{} }, opts...)
}

func NewRegisterForm(v *validator.Validator, opts ...Option[models.RegisterDraft]) *RegisterForm {
	defaults := func() models.RegisterDraft { return models.RegisterDraft{Role: models.RoleCandidate} }
	opts = append([]Option[models.RegisterDraft]{
		WithSuccessMessage[models.RegisterDraft]("Registration successful"),
	}, opts...)
	return newForm("register", v, defaults, opts...)
}

func withClone[D any](fn func(D) D) Option[D] {
	return func(f *Form[D]) { f.clone = fn }
}

func withNormalize[D any](fn func(D) D) Option[D] {
	return func(f *Form[D]) { f.normalize = fn }
}

func cloneQuestion(d models.QuestionDraft) models.QuestionDraft {
	d.Answers = append([]models.Answer(nil), d.Answers...)
	d.TestCases = append([]models.TestCase(nil), d.TestCases...)
	return d
}

func cloneAssessment(d models.AssessmentDraft) models.AssessmentDraft {
	d.Tests = append([]models.AssessmentTestRef(nil), d.Tests...)
	d.Skills = append([]models.AssessmentSkillRef(nil), d.Skills...)
	return d
}

func cloneSkill(d models.SkillDraft) models.SkillDraft {
	d.Tags = append([]string(nil), d.Tags...)
	return d
}

package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/go-playground/validator/v10"
)

type (
	ValidationError  = apperrors.ValidationError
	ValidationErrors = apperrors.ValidationErrors
)

// Validator combines struct-tag validation with the per-type business rules
// that tags cannot express.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

func New() *Validator {
	structValidator := validator.New(validator.WithRequiredStructEnabled())

	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateBusiness runs the rules registered for the draft's type.
func (v *Validator) ValidateBusiness(s interface{}) ValidationErrors {
	switch d := s.(type) {
	case models.QuestionDraft:
		return v.questionValidator.ValidateDraft(d)
	case *models.QuestionDraft:
		return v.questionValidator.ValidateDraft(*d)
	}
	return nil
}

// Validate performs complete validation and reports every failure at once as
// ValidationErrors. A nil return means the draft may be submitted.
func (v *Validator) Validate(s interface{}) error {
	var errs ValidationErrors

	if err := v.ValidateStruct(s); err != nil {
		converted := apperrors.ToValidationErrors(err)
		if len(converted) == 0 {
			return err
		}
		errs = append(errs, converted...)
	}

	errs = append(errs, v.ValidateBusiness(s)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("not_blank", validateNotBlank)
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("skill_importance", validateSkillImportance)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).IsValid()
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	return models.DifficultyLevel(fl.Field().String()).IsValid()
}

func validateSkillImportance(fl validator.FieldLevel) bool {
	return models.SkillImportance(fl.Field().String()).IsValid()
}

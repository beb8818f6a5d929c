package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/models"
)

const minChoiceAnswers = 2

// QuestionValidator holds the answer rules that depend on the question type.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateDraft checks type-dependent rules only; tag rules run separately.
func (v *QuestionValidator) ValidateDraft(d models.QuestionDraft) ValidationErrors {
	switch d.Type {
	case models.QuestionMCQ:
		return v.validateChoices(d.Answers)
	case models.QuestionCoding:
		return v.validateTestCases(d.TestCases)
	}
	return nil
}

func (v *QuestionValidator) validateChoices(answers []models.Answer) ValidationErrors {
	var errs ValidationErrors

	if len(answers) < minChoiceAnswers {
		errs = append(errs, ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("must have at least %d options", minChoiceAnswers),
			Rule:    "min_answers",
			Value:   len(answers),
		})
	}

	hasCorrect := false
	for i, a := range answers {
		if strings.TrimSpace(a.Content) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("answers[%d].content", i),
				Message: "must not be empty",
				Rule:    "not_blank",
			})
		}
		if a.IsCorrect {
			hasCorrect = true
		}
	}

	if !hasCorrect {
		errs = append(errs, ValidationError{
			Field:   "answers",
			Message: "must mark at least one correct answer",
			Rule:    "correct_answer",
		})
	}

	return errs
}

func (v *QuestionValidator) validateTestCases(cases []models.TestCase) ValidationErrors {
	var errs ValidationErrors
	for i, tc := range cases {
		if strings.TrimSpace(tc.ExpectedOutput) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("test_cases[%d].expected_output", i),
				Message: "must not be empty",
				Rule:    "not_blank",
			})
		}
	}
	return errs
}

package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
)

var (
	ErrTestNotFound       = errors.New("test not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrResultNotFound     = errors.New("result not found")
	ErrCategoryNotFound   = errors.New("skill category not found")
	ErrCandidateNotFound  = errors.New("candidate not found")

	ErrNoQuestionIDs = errors.New("at least one question id is required")
	ErrEmptyFile     = errors.New("file is empty")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func IsNotFound(err error) bool {
	return apperrors.IsNotFound(err)
}

func IsValidation(err error) bool {
	return apperrors.IsValidation(err)
}

func IsRequestFailed(err error) bool {
	return apperrors.IsRequestFailed(err)
}

// notFound rewrites a transport 404 so it names the resource and still
// matches both the resource sentinel and apperrors.ErrNotFound.
func notFound(err error, sentinel error, resource, id string) error {
	if err == nil || !apperrors.IsNotFound(err) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, apperrors.NewNotFoundError(resource, id))
}

func requireID(field, id string) error {
	if id == "" {
		return ValidationErrors{*apperrors.NewValidationErrorWithRule(field, "is required", "required", id)}
	}
	return nil
}

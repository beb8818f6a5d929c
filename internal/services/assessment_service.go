package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/client"
	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/validator"
)

const assessmentsPath = "/assessments/assessments/"

func assessmentPath(id string) string {
	return assessmentsPath + url.PathEscape(id) + "/"
}

type assessmentService struct {
	api       *client.Client
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewAssessmentService(api *client.Client, logger *ServiceLogger, validator *validator.Validator) AssessmentService {
	return &assessmentService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

func (s *assessmentService) List(ctx context.Context, filters AssessmentFilters) (assessments []models.Assessment, err error) {
	defer s.logger.LogOperation(ctx, "list", "assessment", "", time.Now(), &err)

	if err = s.api.List(ctx, assessmentsPath, filters.values(), &assessments); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

func (s *assessmentService) Get(ctx context.Context, id string) (_ *models.Assessment, err error) {
	defer s.logger.LogOperation(ctx, "get", "assessment", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	var a models.Assessment
	if err = s.api.Get(ctx, assessmentPath(id), nil, &a); err != nil {
		return nil, notFound(err, ErrAssessmentNotFound, "assessment", id)
	}
	return &a, nil
}

func (s *assessmentService) Create(ctx context.Context, draft models.AssessmentDraft) (_ *models.Assessment, err error) {
	defer s.logger.LogOperation(ctx, "create", "assessment", "", time.Now(), &err)

	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var a models.Assessment
	if err = s.api.Post(ctx, assessmentsPath, draft, &a); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return &a, nil
}

func (s *assessmentService) Update(ctx context.Context, id string, draft models.AssessmentDraft) (_ *models.Assessment, err error) {
	defer s.logger.LogOperation(ctx, "update", "assessment", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var a models.Assessment
	if err = s.api.Put(ctx, assessmentPath(id), draft, &a); err != nil {
		return nil, notFound(err, ErrAssessmentNotFound, "assessment", id)
	}
	return &a, nil
}

func (s *assessmentService) Delete(ctx context.Context, id string) (err error) {
	defer s.logger.LogOperation(ctx, "delete", "assessment", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return err
	}
	if err = s.api.Delete(ctx, assessmentPath(id)); err != nil {
		return notFound(err, ErrAssessmentNotFound, "assessment", id)
	}
	return nil
}

func (s *assessmentService) Skills(ctx context.Context, id string) (skills []models.AssessmentSkill, err error) {
	defer s.logger.LogOperation(ctx, "list_skills", "assessment", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	if err = s.api.List(ctx, assessmentPath(id)+"skills/", nil, &skills); err != nil {
		return nil, notFound(err, ErrAssessmentNotFound, "assessment", id)
	}
	return skills, nil
}

// AddSkill tags the assessment; importance defaults to secondary.
func (s *assessmentService) AddSkill(ctx context.Context, id, skillID string, importance models.SkillImportance) (_ *models.AssessmentSkill, err error) {
	defer s.logger.LogOperation(ctx, "add_skill", "assessment", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	if err = requireID("skill_id", skillID); err != nil {
		return nil, err
	}
	if importance == "" {
		importance = models.ImportanceSecondary
	}
	if !importance.IsValid() {
		return nil, ValidationErrors{*apperrors.NewValidationErrorWithRule(
			"importance", "must be primary, secondary, or tertiary", "skill_importance", importance)}
	}

	body := models.AssessmentSkillRef{SkillID: skillID, Importance: importance}
	var out models.AssessmentSkill
	if err = s.api.Post(ctx, assessmentPath(id)+"add_skill/", body, &out); err != nil {
		return nil, notFound(err, ErrAssessmentNotFound, "assessment", id)
	}
	return &out, nil
}

func (s *assessmentService) RemoveSkill(ctx context.Context, id, skillID string) (err error) {
	defer s.logger.LogOperation(ctx, "remove_skill", "assessment", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return err
	}
	if err = requireID("skill_id", skillID); err != nil {
		return err
	}
	body := map[string]string{"skill_id": skillID}
	if err = s.api.DeleteJSON(ctx, assessmentPath(id)+"remove_skill/", body); err != nil {
		return notFound(err, ErrAssessmentNotFound, "assessment", id)
	}
	return nil
}

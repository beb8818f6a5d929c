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

const (
	usersPath                = "/users/"
	invitePath               = "/users/invite_candidates/"
	candidateAssessmentsPath = "/assessments/candidate-assessments/"
)

type candidateService struct {
	api       *client.Client
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewCandidateService(api *client.Client, logger *ServiceLogger, validator *validator.Validator) CandidateService {
	return &candidateService{api: api, logger: logger, validator: validator}
}

func (s *candidateService) List(ctx context.Context, filters CandidateFilters) (candidates []models.Candidate, err error) {
	defer s.logger.LogOperation(ctx, "list", "candidate", "", time.Now(), &err)

	if err = s.api.List(ctx, usersPath, filters.values(), &candidates); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (s *candidateService) Get(ctx context.Context, id string) (_ *models.Candidate, err error) {
	defer s.logger.LogOperation(ctx, "get", "candidate", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	var c models.Candidate
	if err = s.api.Get(ctx, usersPath+url.PathEscape(id)+"/", nil, &c); err != nil {
		return nil, notFound(err, ErrCandidateNotFound, "candidate", id)
	}
	return &c, nil
}

// Invite asks the platform to invite every candidate to one assessment.
// Per-candidate failures come back in the result, not as an error.
func (s *candidateService) Invite(ctx context.Context, draft models.InviteDraft) (_ *models.InviteResult, err error) {
	defer s.logger.LogOperation(ctx, "invite", "candidate", draft.AssessmentID, time.Now(), &err)

	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var result models.InviteResult
	if err = s.api.Post(ctx, invitePath, draft, &result); err != nil {
		return nil, fmt.Errorf("failed to invite candidates: %w", err)
	}
	return &result, nil
}

func (s *candidateService) Assessments(ctx context.Context, filters CandidateAssessmentFilters) (assignments []models.CandidateAssessment, err error) {
	defer s.logger.LogOperation(ctx, "list", "candidate_assessment", "", time.Now(), &err)

	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, ValidationErrors{*apperrors.NewValidationErrorWithRule("status",
			"must be one of not_started, in_progress, completed or expired", "oneof", filters.Status)}
	}
	if err = s.api.List(ctx, candidateAssessmentsPath, filters.values(), &assignments); err != nil {
		return nil, fmt.Errorf("failed to list candidate assessments: %w", err)
	}
	return assignments, nil
}

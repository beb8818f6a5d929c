package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	"github.com/SAP-F-2025/assessment-console/internal/client"
	"github.com/SAP-F-2025/assessment-console/internal/models"
)

func candidateResultPath(id string) string {
	return "/assessments/candidate-assessments/" + url.PathEscape(id) + "/results/"
}

func analyticsPath(assessmentID string) string {
	return "/analytics/assessments/" + url.PathEscape(assessmentID) + "/"
}

// resultService fetches the read-only projections; payloads are checked
// against their schema before decoding so a shape drift fails loudly.
type resultService struct {
	api    *client.Client
	logger *ServiceLogger
}

func NewResultService(api *client.Client, logger *ServiceLogger) ResultService {
	return &resultService{api: api, logger: logger}
}

func (s *resultService) CandidateResult(ctx context.Context, id string) (_ *models.CandidateResult, err error) {
	defer s.logger.LogOperation(ctx, "get", "result", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err = s.api.Get(ctx, candidateResultPath(id), nil, &raw); err != nil {
		return nil, notFound(err, ErrResultNotFound, "result", id)
	}

	var result models.CandidateResult
	if err = decodeChecked(analytics.KindResult, raw, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		result.ID = id
	}
	return &result, nil
}

func (s *resultService) Analytics(ctx context.Context, assessmentID string) (_ *models.AssessmentAnalytics, err error) {
	defer s.logger.LogOperation(ctx, "get", "analytics", assessmentID, time.Now(), &err)

	if err = requireID("assessment_id", assessmentID); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err = s.api.Get(ctx, analyticsPath(assessmentID), nil, &raw); err != nil {
		return nil, notFound(err, ErrAssessmentNotFound, "assessment", assessmentID)
	}

	var out models.AssessmentAnalytics
	if err = decodeChecked(analytics.KindAnalytics, raw, &out); err != nil {
		return nil, err
	}
	if out.AssessmentID == "" {
		out.AssessmentID = assessmentID
	}
	return &out, nil
}

func decodeChecked(kind analytics.PayloadKind, raw []byte, out interface{}) error {
	if err := analytics.ValidatePayload(kind, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/client"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/validator"
)

const testsPath = "/assessments/tests/"

func testPath(id string) string {
	return testsPath + url.PathEscape(id) + "/"
}

type testService struct {
	api       *client.Client
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewTestService(api *client.Client, logger *ServiceLogger, validator *validator.Validator) TestService {
	return &testService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

func (s *testService) List(ctx context.Context, filters TestFilters) (tests []models.Test, err error) {
	defer s.logger.LogOperation(ctx, "list", "test", "", time.Now(), &err)

	if err = s.api.List(ctx, testsPath, filters.values(), &tests); err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return tests, nil
}

func (s *testService) Get(ctx context.Context, id string) (_ *models.Test, err error) {
	defer s.logger.LogOperation(ctx, "get", "test", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	var test models.Test
	if err = s.api.Get(ctx, testPath(id), nil, &test); err != nil {
		return nil, notFound(err, ErrTestNotFound, "test", id)
	}
	return &test, nil
}

func (s *testService) Create(ctx context.Context, draft models.TestDraft) (_ *models.Test, err error) {
	defer s.logger.LogOperation(ctx, "create", "test", "", time.Now(), &err)

	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var test models.Test
	if err = s.api.Post(ctx, testsPath, draft, &test); err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}
	return &test, nil
}

func (s *testService) Update(ctx context.Context, id string, draft models.TestDraft) (_ *models.Test, err error) {
	defer s.logger.LogOperation(ctx, "update", "test", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var test models.Test
	if err = s.api.Put(ctx, testPath(id), draft, &test); err != nil {
		return nil, notFound(err, ErrTestNotFound, "test", id)
	}
	return &test, nil
}

// Delete removes the test; the server cascades to its questions.
func (s *testService) Delete(ctx context.Context, id string) (err error) {
	defer s.logger.LogOperation(ctx, "delete", "test", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return err
	}
	if err = s.api.Delete(ctx, testPath(id)); err != nil {
		return notFound(err, ErrTestNotFound, "test", id)
	}
	return nil
}

func (s *testService) Questions(ctx context.Context, testID string) (questions []models.Question, err error) {
	defer s.logger.LogOperation(ctx, "list_questions", "test", testID, time.Now(), &err)

	if err = requireID("test_id", testID); err != nil {
		return nil, err
	}
	if err = s.api.List(ctx, testPath(testID)+"questions/", nil, &questions); err != nil {
		return nil, notFound(err, ErrTestNotFound, "test", testID)
	}
	return questions, nil
}

func (s *testService) ReorderQuestions(ctx context.Context, testID string, questionIDs []string) (err error) {
	defer s.logger.LogOperation(ctx, "reorder_questions", "test", testID, time.Now(), &err)

	if err = requireID("test_id", testID); err != nil {
		return err
	}
	if len(questionIDs) == 0 {
		return ErrNoQuestionIDs
	}
	body := map[string][]string{"question_ids": questionIDs}
	if err = s.api.Post(ctx, testPath(testID)+"reorder_questions/", body, nil); err != nil {
		return notFound(err, ErrTestNotFound, "test", testID)
	}
	return nil
}

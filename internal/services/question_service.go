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

const questionsPath = "/assessments/questions/"

func questionPath(id string) string {
	return questionsPath + url.PathEscape(id) + "/"
}

type questionService struct {
	api       *client.Client
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewQuestionService(api *client.Client, logger *ServiceLogger, validator *validator.Validator) QuestionService {
	return &questionService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

func (s *questionService) List(ctx context.Context, filters QuestionFilters) (questions []models.Question, err error) {
	defer s.logger.LogOperation(ctx, "list", "question", "", time.Now(), &err)

	if err = s.api.List(ctx, questionsPath, filters.values(), &questions); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) Get(ctx context.Context, id string) (_ *models.Question, err error) {
	defer s.logger.LogOperation(ctx, "get", "question", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	var q models.Question
	if err = s.api.Get(ctx, questionPath(id), nil, &q); err != nil {
		return nil, notFound(err, ErrQuestionNotFound, "question", id)
	}
	return &q, nil
}

// Create sends only the parts of the draft that apply to its type.
func (s *questionService) Create(ctx context.Context, draft models.QuestionDraft) (_ *models.Question, err error) {
	defer s.logger.LogOperation(ctx, "create", "question", "", time.Now(), &err)

	draft = draft.Normalized()
	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var q models.Question
	if err = s.api.Post(ctx, questionsPath, draft, &q); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return &q, nil
}

func (s *questionService) Update(ctx context.Context, id string, draft models.QuestionDraft) (_ *models.Question, err error) {
	defer s.logger.LogOperation(ctx, "update", "question", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	draft = draft.Normalized()
	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var q models.Question
	if err = s.api.Put(ctx, questionPath(id), draft, &q); err != nil {
		return nil, notFound(err, ErrQuestionNotFound, "question", id)
	}
	return &q, nil
}

func (s *questionService) Delete(ctx context.Context, id string) (err error) {
	defer s.logger.LogOperation(ctx, "delete", "question", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return err
	}
	if err = s.api.Delete(ctx, questionPath(id)); err != nil {
		return notFound(err, ErrQuestionNotFound, "question", id)
	}
	return nil
}

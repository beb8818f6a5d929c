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

const (
	skillsPath          = "/skills/"
	skillCategoriesPath = "/skills/categories/"
)

func skillPath(id string) string {
	return skillsPath + url.PathEscape(id) + "/"
}

func skillCategoryPath(id string) string {
	return skillCategoriesPath + url.PathEscape(id) + "/"
}

type skillService struct {
	api       *client.Client
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewSkillService(api *client.Client, logger *ServiceLogger, validator *validator.Validator) SkillService {
	return &skillService{api: api, logger: logger, validator: validator}
}

func (s *skillService) List(ctx context.Context, filters SkillFilters) (skills []models.Skill, err error) {
	defer s.logger.LogOperation(ctx, "list", "skill", "", time.Now(), &err)

	if err = s.api.List(ctx, skillsPath, filters.values(), &skills); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

func (s *skillService) Get(ctx context.Context, id string) (_ *models.Skill, err error) {
	defer s.logger.LogOperation(ctx, "get", "skill", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	var skill models.Skill
	if err = s.api.Get(ctx, skillPath(id), nil, &skill); err != nil {
		return nil, notFound(err, ErrSkillNotFound, "skill", id)
	}
	return &skill, nil
}

func (s *skillService) Create(ctx context.Context, draft models.SkillDraft) (_ *models.Skill, err error) {
	defer s.logger.LogOperation(ctx, "create", "skill", "", time.Now(), &err)

	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var skill models.Skill
	if err = s.api.Post(ctx, skillsPath, draft, &skill); err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return &skill, nil
}

// Update sends a partial update; the platform keeps fields the draft leaves empty.
func (s *skillService) Update(ctx context.Context, id string, draft models.SkillDraft) (_ *models.Skill, err error) {
	defer s.logger.LogOperation(ctx, "update", "skill", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var skill models.Skill
	if err = s.api.Patch(ctx, skillPath(id), draft, &skill); err != nil {
		return nil, notFound(err, ErrSkillNotFound, "skill", id)
	}
	return &skill, nil
}

func (s *skillService) Delete(ctx context.Context, id string) (err error) {
	defer s.logger.LogOperation(ctx, "delete", "skill", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return err
	}
	if err = s.api.Delete(ctx, skillPath(id)); err != nil {
		return notFound(err, ErrSkillNotFound, "skill", id)
	}
	return nil
}

func (s *skillService) Categories(ctx context.Context) (categories []models.SkillCategory, err error) {
	defer s.logger.LogOperation(ctx, "list", "skill_category", "", time.Now(), &err)

	if err = s.api.List(ctx, skillCategoriesPath, nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to list skill categories: %w", err)
	}
	return categories, nil
}

func (s *skillService) CreateCategory(ctx context.Context, draft models.SkillCategoryDraft) (_ *models.SkillCategory, err error) {
	defer s.logger.LogOperation(ctx, "create", "skill_category", "", time.Now(), &err)

	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var category models.SkillCategory
	if err = s.api.Post(ctx, skillCategoriesPath, draft, &category); err != nil {
		return nil, fmt.Errorf("failed to create skill category: %w", err)
	}
	return &category, nil
}

func (s *skillService) UpdateCategory(ctx context.Context, id string, draft models.SkillCategoryDraft) (_ *models.SkillCategory, err error) {
	defer s.logger.LogOperation(ctx, "update", "skill_category", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	if err = s.validator.Validate(draft); err != nil {
		return nil, err
	}
	var category models.SkillCategory
	if err = s.api.Patch(ctx, skillCategoryPath(id), draft, &category); err != nil {
		return nil, notFound(err, ErrCategoryNotFound, "skill category", id)
	}
	return &category, nil
}

func (s *skillService) DeleteCategory(ctx context.Context, id string) (err error) {
	defer s.logger.LogOperation(ctx, "delete", "skill_category", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return err
	}
	if err = s.api.Delete(ctx, skillCategoryPath(id)); err != nil {
		return notFound(err, ErrCategoryNotFound, "skill category", id)
	}
	return nil
}

// CategorySkills lists the skills filed under one category.
func (s *skillService) CategorySkills(ctx context.Context, id string) (skills []models.Skill, err error) {
	defer s.logger.LogOperation(ctx, "list_skills", "skill_category", id, time.Now(), &err)

	if err = requireID("id", id); err != nil {
		return nil, err
	}
	if err = s.api.List(ctx, skillCategoryPath(id)+"skills/", nil, &skills); err != nil {
		return nil, notFound(err, ErrCategoryNotFound, "skill category", id)
	}
	return skills, nil
}

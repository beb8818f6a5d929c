package models

import "time"

type SkillImportance string

const (
	ImportancePrimary   SkillImportance = "primary"
	ImportanceSecondary SkillImportance = "secondary"
	ImportanceTertiary  SkillImportance = "tertiary"
)

func (i SkillImportance) IsValid() bool {
	switch i {
	case ImportancePrimary, ImportanceSecondary, ImportanceTertiary:
		return true
	}
	return false
}

type AssessmentTest struct {
	ID          string  `json:"id,omitempty"`
	TestID      string  `json:"test"`
	TestDetails *Test   `json:"test_details,omitempty"`
	Weight      float64 `json:"weight"`
	Order       int     `json:"order"`
}

type AssessmentSkill struct {
	ID           string          `json:"id,omitempty"`
	SkillID      string          `json:"skill"`
	SkillDetails *Skill          `json:"skill_details,omitempty"`
	Importance   SkillImportance `json:"importance"`
}

// Assessment bundles ordered tests with weighted skill associations and its
// own passing threshold (percent).
type Assessment struct {
	ID           string            `json:"id,omitempty"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	PassingScore int               `json:"passing_score"`
	TimeLimit    int               `json:"time_limit"`
	Tests        []AssessmentTest  `json:"assessment_tests,omitempty"`
	Skills       []AssessmentSkill `json:"assessment_skills,omitempty"`
	IsActive     bool              `json:"is_active"`
	CreatedAt    *time.Time        `json:"created_at,omitempty"`
}

type AssessmentTestRef struct {
	TestID string  `json:"test_id" validate:"required"`
	Weight float64 `json:"weight" validate:"gte=0"`
	Order  int     `json:"order" validate:"min=0"`
}

type AssessmentSkillRef struct {
	SkillID    string          `json:"skill_id" validate:"required"`
	Importance SkillImportance `json:"importance" validate:"required,skill_importance"`
}

type AssessmentDraft struct {
	Title        string               `json:"title" validate:"not_blank,max=200"`
	Description  string               `json:"description" validate:"max=5000"`
	PassingScore int                  `json:"passing_score" validate:"min=0,max=100"`
	TimeLimit    int                  `json:"time_limit" validate:"min=0"`
	Tests        []AssessmentTestRef  `json:"test_data,omitempty" validate:"omitempty,dive"`
	Skills       []AssessmentSkillRef `json:"skill_data,omitempty" validate:"omitempty,unique=SkillID,dive"`
	IsActive     bool                 `json:"is_active"`
}

func (a Assessment) Draft() AssessmentDraft {
	draft := AssessmentDraft{
		Title:        a.Title,
		Description:  a.Description,
		PassingScore: a.PassingScore,
		TimeLimit:    a.TimeLimit,
		IsActive:     a.IsActive,
	}
	for _, t := range a.Tests {
		draft.Tests = append(draft.Tests, AssessmentTestRef{TestID: t.TestID, Weight: t.Weight, Order: t.Order})
	}
	for _, s := range a.Skills {
		draft.Skills = append(draft.Skills, AssessmentSkillRef{SkillID: s.SkillID, Importance: s.Importance})
	}
	return draft
}

func DefaultAssessmentDraft() AssessmentDraft {
	return AssessmentDraft{
		PassingScore: 70,
		TimeLimit:    60,
		IsActive:     true,
	}
}

// HasSkill reports whether the assessment is tagged with the skill.
func (a Assessment) HasSkill(skillID string) bool {
	for _, s := range a.Skills {
		if s.SkillID == skillID {
			return true
		}
	}
	return false
}

func (a Assessment) SearchFields() []string {
	return []string{a.Title, a.Description}
}

package models

// Skill is a flat reference entity used for filtering and tagging.
type Skill struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    CategoryRef `json:"category"`
	Difficulty  string      `json:"difficulty,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

type SkillCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s Skill) SearchFields() []string {
	return []string{s.Name, s.Description, string(s.Category)}
}

type SkillDifficulty string

const (
	SkillBeginner     SkillDifficulty = "beginner"
	SkillIntermediate SkillDifficulty = "intermediate"
	SkillAdvanced     SkillDifficulty = "advanced"
	SkillExpert       SkillDifficulty = "expert"
)

// SkillDraft is what create and update send. Category is the category id.
type SkillDraft struct {
	Name        string          `json:"name" validate:"not_blank,max=100"`
	Description string          `json:"description" validate:"max=2000"`
	Category    string          `json:"category" validate:"required"`
	Difficulty  SkillDifficulty `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Tags        []string        `json:"tags" validate:"omitempty,dive,not_blank"`
}

func (s Skill) Draft() SkillDraft {
	return SkillDraft{
		Name:        s.Name,
		Description: s.Description,
		Category:    string(s.Category),
		Difficulty:  SkillDifficulty(s.Difficulty),
		Tags:        append([]string(nil), s.Tags...),
	}
}

type SkillCategoryDraft struct {
	Name        string `json:"name" validate:"not_blank,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

func (c SkillCategory) Draft() SkillCategoryDraft {
	return SkillCategoryDraft{Name: c.Name, Description: c.Description}
}

func (c SkillCategory) SearchFields() []string {
	return []string{c.Name, c.Description}
}

package models

import "time"

// Test is a named, ordered collection of questions sharing a time limit.
// TimeLimit is in minutes; 0 means unlimited.
type Test struct {
	ID            string          `json:"id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Instructions  string          `json:"instructions"`
	Category      string          `json:"category"`
	Difficulty    DifficultyLevel `json:"difficulty"`
	TimeLimit     int             `json:"time_limit"`
	IsActive      bool            `json:"is_active"`
	QuestionCount int             `json:"question_count,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
}

// TestDraft is the writable part of a Test.
type TestDraft struct {
	Title        string          `json:"title" validate:"not_blank,max=200"`
	Description  string          `json:"description" validate:"max=5000"`
	Instructions string          `json:"instructions"`
	Category     string          `json:"category" validate:"max=100"`
	Difficulty   DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	TimeLimit    int             `json:"time_limit" validate:"min=0"`
	IsActive     bool            `json:"is_active"`
}

func (t Test) Draft() TestDraft {
	return TestDraft{
		Title:        t.Title,
		Description:  t.Description,
		Instructions: t.Instructions,
		Category:     t.Category,
		Difficulty:   t.Difficulty,
		TimeLimit:    t.TimeLimit,
		IsActive:     t.IsActive,
	}
}

func DefaultTestDraft() TestDraft {
	return TestDraft{
		Difficulty: DifficultyMedium,
		TimeLimit:  60,
		IsActive:   true,
	}
}

func (t Test) SearchFields() []string {
	return []string{t.Title, t.Description}
}

package models

import "time"

type QuestionType string

const (
	QuestionMCQ        QuestionType = "mcq"
	QuestionCoding     QuestionType = "coding"
	QuestionEssay      QuestionType = "essay"
	QuestionFileUpload QuestionType = "file_upload"
)

func (q QuestionType) IsValid() bool {
	switch q {
	case QuestionMCQ, QuestionCoding, QuestionEssay, QuestionFileUpload:
		return true
	}
	return false
}

// FreeResponse reports whether the type carries no answer options.
func (q QuestionType) FreeResponse() bool {
	return q != QuestionMCQ
}

type Answer struct {
	ID          string `json:"id,omitempty"`
	Content     string `json:"content"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation,omitempty"`
}

type TestCase struct {
	ID             string `json:"id,omitempty"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

type Question struct {
	ID          string          `json:"id,omitempty"`
	TestID      string          `json:"test"`
	Content     string          `json:"content"`
	Type        QuestionType    `json:"question_type"`
	Difficulty  DifficultyLevel `json:"difficulty"`
	Points      int             `json:"points"`
	Order       int             `json:"order,omitempty"`
	Answers     []Answer        `json:"answers,omitempty"`
	TestCases   []TestCase      `json:"test_cases,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

// QuestionDraft is the writable part of a Question. Answer rules that depend
// on the question type live in the question validator.
type QuestionDraft struct {
	TestID      string          `json:"test" validate:"required"`
	Content     string          `json:"content" validate:"not_blank"`
	Type        QuestionType    `json:"question_type" validate:"required,question_type"`
	Difficulty  DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	Points      int             `json:"points" validate:"gt=0"`
	Order       int             `json:"order,omitempty" validate:"min=0"`
	Answers     []Answer        `json:"answers,omitempty"`
	TestCases   []TestCase      `json:"test_cases,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
}

func (q Question) Draft() QuestionDraft {
	return QuestionDraft{
		TestID:      q.TestID,
		Content:     q.Content,
		Type:        q.Type,
		Difficulty:  q.Difficulty,
		Points:      q.Points,
		Order:       q.Order,
		Answers:     append([]Answer(nil), q.Answers...),
		TestCases:   append([]TestCase(nil), q.TestCases...),
		Explanation: q.Explanation,
	}
}

// Normalized drops the parts of the draft that do not apply to its type:
// answer options outside mcq and test cases outside coding.
func (d QuestionDraft) Normalized() QuestionDraft {
	if d.Type != QuestionMCQ {
		d.Answers = nil
	}
	if d.Type != QuestionCoding {
		d.TestCases = nil
	}
	return d
}

func DefaultQuestionDraft(testID string) QuestionDraft {
	return QuestionDraft{
		TestID:     testID,
		Type:       QuestionMCQ,
		Difficulty: DifficultyMedium,
		Points:     1,
		Answers:    []Answer{{}, {}},
	}
}

func (q Question) SearchFields() []string {
	return []string{q.Content, q.Explanation}
}

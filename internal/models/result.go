package models

import "time"

type ResultStatus string

const (
	ResultPassed ResultStatus = "passed"
	ResultFailed ResultStatus = "failed"
)

type TestCaseResult struct {
	TestCaseID     string `json:"test_case_id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	Output         string `json:"output,omitempty"`
	Passed         bool   `json:"passed"`
}

type CodeExecution struct {
	Status      string           `json:"status"`
	Error       string           `json:"error,omitempty"`
	TestResults []TestCaseResult `json:"test_results"`
}

// PassedCount returns how many test cases passed.
func (c CodeExecution) PassedCount() int {
	n := 0
	for _, r := range c.TestResults {
		if r.Passed {
			n++
		}
	}
	return n
}

type QuestionResult struct {
	ID            string         `json:"id"`
	Content       string         `json:"content"`
	Type          QuestionType   `json:"question_type"`
	Points        float64        `json:"points"`
	EarnedPoints  float64        `json:"earned_points"`
	TimeSpent     int            `json:"time_spent"` // seconds
	Feedback      string         `json:"feedback,omitempty"`
	CodeExecution *CodeExecution `json:"code_execution,omitempty"`
}

type SkillScore struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Score    float64 `json:"score"` // 0-100
}

// CandidateResult is the read-only projection of one candidate's assessment outcome.
type CandidateResult struct {
	ID              string           `json:"id"`
	AssessmentID    string           `json:"assessment_id"`
	AssessmentTitle string           `json:"assessment_title"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	TimeSpent       int              `json:"time_spent"` // minutes
	TotalScore      float64          `json:"total_score"`
	PassingScore    float64          `json:"passing_score"`
	Status          ResultStatus     `json:"status"`
	QuestionResults []QuestionResult `json:"question_results"`
	SkillScores     []SkillScore     `json:"skill_scores"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Feedback        string           `json:"feedback,omitempty"`
}

// Passed trusts the server status and falls back to the passing threshold.
func (r CandidateResult) Passed() bool {
	if r.Status != "" {
		return r.Status == ResultPassed
	}
	return r.TotalScore >= r.PassingScore
}

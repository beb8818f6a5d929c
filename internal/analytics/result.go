package analytics

import (
	"fmt"

	"github.com/SAP-F-2025/assessment-console/internal/format"
	"github.com/SAP-F-2025/assessment-console/internal/models"
)

type ResultQuestion struct {
	Content        string `json:"content"`
	Type           string `json:"type"`
	Points         string `json:"points"` // earned/possible
	Time           string `json:"time"`
	Feedback       string `json:"feedback,omitempty"`
	TestsPassed    int    `json:"tests_passed"`
	TestsTotal     int    `json:"tests_total"`
	ExecutionError string `json:"execution_error,omitempty"`
}

type ResultSummary struct {
	Title      string           `json:"title"`
	Passed     bool             `json:"passed"`
	Status     string           `json:"status"`
	Cards      []Card           `json:"cards"`
	Questions  []ResultQuestion `json:"questions"`
	Skills     []Point          `json:"skills"`
	Strengths  []string         `json:"strengths"`
	Weaknesses []string         `json:"weaknesses"`
	Feedback   string           `json:"feedback,omitempty"`
}

func SummarizeResult(r models.CandidateResult) ResultSummary {
	passed := r.Passed()
	status := "Failed"
	if passed {
		status = "Passed"
	}

	completed := format.NotAvailable
	if r.CompletedAt != nil {
		completed = format.Time(*r.CompletedAt)
	}

	s := ResultSummary{
		Title:  r.AssessmentTitle,
		Passed: passed,
		Status: status,
		Cards: []Card{
			{Label: "Score", Value: format.Score(r.TotalScore, 1)},
			{Label: "Passing Score", Value: format.Score(r.PassingScore, 0)},
			{Label: "Status", Value: status},
			{Label: "Time Spent", Value: format.Duration(r.TimeSpent)},
			{Label: "Completed", Value: completed},
		},
		Strengths:  r.Strengths,
		Weaknesses: r.Weaknesses,
		Feedback:   r.Feedback,
	}

	for _, q := range r.QuestionResults {
		row := ResultQuestion{
			Content:  q.Content,
			Type:     string(q.Type),
			Points:   fmt.Sprintf("%g/%g", q.EarnedPoints, q.Points),
			Time:     format.Seconds(q.TimeSpent),
			Feedback: q.Feedback,
		}
		if q.CodeExecution != nil {
			row.TestsPassed = q.CodeExecution.PassedCount()
			row.TestsTotal = len(q.CodeExecution.TestResults)
			row.ExecutionError = q.CodeExecution.Error
		}
		s.Questions = append(s.Questions, row)
	}

	for _, sk := range r.SkillScores {
		s.Skills = append(s.Skills, Point{Label: sk.Name, Value: sk.Score})
	}

	return s
}

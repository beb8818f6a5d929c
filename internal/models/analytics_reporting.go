package models

type QuestionAnalytics struct {
	QuestionID   string  `json:"question_id"`
	Content      string  `json:"content"`
	AverageScore float64 `json:"average_score"`
	SuccessRate  float64 `json:"success_rate"` // 0.0 - 1.0
	AverageTime  float64 `json:"average_time"` // seconds
}

// AssessmentAnalytics is pre-aggregated by the server.
type AssessmentAnalytics struct {
	AssessmentID          string              `json:"assessment_id,omitempty"`
	AssessmentTitle       string              `json:"assessment_title,omitempty"`
	TotalCandidates       int                 `json:"total_candidates"`
	CompletionRate        float64             `json:"completion_rate"` // 0.0 - 1.0
	PassRate              float64             `json:"pass_rate"`       // 0.0 - 1.0
	AverageScore          float64             `json:"average_score"`
	AverageCompletionTime float64             `json:"average_completion_time"` // minutes
	ScoreDistribution     map[string]int      `json:"score_distribution"`
	QuestionAnalytics     []QuestionAnalytics `json:"question_analytics"`
	SkillBreakdown        map[string]float64  `json:"skill_breakdown"`
}

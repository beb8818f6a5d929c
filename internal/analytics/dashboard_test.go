package analytics

import (
	"bytes"
	"testing"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleAnalytics() models.AssessmentAnalytics {
	return models.AssessmentAnalytics{
		AssessmentTitle:       "Backend Engineer",
		TotalCandidates:       40,
		CompletionRate:        0.9,
		PassRate:              0.725,
		AverageScore:          68.24,
		AverageCompletionTime: 42.4,
		ScoreDistribution: map[string]int{
			"80-100": 6,
			"0-20":   2,
			"40-60":  12,
			"20-40":  5,
			"60-80":  15,
		},
		QuestionAnalytics: []models.QuestionAnalytics{
			{QuestionID: "q1", Content: "What is a goroutine and how is it scheduled?", AverageScore: 3.456, SuccessRate: 0.8, AverageTime: 45},
			{QuestionID: "q2", Content: "Define a map", AverageScore: 1, SuccessRate: 0.333, AverageTime: 12.6},
		},
		SkillBreakdown: map[string]float64{
			"SQL":         55,
			"Concurrency": 71.5,
			"Go":          80,
		},
	}
}

func TestBuildDashboardCards(t *testing.T) {
	d := BuildDashboard(sampleAnalytics())

	assert.Equal(t, []Card{
		{Label: "Total Candidates", Value: "40"},
		{Label: "Pass Rate", Value: "72.5%"},
		{Label: "Average Score", Value: "68.2"},
		{Label: "Avg. Completion Time", Value: "42 min"},
	}, d.Cards)
}

func TestBuildDashboardPassFail(t *testing.T) {
	d := BuildDashboard(sampleAnalytics())

	require.Len(t, d.PassFail.Points, 2)
	assert.Equal(t, "Passed", d.PassFail.Points[0].Label)
	assert.InDelta(t, 29, d.PassFail.Points[0].Value, 1e-9)
	assert.Equal(t, "Failed", d.PassFail.Points[1].Label)
	assert.InDelta(t, 11, d.PassFail.Points[1].Value, 1e-9)
}

func TestBuildDashboardScoreDistributionSorted(t *testing.T) {
	d := BuildDashboard(sampleAnalytics())

	var labels []string
	for _, p := range d.ScoreDistribution.Points {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"0-20", "20-40", "40-60", "60-80", "80-100"}, labels)
	assert.Equal(t, float64(2), d.ScoreDistribution.Points[0].Value)
}

func TestBuildDashboardQuestions(t *testing.T) {
	d := BuildDashboard(sampleAnalytics())

	require.Len(t, d.QuestionScores.Points, 2)
	assert.Equal(t, "What is a goroutine ...", d.QuestionScores.Points[0].Label)
	assert.Equal(t, "Define a map", d.QuestionScores.Points[1].Label)
	assert.InDelta(t, 80, d.QuestionSuccessRate.Points[0].Value, 1e-9)

	require.Len(t, d.Questions, 2)
	assert.Equal(t, "3.5", d.Questions[0].AverageScore)
	assert.Equal(t, "33.3%", d.Questions[1].SuccessRate)
	assert.Equal(t, "13 sec", d.Questions[1].AverageTime)
	assert.Equal(t, "What is a goroutine and how is it scheduled?", d.Questions[0].Content)
}

func TestBuildDashboardSkillsSortedByName(t *testing.T) {
	d := BuildDashboard(sampleAnalytics())

	assert.Equal(t, []Point{
		{Label: "Concurrency", Value: 71.5},
		{Label: "Go", Value: 80},
		{Label: "SQL", Value: 55},
	}, d.SkillBreakdown.Points)
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(models.AssessmentAnalytics{})

	assert.Empty(t, d.ScoreDistribution.Points)
	assert.Empty(t, d.QuestionScores.Points)
	assert.Empty(t, d.SkillBreakdown.Points)
	assert.Equal(t, float64(0), d.PassFail.Points[0].Value)
	assert.Equal(t, "0", d.Cards[0].Value)
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", TruncateLabel("short", 20))
	assert.Equal(t, "exactly twenty chars", TruncateLabel("exactly twenty chars", 20))
	assert.Equal(t, "héllo...", TruncateLabel("héllo wörld", 5))
}

func TestSortedBucketsNonNumericLast(t *testing.T) {
	got := sortedBuckets(map[string]int{"unscored": 1, "50-100": 2, "0-50": 3})
	assert.Equal(t, []string{"0-50", "50-100", "unscored"}, got)
}

func sampleResult() models.CandidateResult {
	completed := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	return models.CandidateResult{
		AssessmentID:    "a1",
		AssessmentTitle: "Backend Engineer",
		CompletedAt:     &completed,
		TimeSpent:       65,
		TotalScore:      72.5,
		PassingScore:    70,
		Status:          models.ResultPassed,
		QuestionResults: []models.QuestionResult{
			{ID: "q1", Content: "Pick one", Type: models.QuestionMCQ, Points: 2, EarnedPoints: 2, TimeSpent: 75},
			{
				ID: "q2", Content: "Reverse a string", Type: models.QuestionCoding, Points: 5, EarnedPoints: 2.5, TimeSpent: 420,
				CodeExecution: &models.CodeExecution{
					Status: "completed",
					TestResults: []models.TestCaseResult{
						{TestCaseID: "t1", Passed: true},
						{TestCaseID: "t2", Passed: false},
					},
				},
			},
		},
		SkillScores: []models.SkillScore{{Name: "Go", Category: "Programming", Score: 80}},
		Strengths:   []string{"Clear code"},
		Weaknesses:  []string{"Edge cases"},
	}
}

func TestSummarizeResult(t *testing.T) {
	s := SummarizeResult(sampleResult())

	assert.True(t, s.Passed)
	assert.Equal(t, "Passed", s.Status)
	assert.Equal(t, []Card{
		{Label: "Score", Value: "72.5%"},
		{Label: "Passing Score", Value: "70%"},
		{Label: "Status", Value: "Passed"},
		{Label: "Time Spent", Value: "1 hour 5 minutes"},
		{Label: "Completed", Value: "Mar 10, 2025"},
	}, s.Cards)

	require.Len(t, s.Questions, 2)
	assert.Equal(t, "2/2", s.Questions[0].Points)
	assert.Equal(t, "1m 15s", s.Questions[0].Time)
	assert.Zero(t, s.Questions[0].TestsTotal)
	assert.Equal(t, "2.5/5", s.Questions[1].Points)
	assert.Equal(t, "7m 0s", s.Questions[1].Time)
	assert.Equal(t, 1, s.Questions[1].TestsPassed)
	assert.Equal(t, 2, s.Questions[1].TestsTotal)

	assert.Equal(t, []Point{{Label: "Go", Value: 80}}, s.Skills)
}

func TestSummarizeResultFailedWithoutCompletion(t *testing.T) {
	r := sampleResult()
	r.Status = models.ResultFailed
	r.CompletedAt = nil

	s := SummarizeResult(r)
	assert.False(t, s.Passed)
	assert.Equal(t, "Failed", s.Status)
	assert.Equal(t, "N/A", s.Cards[4].Value)
}

func TestExportResultXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportResultXLSX(sampleResult(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Questions", "Skills"}, f.GetSheetList())

	rows, err := f.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Question", rows[0][0])
	assert.Equal(t, "Reverse a string", rows[2][0])
	assert.Equal(t, "7m 0s", rows[2][4])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assessment", "Backend Engineer"}, summary[0])
}

func TestExportAnalyticsXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportAnalyticsXLSX(sampleAnalytics(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Score Distribution", "Questions", "Skills"}, f.GetSheetList())

	dist, err := f.GetRows("Score Distribution")
	require.NoError(t, err)
	require.Len(t, dist, 6)
	assert.Equal(t, "0-20", dist[1][0])
	assert.Equal(t, "80-100", dist[5][0])

	skills, err := f.GetRows("Skills")
	require.NoError(t, err)
	assert.Equal(t, "Concurrency", skills[1][0])
}

// Package analytics turns server-aggregated analytics and candidate results
// into chart series and summary cards. It only does arithmetic on numbers the
// server already computed.
package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/format"
	"github.com/SAP-F-2025/assessment-console/internal/models"
)

const questionLabelLimit = 20

type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// QuestionRow is one line of the per-question performance table.
type QuestionRow struct {
	QuestionID   string `json:"question_id"`
	Content      string `json:"content"`
	AverageScore string `json:"average_score"`
	SuccessRate  string `json:"success_rate"`
	AverageTime  string `json:"average_time"`
}

type Dashboard struct {
	Cards               []Card        `json:"cards"`
	ScoreDistribution   Series        `json:"score_distribution"`
	PassFail            Series        `json:"pass_fail"`
	QuestionScores      Series        `json:"question_scores"`
	QuestionSuccessRate Series        `json:"question_success_rate"`
	SkillBreakdown      Series        `json:"skill_breakdown"`
	Questions           []QuestionRow `json:"questions"`
}

func BuildDashboard(a models.AssessmentAnalytics) Dashboard {
	total := float64(a.TotalCandidates)

	d := Dashboard{
		Cards: []Card{
			{Label: "Total Candidates", Value: strconv.Itoa(a.TotalCandidates)},
			{Label: "Pass Rate", Value: format.Percent(a.PassRate, 1)},
			{Label: "Average Score", Value: fmt.Sprintf("%.1f", a.AverageScore)},
			{Label: "Avg. Completion Time", Value: fmt.Sprintf("%.0f min", a.AverageCompletionTime)},
		},
		ScoreDistribution: Series{Name: "Number of Candidates"},
		PassFail: Series{
			Name: "Pass/Fail Ratio",
			Points: []Point{
				{Label: "Passed", Value: total * a.PassRate},
				{Label: "Failed", Value: total * (1 - a.PassRate)},
			},
		},
		QuestionScores:      Series{Name: "Average Score"},
		QuestionSuccessRate: Series{Name: "Success Rate"},
		SkillBreakdown:      Series{Name: "Average Score"},
	}

	for _, bucket := range sortedBuckets(a.ScoreDistribution) {
		d.ScoreDistribution.Points = append(d.ScoreDistribution.Points, Point{
			Label: bucket,
			Value: float64(a.ScoreDistribution[bucket]),
		})
	}

	for _, q := range a.QuestionAnalytics {
		label := TruncateLabel(q.Content, questionLabelLimit)
		d.QuestionScores.Points = append(d.QuestionScores.Points, Point{Label: label, Value: q.AverageScore})
		d.QuestionSuccessRate.Points = append(d.QuestionSuccessRate.Points, Point{Label: label, Value: q.SuccessRate * 100})
		d.Questions = append(d.Questions, QuestionRow{
			QuestionID:   q.QuestionID,
			Content:      TruncateLabel(q.Content, 50),
			AverageScore: fmt.Sprintf("%.1f", q.AverageScore),
			SuccessRate:  format.Percent(q.SuccessRate, 1),
			AverageTime:  fmt.Sprintf("%.0f sec", q.AverageTime),
		})
	}

	skills := make([]string, 0, len(a.SkillBreakdown))
	for name := range a.SkillBreakdown {
		skills = append(skills, name)
	}
	sort.Strings(skills)
	for _, name := range skills {
		d.SkillBreakdown.Points = append(d.SkillBreakdown.Points, Point{Label: name, Value: a.SkillBreakdown[name]})
	}

	return d
}

// TruncateLabel cuts s to limit runes and marks the cut with "...".
func TruncateLabel(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// sortedBuckets orders "0-20", "20-40", ... by their lower bound; labels
// without a numeric prefix sort after, alphabetically.
func sortedBuckets(dist map[string]int) []string {
	buckets := make([]string, 0, len(dist))
	for b := range dist {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		li, iok := lowerBound(buckets[i])
		lj, jok := lowerBound(buckets[j])
		switch {
		case iok && jok && li != lj:
			return li < lj
		case iok != jok:
			return iok
		}
		return buckets[i] < buckets[j]
	})
	return buckets
}

func lowerBound(bucket string) (float64, bool) {
	head := strings.TrimSpace(bucket)
	if i := strings.IndexAny(head, "-–"); i > 0 {
		head = head[:i]
	}
	head = strings.TrimSuffix(strings.TrimSpace(head), "%")
	v, err := strconv.ParseFloat(head, 64)
	return v, err == nil
}

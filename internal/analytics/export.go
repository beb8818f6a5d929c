package analytics

import (
	"fmt"
	"io"

	"github.com/SAP-F-2025/assessment-console/internal/format"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/xuri/excelize/v2"
)

// sheet writes rows starting at A1 of a named sheet.
func sheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}

func finish(f *excelize.File, first string, w io.Writer) error {
	if idx, err := f.GetSheetIndex(first); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// ExportResultXLSX writes a candidate result report with Summary, Questions
// and Skills sheets.
func ExportResultXLSX(r models.CandidateResult, w io.Writer) error {
	summary := SummarizeResult(r)

	f := excelize.NewFile()
	defer f.Close()

	summaryRows := [][]interface{}{{"Assessment", r.AssessmentTitle}}
	for _, c := range summary.Cards {
		summaryRows = append(summaryRows, []interface{}{c.Label, c.Value})
	}
	for _, s := range r.Strengths {
		summaryRows = append(summaryRows, []interface{}{"Strength", s})
	}
	for _, s := range r.Weaknesses {
		summaryRows = append(summaryRows, []interface{}{"Weakness", s})
	}
	if r.Feedback != "" {
		summaryRows = append(summaryRows, []interface{}{"Feedback", r.Feedback})
	}

	questionRows := [][]interface{}{{"Question", "Type", "Earned", "Possible", "Time", "Tests Passed", "Tests Total", "Feedback"}}
	for i, q := range r.QuestionResults {
		row := summary.Questions[i]
		questionRows = append(questionRows, []interface{}{
			q.Content, string(q.Type), q.EarnedPoints, q.Points, row.Time, row.TestsPassed, row.TestsTotal, q.Feedback,
		})
	}

	skillRows := [][]interface{}{{"Skill", "Category", "Score"}}
	for _, s := range r.SkillScores {
		skillRows = append(skillRows, []interface{}{s.Name, s.Category, s.Score})
	}

	for _, sh := range []struct {
		name string
		rows [][]interface{}
	}{{"Summary", summaryRows}, {"Questions", questionRows}, {"Skills", skillRows}} {
		if err := sheet(f, sh.name, sh.rows); err != nil {
			return err
		}
	}
	return finish(f, "Summary", w)
}

// ExportAnalyticsXLSX writes an assessment analytics report.
func ExportAnalyticsXLSX(a models.AssessmentAnalytics, w io.Writer) error {
	d := BuildDashboard(a)

	f := excelize.NewFile()
	defer f.Close()

	summaryRows := [][]interface{}{}
	if a.AssessmentTitle != "" {
		summaryRows = append(summaryRows, []interface{}{"Assessment", a.AssessmentTitle})
	}
	for _, c := range d.Cards {
		summaryRows = append(summaryRows, []interface{}{c.Label, c.Value})
	}
	summaryRows = append(summaryRows, []interface{}{"Completion Rate", format.Percent(a.CompletionRate, 1)})

	distRows := [][]interface{}{{"Score Range", "Candidates"}}
	for _, p := range d.ScoreDistribution.Points {
		distRows = append(distRows, []interface{}{p.Label, p.Value})
	}

	questionRows := [][]interface{}{{"Question ID", "Question", "Average Score", "Success Rate (%)", "Average Time (sec)"}}
	for _, q := range a.QuestionAnalytics {
		questionRows = append(questionRows, []interface{}{q.QuestionID, q.Content, q.AverageScore, q.SuccessRate * 100, q.AverageTime})
	}

	skillRows := [][]interface{}{{"Skill", "Average Score"}}
	for _, p := range d.SkillBreakdown.Points {
		skillRows = append(skillRows, []interface{}{p.Label, p.Value})
	}

	for _, sh := range []struct {
		name string
		rows [][]interface{}
	}{{"Summary", summaryRows}, {"Score Distribution", distRows}, {"Questions", questionRows}, {"Skills", skillRows}} {
		if err := sheet(f, sh.name, sh.rows); err != nil {
			return err
		}
	}
	return finish(f, "Summary", w)
}

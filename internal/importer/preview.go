package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/xuri/excelize/v2"
)

// PreviewRow is one parsed data row. Row is the 1-based line in the file.
type PreviewRow struct {
	Row            int                    `json:"row"`
	Type           models.QuestionType    `json:"question_type"`
	Content        string                 `json:"content"`
	Difficulty     models.DifficultyLevel `json:"difficulty"`
	Points         int                    `json:"points"`
	Answers        []string               `json:"answers,omitempty"`
	CorrectAnswers []int                  `json:"correct_answers,omitempty"`
	Explanation    string                 `json:"explanation,omitempty"`
}

// PreviewReport is advisory; the server decides what gets imported.
type PreviewReport struct {
	Rows   []PreviewRow            `json:"rows"`
	Issues []models.ImportRowError `json:"issues,omitempty"`
}

// Valid reports whether no row had an issue.
func (p *PreviewReport) Valid() bool {
	return len(p.Issues) == 0
}

func (p *PreviewReport) ByType() map[models.QuestionType]int {
	counts := make(map[models.QuestionType]int)
	for _, r := range p.Rows {
		counts[r.Type]++
	}
	return counts
}

// Preview parses a question CSV locally.
func Preview(r io.Reader) (*PreviewReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return previewRecords(records)
}

// PreviewXLSX parses the first sheet of a spreadsheet in the same format.
func PreviewXLSX(r io.Reader) (*PreviewReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("file", "workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return previewRecords(rows)
}

func previewRecords(records [][]string) (*PreviewReport, error) {
	if len(records) < 2 {
		return nil, apperrors.NewValidationError("file", "CSV must have header row and at least one data row", len(records))
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{"question_type", "content"} {
		if _, exists := headerMap[col]; !exists {
			return nil, apperrors.NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	report := &PreviewReport{}
	for rowIndex, record := range records[1:] {
		if blank(record) {
			continue
		}
		row, issues := parseRow(record, headerMap, rowIndex+2)
		report.Rows = append(report.Rows, row)
		report.Issues = append(report.Issues, issues...)
	}
	return report, nil
}

func parseRow(record []string, headerMap map[string]int, rowNum int) (PreviewRow, []models.ImportRowError) {
	var issues []models.ImportRowError
	getColumn := func(name string) string {
		if index, exists := headerMap[name]; exists && index < len(record) {
			return strings.TrimSpace(record[index])
		}
		return ""
	}
	issue := func(column, message, value string) {
		issues = append(issues, models.ImportRowError{Row: rowNum, Column: column, Message: message, Value: value})
	}

	row := PreviewRow{
		Row:         rowNum,
		Type:        models.QuestionType(strings.ToLower(getColumn("question_type"))),
		Content:     getColumn("content"),
		Difficulty:  models.DifficultyMedium,
		Points:      1,
		Explanation: getColumn("explanation"),
	}

	if !row.Type.IsValid() {
		issue("question_type", "must be one of mcq, coding, essay, file_upload", string(row.Type))
	}
	if row.Content == "" {
		issue("content", "required field", "")
	}

	if raw := getColumn("difficulty"); raw != "" {
		if d, ok := models.ParseDifficulty(raw); ok {
			row.Difficulty = d
		} else {
			issue("difficulty", "must be easy, medium, or hard", raw)
		}
	}

	if raw := getColumn("points"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 {
			issue("points", "must be a positive integer", raw)
		} else {
			row.Points = p
		}
	}

	row.Answers = splitList(getColumn("answers"))
	correctRaw := getColumn("correct_answers")

	if row.Type == models.QuestionMCQ {
		if len(row.Answers) < 2 {
			issue("answers", "mcq questions need at least 2 answers", getColumn("answers"))
		}
		if correctRaw == "" {
			issue("correct_answers", "mcq questions need at least one correct answer", "")
		}
		for _, part := range splitList(correctRaw) {
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(row.Answers) {
				issue("correct_answers", fmt.Sprintf("index %s is out of range", part), correctRaw)
				continue
			}
			row.CorrectAnswers = append(row.CorrectAnswers, idx)
		}
	}

	return row, issues
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

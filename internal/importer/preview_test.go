package importer

import (
	"strings"
	"testing"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuesByColumn(report *PreviewReport) map[string][]int {
	out := make(map[string][]int)
	for _, i := range report.Issues {
		out[i.Column] = append(out[i.Column], i.Row)
	}
	return out
}

func TestPreview_ReportsRowIssues(t *testing.T) {
	csv := strings.Join([]string{
		"question_type,content,difficulty,points,answers,correct_answers,explanation",
		`mcq,"Pick the even numbers",easy,2,"1,2,3,4","1,3",`,
		`quiz,"Unknown type",easy,1,,,`,
		`essay,,medium,1,,,`,
		`coding,"Negative",hard,-3,,,`,
		`mcq,"Out of range",easy,1,"a,b",5,`,
		`mcq,"One option",insane,1,"a",0,`,
		``,
	}, "\n")

	report, err := Preview(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, report.Rows, 6)
	assert.False(t, report.Valid())

	assert.Equal(t, []int{1, 3}, report.Rows[0].CorrectAnswers)
	assert.Equal(t, map[string][]int{
		"question_type":   {3},
		"content":         {4},
		"points":          {5},
		"correct_answers": {6},
		"difficulty":      {7},
		"answers":         {7},
	}, issuesByColumn(report))
}

func TestPreview_DefaultsAndCase(t *testing.T) {
	csv := "Question_Type,Content\nESSAY,Describe Go\n"

	report, err := Preview(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, models.QuestionEssay, row.Type)
	assert.Equal(t, models.DifficultyMedium, row.Difficulty)
	assert.Equal(t, 1, row.Points)
	assert.True(t, report.Valid())
}

func TestPreview_RejectsBadFiles(t *testing.T) {
	_, err := Preview(strings.NewReader("question_type,content\n"))
	assert.True(t, apperrors.IsValidation(err))

	_, err = Preview(strings.NewReader("type,text\nmcq,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column: question_type")

	_, err = Preview(strings.NewReader("question_type,content\n\"unterminated\n"))
	assert.Error(t, err)
}

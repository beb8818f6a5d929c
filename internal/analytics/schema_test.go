package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayloadAnalytics(t *testing.T) {
	ok := `{"total_candidates": 3, "pass_rate": 0.5, "average_score": 61.2,
		"score_distribution": {"0-50": 1, "50-100": 2},
		"question_analytics": [{"question_id": "q1", "content": "x", "success_rate": 0.4}],
		"skill_breakdown": {"Go": 70}}`
	assert.NoError(t, ValidatePayload(KindAnalytics, []byte(ok)))

	tests := []struct {
		name string
		raw  string
	}{
		{"missing pass rate", `{"total_candidates": 3, "average_score": 1}`},
		{"rate out of range", `{"total_candidates": 3, "pass_rate": 72.5, "average_score": 1}`},
		{"negative bucket", `{"total_candidates": 3, "pass_rate": 0.1, "average_score": 1, "score_distribution": {"0-50": -1}}`},
		{"question without id", `{"total_candidates": 3, "pass_rate": 0.1, "average_score": 1, "question_analytics": [{"content": "x"}]}`},
		{"not an object", `[1, 2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(KindAnalytics, []byte(tt.raw))
			require.Error(t, err)

			var pe *PayloadError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, KindAnalytics, pe.Kind)
		})
	}
}

func TestValidatePayloadResult(t *testing.T) {
	ok := `{"total_score": 72.5, "passing_score": 70, "status": "passed",
		"question_results": [{"id": "q1", "question_type": "coding", "points": 5, "earned_points": 2.5,
			"code_execution": {"status": "completed", "test_results": []}}],
		"skill_scores": [{"name": "Go", "score": 80}]}`
	assert.NoError(t, ValidatePayload(KindResult, []byte(ok)))

	assert.Error(t, ValidatePayload(KindResult, []byte(`{"total_score": 1, "passing_score": 2, "status": "pending"}`)))
	assert.Error(t, ValidatePayload(KindResult, []byte(`{"total_score": 1, "passing_score": 2, "status": "passed", "skill_scores": [{"name": "Go", "score": 140}]}`)))
}

func TestValidatePayloadInvalidJSON(t *testing.T) {
	err := ValidatePayload(KindResult, []byte(`{"total_score":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestValidatePayloadUnknownKind(t *testing.T) {
	err := ValidatePayload(PayloadKind("invoice"), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema")
}

package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("API_TOKEN", "tok")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestQuestionsSample(t *testing.T) {
	out, err := run(t, "questions", "sample", "--format", "csv", "-o", "")
	require.NoError(t, err)
	assert.Contains(t, out, "question_type,content,difficulty,points,answers,correct_answers,explanation")

	path := filepath.Join(t.TempDir(), "sample.xlsx")
	_, err = run(t, "questions", "sample", "--format", "xlsx", "-o", path)
	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Questions"}, f.GetSheetList())

	_, err = run(t, "questions", "sample", "--format", "pdf")
	assert.ErrorContains(t, err, "invalid format")
}

func TestQuestionsImportDryRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte(
		"question_type,content,difficulty,points,answers,correct_answers,explanation\n"+
			"mcq,What is 2+2?,easy,1,\"3,4\",1,\n"+
			"essay,Describe GC,hard,5,,,\n"), 0o600))

	out, err := run(t, "questions", "import", good, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows")

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte(
		"question_type,content\nquiz,What?\n"), 0o600))
	out, err = run(t, "questions", "import", bad, "--dry-run")
	assert.ErrorContains(t, err, "1 problems found")
	assert.Contains(t, out, "question_type")

	// reset for later tests sharing the command tree
	require.NoError(t, questionsImportCmd.Flags().Set("dry-run", "false"))
}

func TestTestsList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assessments/tests/", r.URL.Path)
		assert.Equal(t, "Token tok", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":"t1","title":"Go Basics","category":"backend","difficulty":"easy","question_count":3},
			{"id":"t2","title":"SQL","category":"data","difficulty":"hard"}]`))
	}))
	defer srv.Close()

	out, err := run(t, "tests", "list", "--api-url", srv.URL+"/api", "--search", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Basics")
	assert.NotContains(t, out, "SQL")
	assert.Contains(t, out, "1 tests")
}

func TestCandidatesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("is_candidate"))
		w.Write([]byte(`[{"id":"c1","first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","assessments_taken":2,"average_score":81.5},
			{"id":"c2","name":"Alan Turing","email":"alan@example.com"}]`))
	}))
	defer srv.Close()

	out, err := run(t, "candidates", "list", "--api-url", srv.URL+"/api", "--search", "lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "81.5")
	assert.NotContains(t, out, "Alan Turing")
	assert.Contains(t, out, "1 candidates")
}

func TestCandidatesInvite(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/invite_candidates/", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success_count":1,"failed_count":1,"failed":[{"email":"bob@example.com","name":"bob","reason":"already invited"}]}`))
	}))
	defer srv.Close()

	out, err := run(t, "candidates", "invite", "--api-url", srv.URL+"/api", "--assessment", "a1",
		"Ada Lovelace <ada@example.com>", "bob@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "1 invited, 1 failed")
	assert.Contains(t, out, "bob <bob@example.com>: already invited")
	assert.Equal(t, "a1", got["assessment_id"])
	assert.Len(t, got["candidates"], 2)

	_, err = run(t, "candidates", "invite", "--api-url", srv.URL+"/api", "--assessment", "a1", "not an address")
	assert.ErrorContains(t, err, "invalid candidate")
}

func TestSkillsCreate(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/skills/", r.URL.Path)
		w.Write([]byte(`{"id":"s1","name":"Go","category":"backend","difficulty":"advanced"}`))
	}))
	defer srv.Close()

	_, err := run(t, "skills", "create", "--api-url", srv.URL+"/api", "--name", "Go", "--difficulty", "guru")
	assert.Error(t, err)
	assert.Zero(t, calls, "invalid drafts never reach the platform")

	out, err := run(t, "skills", "create", "--api-url", srv.URL+"/api",
		"--name", "Go", "--category", "backend", "--difficulty", "Advanced")
	require.NoError(t, err)
	assert.Contains(t, out, "s1\tGo")
	assert.Equal(t, 1, calls)
}

func TestSkillsDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/skills/categories/k1/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := run(t, "skills", "categories", "delete", "k1", "--api-url", srv.URL+"/api", "--yes")
	require.NoError(t, err)
}

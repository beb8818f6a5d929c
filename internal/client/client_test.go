package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", WithTokenSource(StaticToken("secret")))
}

func TestClient_Headers(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assessments/tests/1/", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		assert.Len(t, r.Header.Get("X-Request-ID"), 36)
		w.Write([]byte(`{"id":"1","title":"Go"}`))
	})

	var got item
	require.NoError(t, c.Get(context.Background(), "/assessments/tests/1/", nil, &got))
	assert.Equal(t, item{ID: "1", Title: "Go"}, got)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).Delete(context.Background(), "/x/"))
}

func TestClient_TokenSourceError(t *testing.T) {
	c := New("http://127.0.0.1:0", WithTokenSource(failingTokens{}))
	err := c.Get(context.Background(), "/x/", nil, nil)
	assert.ErrorContains(t, err, "session token")
}

type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) { return "", errors.New("no session") }

func TestClient_ListEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []item
	}{
		{"bare array", `[{"id":"1","title":"A"},{"id":"2","title":"B"}]`, []item{{"1", "A"}, {"2", "B"}}},
		{"results envelope", `{"count":2,"next":null,"results":[{"id":"1","title":"A"},{"id":"2","title":"B"}]}`, []item{{"1", "A"}, {"2", "B"}}},
		{"object without results", `{"count":0}`, []item{}},
		{"null results", `{"results":null}`, []item{}},
		{"empty array", `[]`, []item{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			var got []item
			require.NoError(t, c.List(context.Background(), "/assessments/tests/", nil, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_ListRejectsScalars(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"nope"`))
	})

	var got []item
	assert.Error(t, c.List(context.Background(), "/x/", nil, &got))
}

func TestClient_ListQuery(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s1", r.URL.Query().Get("skill_id"))
		w.Write([]byte(`[]`))
	})

	var got []item
	require.NoError(t, c.List(context.Background(), "/assessments/tests/", map[string][]string{"skill_id": {"s1"}}, &got))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error field", 400, `{"error":"Test ID is required"}`, "Test ID is required"},
		{"detail field", 403, `{"detail":"Authentication credentials were not provided."}`, "Authentication credentials were not provided."},
		{"message field", 500, `{"message":"boom"}`, "boom"},
		{"field errors", 400, `{"title":["This field may not be blank."],"non_field_errors":["Bad input."]}`, "Bad input.; title: This field may not be blank."},
		{"html body", 502, `<html>bad gateway</html>`, "Bad Gateway"},
		{"empty body", 500, ``, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := c.Get(context.Background(), "/x/", nil, nil)
			var rf *apperrors.RequestFailedError
			require.ErrorAs(t, err, &rf)
			assert.Equal(t, tt.status, rf.StatusCode)
			assert.Equal(t, tt.message, rf.Message)
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	})

	err := c.Get(context.Background(), "/assessments/tests/9/", nil, nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_NoRetry(t *testing.T) {
	calls := 0
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	assert.Error(t, c.Post(context.Background(), "/x/", map[string]string{"a": "b"}, nil))
	assert.Equal(t, 1, calls)
}

func TestClient_PostJSON(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Go", body["title"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"7","title":"Go"}`))
	})

	var got item
	require.NoError(t, c.Post(context.Background(), "/assessments/tests/", map[string]string{"title": "Go"}, &got))
	assert.Equal(t, "7", got.ID)
}

func TestClient_Upload(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "test-1", r.FormValue("test_id"))

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "questions.csv", header.Filename)

		data, _ := io.ReadAll(f)
		assert.Equal(t, "question_type,content\n", string(data))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"created":1}`))
	})

	var out struct {
		Created int `json:"created"`
	}
	err := c.Upload(context.Background(), "/assessments/questions/import_csv/",
		map[string]string{"test_id": "test-1"}, "file", "questions.csv",
		strings.NewReader("question_type,content\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Created)
}

func TestClient_Download(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("a,b\n1,2\n"))
	})

	var buf bytes.Buffer
	require.NoError(t, c.Download(context.Background(), "/export/", nil, &buf))
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestClient_WithTokens(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token other", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.WithTokens(StaticToken("other")).Delete(context.Background(), "/x/"))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).Delete(context.Background(), "/assessments/tests/t1/")
	require.Error(t, err)
	assert.True(t, apperrors.IsRequestFailed(err))
	assert.Equal(t, apperrors.UnreachableMessage, apperrors.Message(err))

	var rf *apperrors.RequestFailedError
	require.True(t, errors.As(err, &rf))
	assert.Zero(t, rf.StatusCode)
	assert.ErrorContains(t, rf.Err, "/assessments/tests/t1/")
}

func TestClient_DeadlineStillMatches(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := New(srv.URL).Get(ctx, "/slow/", nil, nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, apperrors.IsRequestFailed(err))
}

func TestWithTimeout_CopiesHTTPClient(t *testing.T) {
	shared := &http.Client{}
	c := New("http://example.test", WithHTTPClient(shared), WithTimeout(5*time.Second))

	assert.Zero(t, shared.Timeout)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}

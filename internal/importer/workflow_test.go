package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	testID   string
	fileName string
	body     string
}

// fakeUploader records uploads; when gate is set each call blocks until it
// receives a value.
type fakeUploader struct {
	mu      sync.Mutex
	uploads []upload
	started chan struct{}
	gate    chan struct{}
	result  *models.ImportResult
	err     error
	ctxErrs []error
}

func (f *fakeUploader) ImportCSV(ctx context.Context, testID, fileName string, file io.Reader) (*models.ImportResult, error) {
	data, _ := io.ReadAll(file)
	f.mu.Lock()
	f.uploads = append(f.uploads, upload{testID: testID, fileName: fileName, body: string(data)})
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.mu.Unlock()
	return f.result, f.err
}

func (f *fakeUploader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func csvFile() File {
	return NewMemoryFile("questions.csv", "text/csv", []byte("question_type,content\nessay,Why?\n"))
}

func newTestWorkflow(u *fakeUploader, opts ...Option) (*Workflow, *events.Hub, *events.MockEventPublisher) {
	hub := events.NewHub(10)
	pub := events.NewMockEventPublisher(nil)
	opts = append([]Option{WithNotifier(hub), WithEmitter(events.NewEmitter(pub, nil))}, opts...)
	return NewWorkflow(u, opts...), hub, pub
}

func TestAcceptsCSV(t *testing.T) {
	tests := []struct {
		name, contentType string
		want              bool
	}{
		{"q.csv", "text/csv", true},
		{"q.txt", "text/csv; charset=utf-8", true},
		{"Q.CSV", "", true},
		{"q.csv", "application/vnd.ms-excel", true},
		{"q.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", false},
		{"q.txt", "text/plain", false},
		{"csv", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AcceptsCSV(tt.name, tt.contentType), "%s %s", tt.name, tt.contentType)
	}
}

func TestWorkflow_HappyPath(t *testing.T) {
	u := &fakeUploader{result: &models.ImportResult{Created: 1, QuestionIDs: []string{"q1"}}}
	var refreshed *models.ImportResult
	w, hub, pub := newTestWorkflow(u, WithOnSuccess(func(r *models.ImportResult) { refreshed = r }))
	ctx := context.Background()

	assert.Equal(t, Empty, w.State())
	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.NoError(t, w.SelectTarget("t1"))
	assert.Equal(t, FileSelected, w.State())
	assert.Equal(t, models.ImportBatch{FileName: "questions.csv", FileSize: 33, TestID: "t1", Status: models.ImportIdle}, w.Batch())

	res, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, Success, w.State())
	assert.Same(t, res, refreshed)
	assert.Same(t, res, w.Result())

	require.Equal(t, 1, u.count())
	assert.Equal(t, upload{testID: "t1", fileName: "questions.csv", body: "question_type,content\nessay,Why?\n"}, u.uploads[0])

	assert.Equal(t, models.ImportBatch{Status: models.ImportSuccess}, w.Batch())

	last, ok := hub.Last()
	require.True(t, ok)
	assert.Equal(t, models.NotificationSuccess, last.Level)
	assert.Equal(t, "Successfully imported 1 questions", last.Message)
	assert.Len(t, pub.EventsOfType(events.EventImportCompleted), 1)
}

func TestWorkflow_InvalidFileKeepsState(t *testing.T) {
	u := &fakeUploader{}
	w, hub, _ := newTestWorkflow(u)
	ctx := context.Background()

	err := w.SelectFile(ctx, NewMemoryFile("notes.txt", "text/plain", []byte("x")))
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidFileType(err))
	assert.Equal(t, Empty, w.State())

	last, ok := hub.Last()
	require.True(t, ok)
	assert.Equal(t, models.NotificationError, last.Level)

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.Error(t, w.SelectFile(ctx, NewMemoryFile("sheet.xlsx", "", []byte("x"))))
	assert.Equal(t, FileSelected, w.State())
	assert.Equal(t, "questions.csv", w.Batch().FileName)
}

func TestWorkflow_FileTooLarge(t *testing.T) {
	w, _, _ := newTestWorkflow(&fakeUploader{}, WithMaxFileSize(4))

	err := w.SelectFile(context.Background(), NewMemoryFile("big.csv", "text/csv", []byte("12345")))
	ve, ok := apperrors.AsValidationErrors(err)
	require.True(t, ok)
	_, onFile := ve.Field("file")
	assert.True(t, onFile)
	assert.Equal(t, Empty, w.State())
}

func TestWorkflow_DropTakesFirstFile(t *testing.T) {
	w, _, _ := newTestWorkflow(&fakeUploader{})
	ctx := context.Background()

	require.NoError(t, w.Drop(ctx, nil))
	assert.Equal(t, Empty, w.State())

	second := NewMemoryFile("b.csv", "text/csv", nil)
	require.NoError(t, w.Drop(ctx, []File{csvFile(), second}))
	assert.Equal(t, "questions.csv", w.Batch().FileName)

	err := w.Drop(ctx, []File{NewMemoryFile("a.pdf", "application/pdf", nil), second})
	assert.True(t, apperrors.IsInvalidFileType(err))
	assert.Equal(t, "questions.csv", w.Batch().FileName)
}

func TestWorkflow_SubmitRequiresFileAndTarget(t *testing.T) {
	u := &fakeUploader{}
	w, hub, _ := newTestWorkflow(u)
	ctx := context.Background()

	_, err := w.Submit(ctx)
	ve, ok := apperrors.AsValidationErrors(err)
	require.True(t, ok)
	assert.Len(t, ve, 2)

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	_, err = w.Submit(ctx)
	ve, ok = apperrors.AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, ve, 1)
	assert.Equal(t, "test_id", ve[0].Field)

	last, _ := hub.Last()
	assert.Equal(t, "Please select a test", last.Message)
	assert.Zero(t, u.count())
	assert.Equal(t, FileSelected, w.State())
}

func TestWorkflow_FailureRetainsDraft(t *testing.T) {
	u := &fakeUploader{err: apperrors.NewRequestFailedError(400, "Row 2: invalid question_type")}
	w, hub, pub := newTestWorkflow(u)
	ctx := context.Background()

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.NoError(t, w.SelectTarget("t1"))

	_, err := w.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, Error, w.State())
	assert.Equal(t, err, w.Err())
	assert.Equal(t, models.ImportBatch{FileName: "questions.csv", FileSize: 33, TestID: "t1", Status: models.ImportError}, w.Batch())

	last, _ := hub.Last()
	assert.Equal(t, models.NotificationError, last.Level)
	assert.Contains(t, last.Message, "Row 2: invalid question_type")
	assert.Len(t, pub.EventsOfType(events.EventImportFailed), 1)

	_, err = w.Submit(ctx)
	assert.ErrorIs(t, err, ErrNotAcknowledged)
	assert.Equal(t, 1, u.count())

	w.Acknowledge()
	assert.Equal(t, FileSelected, w.State())
	assert.Nil(t, w.Err())

	u.err = nil
	u.result = &models.ImportResult{Created: 3, Message: "Imported 3 questions"}
	res, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 2, u.count())

	last, _ = hub.Last()
	assert.Equal(t, "Imported 3 questions", last.Message)
}

func TestWorkflow_SingleUploadInFlight(t *testing.T) {
	u := &fakeUploader{started: make(chan struct{}), gate: make(chan struct{}), result: &models.ImportResult{}}
	w, _, _ := newTestWorkflow(u)
	ctx := context.Background()

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.NoError(t, w.SelectTarget("t1"))

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx)
		done <- err
	}()
	<-u.started

	assert.Equal(t, Uploading, w.State())
	_, err := w.Submit(ctx)
	assert.ErrorIs(t, err, ErrUploadInFlight)
	assert.ErrorIs(t, w.SelectFile(ctx, csvFile()), ErrUploadInFlight)
	assert.ErrorIs(t, w.SelectTarget("t2"), ErrUploadInFlight)
	assert.ErrorIs(t, w.RemoveFile(), ErrUploadInFlight)
	assert.Equal(t, models.ImportUploading, w.Batch().Status)

	close(u.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, u.count())
	assert.Equal(t, Success, w.State())
}

func TestWorkflow_ResetDiscardsInFlightResponse(t *testing.T) {
	u := &fakeUploader{started: make(chan struct{}), gate: make(chan struct{}), result: &models.ImportResult{Created: 5}}
	called := false
	w, hub, _ := newTestWorkflow(u, WithOnSuccess(func(*models.ImportResult) { called = true }))
	ctx := context.Background()

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.NoError(t, w.SelectTarget("t1"))

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx)
		done <- err
	}()
	<-u.started

	w.Reset()
	assert.Equal(t, Empty, w.State())
	close(u.gate)

	assert.ErrorIs(t, <-done, ErrDiscarded)
	assert.Equal(t, Empty, w.State())
	assert.Nil(t, w.Result())
	assert.False(t, called)
	_, ok := hub.Last()
	assert.False(t, ok)
}

func TestWorkflow_ResetKeepsSingleUploadInFlight(t *testing.T) {
	u := &fakeUploader{started: make(chan struct{}, 2), gate: make(chan struct{}, 2), result: &models.ImportResult{Created: 1}}
	w, _, _ := newTestWorkflow(u)
	ctx := context.Background()

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.NoError(t, w.SelectTarget("t1"))

	first := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx)
		first <- err
	}()
	<-u.started

	w.Reset()
	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.NoError(t, w.SelectTarget("t2"))
	assert.Equal(t, FileSelected, w.State())

	_, err := w.Submit(ctx)
	assert.ErrorIs(t, err, ErrUploadInFlight)
	assert.Equal(t, 1, u.count())

	u.gate <- struct{}{}
	assert.ErrorIs(t, <-first, ErrDiscarded)

	u.mu.Lock()
	require.Len(t, u.ctxErrs, 1)
	assert.ErrorIs(t, u.ctxErrs[0], context.Canceled)
	u.mu.Unlock()

	u.gate <- struct{}{}
	result, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 2, u.count())
	assert.Equal(t, "t2", u.uploads[1].testID)
}

func TestWorkflow_SelectNilFile(t *testing.T) {
	w, hub, _ := newTestWorkflow(&fakeUploader{})

	err := w.SelectFile(context.Background(), nil)
	require.Error(t, err)
	ve, ok := apperrors.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "file", ve[0].Field)
	assert.Equal(t, Empty, w.State())
	_, notified := hub.Last()
	assert.False(t, notified)
}

func TestWorkflow_RemoveFile(t *testing.T) {
	w, _, _ := newTestWorkflow(&fakeUploader{err: errors.New("boom")})
	ctx := context.Background()

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	require.NoError(t, w.SelectTarget("t1"))
	require.NoError(t, w.RemoveFile())
	assert.Equal(t, Empty, w.State())
	assert.Equal(t, "t1", w.Batch().TestID)

	require.NoError(t, w.SelectFile(ctx, csvFile()))
	_, err := w.Submit(ctx)
	require.Error(t, err)
	require.NoError(t, w.RemoveFile())
	assert.Equal(t, Empty, w.State())
	assert.Empty(t, w.Batch().FileName)
}

func TestWorkflow_FileOpenFailure(t *testing.T) {
	u := &fakeUploader{}
	w, _, _ := newTestWorkflow(u)
	ctx := context.Background()

	require.NoError(t, w.SelectFile(ctx, brokenFile{}))
	require.NoError(t, w.SelectTarget("t1"))
	_, err := w.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, Error, w.State())
	assert.Zero(t, u.count())
}

type brokenFile struct{}

func (brokenFile) Name() string                 { return "gone.csv" }
func (brokenFile) ContentType() string          { return "text/csv" }
func (brokenFile) Size() int64                  { return 1 }
func (brokenFile) Open() (io.ReadCloser, error) { return nil, errors.New("file vanished") }

func TestSampleCSVPreviewsCleanly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SampleCSV(&buf))

	report, err := Preview(&buf)
	require.NoError(t, err)
	assert.True(t, report.Valid(), "%v", report.Issues)
	require.Len(t, report.Rows, 4)
	assert.Equal(t, []string{"Paris", "London", "Berlin", "Madrid"}, report.Rows[0].Answers)
	assert.Equal(t, []int{0}, report.Rows[0].CorrectAnswers)
	assert.Equal(t, 10, report.Rows[3].Points)
	assert.Equal(t, map[models.QuestionType]int{models.QuestionMCQ: 2, models.QuestionEssay: 1, models.QuestionCoding: 1}, report.ByType())
}

func TestSampleXLSXPreviewsCleanly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SampleXLSX(&buf))

	report, err := PreviewXLSX(&buf)
	require.NoError(t, err)
	assert.True(t, report.Valid(), "%v", report.Issues)
	require.Len(t, report.Rows, 4)
	assert.Equal(t, models.DifficultyHard, report.Rows[3].Difficulty)
}

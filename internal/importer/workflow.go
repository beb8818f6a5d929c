// Package importer drives the bulk question import: pick a CSV file and a
// target test, upload once, and report the outcome.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/models"
)

// MaxFileSize is the largest file the workflow accepts.
const MaxFileSize int64 = 10 << 20

const notifySource = "import"

type State int

const (
	Empty State = iota
	FileSelected
	Uploading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case FileSelected:
		return "file_selected"
	case Uploading:
		return "uploading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status maps the state onto the batch status shown to users.
func (s State) Status() models.ImportStatus {
	switch s {
	case Uploading:
		return models.ImportUploading
	case Success:
		return models.ImportSuccess
	case Error:
		return models.ImportError
	}
	return models.ImportIdle
}

var (
	ErrUploadInFlight = errors.New("an upload is already in progress")
	// ErrNotAcknowledged rejects a retry before the last failure was acknowledged.
	ErrNotAcknowledged = errors.New("acknowledge the failed upload before retrying")
	// ErrDiscarded is returned to a Submit whose workflow was reset mid-upload.
	ErrDiscarded = errors.New("import was reset before the upload finished")
)

// Uploader is the one server call the workflow makes.
type Uploader interface {
	ImportCSV(ctx context.Context, testID, fileName string, file io.Reader) (*models.ImportResult, error)
}

type Option func(*Workflow)

func WithNotifier(n events.Notifier) Option {
	return func(w *Workflow) { w.notifier = n }
}

func WithEmitter(e *events.Emitter) Option {
	return func(w *Workflow) { w.emitter = e }
}

// WithOnSuccess registers the caller's refresh hook, run after a successful upload.
func WithOnSuccess(fn func(*models.ImportResult)) Option {
	return func(w *Workflow) { w.onSuccess = fn }
}

func WithMaxFileSize(n int64) Option {
	return func(w *Workflow) { w.maxSize = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Workflow) { w.logger = l }
}

// Workflow is safe for concurrent use. At most one upload is in flight.
type Workflow struct {
	uploader  Uploader
	notifier  events.Notifier
	emitter   *events.Emitter
	onSuccess func(*models.ImportResult)
	maxSize   int64
	logger    *slog.Logger

	mu         sync.Mutex
	state      State
	file       File
	testID     string
	lastErr    error
	result     *models.ImportResult
	generation uint64
	// inFlight outlives Reset: a discarded upload still blocks the next one
	// until its call returns.
	inFlight bool
	cancel   context.CancelFunc
}

func NewWorkflow(uploader Uploader, opts ...Option) *Workflow {
	w := &Workflow{
		uploader: uploader,
		maxSize:  MaxFileSize,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Batch is a snapshot of the current draft.
func (w *Workflow) Batch() models.ImportBatch {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := models.ImportBatch{TestID: w.testID, Status: w.state.Status()}
	if w.file != nil {
		b.FileName = w.file.Name()
		b.FileSize = w.file.Size()
	}
	return b
}

// Err is the failure behind the Error state, or nil.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Result is the reply of the last successful upload.
func (w *Workflow) Result() *models.ImportResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// SelectFile replaces the chosen file. A rejected file leaves the workflow as it was.
func (w *Workflow) SelectFile(ctx context.Context, f File) error {
	if f == nil {
		return apperrors.ValidationErrors{*apperrors.NewValidationErrorWithRule("file", "Please select a CSV file", "required", nil)}
	}

	w.mu.Lock()
	if w.state == Uploading {
		w.mu.Unlock()
		return ErrUploadInFlight
	}

	var err error
	switch {
	case !AcceptsCSV(f.Name(), f.ContentType()):
		err = apperrors.NewInvalidFileTypeError(f.Name(), f.ContentType())
	case f.Size() > w.maxSize:
		err = apperrors.ValidationErrors{*apperrors.NewValidationErrorWithRule(
			"file", fmt.Sprintf("must be at most %d MB", w.maxSize>>20), "max", f.Size())}
	}
	if err == nil {
		w.file = f
		w.state = FileSelected
		w.lastErr = nil
	}
	w.mu.Unlock()

	switch {
	case apperrors.IsInvalidFileType(err):
		w.notifyError(ctx, "Please select a valid CSV file")
	case err != nil:
		w.notifyError(ctx, fmt.Sprintf("CSV files up to %d MB are supported", w.maxSize>>20))
	}
	return err
}

// Drop takes the first dropped file and selects it.
func (w *Workflow) Drop(ctx context.Context, files []File) error {
	if len(files) == 0 {
		return nil
	}
	return w.SelectFile(ctx, files[0])
}

func (w *Workflow) SelectTarget(testID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == Uploading {
		return ErrUploadInFlight
	}
	w.testID = testID
	return nil
}

func (w *Workflow) RemoveFile() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case Uploading:
		return ErrUploadInFlight
	case FileSelected, Error:
		w.state = Empty
		w.lastErr = nil
	}
	w.file = nil
	return nil
}

// Acknowledge dismisses a failure and keeps the file and target for a retry.
func (w *Workflow) Acknowledge() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == Error {
		w.state = FileSelected
		w.lastErr = nil
	}
}

// Reset discards the draft and cancels a running upload. Its response is
// dropped, and Submit keeps returning ErrUploadInFlight until the call returns.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	w.generation++
	w.state = Empty
	w.file = nil
	w.testID = ""
	w.lastErr = nil
	w.result = nil
}

// Submit uploads the selected file to the selected test. It issues no
// request unless the workflow is in FileSelected with both set.
func (w *Workflow) Submit(ctx context.Context) (*models.ImportResult, error) {
	w.mu.Lock()
	if err := w.readyLocked(); err != nil {
		w.mu.Unlock()
		if !errors.Is(err, ErrUploadInFlight) {
			w.notifyError(ctx, userMessage(err))
		}
		return nil, err
	}
	w.generation++
	gen := w.generation
	w.state = Uploading
	file, testID := w.file, w.testID
	uploadCtx, cancel := context.WithCancel(ctx)
	w.inFlight = true
	w.cancel = cancel
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "uploading questions", "file", file.Name(), "test_id", testID, "size", file.Size())
	result, err := w.upload(uploadCtx, file, testID)
	cancel()

	w.mu.Lock()
	w.inFlight = false
	w.cancel = nil
	if gen != w.generation {
		w.mu.Unlock()
		w.logger.InfoContext(ctx, "discarding upload response after reset", "file", file.Name())
		return nil, ErrDiscarded
	}
	if err != nil {
		w.state = Error
		w.lastErr = err
		w.mu.Unlock()

		w.logger.WarnContext(ctx, "question import failed", "file", file.Name(), "test_id", testID, "error", err)
		msg := fmt.Sprintf("Failed to upload questions: %s. You can try again.", apperrors.Message(err))
		w.notifyError(ctx, msg)
		w.emitter.Emit(ctx, events.NewImportFailedEvent(testID, file.Name(), apperrors.Message(err)))
		return nil, err
	}
	w.state = Success
	w.result = result
	w.file = nil
	w.testID = ""
	onSuccess := w.onSuccess
	w.mu.Unlock()

	msg := result.Message
	if msg == "" {
		msg = fmt.Sprintf("Successfully imported %d questions", result.Created)
	}
	if w.notifier != nil {
		w.notifier.Success(ctx, notifySource, msg)
	}
	w.emitter.Emit(ctx, events.NewImportCompletedEvent(testID, file.Name(), result.Created, result.QuestionIDs))
	if onSuccess != nil {
		onSuccess(result)
	}
	return result, nil
}

func (w *Workflow) readyLocked() error {
	if w.inFlight {
		return ErrUploadInFlight
	}
	switch w.state {
	case Uploading:
		return ErrUploadInFlight
	case Error:
		return ErrNotAcknowledged
	}

	var missing apperrors.ValidationErrors
	if w.file == nil || w.state != FileSelected {
		missing = append(missing, *apperrors.NewValidationErrorWithRule("file", "Please select a CSV file", "required", nil))
	}
	if w.testID == "" {
		missing = append(missing, *apperrors.NewValidationErrorWithRule("test_id", "Please select a test", "required", ""))
	}
	if len(missing) > 0 {
		return missing
	}
	return nil
}

func (w *Workflow) upload(ctx context.Context, file File, testID string) (*models.ImportResult, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name(), err)
	}
	defer rc.Close()

	result, err := w.uploader.ImportCSV(ctx, testID, file.Name(), rc)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &models.ImportResult{}
	}
	return result, nil
}

func (w *Workflow) notifyError(ctx context.Context, msg string) {
	if w.notifier != nil {
		w.notifier.Error(ctx, notifySource, msg)
	}
}

func userMessage(err error) string {
	if ve, ok := apperrors.AsValidationErrors(err); ok && len(ve) > 0 {
		return ve[0].Message
	}
	return apperrors.Message(err)
}

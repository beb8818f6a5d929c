package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/importer"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
)

// QuestionHandler serves the bulk import endpoints.
type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
	emitter         *events.Emitter
	maxUploadBytes  int64
}

func NewQuestionHandler(questionService services.QuestionService, emitter *events.Emitter, maxUploadBytes int64, logger utils.Logger) *QuestionHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = importer.MaxFileSize
	}
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		emitter:         emitter,
		maxUploadBytes:  maxUploadBytes,
	}
}

// ImportQuestions uploads a multipart CSV (fields file, test_id) to a test.
// With ?dry_run=true the file is only parsed locally and the preview returned.
// @Router /imports [post]
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	// multipart overhead on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	header, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.RespondWithError(c, http.StatusRequestEntityTooLarge, "File is too large", err)
		return
	}
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Please select a CSV file", err, err.Error())
		return
	}
	testID := c.PostForm("test_id")
	h.LogRequest(c, "Importing questions", "test_id", testID, "file", header.Filename, "size", header.Size)

	notifier, drain := collect()
	wf := importer.NewWorkflow(h.questionService,
		importer.WithNotifier(notifier),
		importer.WithEmitter(h.emitter),
		importer.WithMaxFileSize(h.maxUploadBytes),
		importer.WithLogger(utils.ToSlogLogger(h.logger)),
	)
	ctx := c.Request.Context()

	file := importer.NewMultipartFile(header)
	if err := wf.SelectFile(ctx, file); err != nil {
		h.handleServiceError(c, err)
		return
	}

	if c.Query("dry_run") == "true" {
		h.preview(c, file)
		return
	}

	if err := wf.SelectTarget(testID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	result, err := wf.Submit(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ActionResponse{Message: "Questions imported", Data: result, Notifications: drain()})
}

func (h *QuestionHandler) preview(c *gin.Context, file importer.File) {
	rc, err := file.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read upload", err)
		return
	}
	defer rc.Close()

	report, err := importer.Preview(rc)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SampleTemplate downloads the import template; ?format=xlsx for a spreadsheet.
// @Router /imports/sample [get]
func (h *QuestionHandler) SampleTemplate(c *gin.Context) {
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		attachment(c, importer.SampleCSVName, "text/csv")
		if err := importer.SampleCSV(c.Writer); err != nil {
			h.LogError(c, err, "Failed to write sample CSV")
		}
	case "xlsx":
		attachment(c, importer.SampleXLSXName, xlsxContentType)
		if err := importer.SampleXLSX(c.Writer); err != nil {
			h.LogError(c, err, "Failed to write sample spreadsheet")
		}
	default:
		h.RespondWithError(c, http.StatusBadRequest, "format must be csv or xlsx", nil)
	}
}

// ExportQuestions streams a test's questions in the import format.
// @Router /tests/{id}/questions/export [get]
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	h.LogRequest(c, "Exporting questions", "test_id", id)

	var buf bytes.Buffer
	if err := h.questionService.ExportCSV(c.Request.Context(), id, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="test_`+id+`_questions.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

type ResultResponse struct {
	Result  *models.CandidateResult `json:"result"`
	Summary analytics.ResultSummary `json:"summary"`
}

// GetResult returns a candidate result with its display summary.
// @Router /results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	h.LogRequest(c, "Getting candidate result", "result_id", id)

	result, err := h.resultService.CandidateResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ResultResponse{Result: result, Summary: analytics.SummarizeResult(*result)})
}

// ExportResult downloads the candidate result as a spreadsheet.
// @Router /results/{id}/export [get]
func (h *ResultHandler) ExportResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	h.LogRequest(c, "Exporting candidate result", "result_id", id)

	result, err := h.resultService.CandidateResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	attachment(c, "result_"+id+".xlsx", xlsxContentType)
	if err := analytics.ExportResultXLSX(*result, c.Writer); err != nil {
		h.LogError(c, err, "Failed to write result report", "result_id", id)
	}
}

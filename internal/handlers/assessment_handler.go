package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	"github.com/SAP-F-2025/assessment-console/internal/listing"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
	resultService     services.ResultService
}

func NewAssessmentHandler(
	assessmentService services.AssessmentService,
	resultService services.ResultService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
		resultService:     resultService,
	}
}

// ListAssessments retrieves assessments, optionally by skill and search term
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	h.LogRequest(c, "Listing assessments", "search", c.Query("search"), "skill_id", c.Query("skill_id"))

	fetch := func(ctx context.Context, q listing.Query) ([]models.Assessment, error) {
		return h.assessmentService.List(ctx, services.AssessmentFilters{SkillID: q.SkillID})
	}
	page := listing.NewPage("assessment", fetch, models.Assessment.SearchFields,
		listing.WithLogger[models.Assessment](utils.ToSlogLogger(h.logger)))
	defer page.Dispose()

	page.SetSearch(c.Query("search"))
	_ = page.SetSkill(c.Request.Context(), c.Query("skill_id"))
	c.JSON(http.StatusOK, listResponse(page))
}

type AnalyticsResponse struct {
	Analytics *models.AssessmentAnalytics `json:"analytics"`
	Dashboard analytics.Dashboard         `json:"dashboard"`
}

// GetAnalytics returns the dashboard for an assessment; ?format=xlsx downloads it.
// @Router /assessments/{id}/analytics [get]
func (h *AssessmentHandler) GetAnalytics(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	h.LogRequest(c, "Getting assessment analytics", "assessment_id", id)

	data, err := h.resultService.Analytics(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		attachment(c, "assessment_"+id+"_analytics.xlsx", xlsxContentType)
		if err := analytics.ExportAnalyticsXLSX(*data, c.Writer); err != nil {
			h.LogError(c, err, "Failed to write analytics report", "assessment_id", id)
		}
		return
	}

	c.JSON(http.StatusOK, AnalyticsResponse{Analytics: data, Dashboard: analytics.BuildDashboard(*data)})
}

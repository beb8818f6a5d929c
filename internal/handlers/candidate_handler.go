package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/listing"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	BaseHandler
	candidateService services.CandidateService
	emitter          *events.Emitter
}

func NewCandidateHandler(candidateService services.CandidateService, emitter *events.Emitter, logger utils.Logger) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      NewBaseHandler(logger),
		candidateService: candidateService,
		emitter:          emitter,
	}
}

// ListCandidates returns candidates filtered locally by name or email.
// @Router /candidates [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	h.LogRequest(c, "Listing candidates", "search", c.Query("search"))

	notifier, _ := collect()
	fetch := func(ctx context.Context, _ listing.Query) ([]models.Candidate, error) {
		return h.candidateService.List(ctx, services.CandidateFilters{})
	}
	page := listing.NewPage("candidate", fetch, models.Candidate.SearchFields,
		listing.WithNotifier[models.Candidate](notifier),
		listing.WithLogger[models.Candidate](utils.ToSlogLogger(h.logger)))
	defer page.Dispose()

	page.SetSearch(c.Query("search"))
	_ = page.Load(c.Request.Context())
	c.JSON(http.StatusOK, listResponse(page))
}

// @Router /candidates/{id} [get]
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	h.LogRequest(c, "Getting candidate", "candidate_id", id)

	candidate, err := h.candidateService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// InviteCandidates invites a batch to one assessment. Per-candidate
// failures are reported in data, not as an error status.
// @Router /candidates/invite [post]
func (h *CandidateHandler) InviteCandidates(c *gin.Context) {
	var req models.InviteDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	h.LogRequest(c, "Inviting candidates", "assessment_id", req.AssessmentID, "count", len(req.Candidates))

	notifier, drain := collect()
	ctx := c.Request.Context()
	result, err := h.candidateService.Invite(ctx, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.emitter.Emit(ctx, events.NewCandidatesInvitedEvent(req.AssessmentID, result.SuccessCount, result.FailedCount))
	msg := result.Message
	if msg == "" {
		msg = fmt.Sprintf("%d invited, %d failed", result.SuccessCount, result.FailedCount)
	}
	if result.FailedCount > 0 {
		notifier.Info(ctx, "invite", msg)
	} else {
		notifier.Success(ctx, "invite", msg)
	}
	c.JSON(http.StatusOK, ActionResponse{Message: msg, Data: result, Notifications: drain()})
}

// ListCandidateAssessments filters assignments by assessment, candidate and status.
// @Router /candidate-assessments [get]
func (h *CandidateHandler) ListCandidateAssessments(c *gin.Context) {
	filters := services.CandidateAssessmentFilters{
		AssessmentID: c.Query("assessment_id"),
		CandidateID:  c.Query("candidate_id"),
		Status:       models.CandidateAssessmentStatus(c.Query("status")),
	}
	h.LogRequest(c, "Listing candidate assessments",
		"assessment_id", filters.AssessmentID, "candidate_id", filters.CandidateID, "status", filters.Status)

	rows, err := h.candidateService.Assessments(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if rows == nil {
		rows = []models.CandidateAssessment{}
	}
	c.JSON(http.StatusOK, ListResponse[models.CandidateAssessment]{Items: rows, Count: len(rows)})
}

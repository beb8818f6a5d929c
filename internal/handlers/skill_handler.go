package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/listing"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
)

const deleteSkillPrompt = "Are you sure you want to delete this skill?"

type SkillHandler struct {
	BaseHandler
	skillService services.SkillService
	emitter      *events.Emitter
}

func NewSkillHandler(skillService services.SkillService, emitter *events.Emitter, logger utils.Logger) *SkillHandler {
	return &SkillHandler{
		BaseHandler:  NewBaseHandler(logger),
		skillService: skillService,
		emitter:      emitter,
	}
}

func (h *SkillHandler) page(notifier events.Notifier, filters services.SkillFilters) *listing.Page[models.Skill] {
	fetch := func(ctx context.Context, _ listing.Query) ([]models.Skill, error) {
		return h.skillService.List(ctx, filters)
	}
	return listing.NewPage("skill", fetch, models.Skill.SearchFields,
		listing.WithDeleter(h.skillService.Delete, func(s models.Skill) string { return s.ID }),
		listing.WithNotifier[models.Skill](notifier),
		listing.WithEmitter[models.Skill](h.emitter),
		listing.WithLogger[models.Skill](utils.ToSlogLogger(h.logger)),
		listing.WithConfirmMessage[models.Skill](deleteSkillPrompt),
	)
}

// ListSkills filters by category and difficulty on the server and by search locally.
// @Router /skills [get]
func (h *SkillHandler) ListSkills(c *gin.Context) {
	h.LogRequest(c, "Listing skills", "search", c.Query("search"), "category", c.Query("category"))

	notifier, _ := collect()
	page := h.page(notifier, services.SkillFilters{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	})
	defer page.Dispose()

	page.SetSearch(c.Query("search"))
	_ = page.Load(c.Request.Context())
	c.JSON(http.StatusOK, listResponse(page))
}

// @Router /skills [post]
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req models.SkillDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	h.LogRequest(c, "Creating skill", "name", req.Name)

	skill, err := h.skillService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// @Router /skills/{id} [patch]
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req models.SkillDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	h.LogRequest(c, "Updating skill", "skill_id", id)

	skill, err := h.skillService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

// DeleteSkill requires ?confirm=true.
// @Router /skills/{id} [delete]
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	h.LogRequest(c, "Deleting skill", "skill_id", id)

	notifier, drain := collect()
	page := h.page(notifier, services.SkillFilters{})
	defer page.Dispose()

	confirmed := listing.ConfirmFunc(func(context.Context, string) bool {
		return c.Query("confirm") == "true"
	})
	deleted, err := page.Delete(c.Request.Context(), id, confirmed)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !deleted {
		h.RespondWithError(c, http.StatusPreconditionRequired, "Confirmation required", nil, deleteSkillPrompt)
		return
	}
	c.JSON(http.StatusOK, ActionResponse{Message: "Skill deleted successfully", Notifications: drain()})
}

// @Router /skills/categories [get]
func (h *SkillHandler) ListCategories(c *gin.Context) {
	h.LogRequest(c, "Listing skill categories")

	categories, err := h.skillService.Categories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if categories == nil {
		categories = []models.SkillCategory{}
	}
	c.JSON(http.StatusOK, ListResponse[models.SkillCategory]{Items: categories, Count: len(categories)})
}

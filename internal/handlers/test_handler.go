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

const deleteTestPrompt = "Are you sure you want to delete this test? This will also delete all associated questions."

type TestHandler struct {
	BaseHandler
	testService services.TestService
	emitter     *events.Emitter
}

func NewTestHandler(testService services.TestService, emitter *events.Emitter, logger utils.Logger) *TestHandler {
	return &TestHandler{
		BaseHandler: NewBaseHandler(logger),
		testService: testService,
		emitter:     emitter,
	}
}

func (h *TestHandler) page(notifier events.Notifier) *listing.Page[models.Test] {
	fetch := func(ctx context.Context, q listing.Query) ([]models.Test, error) {
		return h.testService.List(ctx, services.TestFilters{SkillID: q.SkillID})
	}
	return listing.NewPage("test", fetch, models.Test.SearchFields,
		listing.WithDeleter(h.testService.Delete, func(t models.Test) string { return t.ID }),
		listing.WithNotifier[models.Test](notifier),
		listing.WithEmitter[models.Test](h.emitter),
		listing.WithLogger[models.Test](utils.ToSlogLogger(h.logger)),
		listing.WithConfirmMessage[models.Test](deleteTestPrompt),
	)
}

// ListTests returns tests filtered by skill on the server and by search locally.
// @Router /tests [get]
func (h *TestHandler) ListTests(c *gin.Context) {
	h.LogRequest(c, "Listing tests", "search", c.Query("search"), "skill_id", c.Query("skill_id"))

	notifier, _ := collect()
	page := h.page(notifier)
	defer page.Dispose()

	page.SetSearch(c.Query("search"))
	_ = page.SetSkill(c.Request.Context(), c.Query("skill_id"))
	c.JSON(http.StatusOK, listResponse(page))
}

// DeleteTest requires ?confirm=true; the server cascades to the test's questions.
// @Router /tests/{id} [delete]
func (h *TestHandler) DeleteTest(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	h.LogRequest(c, "Deleting test", "test_id", id)

	notifier, drain := collect()
	page := h.page(notifier)
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
		h.RespondWithError(c, http.StatusPreconditionRequired, "Confirmation required", nil, deleteTestPrompt)
		return
	}
	c.JSON(http.StatusOK, ActionResponse{Message: "Test deleted successfully", Notifications: drain()})
}

func listResponse[T any](page *listing.Page[T]) ListResponse[T] {
	items := page.Items()
	if items == nil {
		items = []T{}
	}
	resp := ListResponse[T]{Items: items, Count: len(items)}
	if err := page.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

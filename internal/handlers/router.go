package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
)

type Options struct {
	Emitter        *events.Emitter
	MaxUploadBytes int64
}

type HandlerManager struct {
	logger            utils.Logger
	testHandler       *TestHandler
	assessmentHandler *AssessmentHandler
	questionHandler   *QuestionHandler
	resultHandler     *ResultHandler
	candidateHandler  *CandidateHandler
	skillHandler      *SkillHandler
}

func NewHandlerManager(serviceManager *services.ServiceManager, logger utils.Logger, opts Options) *HandlerManager {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &HandlerManager{
		logger:            logger,
		testHandler:       NewTestHandler(serviceManager.Tests(), opts.Emitter, logger),
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessments(), serviceManager.Results(), logger),
		questionHandler:   NewQuestionHandler(serviceManager.Questions(), opts.Emitter, opts.MaxUploadBytes, logger),
		resultHandler:     NewResultHandler(serviceManager.Results(), logger),
		candidateHandler:  NewCandidateHandler(serviceManager.Candidates(), opts.Emitter, logger),
		skillHandler:      NewSkillHandler(serviceManager.Skills(), opts.Emitter, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(utils.ContextLogger(hm.logger), utils.LoggerMiddleware(hm.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "assessment-console",
		})
	})

	v1 := router.Group("/api/v1", SessionMiddleware())
	{
		tests := v1.Group("/tests")
		{
			tests.GET("", hm.testHandler.ListTests)
			tests.DELETE("/:id", hm.testHandler.DeleteTest)
			tests.GET("/:id/questions/export", hm.questionHandler.ExportQuestions)
		}

		assessments := v1.Group("/assessments")
		{
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:id/analytics", hm.assessmentHandler.GetAnalytics)
		}

		imports := v1.Group("/imports")
		{
			imports.POST("", hm.questionHandler.ImportQuestions)
			imports.GET("/sample", hm.questionHandler.SampleTemplate)
		}

		results := v1.Group("/results")
		{
			results.GET("/:id", hm.resultHandler.GetResult)
			results.GET("/:id/export", hm.resultHandler.ExportResult)
		}

		candidates := v1.Group("/candidates")
		{
			candidates.GET("", hm.candidateHandler.ListCandidates)
			candidates.POST("/invite", hm.candidateHandler.InviteCandidates)
			candidates.GET("/:id", hm.candidateHandler.GetCandidate)
		}
		v1.GET("/candidate-assessments", hm.candidateHandler.ListCandidateAssessments)

		skills := v1.Group("/skills")
		{
			skills.GET("", hm.skillHandler.ListSkills)
			skills.POST("", hm.skillHandler.CreateSkill)
			skills.GET("/categories", hm.skillHandler.ListCategories)
			skills.PATCH("/:id", hm.skillHandler.UpdateSkill)
			skills.DELETE("/:id", hm.skillHandler.DeleteSkill)
		}
	}
}

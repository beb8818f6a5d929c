package services

import (
	"github.com/SAP-F-2025/assessment-console/internal/client"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/SAP-F-2025/assessment-console/internal/validator"
)

// ServiceManager is the façade over every platform operation.
type ServiceManager struct {
	tests       TestService
	questions   QuestionService
	assessments AssessmentService
	skills      SkillService
	candidates  CandidateService
	auth        AuthService
	results     ResultService
	validator   *validator.Validator
}

func NewServiceManager(api *client.Client, v *validator.Validator, logger utils.Logger) *ServiceManager {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &ServiceManager{
		tests:       NewTestService(api, NewServiceLogger(logger, "tests"), v),
		questions:   NewQuestionService(api, NewServiceLogger(logger, "questions"), v),
		assessments: NewAssessmentService(api, NewServiceLogger(logger, "assessments"), v),
		skills:      NewSkillService(api, NewServiceLogger(logger, "skills"), v),
		candidates:  NewCandidateService(api, NewServiceLogger(logger, "candidates"), v),
		auth:        NewAuthService(api, NewServiceLogger(logger, "auth"), v),
		results:     NewResultService(api, NewServiceLogger(logger, "results")),
		validator:   v,
	}
}

func (m *ServiceManager) Tests() TestService             { return m.tests }
func (m *ServiceManager) Questions() QuestionService     { return m.questions }
func (m *ServiceManager) Assessments() AssessmentService { return m.assessments }
func (m *ServiceManager) Skills() SkillService           { return m.skills }
func (m *ServiceManager) Candidates() CandidateService   { return m.candidates }
func (m *ServiceManager) Auth() AuthService              { return m.auth }
func (m *ServiceManager) Results() ResultService         { return m.results }
func (m *ServiceManager) Validator() *validator.Validator {
	return m.validator
}

package services

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/SAP-F-2025/assessment-console/internal/models"
)

type TestFilters struct {
	SkillID  string
	IsActive *bool
	Search   string
}

func (f TestFilters) values() url.Values {
	v := url.Values{}
	setString(v, "skill_id", f.SkillID)
	setBool(v, "is_active", f.IsActive)
	setString(v, "search", f.Search)
	return v
}

type QuestionFilters struct {
	TestID string
	Type   models.QuestionType
}

func (f QuestionFilters) values() url.Values {
	v := url.Values{}
	setString(v, "test", f.TestID)
	setString(v, "question_type", string(f.Type))
	return v
}

type AssessmentFilters struct {
	SkillID  string
	IsActive *bool
	Search   string
}

func (f AssessmentFilters) values() url.Values {
	v := url.Values{}
	setString(v, "skill_id", f.SkillID)
	setBool(v, "is_active", f.IsActive)
	setString(v, "search", f.Search)
	return v
}

type SkillFilters struct {
	Category   string
	Difficulty string
	Search     string
}

func (f SkillFilters) values() url.Values {
	v := url.Values{}
	setString(v, "category", f.Category)
	setString(v, "difficulty", f.Difficulty)
	setString(v, "search", f.Search)
	return v
}

// CandidateFilters always asks for candidates; Search is passed to the platform.
type CandidateFilters struct {
	Search string
}

func (f CandidateFilters) values() url.Values {
	v := url.Values{}
	v.Set("is_candidate", "true")
	setString(v, "search", f.Search)
	return v
}

type CandidateAssessmentFilters struct {
	AssessmentID string
	CandidateID  string
	Status       models.CandidateAssessmentStatus
}

func (f CandidateAssessmentFilters) values() url.Values {
	v := url.Values{}
	setString(v, "assessment", f.AssessmentID)
	setString(v, "candidate", f.CandidateID)
	setString(v, "status", string(f.Status))
	return v
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setBool(v url.Values, key string, value *bool) {
	if value != nil {
		v.Set(key, strconv.FormatBool(*value))
	}
}

type TestService interface {
	List(ctx context.Context, filters TestFilters) ([]models.Test, error)
	Get(ctx context.Context, id string) (*models.Test, error)
	Create(ctx context.Context, draft models.TestDraft) (*models.Test, error)
	Update(ctx context.Context, id string, draft models.TestDraft) (*models.Test, error)
	Delete(ctx context.Context, id string) error
	Questions(ctx context.Context, testID string) ([]models.Question, error)
	ReorderQuestions(ctx context.Context, testID string, questionIDs []string) error
}

type QuestionService interface {
	List(ctx context.Context, filters QuestionFilters) ([]models.Question, error)
	Get(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, draft models.QuestionDraft) (*models.Question, error)
	Update(ctx context.Context, id string, draft models.QuestionDraft) (*models.Question, error)
	Delete(ctx context.Context, id string) error
	ImportCSV(ctx context.Context, testID, fileName string, file io.Reader) (*models.ImportResult, error)
	ExportCSV(ctx context.Context, testID string, w io.Writer) error
}

type AssessmentService interface {
	List(ctx context.Context, filters AssessmentFilters) ([]models.Assessment, error)
	Get(ctx context.Context, id string) (*models.Assessment, error)
	Create(ctx context.Context, draft models.AssessmentDraft) (*models.Assessment, error)
	Update(ctx context.Context, id string, draft models.AssessmentDraft) (*models.Assessment, error)
	Delete(ctx context.Context, id string) error
	Skills(ctx context.Context, id string) ([]models.AssessmentSkill, error)
	AddSkill(ctx context.Context, id, skillID string, importance models.SkillImportance) (*models.AssessmentSkill, error)
	RemoveSkill(ctx context.Context, id, skillID string) error
}

type SkillService interface {
	List(ctx context.Context, filters SkillFilters) ([]models.Skill, error)
	Get(ctx context.Context, id string) (*models.Skill, error)
	Create(ctx context.Context, draft models.SkillDraft) (*models.Skill, error)
	Update(ctx context.Context, id string, draft models.SkillDraft) (*models.Skill, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]models.SkillCategory, error)
	CreateCategory(ctx context.Context, draft models.SkillCategoryDraft) (*models.SkillCategory, error)
	UpdateCategory(ctx context.Context, id string, draft models.SkillCategoryDraft) (*models.SkillCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	CategorySkills(ctx context.Context, id string) ([]models.Skill, error)
}

type CandidateService interface {
	List(ctx context.Context, filters CandidateFilters) ([]models.Candidate, error)
	Get(ctx context.Context, id string) (*models.Candidate, error)
	Invite(ctx context.Context, draft models.InviteDraft) (*models.InviteResult, error)
	Assessments(ctx context.Context, filters CandidateAssessmentFilters) ([]models.CandidateAssessment, error)
}

type AuthService interface {
	Login(ctx context.Context, draft models.LoginDraft) (*models.Session, error)
	Register(ctx context.Context, draft models.RegisterDraft) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
}

type ResultService interface {
	CandidateResult(ctx context.Context, id string) (*models.CandidateResult, error)
	Analytics(ctx context.Context, assessmentID string) (*models.AssessmentAnalytics, error)
}

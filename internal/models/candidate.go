package models

import (
	"strings"
	"time"
)

type CandidateStatus string

const (
	CandidateActive    CandidateStatus = "active"
	CandidateInvited   CandidateStatus = "invited"
	CandidateCompleted CandidateStatus = "completed"
)

// Candidate is a platform user with the candidate role plus the activity
// figures the candidate list shows.
type Candidate struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	Name             string          `json:"name,omitempty"`
	Status           CandidateStatus `json:"status,omitempty"`
	AssessmentsTaken int             `json:"assessments_taken"`
	AverageScore     float64         `json:"average_score"`
	LastActivity     *time.Time      `json:"last_activity,omitempty"`
}

// DisplayName prefers the full name and falls back to the email.
func (c Candidate) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if full := strings.TrimSpace(c.FirstName + " " + c.LastName); full != "" {
		return full
	}
	return c.Email
}

func (c Candidate) SearchFields() []string {
	return []string{c.DisplayName(), c.Email}
}

type CandidateInvite struct {
	Name  string `json:"name" validate:"not_blank"`
	Email string `json:"email" validate:"required,email"`
}

type InviteDraft struct {
	AssessmentID string            `json:"assessment_id" validate:"required"`
	Candidates   []CandidateInvite `json:"candidates" validate:"min=1,unique=Email,dive"`
	Message      string            `json:"message,omitempty" validate:"max=2000"`
}

type InviteFailure struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type InviteResult struct {
	Message      string          `json:"message"`
	SuccessCount int             `json:"success_count"`
	FailedCount  int             `json:"failed_count"`
	Failed       []InviteFailure `json:"failed"`
}

type CandidateAssessmentStatus string

const (
	CandidateAssessmentNotStarted CandidateAssessmentStatus = "not_started"
	CandidateAssessmentInProgress CandidateAssessmentStatus = "in_progress"
	CandidateAssessmentCompleted  CandidateAssessmentStatus = "completed"
	CandidateAssessmentExpired    CandidateAssessmentStatus = "expired"
)

func (s CandidateAssessmentStatus) IsValid() bool {
	switch s {
	case CandidateAssessmentNotStarted, CandidateAssessmentInProgress,
		CandidateAssessmentCompleted, CandidateAssessmentExpired:
		return true
	}
	return false
}

// CandidateAssessment is one candidate's assignment to an assessment. Its id
// is the one result lookups take.
type CandidateAssessment struct {
	ID                string                    `json:"id"`
	CandidateID       string                    `json:"candidate"`
	AssessmentID      string                    `json:"assessment"`
	AssessmentDetails *Assessment               `json:"assessment_details,omitempty"`
	Status            CandidateAssessmentStatus `json:"status"`
	Score             *float64                  `json:"score"`
	StartTime         *time.Time                `json:"start_time"`
	EndTime           *time.Time                `json:"end_time"`
	CreatedAt         *time.Time                `json:"created_at,omitempty"`
}

// AssessmentTitle falls back to the assessment id when details are absent.
func (c CandidateAssessment) AssessmentTitle() string {
	if c.AssessmentDetails != nil && c.AssessmentDetails.Title != "" {
		return c.AssessmentDetails.Title
	}
	return c.AssessmentID
}

func (c CandidateAssessment) SearchFields() []string {
	return []string{c.AssessmentTitle(), c.CandidateID, string(c.Status)}
}

package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event published after a user-visible change.
type EventType string

const (
	EventImportCompleted   EventType = "import.completed"
	EventImportFailed      EventType = "import.failed"
	EventTestDeleted       EventType = "test.deleted"
	EventAssessmentDeleted EventType = "assessment.deleted"
	EventQuestionDeleted   EventType = "question.deleted"
	EventSkillDeleted      EventType = "skill.deleted"
	EventCategoryDeleted   EventType = "skill_category.deleted"
	EventCandidatesInvited EventType = "candidates.invited"
	EventSessionStarted    EventType = "session.started"
	EventSessionEnded      EventType = "session.ended"
)

const (
	eventSource  = "assessment-console"
	eventVersion = "1.0"
)

// NotificationEvent is the envelope for every published event.
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ImportCompletedEvent struct {
	TestID      string   `json:"test_id"`
	FileName    string   `json:"file_name"`
	Created     int      `json:"created"`
	QuestionIDs []string `json:"question_ids,omitempty"`
}

type ImportFailedEvent struct {
	TestID   string `json:"test_id"`
	FileName string `json:"file_name"`
	Message  string `json:"message"`
}

type EntityDeletedEvent struct {
	Resource string `json:"resource"`
	ID       string `json:"id"`
}

type CandidatesInvitedEvent struct {
	AssessmentID string `json:"assessment_id"`
	Invited      int    `json:"invited"`
	Failed       int    `json:"failed"`
}

type SessionEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func newEvent(t EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewImportCompletedEvent(testID, fileName string, created int, questionIDs []string) *NotificationEvent {
	return newEvent(EventImportCompleted, ImportCompletedEvent{
		TestID:      testID,
		FileName:    fileName,
		Created:     created,
		QuestionIDs: questionIDs,
	})
}

func NewImportFailedEvent(testID, fileName, message string) *NotificationEvent {
	return newEvent(EventImportFailed, ImportFailedEvent{
		TestID:   testID,
		FileName: fileName,
		Message:  message,
	})
}

// NewDeletedEvent maps a resource name to its deletion event type; other
// resources get "<resource>.deleted".
func NewDeletedEvent(resource, id string) *NotificationEvent {
	var t EventType
	switch resource {
	case "test":
		t = EventTestDeleted
	case "assessment":
		t = EventAssessmentDeleted
	case "question":
		t = EventQuestionDeleted
	case "skill":
		t = EventSkillDeleted
	case "skill category":
		t = EventCategoryDeleted
	default:
		t = EventType(resource + ".deleted")
	}
	return newEvent(t, EntityDeletedEvent{Resource: resource, ID: id})
}

func NewCandidatesInvitedEvent(assessmentID string, invited, failed int) *NotificationEvent {
	return newEvent(EventCandidatesInvited, CandidatesInvitedEvent{
		AssessmentID: assessmentID,
		Invited:      invited,
		Failed:       failed,
	})
}

func NewSessionStartedEvent(userID, email string) *NotificationEvent {
	return newEvent(EventSessionStarted, SessionEvent{UserID: userID, Email: email})
}

func NewSessionEndedEvent(userID, email string) *NotificationEvent {
	return newEvent(EventSessionEnded, SessionEvent{UserID: userID, Email: email})
}

package models

import "time"

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

// Notification is a dismissible, user-facing message.
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	Source    string            `json:"source,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

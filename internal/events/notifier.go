package events

import (
	"context"
	"sync"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/models"
)

const defaultHistory = 50

// Notifier delivers short user-facing messages, the console's toast.
type Notifier interface {
	Success(ctx context.Context, source, message string)
	Error(ctx context.Context, source, message string)
	Info(ctx context.Context, source, message string)
}

// Hub keeps a bounded history of notifications and fans each one out to its
// listeners. Listeners run synchronously on the notifying goroutine.
type Hub struct {
	mu        sync.Mutex
	history   []models.Notification
	limit     int
	listeners []func(models.Notification)
	now       func() time.Time
}

func NewHub(limit int) *Hub {
	if limit <= 0 {
		limit = defaultHistory
	}
	return &Hub{limit: limit, now: time.Now}
}

// Listen registers fn for every later notification.
func (h *Hub) Listen(fn func(models.Notification)) {
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

func (h *Hub) Success(ctx context.Context, source, message string) {
	h.notify(models.NotificationSuccess, source, message)
}

func (h *Hub) Error(ctx context.Context, source, message string) {
	h.notify(models.NotificationError, source, message)
}

func (h *Hub) Info(ctx context.Context, source, message string) {
	h.notify(models.NotificationInfo, source, message)
}

func (h *Hub) notify(level models.NotificationLevel, source, message string) {
	n := models.Notification{
		Level:     level,
		Message:   message,
		Source:    source,
		CreatedAt: h.now(),
	}

	h.mu.Lock()
	h.history = append(h.history, n)
	if len(h.history) > h.limit {
		h.history = h.history[len(h.history)-h.limit:]
	}
	listeners := make([]func(models.Notification), len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(n)
	}
}

// Recent returns the retained notifications, oldest first.
func (h *Hub) Recent() []models.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.Notification(nil), h.history...)
}

// Last returns the most recent notification.
func (h *Hub) Last() (models.Notification, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.history) == 0 {
		return models.Notification{}, false
	}
	return h.history[len(h.history)-1], true
}

func (h *Hub) Clear() {
	h.mu.Lock()
	h.history = nil
	h.mu.Unlock()
}

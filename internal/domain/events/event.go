package events

import (
	"time"

	"github.com/google/uuid"
)

// Dashboard event types
const (
	EventTypeSessionOpened   = "session_opened"
	EventTypeSessionClosed   = "session_closed"
	EventTypeSessionReviewed = "session_reviewed"
	EventTypeTaskUpdate      = "task_update"
	EventTypeTaskReviewed    = "task_reviewed"
)

// DashboardEvent represents a dashboard-related event published on
// session or task mutations so cached views can invalidate.
type DashboardEvent struct {
	EventType string      `json:"event_type"`
	UserID    uuid.UUID   `json:"user_id"`
	EntityID  uuid.UUID   `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}

// DashboardEventTypes defines standard event types for dashboard events
const (
	DashboardEventMetricsUpdate   = "metrics_update"
	DashboardEventCacheInvalidate = "cache_invalidate"
)

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationAssigned  NotificationType = "assigned"
	NotificationCompleted NotificationType = "completed"
	NotificationOverdue   NotificationType = "overdue"
)

// Notification is a persisted event addressed to a single recipient. Only
// IsRead ever changes after creation. Deleting one from the inbox soft-deletes
// it so the overdue scan can still see it was sent; the partial unique index
// on (user_id, task_id) keeps overdue notifications to one per task, ever.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_notifications_overdue_once,priority:1,where:type = 'overdue'" json:"user_id"`
	TaskID    *uuid.UUID       `gorm:"type:uuid;index;uniqueIndex:idx_notifications_overdue_once,priority:2,where:type = 'overdue'" json:"task_id"`
	Task      *Task            `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message   string           `gorm:"type:varchar(300)" json:"message"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	ActorID   *uuid.UUID       `gorm:"type:uuid" json:"actor_id"`
	Actor     *User            `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// NotificationEvent is the broker payload announcing a new notification.
type NotificationEvent struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	TaskID         string `json:"task_id,omitempty"`
	EventType      string `json:"event_type"`
	Message        string `json:"message"`
	Timestamp      string `json:"timestamp"`
}

// NewNotificationEvent builds the broker payload for n.
func NewNotificationEvent(n Notification) NotificationEvent {
	event := NotificationEvent{
		NotificationID: n.ID.String(),
		UserID:         n.UserID.String(),
		EventType:      string(n.Type),
		Message:        n.Message,
		Timestamp:      n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.TaskID != nil {
		event.TaskID = n.TaskID.String()
	}
	return event
}

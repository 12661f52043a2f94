package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	BoardCreated EventType = "board.created"
	BoardUpdated EventType = "board.updated"
	BoardDeleted EventType = "board.deleted"

	ListCreated EventType = "list.created"
	ListDeleted EventType = "list.deleted"

	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	NotificationCreated EventType = "notification.created"

	UserCreated EventType = "user.created"
	UserDeleted EventType = "user.deleted"
)

// SubjectPrefix namespaces every subject this service publishes on.
const SubjectPrefix = "taskflow"

// Subject returns the NATS subject an event type is published on.
func Subject(eventType EventType) string {
	return SubjectPrefix + "." + string(eventType)
}

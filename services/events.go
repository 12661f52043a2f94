package services

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/utils/dates"
)

// publishEvent announces a committed change on the broker. Failures are
// logged and otherwise ignored: the database is the source of truth.
func publishEvent(producer broker.Producer, eventType broker.EventType, entity string, actorID uuid.UUID, data interface{}) {
	actor := ""
	if actorID != uuid.Nil {
		actor = actorID.String()
	}
	event, err := models.NewEvent(string(eventType), entity, actor, data)
	if err != nil {
		log.Errorf("Failed to build %s event: %v", eventType, err)
		return
	}
	_ = broker.PublishEvent(producer, event)
}

func publishNotifications(producer broker.Producer, actorID uuid.UUID, notifications []models.Notification) {
	for _, n := range notifications {
		publishEvent(producer, broker.NotificationCreated, "notification", actorID, models.NewNotificationEvent(n))
	}
}

// today returns the current calendar date from now, or from the wall clock
// when now is nil.
func today(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return dates.Today(now())
}

// parseID maps malformed ids onto notFound so handlers report them like any
// other missing record.
func parseID(id string, notFound error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}

const maxMessageLength = 300

func notificationMessage(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if utf8.RuneCountInString(msg) <= maxMessageLength {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:maxMessageLength-1]) + "…"
}

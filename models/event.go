package models

import (
	"encoding/json"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Event is the envelope published to the broker after a write commits.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Event     string          `json:"event"`
	Version   int             `json:"version"`
	Entity    string          `json:"entity"`
	ActorID   string          `json:"actor_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func NewEvent(event, entity, actorID string, data interface{}) (*Event, error) {
	dataBytes, err := sonic.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		Entity:    entity,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

func (e *Event) ToJSON() ([]byte, error) {
	return sonic.Marshal(e)
}

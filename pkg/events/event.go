package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "LEAD_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewLeadCreated builds the event emitted when a completed selection is
// handed off to the operator pipeline.
func NewLeadCreated(leadID, chatUserID, source string, selection map[string]string, price string) Event {
	data := map[string]interface{}{
		"lead_id":      leadID,
		"chat_user_id": chatUserID,
		"source":       source,
		"selection":    selection,
		"price":        price,
	}
	return BaseEvent{
		Type:       "LEAD_CREATED",
		Data:       data,
		OccurredAt: time.Now(),
	}
}

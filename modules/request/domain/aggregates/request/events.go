package request

import "time"

// TopicRequestUpdate is the outbox topic every lifecycle mutation is
// published under.
const TopicRequestUpdate = "request_update"

type CreatedEvent struct {
	Result Request
}

type UpdatedEvent struct {
	Old        Request
	Result     Request
	ChangeType ChangeType
}

// Notification is the wire payload enqueued to the outbox and eventually
// broadcast to websocket subscribers of the shared request channel.
type Notification struct {
	RequestID  string     `json:"request_id"`
	Title      string     `json:"title"`
	Type       Type       `json:"type"`
	Status     Status     `json:"status"`
	ChangeType ChangeType `json:"change_type"`
	ActorID    string     `json:"actor_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

package events

import (
	"encoding/json"
	"time"

	"lumincoin/internal/core"
)

// Entities that produce ledger events
const (
	EntityOperation = "operation"
	EntityCategory  = "category"
)

// Actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent announces a successful change made through the client.
// It carries identifiers only; consumers fetch details from the API.
type LedgerEvent struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	Kind      core.Kind `json:"kind,omitempty"`
	ID        int       `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(entity, action string, kind core.Kind, id int) LedgerEvent {
	return LedgerEvent{
		Entity:    entity,
		Action:    action,
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// RoutingKey is "<entity>.<action>", e.g. "operation.created".
func (e LedgerEvent) RoutingKey() string {
	return e.Entity + "." + e.Action
}

// ToJSON converts the event to JSON bytes
func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes an event
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

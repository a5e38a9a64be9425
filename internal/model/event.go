package model

import (
	"encoding/json"
	"time"
)

// EventKind identifies what an order event records.
type EventKind string

const (
	KindNoteAdded   EventKind = "note_added"
	KindNoteUpdated EventKind = "note_updated"
	KindNoteRemoved EventKind = "note_removed"

	// Other audit kinds recorded by supporting operations.
	KindPlaced         EventKind = "placed"
	KindCanceled       EventKind = "canceled"
	KindAddressUpdated EventKind = "updated_address"
)

// String returns the string representation of the kind.
func (k EventKind) String() string {
	return string(k)
}

// Actor records who performed an action: a staff user, an app, or nobody.
// At most one of UserID and AppID is set.
type Actor struct {
	UserID string `json:"user_id,omitempty"`
	AppID  string `json:"app_id,omitempty"`
}

// IsZero reports whether the actor is unattributed.
func (a Actor) IsZero() bool {
	return a.UserID == "" && a.AppID == ""
}

// OrderEvent is a persisted audit entry attached to an order.
type OrderEvent struct {
	ID         int64           `json:"id"`
	OrderID    string          `json:"order_id"`
	Kind       EventKind       `json:"kind"`
	Actor      Actor           `json:"actor,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NoteParameters is the parameters payload for note_added and note_updated events.
type NoteParameters struct {
	Message string `json:"message"`
}

// RemovalParameters is the parameters payload for note_removed tombstone events.
// RelatedID is the primary key of the note_added event the tombstone supersedes.
type RemovalParameters struct {
	RelatedID int64 `json:"related_pk"`
}

// Message extracts the note message from the event's parameters.
// Returns the empty string for events without a message parameter.
func (e *OrderEvent) Message() string {
	var p NoteParameters
	if len(e.Parameters) == 0 {
		return ""
	}
	if err := json.Unmarshal(e.Parameters, &p); err != nil {
		return ""
	}
	return p.Message
}

// RelatedID extracts the superseded event ID from a tombstone's parameters.
// Returns 0 for events without a related_pk parameter.
func (e *OrderEvent) RelatedID() int64 {
	var p RemovalParameters
	if len(e.Parameters) == 0 {
		return 0
	}
	if err := json.Unmarshal(e.Parameters, &p); err != nil {
		return 0
	}
	return p.RelatedID
}

// noteParams marshals a message into a parameters payload.
// NoteParameters marshaling cannot fail, so the error is discarded.
func noteParams(message string) json.RawMessage {
	data, _ := json.Marshal(NoteParameters{Message: message})
	return data
}

// removalParams marshals a related event ID into a tombstone payload.
func removalParams(relatedID int64) json.RawMessage {
	data, _ := json.Marshal(RemovalParameters{RelatedID: relatedID})
	return data
}

// NewNoteAdded builds an unsaved note_added event for an order.
func NewNoteAdded(orderID string, actor Actor, message string) *OrderEvent {
	return &OrderEvent{
		OrderID:    orderID,
		Kind:       KindNoteAdded,
		Actor:      actor,
		Parameters: noteParams(message),
	}
}

// NewNoteRemoved builds an unsaved note_removed tombstone referencing the
// note_added event it supersedes.
func NewNoteRemoved(orderID string, actor Actor, relatedID int64) *OrderEvent {
	return &OrderEvent{
		OrderID:    orderID,
		Kind:       KindNoteRemoved,
		Actor:      actor,
		Parameters: removalParams(relatedID),
	}
}

// SetMessage replaces the event's parameters with a new message payload.
func (e *OrderEvent) SetMessage(message string) {
	e.Parameters = noteParams(message)
}

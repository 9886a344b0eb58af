// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// Queue name shared by the publisher and the consumer.
const CatalogQueueName = "catalog.events"

// Actions carried by CatalogChangedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogChangedEvent is published after a catalog write commits. It
// carries enough information for downstream consumers to log or trigger
// syncs without querying the primary database. MenuID and SubmenuID are
// zero when they do not apply to the entity.
type CatalogChangedEvent struct {
	Entity     string `json:"entity"` // "menu", "submenu" or "dish"
	Action     string `json:"action"` // created, updated or deleted
	ID         uint64 `json:"id"`
	MenuID     uint64 `json:"menu_id,omitempty"`
	SubmenuID  uint64 `json:"submenu_id,omitempty"`
	Title      string `json:"title,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

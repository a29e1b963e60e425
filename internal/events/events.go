package events

import "context"

// Event types broadcast to connected dashboards so they can refetch.
const (
	EventConventionLogCreated = "convention_log_created"
	EventConventionLogUpdated = "convention_log_updated"
	EventConventionLogDeleted = "convention_log_deleted"
	EventTaxonomyChanged      = "taxonomy_changed"
)

// StreamConvention is the redis pub/sub channel all dashboard events go to.
const StreamConvention = "events:convention"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

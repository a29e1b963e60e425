package models

import (
	"time"

	"github.com/google/uuid"
)

type ConventionType struct {
	ID        uuid.UUID `json:"id"`
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Topic struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	TypeID    uuid.UUID `json:"type_id"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// TypeValue is joined from convention_type for form consumers.
	TypeValue string `json:"type,omitempty"`
}

type ConventionRule struct {
	ID        uuid.UUID `json:"id"`
	TopicID   uuid.UUID `json:"topic_id"`
	RuleText  string    `json:"rule_text"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActionRule is a selectable violation description under a topic. Value is
// always derived from Label via LabelToSlug, never user-supplied.
type ActionRule struct {
	ID        uuid.UUID `json:"id"`
	TopicID   uuid.UUID `json:"topic_id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type ConventionLog struct {
	ID           uuid.UUID `json:"id"`
	LogDate      time.Time `json:"log_date"` // calendar date, midnight UTC
	MemberID     uuid.UUID `json:"member_id"`
	Type         string    `json:"type"` // convention_type.value
	TopicID      uuid.UUID `json:"topic_id"`
	ActionRuleID uuid.UUID `json:"action_rule_id"`
	Sprint       *string   `json:"sprint,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedBy    *string   `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ConventionLogWithDetails is the read-side join shape: the log row plus
// denormalized display names. The joined fields stay optional so a row
// survives its member being deactivated or a taxonomy row going away.
type ConventionLogWithDetails struct {
	ConventionLog

	MemberName  *string `json:"member_name,omitempty"`
	TopicTitle  *string `json:"topic_title,omitempty"`
	ActionLabel *string `json:"action_label,omitempty"`
}

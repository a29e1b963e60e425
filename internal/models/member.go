package models

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberSummary is one row of the dashboard summary: every active member
// with their violation count, zero when no logs exist.
type MemberSummary struct {
	MemberID       uuid.UUID `json:"member_id"`
	Name           string    `json:"name"`
	ViolationCount int       `json:"violation_count"`
}

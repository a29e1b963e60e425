package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Activity action types, one per mutating flow. Taxonomy and member edits
// share ActionSettingConvention; their descriptions start with the verb so
// the sub-filter can tell add/edit/delete apart.
const (
	ActionAddConventionLog    = "add_convention_log"
	ActionEditConventionLog   = "edit_convention_log"
	ActionDeleteConventionLog = "delete_convention_log"
	ActionSettingConvention   = "setting_convention"
)

// Setting-convention description verbs.
const (
	SettingVerbAdd    = "add"
	SettingVerbEdit   = "edit"
	SettingVerbDelete = "delete"
)

var ActivityActionLabels = map[string]string{
	ActionAddConventionLog:    "เพิ่ม Convention Log",
	ActionEditConventionLog:   "แก้ไข Convention Log",
	ActionDeleteConventionLog: "ลบ Convention Log",
	ActionSettingConvention:   "Setting Convention",
}

type ActivityLog struct {
	ID          uuid.UUID `json:"id"`
	ActorName   string    `json:"actor_name"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func IsValidActivityActionType(t string) bool {
	_, ok := ActivityActionLabels[t]
	return ok
}

func IsValidSettingVerb(v string) bool {
	return v == SettingVerbAdd || v == SettingVerbEdit || v == SettingVerbDelete
}

// MatchesSettingVerb reports whether a setting_convention description was
// written by the given verb. Descriptions are always "<verb> <entity> ...".
func MatchesSettingVerb(description, verb string) bool {
	return strings.HasPrefix(description, verb+" ")
}

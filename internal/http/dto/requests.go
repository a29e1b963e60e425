package dto

type LoginRequest struct {
	Name string `json:"name"`
}

type CreateMemberRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

type UpdateMemberRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Taxonomy

type CreateTypeRequest struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

type UpdateTypeRequest struct {
	Value     *string `json:"value,omitempty"`
	Label     *string `json:"label,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

type CreateTopicRequest struct {
	Title     string `json:"title"`
	TypeID    string `json:"type_id"`
	SortOrder int    `json:"sort_order"`
}

type UpdateTopicRequest struct {
	Title     *string `json:"title,omitempty"`
	TypeID    *string `json:"type_id,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

type CreateRuleRequest struct {
	TopicID   string `json:"topic_id"`
	RuleText  string `json:"rule_text"`
	SortOrder int    `json:"sort_order"`
}

type UpdateRuleRequest struct {
	TopicID   *string `json:"topic_id,omitempty"`
	RuleText  *string `json:"rule_text,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

type CreateActionRequest struct {
	TopicID   string `json:"topic_id"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

type UpdateActionRequest struct {
	TopicID   *string `json:"topic_id,omitempty"`
	Label     *string `json:"label,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// Convention logs

type SaveLogRequest struct {
	LogDate      string  `json:"log_date"` // YYYY-MM-DD
	MemberID     string  `json:"member_id"`
	Type         string  `json:"type"`
	TopicID      string  `json:"topic_id"`
	ActionRuleID string  `json:"action_rule_id"`
	Sprint       *string `json:"sprint,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

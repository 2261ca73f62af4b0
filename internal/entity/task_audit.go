package entity

import (
	"time"
)

type ActionType string

const (
	ActionCreate ActionType = "Create"
	ActionUpdate ActionType = "Update"
	ActionDelete ActionType = "Delete"
)

const (
	EntityTypePerson = "person"
	EntityTypeTask   = "task"
)

// AuditRecord is one persisted row of the audit trail.
type AuditRecord struct {
	ID         int64      `json:"id"`
	MessageID  string     `json:"message_id"`
	Action     ActionType `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   int64      `json:"entity_id"`
	OldValues  *string    `json:"old_values"`
	NewValues  *string    `json:"new_values"`
	Changes    *string    `json:"changes"`
	ChangedAt  time.Time  `json:"changed_at"`
}

type AuditMessage struct {
	MessageID  string         `json:"message_id"`
	Action     ActionType     `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   int64          `json:"entity_id"`
	OldValues  map[string]any `json:"old_values,omitempty"`
	NewValues  map[string]any `json:"new_values,omitempty"`
	Changes    map[string]any `json:"changes,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

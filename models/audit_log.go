package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogEntry is an append-only record of a state-changing action.
// Before/After hold JSON snapshot arrays, one element per affected row,
// in the order the action touched them. Never updated or deleted.
type AuditLogEntry struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	Action   string         `json:"action" gorm:"size:60;not null;index"`
	Entity   string         `json:"entity" gorm:"size:60;not null"`
	EntityID uint           `json:"entity_id" gorm:"index"`
	ActorID  uint           `json:"actor_id" gorm:"index"`
	Before   datatypes.JSON `json:"before"`
	After    datatypes.JSON `json:"after"`
	Meta     datatypes.JSON `json:"meta"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent records one committed mutation against the sampling
// hierarchy. Published fire-and-forget; delivery never gates the mutation.
type AuditEvent struct {
	ID         string     `json:"id"`
	Entity     string     `json:"entity"`
	Action     string     `json:"action"`
	EntityID   uuid.UUID  `json:"entity_id"`
	ActorID    uuid.UUID  `json:"actor_id"`
	RegionID   *uuid.UUID `json:"region_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

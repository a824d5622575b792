package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// REFERENCE ENTITIES (read-mostly lookup tables)
// ============================================================================

type Region struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type LandingCenter struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	RegionID   uuid.UUID         `json:"region_id" db:"region_id"`
	Name       string            `json:"name" db:"name"`
	CenterType LandingCenterType `json:"center_type" db:"center_type"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
}

type FishingGround struct {
	ID       uuid.UUID `json:"id" db:"id"`
	RegionID uuid.UUID `json:"region_id" db:"region_id"`
	Name     string    `json:"name" db:"name"`
	// Centroid decoded from the stored WKB point; nil when the ground
	// has no recorded position.
	CentroidLon *float64  `json:"centroid_lon,omitempty" db:"-"`
	CentroidLat *float64  `json:"centroid_lat,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type FishingEffortUnit struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// FishingGear defines up to three effort-unit slots. Slot 1 is mandatory
// for unload effort entry; slots 2 and 3 enable the matching effort fields
// only when set.
type FishingGear struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Description   string     `json:"description" db:"description"`
	EffortUnitID  *uuid.UUID `json:"effort_unit_id,omitempty" db:"effort_unit_id"`
	EffortUnit2ID *uuid.UUID `json:"effort_unit2_id,omitempty" db:"effort_unit2_id"`
	EffortUnit3ID *uuid.UUID `json:"effort_unit3_id,omitempty" db:"effort_unit3_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type Vessel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	RegionID  uuid.UUID  `json:"region_id" db:"region_id"`
	GearID    *uuid.UUID `json:"gear_id,omitempty" db:"gear_id"`
	Name      string     `json:"name" db:"name"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type Species struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Family         *string   `json:"family,omitempty" db:"family"`
	ScientificName *string   `json:"scientific_name,omitempty" db:"scientific_name"`
}

type AppUser struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	FullName  *string    `json:"full_name,omitempty" db:"full_name"`
	Role      UserRole   `json:"role" db:"role"`
	RegionID  *uuid.UUID `json:"region_id,omitempty" db:"region_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// SAMPLING HIERARCHY
// sample_day -> gear_unload -> vessel_unload -> vessel_catch -> sample_length
// ============================================================================

type SampleDay struct {
	ID              uuid.UUID `json:"id" db:"id"`
	SamplingDate    time.Time `json:"sampling_date" db:"sampling_date"`
	RegionID        uuid.UUID `json:"region_id" db:"region_id"`
	LandingCenterID uuid.UUID `json:"landing_center_id" db:"landing_center_id"`
	FishingGroundID uuid.UUID `json:"fishing_ground_id" db:"fishing_ground_id"`
	// Derived from sampling date and landing-center type, never user input.
	IsSamplingDay bool      `json:"is_sampling_day" db:"is_sampling_day"`
	Remarks       *string   `json:"remarks,omitempty" db:"remarks"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// GearUnload aggregates one gear's unloading within a sample day.
// BoatsCount and CatchTotalKg are rollups over child vessel unloads,
// recomputed from a fresh child query after every child mutation.
type GearUnload struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SampleDayID  uuid.UUID `json:"sample_day_id" db:"sample_day_id"`
	GearID       uuid.UUID `json:"gear_id" db:"gear_id"`
	BoatsCount   int       `json:"boats_count" db:"boats_count"`
	CatchTotalKg *float64  `json:"catch_total_kg,omitempty" db:"catch_total_kg"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type VesselUnload struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	GearUnloadID uuid.UUID  `json:"gear_unload_id" db:"gear_unload_id"`
	VesselID     *uuid.UUID `json:"vessel_id,omitempty" db:"vessel_id"`
	Effort1      *float64   `json:"effort1,omitempty" db:"effort1"`
	EffortUnit1  *uuid.UUID `json:"effort_unit1_id,omitempty" db:"effort_unit1_id"`
	Effort2      *float64   `json:"effort2,omitempty" db:"effort2"`
	EffortUnit2  *uuid.UUID `json:"effort_unit2_id,omitempty" db:"effort_unit2_id"`
	Effort3      *float64   `json:"effort3,omitempty" db:"effort3"`
	EffortUnit3  *uuid.UUID `json:"effort_unit3_id,omitempty" db:"effort_unit3_id"`
	BoxesTotal   *int       `json:"boxes_total,omitempty" db:"boxes_total"`
	BoxesSample  *int       `json:"boxes_sample,omitempty" db:"boxes_sample"`
	// Rollups over child vessel catches.
	CatchTotalKg  *float64   `json:"catch_total_kg,omitempty" db:"catch_total_kg"`
	CatchSampleKg *float64   `json:"catch_sample_kg,omitempty" db:"catch_sample_kg"`
	BoxesPiecesID *uuid.UUID `json:"boxes_pieces_id,omitempty" db:"boxes_pieces_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type VesselCatch struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	VesselUnloadID          uuid.UUID  `json:"vessel_unload_id" db:"vessel_unload_id"`
	SpeciesID               uuid.UUID  `json:"species_id" db:"species_id"`
	CatchKg                 *float64   `json:"catch_kg,omitempty" db:"catch_kg"`
	SampleKg                *float64   `json:"sample_kg,omitempty" db:"sample_kg"`
	LengthMeasureTypeID     *uuid.UUID `json:"length_measure_type_id,omitempty" db:"length_measure_type_id"`
	LengthUnitID            *uuid.UUID `json:"length_unit_id,omitempty" db:"length_unit_id"`
	TotalKg                 *float64   `json:"total_kg,omitempty" db:"total_kg"`
	TotalWeightIfMeasuredKg *float64   `json:"total_weight_if_measured_kg,omitempty" db:"total_weight_if_measured_kg"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
}

type SampleLength struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CatchID     uuid.UUID `json:"catch_id" db:"catch_id"`
	LengthValue float64   `json:"length_value" db:"length_value"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Float64Value folds the nullable numeric convention: missing means 0.
func Float64Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

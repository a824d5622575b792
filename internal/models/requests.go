package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// REQUEST PAYLOADS
// ============================================================================

type SampleDayInput struct {
	SamplingDate    string    `json:"sampling_date"` // YYYY-MM-DD
	RegionID        uuid.UUID `json:"region_id"`
	LandingCenterID uuid.UUID `json:"landing_center_id"`
	FishingGroundID uuid.UUID `json:"fishing_ground_id"`
	Remarks         *string   `json:"remarks,omitempty"`
}

func (in *SampleDayInput) ParseDate() (time.Time, error) {
	return time.Parse("2006-01-02", in.SamplingDate)
}

type GearUnloadInput struct {
	SampleDayID uuid.UUID `json:"sample_day_id"`
	GearID      uuid.UUID `json:"gear_id"`
}

type VesselUnloadInput struct {
	GearUnloadID  uuid.UUID  `json:"gear_unload_id"`
	VesselID      *uuid.UUID `json:"vessel_id,omitempty"`
	Effort1       *float64   `json:"effort1,omitempty"`
	Effort2       *float64   `json:"effort2,omitempty"`
	Effort3       *float64   `json:"effort3,omitempty"`
	BoxesTotal    *int       `json:"boxes_total,omitempty"`
	BoxesSample   *int       `json:"boxes_sample,omitempty"`
	BoxesPiecesID *uuid.UUID `json:"boxes_pieces_id,omitempty"`
}

type VesselCatchInput struct {
	VesselUnloadID          uuid.UUID  `json:"vessel_unload_id"`
	SpeciesID               uuid.UUID  `json:"species_id"`
	CatchKg                 *float64   `json:"catch_kg,omitempty"`
	SampleKg                *float64   `json:"sample_kg,omitempty"`
	LengthMeasureTypeID     *uuid.UUID `json:"length_measure_type_id,omitempty"`
	LengthUnitID            *uuid.UUID `json:"length_unit_id,omitempty"`
	TotalKg                 *float64   `json:"total_kg,omitempty"`
	TotalWeightIfMeasuredKg *float64   `json:"total_weight_if_measured_kg,omitempty"`
}

type SampleLengthInput struct {
	CatchID     uuid.UUID `json:"catch_id"`
	LengthValue float64   `json:"length_value"`
}

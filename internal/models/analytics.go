package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// ANALYTICS SHAPES
// ============================================================================

// AnalyticsScope carries the caller identity plus the common filters every
// aggregation accepts. Role and region participate in cache keys because
// results are visibility-scoped.
type AnalyticsScope struct {
	Role     UserRole   `json:"role"`
	RegionID *uuid.UUID `json:"region_id,omitempty"`
	FromDate *time.Time `json:"from_date,omitempty"`
	ToDate   *time.Time `json:"to_date,omitempty"`
	// Region explicitly requested by an admin; non-admins are pinned to
	// their own RegionID regardless of this field.
	FilterRegionID *uuid.UUID `json:"filter_region_id,omitempty"`
}

// LabeledSeries is the chart-ready label/value pair list used by trends,
// distributions and per-dimension comparisons.
type LabeledSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func EmptySeries() LabeledSeries {
	return LabeledSeries{Labels: []string{}, Values: []float64{}}
}

type RankedEntry struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

type RankingResult struct {
	Entries []RankedEntry `json:"entries"`
	// Total across the whole filtered set, not just the returned top-N.
	Total float64 `json:"total"`
}

func EmptyRanking() RankingResult {
	return RankingResult{Entries: []RankedEntry{}, Total: 0}
}

type GearEfficiency struct {
	Gear          string  `json:"gear"`
	CatchPerHaul  float64 `json:"catch_per_haul"`
	TotalCatchKg  float64 `json:"total_catch_kg"`
	UnloadRecords int     `json:"unload_records"`
}

type EfficiencyMetrics struct {
	CatchPerVessel    float64          `json:"catch_per_vessel"`
	CatchPerGear      []GearEfficiency `json:"catch_per_gear"`
	CatchPerEffort    float64          `json:"catch_per_effort"`
	CatchPerSampleDay float64          `json:"catch_per_sample_day"`
	TotalCatchKg      float64          `json:"total_catch_kg"`
}

type EfficiencyFilters struct {
	GearID       *uuid.UUID `json:"gear_id,omitempty"`
	EffortUnitID *uuid.UUID `json:"effort_unit_id,omitempty"`
	VesselID     *uuid.UUID `json:"vessel_id,omitempty"`
}

type ComparisonMetric struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

type ComparisonStats struct {
	CurrentFrom          time.Time        `json:"current_from"`
	CurrentTo            time.Time        `json:"current_to"`
	PreviousFrom         time.Time        `json:"previous_from"`
	PreviousTo           time.Time        `json:"previous_to"`
	TotalCatch           ComparisonMetric `json:"total_catch"`
	AvgCatchPerSampleDay ComparisonMetric `json:"avg_catch_per_sample_day"`
	VesselCount          ComparisonMetric `json:"vessel_count"`
}

package models

// ============================================================================
// ENUMS
// ============================================================================

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleEncoder UserRole = "encoder"
	RoleViewer  UserRole = "viewer"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEncoder, RoleViewer:
		return true
	}
	return false
}

// IsAdmin reports whether the role sees rows from every region.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

type LandingCenterType string

const (
	CenterCommercial LandingCenterType = "commercial"
	CenterMunicipal  LandingCenterType = "municipal"
)

func (t LandingCenterType) IsValid() bool {
	return t == CenterCommercial || t == CenterMunicipal
}

// AggregationPeriod selects the grouping granularity of catch trends.
type AggregationPeriod string

const (
	PeriodDaily   AggregationPeriod = "daily"
	PeriodMonthly AggregationPeriod = "monthly"
)

func (p AggregationPeriod) IsValid() bool {
	return p == PeriodDaily || p == PeriodMonthly
}

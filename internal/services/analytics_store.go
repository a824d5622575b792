package services

import (
	"context"
	"time"

	"nsap-service/internal/models"
	"nsap-service/internal/repository"

	"github.com/google/uuid"
)

// AnalyticsStore is the minimal row-access surface the aggregation engine
// needs: the four chain queries, one per hierarchy level. Tests substitute
// a fake to count queries and inject fixtures.
type AnalyticsStore interface {
	ListSampleDays(ctx context.Context, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error)
	ListGearUnloads(ctx context.Context, sampleDayIDs []uuid.UUID) ([]models.GearUnload, error)
	ListVesselUnloads(ctx context.Context, gearUnloadIDs []uuid.UUID, onlyWithCatch bool) ([]models.VesselUnload, error)
	ListVesselCatches(ctx context.Context, vesselUnloadIDs []uuid.UUID) ([]models.VesselCatch, error)
}

// NameResolver maps reference ids to display names for chart labels.
// Unknown ids resolve to a placeholder, never an error: a missing lookup
// row must not abort an aggregation.
type NameResolver interface {
	SpeciesName(id uuid.UUID) string
	RegionName(id uuid.UUID) string
	GearDescription(id uuid.UUID) string
	VesselName(id uuid.UUID) string
	LandingCenterName(id uuid.UUID) string
	FishingGroundName(id uuid.UUID) string
}

type repoAnalyticsStore struct {
	sampleDays    *repository.SampleDayRepository
	gearUnloads   *repository.GearUnloadRepository
	vesselUnloads *repository.VesselUnloadRepository
	vesselCatches *repository.VesselCatchRepository
}

// NewAnalyticsStore adapts the repositories to the chain-query surface.
func NewAnalyticsStore(
	sampleDays *repository.SampleDayRepository,
	gearUnloads *repository.GearUnloadRepository,
	vesselUnloads *repository.VesselUnloadRepository,
	vesselCatches *repository.VesselCatchRepository,
) AnalyticsStore {
	return &repoAnalyticsStore{
		sampleDays:    sampleDays,
		gearUnloads:   gearUnloads,
		vesselUnloads: vesselUnloads,
		vesselCatches: vesselCatches,
	}
}

func (s *repoAnalyticsStore) ListSampleDays(ctx context.Context, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error) {
	return s.sampleDays.ListByDateRange(ctx, from, to, regionID)
}

func (s *repoAnalyticsStore) ListGearUnloads(ctx context.Context, sampleDayIDs []uuid.UUID) ([]models.GearUnload, error) {
	return s.gearUnloads.ListBySampleDayIDs(ctx, sampleDayIDs)
}

func (s *repoAnalyticsStore) ListVesselUnloads(ctx context.Context, gearUnloadIDs []uuid.UUID, onlyWithCatch bool) ([]models.VesselUnload, error) {
	return s.vesselUnloads.ListByGearUnloadIDs(ctx, gearUnloadIDs, onlyWithCatch)
}

func (s *repoAnalyticsStore) ListVesselCatches(ctx context.Context, vesselUnloadIDs []uuid.UUID) ([]models.VesselCatch, error) {
	return s.vesselCatches.ListByVesselUnloadIDs(ctx, vesselUnloadIDs)
}

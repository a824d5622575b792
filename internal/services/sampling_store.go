package services

import (
	"context"
	"time"

	"nsap-service/internal/models"
	"nsap-service/internal/repository"

	"github.com/google/uuid"
)

// SamplingStore is the row-access surface of the sampling CRUD and rollup
// flows. One method per query or mutation the service issues; tests swap in
// an in-memory fake.
type SamplingStore interface {
	GetSampleDay(ctx context.Context, id uuid.UUID) (*models.SampleDay, error)
	ListSampleDaysByDateRange(ctx context.Context, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error)
	CreateSampleDay(ctx context.Context, day *models.SampleDay) error
	UpdateSampleDay(ctx context.Context, day *models.SampleDay) error
	DeleteSampleDay(ctx context.Context, id uuid.UUID) error

	GetGearUnload(ctx context.Context, id uuid.UUID) (*models.GearUnload, error)
	CreateGearUnload(ctx context.Context, unload *models.GearUnload) error
	UpdateGearUnload(ctx context.Context, unload *models.GearUnload) error
	DeleteGearUnload(ctx context.Context, id uuid.UUID) error
	UpdateGearUnloadRollup(ctx context.Context, id uuid.UUID, boatsCount int, catchTotalKg *float64) error
	ListGearUnloadsBySampleDay(ctx context.Context, sampleDayID uuid.UUID) ([]models.GearUnload, error)

	GetVesselUnload(ctx context.Context, id uuid.UUID) (*models.VesselUnload, error)
	CreateVesselUnload(ctx context.Context, unload *models.VesselUnload) error
	UpdateVesselUnload(ctx context.Context, unload *models.VesselUnload) error
	DeleteVesselUnload(ctx context.Context, id uuid.UUID) error
	UpdateVesselUnloadRollup(ctx context.Context, id uuid.UUID, catchTotalKg, catchSampleKg *float64) error
	ListVesselUnloadsByGearUnload(ctx context.Context, gearUnloadID uuid.UUID) ([]models.VesselUnload, error)

	GetVesselCatch(ctx context.Context, id uuid.UUID) (*models.VesselCatch, error)
	CreateVesselCatch(ctx context.Context, vc *models.VesselCatch) error
	UpdateVesselCatch(ctx context.Context, vc *models.VesselCatch) error
	DeleteVesselCatch(ctx context.Context, id uuid.UUID) error
	ListVesselCatchesByVesselUnload(ctx context.Context, vesselUnloadID uuid.UUID) ([]models.VesselCatch, error)

	GetSampleLength(ctx context.Context, id uuid.UUID) (*models.SampleLength, error)
	CreateSampleLength(ctx context.Context, sl *models.SampleLength) error
	DeleteSampleLength(ctx context.Context, id uuid.UUID) error
	ListSampleLengths(ctx context.Context, catchID uuid.UUID, limit, offset int) ([]models.SampleLength, error)
	CountSampleLengths(ctx context.Context, catchID uuid.UUID) (int, error)

	GetLandingCenter(ctx context.Context, id uuid.UUID) (*models.LandingCenter, error)
	GetGear(ctx context.Context, id uuid.UUID) (*models.FishingGear, error)
}

type repoSamplingStore struct {
	sampleDays    *repository.SampleDayRepository
	gearUnloads   *repository.GearUnloadRepository
	vesselUnloads *repository.VesselUnloadRepository
	vesselCatches *repository.VesselCatchRepository
	sampleLengths *repository.SampleLengthRepository
	reference     *repository.ReferenceRepository
}

func NewSamplingStore(
	sampleDays *repository.SampleDayRepository,
	gearUnloads *repository.GearUnloadRepository,
	vesselUnloads *repository.VesselUnloadRepository,
	vesselCatches *repository.VesselCatchRepository,
	sampleLengths *repository.SampleLengthRepository,
	reference *repository.ReferenceRepository,
) SamplingStore {
	return &repoSamplingStore{
		sampleDays:    sampleDays,
		gearUnloads:   gearUnloads,
		vesselUnloads: vesselUnloads,
		vesselCatches: vesselCatches,
		sampleLengths: sampleLengths,
		reference:     reference,
	}
}

func (s *repoSamplingStore) GetSampleDay(ctx context.Context, id uuid.UUID) (*models.SampleDay, error) {
	return s.sampleDays.GetByID(ctx, id)
}

func (s *repoSamplingStore) ListSampleDaysByDateRange(ctx context.Context, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error) {
	return s.sampleDays.ListByDateRange(ctx, from, to, regionID)
}

func (s *repoSamplingStore) CreateSampleDay(ctx context.Context, day *models.SampleDay) error {
	return s.sampleDays.Create(ctx, day)
}

func (s *repoSamplingStore) UpdateSampleDay(ctx context.Context, day *models.SampleDay) error {
	return s.sampleDays.Update(ctx, day)
}

func (s *repoSamplingStore) DeleteSampleDay(ctx context.Context, id uuid.UUID) error {
	return s.sampleDays.Delete(ctx, id)
}

func (s *repoSamplingStore) GetGearUnload(ctx context.Context, id uuid.UUID) (*models.GearUnload, error) {
	return s.gearUnloads.GetByID(ctx, id)
}

func (s *repoSamplingStore) CreateGearUnload(ctx context.Context, unload *models.GearUnload) error {
	return s.gearUnloads.Create(ctx, unload)
}

func (s *repoSamplingStore) UpdateGearUnload(ctx context.Context, unload *models.GearUnload) error {
	return s.gearUnloads.Update(ctx, unload)
}

func (s *repoSamplingStore) DeleteGearUnload(ctx context.Context, id uuid.UUID) error {
	return s.gearUnloads.Delete(ctx, id)
}

func (s *repoSamplingStore) UpdateGearUnloadRollup(ctx context.Context, id uuid.UUID, boatsCount int, catchTotalKg *float64) error {
	return s.gearUnloads.UpdateRollup(ctx, id, boatsCount, catchTotalKg)
}

func (s *repoSamplingStore) ListGearUnloadsBySampleDay(ctx context.Context, sampleDayID uuid.UUID) ([]models.GearUnload, error) {
	return s.gearUnloads.ListBySampleDayID(ctx, sampleDayID)
}

func (s *repoSamplingStore) GetVesselUnload(ctx context.Context, id uuid.UUID) (*models.VesselUnload, error) {
	return s.vesselUnloads.GetByID(ctx, id)
}

func (s *repoSamplingStore) CreateVesselUnload(ctx context.Context, unload *models.VesselUnload) error {
	return s.vesselUnloads.Create(ctx, unload)
}

func (s *repoSamplingStore) UpdateVesselUnload(ctx context.Context, unload *models.VesselUnload) error {
	return s.vesselUnloads.Update(ctx, unload)
}

func (s *repoSamplingStore) DeleteVesselUnload(ctx context.Context, id uuid.UUID) error {
	return s.vesselUnloads.Delete(ctx, id)
}

func (s *repoSamplingStore) UpdateVesselUnloadRollup(ctx context.Context, id uuid.UUID, catchTotalKg, catchSampleKg *float64) error {
	return s.vesselUnloads.UpdateRollup(ctx, id, catchTotalKg, catchSampleKg)
}

func (s *repoSamplingStore) ListVesselUnloadsByGearUnload(ctx context.Context, gearUnloadID uuid.UUID) ([]models.VesselUnload, error) {
	return s.vesselUnloads.ListByGearUnloadID(ctx, gearUnloadID)
}

func (s *repoSamplingStore) GetVesselCatch(ctx context.Context, id uuid.UUID) (*models.VesselCatch, error) {
	return s.vesselCatches.GetByID(ctx, id)
}

func (s *repoSamplingStore) CreateVesselCatch(ctx context.Context, vc *models.VesselCatch) error {
	return s.vesselCatches.Create(ctx, vc)
}

func (s *repoSamplingStore) UpdateVesselCatch(ctx context.Context, vc *models.VesselCatch) error {
	return s.vesselCatches.Update(ctx, vc)
}

func (s *repoSamplingStore) DeleteVesselCatch(ctx context.Context, id uuid.UUID) error {
	return s.vesselCatches.Delete(ctx, id)
}

func (s *repoSamplingStore) ListVesselCatchesByVesselUnload(ctx context.Context, vesselUnloadID uuid.UUID) ([]models.VesselCatch, error) {
	return s.vesselCatches.ListByVesselUnloadID(ctx, vesselUnloadID)
}

func (s *repoSamplingStore) GetSampleLength(ctx context.Context, id uuid.UUID) (*models.SampleLength, error) {
	return s.sampleLengths.GetByID(ctx, id)
}

func (s *repoSamplingStore) CreateSampleLength(ctx context.Context, sl *models.SampleLength) error {
	return s.sampleLengths.Create(ctx, sl)
}

func (s *repoSamplingStore) DeleteSampleLength(ctx context.Context, id uuid.UUID) error {
	return s.sampleLengths.Delete(ctx, id)
}

func (s *repoSamplingStore) ListSampleLengths(ctx context.Context, catchID uuid.UUID, limit, offset int) ([]models.SampleLength, error) {
	return s.sampleLengths.ListByCatchID(ctx, catchID, limit, offset)
}

func (s *repoSamplingStore) CountSampleLengths(ctx context.Context, catchID uuid.UUID) (int, error) {
	return s.sampleLengths.CountByCatchID(ctx, catchID)
}

func (s *repoSamplingStore) GetLandingCenter(ctx context.Context, id uuid.UUID) (*models.LandingCenter, error) {
	return s.reference.GetLandingCenterByID(ctx, id)
}

func (s *repoSamplingStore) GetGear(ctx context.Context, id uuid.UUID) (*models.FishingGear, error) {
	return s.reference.GetGearByID(ctx, id)
}

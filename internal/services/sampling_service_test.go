package services

import (
	"context"
	"testing"
	"time"

	"nsap-service/internal/cache"
	"nsap-service/internal/models"
	"nsap-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FAKE STORE
// ============================================================================

// fakeSamplingStore keeps the hierarchy in maps and mirrors the repository
// contract, including ErrNotFound on missing ids.
type fakeSamplingStore struct {
	sampleDays     map[uuid.UUID]models.SampleDay
	gearUnloads    map[uuid.UUID]models.GearUnload
	vesselUnloads  map[uuid.UUID]models.VesselUnload
	vesselCatches  map[uuid.UUID]models.VesselCatch
	sampleLengths  map[uuid.UUID]models.SampleLength
	landingCenters map[uuid.UUID]models.LandingCenter
	gears          map[uuid.UUID]models.FishingGear
}

func newFakeSamplingStore() *fakeSamplingStore {
	return &fakeSamplingStore{
		sampleDays:     map[uuid.UUID]models.SampleDay{},
		gearUnloads:    map[uuid.UUID]models.GearUnload{},
		vesselUnloads:  map[uuid.UUID]models.VesselUnload{},
		vesselCatches:  map[uuid.UUID]models.VesselCatch{},
		sampleLengths:  map[uuid.UUID]models.SampleLength{},
		landingCenters: map[uuid.UUID]models.LandingCenter{},
		gears:          map[uuid.UUID]models.FishingGear{},
	}
}

func (f *fakeSamplingStore) GetSampleDay(ctx context.Context, id uuid.UUID) (*models.SampleDay, error) {
	day, ok := f.sampleDays[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &day, nil
}

func (f *fakeSamplingStore) ListSampleDaysByDateRange(ctx context.Context, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error) {
	out := []models.SampleDay{}
	for _, day := range f.sampleDays {
		if from != nil && day.SamplingDate.Before(*from) {
			continue
		}
		if to != nil && day.SamplingDate.After(*to) {
			continue
		}
		if regionID != nil && day.RegionID != *regionID {
			continue
		}
		out = append(out, day)
	}
	return out, nil
}

func (f *fakeSamplingStore) CreateSampleDay(ctx context.Context, day *models.SampleDay) error {
	day.ID = uuid.New()
	f.sampleDays[day.ID] = *day
	return nil
}

func (f *fakeSamplingStore) UpdateSampleDay(ctx context.Context, day *models.SampleDay) error {
	if _, ok := f.sampleDays[day.ID]; !ok {
		return repository.ErrNotFound
	}
	f.sampleDays[day.ID] = *day
	return nil
}

func (f *fakeSamplingStore) DeleteSampleDay(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.sampleDays[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.sampleDays, id)
	return nil
}

func (f *fakeSamplingStore) GetGearUnload(ctx context.Context, id uuid.UUID) (*models.GearUnload, error) {
	gu, ok := f.gearUnloads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &gu, nil
}

func (f *fakeSamplingStore) CreateGearUnload(ctx context.Context, unload *models.GearUnload) error {
	unload.ID = uuid.New()
	f.gearUnloads[unload.ID] = *unload
	return nil
}

func (f *fakeSamplingStore) UpdateGearUnload(ctx context.Context, unload *models.GearUnload) error {
	if _, ok := f.gearUnloads[unload.ID]; !ok {
		return repository.ErrNotFound
	}
	f.gearUnloads[unload.ID] = *unload
	return nil
}

func (f *fakeSamplingStore) DeleteGearUnload(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.gearUnloads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.gearUnloads, id)
	return nil
}

func (f *fakeSamplingStore) UpdateGearUnloadRollup(ctx context.Context, id uuid.UUID, boatsCount int, catchTotalKg *float64) error {
	gu, ok := f.gearUnloads[id]
	if !ok {
		return repository.ErrNotFound
	}
	gu.BoatsCount = boatsCount
	gu.CatchTotalKg = catchTotalKg
	f.gearUnloads[id] = gu
	return nil
}

func (f *fakeSamplingStore) ListGearUnloadsBySampleDay(ctx context.Context, sampleDayID uuid.UUID) ([]models.GearUnload, error) {
	out := []models.GearUnload{}
	for _, gu := range f.gearUnloads {
		if gu.SampleDayID == sampleDayID {
			out = append(out, gu)
		}
	}
	return out, nil
}

func (f *fakeSamplingStore) GetVesselUnload(ctx context.Context, id uuid.UUID) (*models.VesselUnload, error) {
	vu, ok := f.vesselUnloads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &vu, nil
}

func (f *fakeSamplingStore) CreateVesselUnload(ctx context.Context, unload *models.VesselUnload) error {
	unload.ID = uuid.New()
	f.vesselUnloads[unload.ID] = *unload
	return nil
}

func (f *fakeSamplingStore) UpdateVesselUnload(ctx context.Context, unload *models.VesselUnload) error {
	if _, ok := f.vesselUnloads[unload.ID]; !ok {
		return repository.ErrNotFound
	}
	f.vesselUnloads[unload.ID] = *unload
	return nil
}

func (f *fakeSamplingStore) DeleteVesselUnload(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.vesselUnloads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.vesselUnloads, id)
	return nil
}

func (f *fakeSamplingStore) UpdateVesselUnloadRollup(ctx context.Context, id uuid.UUID, catchTotalKg, catchSampleKg *float64) error {
	vu, ok := f.vesselUnloads[id]
	if !ok {
		return repository.ErrNotFound
	}
	vu.CatchTotalKg = catchTotalKg
	vu.CatchSampleKg = catchSampleKg
	f.vesselUnloads[id] = vu
	return nil
}

func (f *fakeSamplingStore) ListVesselUnloadsByGearUnload(ctx context.Context, gearUnloadID uuid.UUID) ([]models.VesselUnload, error) {
	out := []models.VesselUnload{}
	for _, vu := range f.vesselUnloads {
		if vu.GearUnloadID == gearUnloadID {
			out = append(out, vu)
		}
	}
	return out, nil
}

func (f *fakeSamplingStore) GetVesselCatch(ctx context.Context, id uuid.UUID) (*models.VesselCatch, error) {
	vc, ok := f.vesselCatches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &vc, nil
}

func (f *fakeSamplingStore) CreateVesselCatch(ctx context.Context, vc *models.VesselCatch) error {
	vc.ID = uuid.New()
	f.vesselCatches[vc.ID] = *vc
	return nil
}

func (f *fakeSamplingStore) UpdateVesselCatch(ctx context.Context, vc *models.VesselCatch) error {
	if _, ok := f.vesselCatches[vc.ID]; !ok {
		return repository.ErrNotFound
	}
	f.vesselCatches[vc.ID] = *vc
	return nil
}

func (f *fakeSamplingStore) DeleteVesselCatch(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.vesselCatches[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.vesselCatches, id)
	return nil
}

func (f *fakeSamplingStore) ListVesselCatchesByVesselUnload(ctx context.Context, vesselUnloadID uuid.UUID) ([]models.VesselCatch, error) {
	out := []models.VesselCatch{}
	for _, vc := range f.vesselCatches {
		if vc.VesselUnloadID == vesselUnloadID {
			out = append(out, vc)
		}
	}
	return out, nil
}

func (f *fakeSamplingStore) GetSampleLength(ctx context.Context, id uuid.UUID) (*models.SampleLength, error) {
	sl, ok := f.sampleLengths[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sl, nil
}

func (f *fakeSamplingStore) CreateSampleLength(ctx context.Context, sl *models.SampleLength) error {
	sl.ID = uuid.New()
	f.sampleLengths[sl.ID] = *sl
	return nil
}

func (f *fakeSamplingStore) DeleteSampleLength(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.sampleLengths[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.sampleLengths, id)
	return nil
}

func (f *fakeSamplingStore) ListSampleLengths(ctx context.Context, catchID uuid.UUID, limit, offset int) ([]models.SampleLength, error) {
	all := []models.SampleLength{}
	for _, sl := range f.sampleLengths {
		if sl.CatchID == catchID {
			all = append(all, sl)
		}
	}
	if offset >= len(all) {
		return []models.SampleLength{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeSamplingStore) CountSampleLengths(ctx context.Context, catchID uuid.UUID) (int, error) {
	count := 0
	for _, sl := range f.sampleLengths {
		if sl.CatchID == catchID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSamplingStore) GetLandingCenter(ctx context.Context, id uuid.UUID) (*models.LandingCenter, error) {
	center, ok := f.landingCenters[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &center, nil
}

func (f *fakeSamplingStore) GetGear(ctx context.Context, id uuid.UUID) (*models.FishingGear, error) {
	gear, ok := f.gears[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &gear, nil
}

// ============================================================================
// FIXTURE
// ============================================================================

type samplingFixture struct {
	store      *fakeSamplingStore
	service    *SamplingService
	regionID   uuid.UUID
	centerID   uuid.UUID
	groundID   uuid.UUID
	gearID     uuid.UUID
	dayID      uuid.UUID
	gearUnload uuid.UUID
}

func newSamplingFixture(t *testing.T) *samplingFixture {
	t.Helper()
	store := newFakeSamplingStore()

	fix := &samplingFixture{
		store:    store,
		service:  NewSamplingService(store, cache.NewMemoryStore(), nil),
		regionID: uuid.New(),
		centerID: uuid.New(),
		groundID: uuid.New(),
		gearID:   uuid.New(),
	}
	effortUnit := uuid.New()
	store.landingCenters[fix.centerID] = models.LandingCenter{
		ID:         fix.centerID,
		RegionID:   fix.regionID,
		Name:       "Test Port",
		CenterType: models.CenterCommercial,
	}
	store.gears[fix.gearID] = models.FishingGear{
		ID:           fix.gearID,
		Description:  "Trawl",
		EffortUnitID: &effortUnit,
	}

	sd := models.SampleDay{
		SamplingDate:    day("2024-03-01"),
		RegionID:        fix.regionID,
		LandingCenterID: fix.centerID,
		FishingGroundID: fix.groundID,
		IsSamplingDay:   true,
	}
	require.NoError(t, store.CreateSampleDay(context.Background(), &sd))
	fix.dayID = sd.ID

	gu := models.GearUnload{SampleDayID: sd.ID, GearID: fix.gearID}
	require.NoError(t, store.CreateGearUnload(context.Background(), &gu))
	fix.gearUnload = gu.ID

	return fix
}

func (fix *samplingFixture) encoder() *models.Claims {
	return &models.Claims{UserID: uuid.New(), Role: models.RoleEncoder, RegionID: &fix.regionID}
}

func (fix *samplingFixture) admin() *models.Claims {
	return &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}
}

func (fix *samplingFixture) viewer() *models.Claims {
	return &models.Claims{UserID: uuid.New(), Role: models.RoleViewer, RegionID: &fix.regionID}
}

// ============================================================================
// SAMPLE DAY
// ============================================================================

func TestCreateSampleDay_DerivesSamplingFlag(t *testing.T) {
	fix := newSamplingFixture(t)

	// 2024-03-04 mod 3 == 1: commercial slot, commercial center.
	created, err := fix.service.CreateSampleDay(context.Background(), fix.encoder(), models.SampleDayInput{
		SamplingDate:    "2024-03-04",
		RegionID:        fix.regionID,
		LandingCenterID: fix.centerID,
		FishingGroundID: fix.groundID,
	})
	require.NoError(t, err)
	assert.True(t, created.IsSamplingDay)

	// 2024-03-05 is a municipal slot; the commercial center must get false.
	created, err = fix.service.CreateSampleDay(context.Background(), fix.encoder(), models.SampleDayInput{
		SamplingDate:    "2024-03-05",
		RegionID:        fix.regionID,
		LandingCenterID: fix.centerID,
		FishingGroundID: fix.groundID,
	})
	require.NoError(t, err)
	assert.False(t, created.IsSamplingDay)
}

func TestCreateSampleDay_ViewerDenied(t *testing.T) {
	fix := newSamplingFixture(t)

	_, err := fix.service.CreateSampleDay(context.Background(), fix.viewer(), models.SampleDayInput{
		SamplingDate:    "2024-03-04",
		RegionID:        fix.regionID,
		LandingCenterID: fix.centerID,
		FishingGroundID: fix.groundID,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateSampleDay_OtherRegionDenied(t *testing.T) {
	fix := newSamplingFixture(t)
	otherRegion := uuid.New()
	claims := &models.Claims{UserID: uuid.New(), Role: models.RoleEncoder, RegionID: &otherRegion}

	_, err := fix.service.CreateSampleDay(context.Background(), claims, models.SampleDayInput{
		SamplingDate:    "2024-03-04",
		RegionID:        fix.regionID,
		LandingCenterID: fix.centerID,
		FishingGroundID: fix.groundID,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateSampleDay_InvalidDate(t *testing.T) {
	fix := newSamplingFixture(t)

	_, err := fix.service.CreateSampleDay(context.Background(), fix.encoder(), models.SampleDayInput{
		SamplingDate:    "04-03-2024",
		RegionID:        fix.regionID,
		LandingCenterID: fix.centerID,
		FishingGroundID: fix.groundID,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteSampleDay_AdminOnly(t *testing.T) {
	fix := newSamplingFixture(t)

	err := fix.service.DeleteSampleDay(context.Background(), fix.encoder(), fix.dayID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, fix.service.DeleteSampleDay(context.Background(), fix.admin(), fix.dayID))
	_, err = fix.store.GetSampleDay(context.Background(), fix.dayID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// ============================================================================
// ROLLUPS
// ============================================================================

func TestVesselUnloadMutations_RecomputeGearUnloadRollup(t *testing.T) {
	fix := newSamplingFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	first, err := fix.service.CreateVesselUnload(ctx, claims, models.VesselUnloadInput{GearUnloadID: fix.gearUnload})
	require.NoError(t, err)
	second, err := fix.service.CreateVesselUnload(ctx, claims, models.VesselUnloadInput{GearUnloadID: fix.gearUnload})
	require.NoError(t, err)

	// Catches drive the vessel-unload sums, which cascade upward.
	_, err = fix.service.CreateVesselCatch(ctx, claims, models.VesselCatchInput{
		VesselUnloadID: first.ID, SpeciesID: uuid.New(), CatchKg: fptr(120.5),
	})
	require.NoError(t, err)
	_, err = fix.service.CreateVesselCatch(ctx, claims, models.VesselCatchInput{
		VesselUnloadID: second.ID, SpeciesID: uuid.New(), CatchKg: fptr(79.5),
	})
	require.NoError(t, err)

	gu, err := fix.store.GetGearUnload(ctx, fix.gearUnload)
	require.NoError(t, err)
	assert.Equal(t, 2, gu.BoatsCount)
	require.NotNil(t, gu.CatchTotalKg)
	assert.InDelta(t, 200.0, *gu.CatchTotalKg, 0.0001)

	// Deleting one unload drops the rollup to the survivor.
	require.NoError(t, fix.service.DeleteVesselUnload(ctx, claims, first.ID))
	gu, err = fix.store.GetGearUnload(ctx, fix.gearUnload)
	require.NoError(t, err)
	assert.Equal(t, 1, gu.BoatsCount)
	require.NotNil(t, gu.CatchTotalKg)
	assert.InDelta(t, 79.5, *gu.CatchTotalKg, 0.0001)
}

func TestRecomputeRollup_Idempotent(t *testing.T) {
	fix := newSamplingFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	unload, err := fix.service.CreateVesselUnload(ctx, claims, models.VesselUnloadInput{GearUnloadID: fix.gearUnload})
	require.NoError(t, err)
	_, err = fix.service.CreateVesselCatch(ctx, claims, models.VesselCatchInput{
		VesselUnloadID: unload.ID, SpeciesID: uuid.New(), CatchKg: fptr(42.0), SampleKg: fptr(10.0),
	})
	require.NoError(t, err)

	fix.service.RecomputeVesselUnloadRollup(ctx, unload.ID)
	fix.service.RecomputeVesselUnloadRollup(ctx, unload.ID)

	vu, err := fix.store.GetVesselUnload(ctx, unload.ID)
	require.NoError(t, err)
	require.NotNil(t, vu.CatchTotalKg)
	require.NotNil(t, vu.CatchSampleKg)
	assert.InDelta(t, 42.0, *vu.CatchTotalKg, 0.0001)
	assert.InDelta(t, 10.0, *vu.CatchSampleKg, 0.0001)

	gu, err := fix.store.GetGearUnload(ctx, fix.gearUnload)
	require.NoError(t, err)
	assert.Equal(t, 1, gu.BoatsCount)
	assert.InDelta(t, 42.0, *gu.CatchTotalKg, 0.0001)
}

func TestCatchMutation_CascadesToBothAncestors(t *testing.T) {
	fix := newSamplingFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	unload, err := fix.service.CreateVesselUnload(ctx, claims, models.VesselUnloadInput{GearUnloadID: fix.gearUnload})
	require.NoError(t, err)
	vc, err := fix.service.CreateVesselCatch(ctx, claims, models.VesselCatchInput{
		VesselUnloadID: unload.ID, SpeciesID: uuid.New(), CatchKg: fptr(30.0),
	})
	require.NoError(t, err)

	require.NoError(t, fix.service.DeleteVesselCatch(ctx, claims, vc.ID))

	vu, err := fix.store.GetVesselUnload(ctx, unload.ID)
	require.NoError(t, err)
	require.NotNil(t, vu.CatchTotalKg)
	assert.Equal(t, 0.0, *vu.CatchTotalKg)

	gu, err := fix.store.GetGearUnload(ctx, fix.gearUnload)
	require.NoError(t, err)
	require.NotNil(t, gu.CatchTotalKg)
	assert.Equal(t, 0.0, *gu.CatchTotalKg)
}

// ============================================================================
// EFFORT SLOTS
// ============================================================================

func TestCreateVesselUnload_RejectsUndefinedEffortSlot(t *testing.T) {
	fix := newSamplingFixture(t)

	// The fixture gear defines only slot 1.
	_, err := fix.service.CreateVesselUnload(context.Background(), fix.encoder(), models.VesselUnloadInput{
		GearUnloadID: fix.gearUnload,
		Effort1:      fptr(4),
		Effort2:      fptr(2),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateVesselUnload_StampsGearEffortUnits(t *testing.T) {
	fix := newSamplingFixture(t)

	unload, err := fix.service.CreateVesselUnload(context.Background(), fix.encoder(), models.VesselUnloadInput{
		GearUnloadID: fix.gearUnload,
		Effort1:      fptr(4),
	})
	require.NoError(t, err)

	gear := fix.store.gears[fix.gearID]
	assert.Equal(t, gear.EffortUnitID, unload.EffortUnit1)
	assert.Nil(t, unload.EffortUnit2)
	assert.Nil(t, unload.EffortUnit3)
}

func TestCreateVesselUnload_NegativeEffortRejected(t *testing.T) {
	fix := newSamplingFixture(t)

	_, err := fix.service.CreateVesselUnload(context.Background(), fix.encoder(), models.VesselUnloadInput{
		GearUnloadID: fix.gearUnload,
		Effort1:      fptr(-1),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

// ============================================================================
// SAMPLE LENGTH PAGING
// ============================================================================

func TestListSampleLengths_Paging(t *testing.T) {
	fix := newSamplingFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	unload, err := fix.service.CreateVesselUnload(ctx, claims, models.VesselUnloadInput{GearUnloadID: fix.gearUnload})
	require.NoError(t, err)
	vc, err := fix.service.CreateVesselCatch(ctx, claims, models.VesselCatchInput{
		VesselUnloadID: unload.ID, SpeciesID: uuid.New(), CatchKg: fptr(25.0),
	})
	require.NoError(t, err)

	for i := 0; i < 13; i++ {
		_, err = fix.service.CreateSampleLength(ctx, claims, models.SampleLengthInput{
			CatchID: vc.ID, LengthValue: 10.0 + float64(i),
		})
		require.NoError(t, err)
	}

	page, err := fix.service.ListSampleLengths(ctx, claims, vc.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 13, page.Total)
	assert.Equal(t, DefaultLengthPageSize, page.PageSize)
	assert.Len(t, page.Lengths, 10)

	page, err = fix.service.ListSampleLengths(ctx, claims, vc.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Lengths, 3)
}

func TestDeleteSampleLength_OtherRegionDenied(t *testing.T) {
	fix := newSamplingFixture(t)
	ctx := context.Background()

	unload, err := fix.service.CreateVesselUnload(ctx, fix.encoder(), models.VesselUnloadInput{GearUnloadID: fix.gearUnload})
	require.NoError(t, err)
	vc, err := fix.service.CreateVesselCatch(ctx, fix.encoder(), models.VesselCatchInput{
		VesselUnloadID: unload.ID, SpeciesID: uuid.New(), CatchKg: fptr(15.0),
	})
	require.NoError(t, err)
	sl, err := fix.service.CreateSampleLength(ctx, fix.encoder(), models.SampleLengthInput{
		CatchID: vc.ID, LengthValue: 21.5,
	})
	require.NoError(t, err)

	otherRegion := uuid.New()
	outsider := &models.Claims{UserID: uuid.New(), Role: models.RoleEncoder, RegionID: &otherRegion}
	err = fix.service.DeleteSampleLength(ctx, outsider, sl.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = fix.store.GetSampleLength(ctx, sl.ID)
	require.NoError(t, err)

	err = fix.service.DeleteSampleLength(ctx, fix.viewer(), sl.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, fix.service.DeleteSampleLength(ctx, fix.encoder(), sl.ID))
	_, err = fix.store.GetSampleLength(ctx, sl.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateSampleDay_RejectsForeignLandingCenter(t *testing.T) {
	fix := newSamplingFixture(t)
	ctx := context.Background()

	foreignCenter := uuid.New()
	fix.store.landingCenters[foreignCenter] = models.LandingCenter{
		ID:         foreignCenter,
		RegionID:   uuid.New(),
		Name:       "Foreign Port",
		CenterType: models.CenterMunicipal,
	}

	_, err := fix.service.UpdateSampleDay(ctx, fix.encoder(), fix.dayID, models.SampleDayInput{
		SamplingDate:    "2024-03-04",
		RegionID:        fix.regionID,
		LandingCenterID: foreignCenter,
		FishingGroundID: fix.groundID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// The stored day keeps its original landing center.
	day, err := fix.store.GetSampleDay(ctx, fix.dayID)
	require.NoError(t, err)
	assert.Equal(t, fix.centerID, day.LandingCenterID)
}

func TestCreateSampleLength_RejectsNonPositiveValue(t *testing.T) {
	fix := newSamplingFixture(t)

	_, err := fix.service.CreateSampleLength(context.Background(), fix.encoder(), models.SampleLengthInput{
		CatchID: uuid.New(), LengthValue: 0,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

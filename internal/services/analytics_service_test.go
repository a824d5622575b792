package services

import (
	"context"
	"testing"
	"time"

	"nsap-service/internal/cache"
	"nsap-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST FIXTURES
// ============================================================================

// fakeAnalyticsStore serves fixtures from memory and counts sample-day
// queries so tests can prove a cache hit skipped the chain entirely.
type fakeAnalyticsStore struct {
	days          []models.SampleDay
	gearUnloads   []models.GearUnload
	vesselUnloads []models.VesselUnload
	catches       []models.VesselCatch

	sampleDayQueries int
}

func (f *fakeAnalyticsStore) ListSampleDays(ctx context.Context, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error) {
	f.sampleDayQueries++
	out := []models.SampleDay{}
	for _, d := range f.days {
		if from != nil && d.SamplingDate.Before(*from) {
			continue
		}
		if to != nil && d.SamplingDate.After(*to) {
			continue
		}
		if regionID != nil && d.RegionID != *regionID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeAnalyticsStore) ListGearUnloads(ctx context.Context, sampleDayIDs []uuid.UUID) ([]models.GearUnload, error) {
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range sampleDayIDs {
		wanted[id] = struct{}{}
	}
	out := []models.GearUnload{}
	for _, gu := range f.gearUnloads {
		if _, ok := wanted[gu.SampleDayID]; ok {
			out = append(out, gu)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsStore) ListVesselUnloads(ctx context.Context, gearUnloadIDs []uuid.UUID, onlyWithCatch bool) ([]models.VesselUnload, error) {
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range gearUnloadIDs {
		wanted[id] = struct{}{}
	}
	out := []models.VesselUnload{}
	for _, vu := range f.vesselUnloads {
		if _, ok := wanted[vu.GearUnloadID]; !ok {
			continue
		}
		if onlyWithCatch && vu.CatchTotalKg == nil {
			continue
		}
		out = append(out, vu)
	}
	return out, nil
}

func (f *fakeAnalyticsStore) ListVesselCatches(ctx context.Context, vesselUnloadIDs []uuid.UUID) ([]models.VesselCatch, error) {
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range vesselUnloadIDs {
		wanted[id] = struct{}{}
	}
	out := []models.VesselCatch{}
	for _, vc := range f.catches {
		if _, ok := wanted[vc.VesselUnloadID]; !ok {
			continue
		}
		if vc.CatchKg == nil {
			continue
		}
		out = append(out, vc)
	}
	return out, nil
}

// staticNames resolves every id to a fixed name so folds are assertable.
type staticNames struct {
	species map[uuid.UUID]string
	regions map[uuid.UUID]string
	gears   map[uuid.UUID]string
	vessels map[uuid.UUID]string
}

func (n staticNames) lookup(m map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := m[id]; ok {
		return name
	}
	return UnknownName
}

func (n staticNames) SpeciesName(id uuid.UUID) string       { return n.lookup(n.species, id) }
func (n staticNames) RegionName(id uuid.UUID) string        { return n.lookup(n.regions, id) }
func (n staticNames) GearDescription(id uuid.UUID) string   { return n.lookup(n.gears, id) }
func (n staticNames) VesselName(id uuid.UUID) string        { return n.lookup(n.vessels, id) }
func (n staticNames) LandingCenterName(id uuid.UUID) string { return "Center " + id.String()[:4] }
func (n staticNames) FishingGroundName(id uuid.UUID) string { return "Ground " + id.String()[:4] }

func fptr(v float64) *float64 { return &v }

func uptr(v uuid.UUID) *uuid.UUID { return &v }

func adminScope(from, to string) models.AnalyticsScope {
	f, t := day(from), day(to)
	return models.AnalyticsScope{Role: models.RoleAdmin, FromDate: &f, ToDate: &t}
}

// buildFixture assembles a two-day hierarchy.
//
//	day1 (2024-03-01, region A): gear trawl, unloads 120.5 and 79.5
//	day2 (2024-03-02, region B): gear gillnet, unload 50.0
func buildFixture() (*fakeAnalyticsStore, staticNames) {
	regionA, regionB := uuid.New(), uuid.New()
	trawl, gillnet := uuid.New(), uuid.New()
	vessel1, vessel2 := uuid.New(), uuid.New()
	tuna, mackerel := uuid.New(), uuid.New()

	day1 := models.SampleDay{ID: uuid.New(), SamplingDate: day("2024-03-01"), RegionID: regionA}
	day2 := models.SampleDay{ID: uuid.New(), SamplingDate: day("2024-03-02"), RegionID: regionB}

	gu1 := models.GearUnload{ID: uuid.New(), SampleDayID: day1.ID, GearID: trawl, BoatsCount: 2, CatchTotalKg: fptr(200.0)}
	gu2 := models.GearUnload{ID: uuid.New(), SampleDayID: day2.ID, GearID: gillnet, BoatsCount: 1, CatchTotalKg: fptr(50.0)}

	vu1 := models.VesselUnload{ID: uuid.New(), GearUnloadID: gu1.ID, VesselID: uptr(vessel1), Effort1: fptr(4), CatchTotalKg: fptr(120.5)}
	vu2 := models.VesselUnload{ID: uuid.New(), GearUnloadID: gu1.ID, VesselID: uptr(vessel2), Effort1: fptr(6), CatchTotalKg: fptr(79.5)}
	vu3 := models.VesselUnload{ID: uuid.New(), GearUnloadID: gu2.ID, VesselID: uptr(vessel1), Effort1: fptr(2), CatchTotalKg: fptr(50.0)}

	store := &fakeAnalyticsStore{
		days:          []models.SampleDay{day1, day2},
		gearUnloads:   []models.GearUnload{gu1, gu2},
		vesselUnloads: []models.VesselUnload{vu1, vu2, vu3},
		catches: []models.VesselCatch{
			{ID: uuid.New(), VesselUnloadID: vu1.ID, SpeciesID: tuna, CatchKg: fptr(100.0)},
			{ID: uuid.New(), VesselUnloadID: vu1.ID, SpeciesID: mackerel, CatchKg: fptr(20.5)},
			{ID: uuid.New(), VesselUnloadID: vu2.ID, SpeciesID: tuna, CatchKg: fptr(79.5)},
			{ID: uuid.New(), VesselUnloadID: vu3.ID, SpeciesID: mackerel, CatchKg: fptr(50.0)},
		},
	}
	names := staticNames{
		species: map[uuid.UUID]string{tuna: "Tuna", mackerel: "Mackerel"},
		regions: map[uuid.UUID]string{regionA: "Region A", regionB: "Region B"},
		gears:   map[uuid.UUID]string{trawl: "Trawl", gillnet: "Gillnet"},
		vessels: map[uuid.UUID]string{vessel1: "FV Alpha", vessel2: "FV Beta"},
	}
	return store, names
}

func newTestAnalyticsService(store *fakeAnalyticsStore, names staticNames) *AnalyticsService {
	return NewAnalyticsService(store, names, cache.NewMemoryStore())
}

// ============================================================================
// CATCH TRENDS
// ============================================================================

func TestCatchTrends_DailyGrouping(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	series, err := service.CatchTrends(context.Background(), adminScope("2024-03-01", "2024-03-31"), models.PeriodDaily)
	require.NoError(t, err)

	assert.Equal(t, []string{"Mar 1, 2024", "Mar 2, 2024"}, series.Labels)
	assert.Equal(t, []float64{200.0, 50.0}, series.Values)
}

func TestCatchTrends_MonthlyGrouping(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	series, err := service.CatchTrends(context.Background(), adminScope("2024-03-01", "2024-03-31"), models.PeriodMonthly)
	require.NoError(t, err)

	assert.Equal(t, []string{"Mar 2024"}, series.Labels)
	assert.Equal(t, []float64{250.0}, series.Values)
}

func TestCatchTrends_WindowAdditivity(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)
	ctx := context.Background()

	full, err := service.CatchTrends(ctx, adminScope("2024-03-01", "2024-03-02"), models.PeriodDaily)
	require.NoError(t, err)
	first, err := service.CatchTrends(ctx, adminScope("2024-03-01", "2024-03-01"), models.PeriodDaily)
	require.NoError(t, err)
	second, err := service.CatchTrends(ctx, adminScope("2024-03-02", "2024-03-02"), models.PeriodDaily)
	require.NoError(t, err)

	sum := func(s models.LabeledSeries) float64 {
		var total float64
		for _, v := range s.Values {
			total += v
		}
		return total
	}
	assert.InDelta(t, sum(full), sum(first)+sum(second), 0.0001,
		"splitting the window must not change the total")
}

func TestCatchTrends_EmptyWindow(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	series, err := service.CatchTrends(context.Background(), adminScope("2030-01-01", "2030-01-31"), models.PeriodDaily)
	require.NoError(t, err)

	assert.NotNil(t, series.Labels)
	assert.NotNil(t, series.Values)
	assert.Empty(t, series.Labels)
	// No sample days means the child queries never run.
	assert.Equal(t, 1, store.sampleDayQueries)
}

func TestCatchTrends_InvalidPeriod(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	_, err := service.CatchTrends(context.Background(), adminScope("2024-03-01", "2024-03-31"), "weekly")
	assert.ErrorIs(t, err, ErrValidation)
}

// ============================================================================
// SCOPING
// ============================================================================

func TestRegionalComparison_NonAdminPinnedToOwnRegion(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	regionA := store.days[0].RegionID
	regionB := store.days[1].RegionID
	from, to := day("2024-03-01"), day("2024-03-31")
	scope := models.AnalyticsScope{
		Role:     models.RoleEncoder,
		RegionID: &regionA,
		FromDate: &from,
		ToDate:   &to,
		// A requested filter for another region must be ignored.
		FilterRegionID: &regionB,
	}

	series, err := service.RegionalComparison(context.Background(), scope)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region A"}, series.Labels)
	assert.Equal(t, []float64{200.0}, series.Values)
}

func TestGearAnalysis_UsesGearUnloadRollups(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	series, err := service.GearAnalysis(context.Background(), adminScope("2024-03-01", "2024-03-31"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Trawl", "Gillnet"}, series.Labels)
	assert.Equal(t, []float64{200.0, 50.0}, series.Values)
}

// ============================================================================
// RANKINGS
// ============================================================================

func TestTopSpecies_PercentagesAgainstFullTotal(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	// Limit 1 truncates Mackerel, but the percentage base stays the full
	// filtered total (250.0).
	result, err := service.TopSpecies(context.Background(), adminScope("2024-03-01", "2024-03-31"), 1)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Tuna", result.Entries[0].Name)
	assert.InDelta(t, 179.5, result.Entries[0].Value, 0.0001)
	assert.InDelta(t, 71.8, result.Entries[0].Percentage, 0.0001)
	assert.InDelta(t, 250.0, result.Total, 0.0001)
}

func TestTopSpecies_FullSetSumsToHundred(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	result, err := service.TopSpecies(context.Background(), adminScope("2024-03-01", "2024-03-31"), 10)
	require.NoError(t, err)

	var pctSum float64
	for _, e := range result.Entries {
		pctSum += e.Percentage
	}
	assert.InDelta(t, 100.0, pctSum, 0.2, "untruncated percentages must sum to 100 within rounding")
}

func TestTopVessels_DescendingOrder(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	result, err := service.TopVessels(context.Background(), adminScope("2024-03-01", "2024-03-31"), 10)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "FV Alpha", result.Entries[0].Name)
	assert.InDelta(t, 170.5, result.Entries[0].Value, 0.0001)
	assert.Equal(t, "FV Beta", result.Entries[1].Name)
	assert.InDelta(t, 79.5, result.Entries[1].Value, 0.0001)
}

// ============================================================================
// EFFICIENCY
// ============================================================================

func TestEfficiencyMetrics_ZeroDenominators(t *testing.T) {
	// Unloads with no vessel, no effort, in a window with no days at all:
	// every ratio must be exactly zero, never NaN or Inf.
	store := &fakeAnalyticsStore{}
	service := newTestAnalyticsService(store, staticNames{})

	metrics, err := service.EfficiencyMetrics(context.Background(), adminScope("2024-03-01", "2024-03-31"), models.EfficiencyFilters{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, metrics.CatchPerVessel)
	assert.Equal(t, 0.0, metrics.CatchPerEffort)
	assert.Equal(t, 0.0, metrics.CatchPerSampleDay)
	assert.Equal(t, 0.0, metrics.TotalCatchKg)
	assert.Empty(t, metrics.CatchPerGear)
}

func TestEfficiencyMetrics_ZeroEffortYieldsZeroRatio(t *testing.T) {
	store, names := buildFixture()
	for i := range store.vesselUnloads {
		store.vesselUnloads[i].Effort1 = nil
	}
	service := newTestAnalyticsService(store, names)

	metrics, err := service.EfficiencyMetrics(context.Background(), adminScope("2024-03-01", "2024-03-31"), models.EfficiencyFilters{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, metrics.CatchPerEffort)
	assert.InDelta(t, 250.0, metrics.TotalCatchKg, 0.0001)
}

func TestEfficiencyMetrics_GearFilter(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	trawl := store.gearUnloads[0].GearID
	metrics, err := service.EfficiencyMetrics(context.Background(), adminScope("2024-03-01", "2024-03-31"), models.EfficiencyFilters{GearID: &trawl})
	require.NoError(t, err)

	assert.InDelta(t, 200.0, metrics.TotalCatchKg, 0.0001)
	require.Len(t, metrics.CatchPerGear, 1)
	assert.Equal(t, "Trawl", metrics.CatchPerGear[0].Gear)
	assert.Equal(t, 2, metrics.CatchPerGear[0].UnloadRecords)
	assert.InDelta(t, 100.0, metrics.CatchPerGear[0].CatchPerHaul, 0.0001)
}

// ============================================================================
// COMPARISON
// ============================================================================

func TestPreviousPeriod_FebruaryWindow(t *testing.T) {
	prevFrom, prevTo := previousPeriod(day("2024-02-01"), day("2024-02-29"))

	assert.Equal(t, day("2024-01-02"), prevFrom)
	assert.Equal(t, day("2024-01-30"), prevTo)
}

func TestComparisonStats_RequiresWindow(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	_, err := service.ComparisonStats(context.Background(), models.AnalyticsScope{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComparisonStats_ZeroPreviousGuard(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)

	// Previous window (mid-Jan) has no data; change percent must stay 0.
	stats, err := service.ComparisonStats(context.Background(), adminScope("2024-03-01", "2024-03-31"))
	require.NoError(t, err)

	assert.InDelta(t, 250.0, stats.TotalCatch.Current, 0.0001)
	assert.Equal(t, 0.0, stats.TotalCatch.Previous)
	assert.Equal(t, 0.0, stats.TotalCatch.ChangePercent)
	assert.InDelta(t, 250.0, stats.TotalCatch.Change, 0.0001)
}

// ============================================================================
// RESULT CACHE
// ============================================================================

func TestCatchTrends_CacheHitSkipsQueries(t *testing.T) {
	store, names := buildFixture()
	service := newTestAnalyticsService(store, names)
	ctx := context.Background()
	scope := adminScope("2024-03-01", "2024-03-31")

	first, err := service.CatchTrends(ctx, scope, models.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, store.sampleDayQueries)

	second, err := service.CatchTrends(ctx, scope, models.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, store.sampleDayQueries, "second identical call must be served from cache")
	assert.Equal(t, first, second)

	// Any argument change is a different key and misses.
	_, err = service.CatchTrends(ctx, scope, models.PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, 2, store.sampleDayQueries)
}

func TestInvalidateAnalyticsCache_ForcesRequery(t *testing.T) {
	store, names := buildFixture()
	memory := cache.NewMemoryStore()
	service := NewAnalyticsService(store, names, memory)
	ctx := context.Background()
	scope := adminScope("2024-03-01", "2024-03-31")

	_, err := service.CatchTrends(ctx, scope, models.PeriodDaily)
	require.NoError(t, err)
	require.NoError(t, InvalidateAnalyticsCache(ctx, memory))

	_, err = service.CatchTrends(ctx, scope, models.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 2, store.sampleDayQueries, "invalidation must force a fresh chain")
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"nsap-service/internal/cache"
	"nsap-service/internal/models"

	"github.com/google/uuid"
)

// Aggregation method names double as cache-key prefixes, so a mutation can
// drop every cached variant of an operation in one pass.
const (
	methodCatchTrends         = "catch_trends"
	methodSpeciesDistribution = "species_distribution"
	methodRegionalComparison  = "regional_comparison"
	methodGearAnalysis        = "gear_analysis"
	methodTopVessels          = "top_vessels"
	methodTopSpecies          = "top_species"
	methodTopLandingCenters   = "top_landing_centers"
	methodTopFishingGrounds   = "top_fishing_grounds"
	methodEfficiencyMetrics   = "efficiency_metrics"
	methodComparisonStats     = "comparison_stats"
)

var analyticsMethods = []string{
	methodCatchTrends,
	methodSpeciesDistribution,
	methodRegionalComparison,
	methodGearAnalysis,
	methodTopVessels,
	methodTopSpecies,
	methodTopLandingCenters,
	methodTopFishingGrounds,
	methodEfficiencyMetrics,
	methodComparisonStats,
}

// InvalidateAnalyticsCache drops every cached aggregation result. Called
// after any sampling-hierarchy mutation; all operations read the same
// underlying rows, so all of them are affected.
func InvalidateAnalyticsCache(ctx context.Context, store cache.Store) error {
	for _, method := range analyticsMethods {
		if err := store.DeleteByPrefix(ctx, cache.MethodPrefix(method)); err != nil {
			return fmt.Errorf("invalidate %s: %w", method, err)
		}
	}
	return nil
}

// AnalyticsService folds the sample-day hierarchy into chart-ready series
// and rankings. Every operation follows the same chain: sample days by date
// window and visibility region (short-circuit on empty), then children by
// parent-id sets, then an in-memory join and fold. Any query failure aborts
// the whole operation with no partial result.
type AnalyticsService struct {
	store AnalyticsStore
	names NameResolver
	cache cache.Store
}

func NewAnalyticsService(store AnalyticsStore, names NameResolver, cacheStore cache.Store) *AnalyticsService {
	return &AnalyticsService{store: store, names: names, cache: cacheStore}
}

// effectiveRegion resolves the visibility predicate: non-admins are pinned
// to their own region, admins may narrow to a requested region.
func effectiveRegion(scope models.AnalyticsScope) *uuid.UUID {
	if scope.Role.IsAdmin() {
		return scope.FilterRegionID
	}
	return scope.RegionID
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

func uuidPtrKey(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}

func scopeKeyArgs(scope models.AnalyticsScope) []any {
	return []any{
		string(scope.Role),
		uuidPtrKey(effectiveRegion(scope)),
		formatDatePtr(scope.FromDate),
		formatDatePtr(scope.ToDate),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// unloadChain is the joined result of the first three chain queries.
type unloadChain struct {
	days           []models.SampleDay
	dayByID        map[uuid.UUID]models.SampleDay
	gearUnloads    []models.GearUnload
	gearUnloadByID map[uuid.UUID]models.GearUnload
	vesselUnloads  []models.VesselUnload
}

func (c *unloadChain) empty() bool {
	return len(c.days) == 0
}

// sampleDayOf walks a vessel unload back to its sample day through the
// in-memory id maps built from the chain queries.
func (c *unloadChain) sampleDayOf(vu models.VesselUnload) (models.SampleDay, bool) {
	gu, ok := c.gearUnloadByID[vu.GearUnloadID]
	if !ok {
		return models.SampleDay{}, false
	}
	day, ok := c.dayByID[gu.SampleDayID]
	return day, ok
}

func (s *AnalyticsService) fetchUnloadChain(ctx context.Context, scope models.AnalyticsScope) (*unloadChain, error) {
	days, err := s.store.ListSampleDays(ctx, scope.FromDate, scope.ToDate, effectiveRegion(scope))
	if err != nil {
		return nil, err
	}

	chain := &unloadChain{
		days:           days,
		dayByID:        make(map[uuid.UUID]models.SampleDay, len(days)),
		gearUnloadByID: map[uuid.UUID]models.GearUnload{},
	}
	if len(days) == 0 {
		// Required short-circuit: no sample days means no child queries.
		return chain, nil
	}

	dayIDs := make([]uuid.UUID, len(days))
	for i, day := range days {
		dayIDs[i] = day.ID
		chain.dayByID[day.ID] = day
	}

	gearUnloads, err := s.store.ListGearUnloads(ctx, dayIDs)
	if err != nil {
		return nil, err
	}
	chain.gearUnloads = gearUnloads

	gearUnloadIDs := make([]uuid.UUID, len(gearUnloads))
	for i, gu := range gearUnloads {
		gearUnloadIDs[i] = gu.ID
		chain.gearUnloadByID[gu.ID] = gu
	}

	vesselUnloads, err := s.store.ListVesselUnloads(ctx, gearUnloadIDs, true)
	if err != nil {
		return nil, err
	}
	chain.vesselUnloads = vesselUnloads

	return chain, nil
}

func (s *AnalyticsService) fetchCatches(ctx context.Context, chain *unloadChain) ([]models.VesselCatch, error) {
	if len(chain.vesselUnloads) == 0 {
		return []models.VesselCatch{}, nil
	}
	unloadIDs := make([]uuid.UUID, len(chain.vesselUnloads))
	for i, vu := range chain.vesselUnloads {
		unloadIDs[i] = vu.ID
	}
	return s.store.ListVesselCatches(ctx, unloadIDs)
}

// ============================================================================
// CATCH TRENDS
// ============================================================================

// CatchTrends sums vessel-unload catch by day or calendar month of the
// parent sample day. Group keys sort lexicographically, which for
// YYYY-MM-DD / YYYY-MM is chronological.
func (s *AnalyticsService) CatchTrends(ctx context.Context, scope models.AnalyticsScope, period models.AggregationPeriod) (models.LabeledSeries, error) {
	if !period.IsValid() {
		return models.EmptySeries(), fmt.Errorf("%w: invalid aggregation period %q", ErrValidation, period)
	}

	key := cache.Key(methodCatchTrends, append(scopeKeyArgs(scope), string(period))...)
	var cached models.LabeledSeries
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	chain, err := s.fetchUnloadChain(ctx, scope)
	if err != nil {
		return models.EmptySeries(), err
	}

	series := s.foldCatchTrends(chain, period)
	s.cacheSet(ctx, key, series, cache.DefaultTTL)
	return series, nil
}

func (s *AnalyticsService) foldCatchTrends(chain *unloadChain, period models.AggregationPeriod) models.LabeledSeries {
	if chain.empty() {
		return models.EmptySeries()
	}

	sums := map[string]float64{}
	for _, vu := range chain.vesselUnloads {
		day, ok := chain.sampleDayOf(vu)
		if !ok {
			continue
		}
		groupKey := day.SamplingDate.Format("2006-01-02")
		if period == models.PeriodMonthly {
			groupKey = day.SamplingDate.Format("2006-01")
		}
		sums[groupKey] += models.Float64Value(vu.CatchTotalKg)
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := models.EmptySeries()
	for _, k := range keys {
		label := formatTrendLabel(k, period)
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, sums[k])
	}
	return series
}

func formatTrendLabel(groupKey string, period models.AggregationPeriod) string {
	if period == models.PeriodMonthly {
		t, err := time.Parse("2006-01", groupKey)
		if err != nil {
			return groupKey
		}
		return t.Format("Jan 2006")
	}
	t, err := time.Parse("2006-01-02", groupKey)
	if err != nil {
		return groupKey
	}
	return t.Format("Jan 2, 2006")
}

// ============================================================================
// DISTRIBUTIONS
// ============================================================================

// SpeciesDistribution groups catch weight by species name, descending,
// truncated to the ten largest.
func (s *AnalyticsService) SpeciesDistribution(ctx context.Context, scope models.AnalyticsScope) (models.LabeledSeries, error) {
	key := cache.Key(methodSpeciesDistribution, scopeKeyArgs(scope)...)
	var cached models.LabeledSeries
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	chain, err := s.fetchUnloadChain(ctx, scope)
	if err != nil {
		return models.EmptySeries(), err
	}
	if chain.empty() {
		series := models.EmptySeries()
		s.cacheSet(ctx, key, series, cache.ShortTTL)
		return series, nil
	}

	catches, err := s.fetchCatches(ctx, chain)
	if err != nil {
		return models.EmptySeries(), err
	}

	sums := map[string]float64{}
	for _, vc := range catches {
		sums[s.names.SpeciesName(vc.SpeciesID)] += models.Float64Value(vc.CatchKg)
	}

	series := foldDescendingSeries(sums, 10)
	s.cacheSet(ctx, key, series, cache.ShortTTL)
	return series, nil
}

// RegionalComparison groups vessel-unload catch by the sample day's region.
func (s *AnalyticsService) RegionalComparison(ctx context.Context, scope models.AnalyticsScope) (models.LabeledSeries, error) {
	key := cache.Key(methodRegionalComparison, scopeKeyArgs(scope)...)
	var cached models.LabeledSeries
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	chain, err := s.fetchUnloadChain(ctx, scope)
	if err != nil {
		return models.EmptySeries(), err
	}

	sums := map[string]float64{}
	for _, vu := range chain.vesselUnloads {
		day, ok := chain.sampleDayOf(vu)
		if !ok {
			continue
		}
		sums[s.names.RegionName(day.RegionID)] += models.Float64Value(vu.CatchTotalKg)
	}

	series := foldDescendingSeries(sums, 0)
	s.cacheSet(ctx, key, series, cache.DefaultTTL)
	return series, nil
}

// GearAnalysis groups gear-unload catch totals by gear description,
// descending, untruncated. The gear-unload rollup is the source here, so
// the chain stops at level two.
func (s *AnalyticsService) GearAnalysis(ctx context.Context, scope models.AnalyticsScope) (models.LabeledSeries, error) {
	key := cache.Key(methodGearAnalysis, scopeKeyArgs(scope)...)
	var cached models.LabeledSeries
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	days, err := s.store.ListSampleDays(ctx, scope.FromDate, scope.ToDate, effectiveRegion(scope))
	if err != nil {
		return models.EmptySeries(), err
	}
	if len(days) == 0 {
		series := models.EmptySeries()
		s.cacheSet(ctx, key, series, cache.DefaultTTL)
		return series, nil
	}

	dayIDs := make([]uuid.UUID, len(days))
	for i, day := range days {
		dayIDs[i] = day.ID
	}
	gearUnloads, err := s.store.ListGearUnloads(ctx, dayIDs)
	if err != nil {
		return models.EmptySeries(), err
	}

	sums := map[string]float64{}
	for _, gu := range gearUnloads {
		sums[s.names.GearDescription(gu.GearID)] += models.Float64Value(gu.CatchTotalKg)
	}

	series := foldDescendingSeries(sums, 0)
	s.cacheSet(ctx, key, series, cache.DefaultTTL)
	return series, nil
}

// foldDescendingSeries orders groups by summed value descending (name
// ascending on ties, keeping output deterministic) and truncates to limit
// when limit > 0.
func foldDescendingSeries(sums map[string]float64, limit int) models.LabeledSeries {
	type entry struct {
		name  string
		value float64
	}
	entries := make([]entry, 0, len(sums))
	for name, value := range sums {
		entries = append(entries, entry{name, value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].name < entries[j].name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	series := models.EmptySeries()
	for _, e := range entries {
		series.Labels = append(series.Labels, e.name)
		series.Values = append(series.Values, e.value)
	}
	return series
}

// ============================================================================
// TOP-N RANKINGS
// ============================================================================

const DefaultRankingLimit = 10

// TopVessels ranks vessels by unloaded catch weight.
func (s *AnalyticsService) TopVessels(ctx context.Context, scope models.AnalyticsScope, limit int) (models.RankingResult, error) {
	return s.rankVesselUnloads(ctx, scope, methodTopVessels, limit, func(vu models.VesselUnload, chain *unloadChain) (string, bool) {
		if vu.VesselID == nil {
			return "", false
		}
		return s.names.VesselName(*vu.VesselID), true
	})
}

// TopLandingCenters ranks landing centers by unloaded catch weight.
func (s *AnalyticsService) TopLandingCenters(ctx context.Context, scope models.AnalyticsScope, limit int) (models.RankingResult, error) {
	return s.rankVesselUnloads(ctx, scope, methodTopLandingCenters, limit, func(vu models.VesselUnload, chain *unloadChain) (string, bool) {
		day, ok := chain.sampleDayOf(vu)
		if !ok {
			return "", false
		}
		return s.names.LandingCenterName(day.LandingCenterID), true
	})
}

// TopFishingGrounds ranks fishing grounds by unloaded catch weight.
func (s *AnalyticsService) TopFishingGrounds(ctx context.Context, scope models.AnalyticsScope, limit int) (models.RankingResult, error) {
	return s.rankVesselUnloads(ctx, scope, methodTopFishingGrounds, limit, func(vu models.VesselUnload, chain *unloadChain) (string, bool) {
		day, ok := chain.sampleDayOf(vu)
		if !ok {
			return "", false
		}
		return s.names.FishingGroundName(day.FishingGroundID), true
	})
}

func (s *AnalyticsService) rankVesselUnloads(ctx context.Context, scope models.AnalyticsScope, method string, limit int, dimension func(models.VesselUnload, *unloadChain) (string, bool)) (models.RankingResult, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	key := cache.Key(method, append(scopeKeyArgs(scope), limit)...)
	var cached models.RankingResult
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	chain, err := s.fetchUnloadChain(ctx, scope)
	if err != nil {
		return models.EmptyRanking(), err
	}

	sums := map[string]float64{}
	for _, vu := range chain.vesselUnloads {
		name, ok := dimension(vu, chain)
		if !ok {
			continue
		}
		sums[name] += models.Float64Value(vu.CatchTotalKg)
	}

	result := foldRanking(sums, limit)
	s.cacheSet(ctx, key, result, cache.DefaultTTL)
	return result, nil
}

// TopSpecies ranks species by catch weight; the only ranking that needs
// the species-level chain link.
func (s *AnalyticsService) TopSpecies(ctx context.Context, scope models.AnalyticsScope, limit int) (models.RankingResult, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	key := cache.Key(methodTopSpecies, append(scopeKeyArgs(scope), limit)...)
	var cached models.RankingResult
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	chain, err := s.fetchUnloadChain(ctx, scope)
	if err != nil {
		return models.EmptyRanking(), err
	}
	if chain.empty() {
		result := models.EmptyRanking()
		s.cacheSet(ctx, key, result, cache.DefaultTTL)
		return result, nil
	}

	catches, err := s.fetchCatches(ctx, chain)
	if err != nil {
		return models.EmptyRanking(), err
	}

	sums := map[string]float64{}
	for _, vc := range catches {
		sums[s.names.SpeciesName(vc.SpeciesID)] += models.Float64Value(vc.CatchKg)
	}

	result := foldRanking(sums, limit)
	s.cacheSet(ctx, key, result, cache.DefaultTTL)
	return result, nil
}

// foldRanking computes each group's share of the full filtered total
// before truncating, so the complete distribution always sums to 100 and
// the returned top-N sums to at most 100.
func foldRanking(sums map[string]float64, limit int) models.RankingResult {
	var total float64
	for _, v := range sums {
		total += v
	}

	type entry struct {
		name  string
		value float64
	}
	entries := make([]entry, 0, len(sums))
	for name, value := range sums {
		entries = append(entries, entry{name, value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	result := models.RankingResult{Entries: []models.RankedEntry{}, Total: total}
	for _, e := range entries {
		pct := 0.0
		if total > 0 {
			pct = round1(e.value / total * 100)
		}
		result.Entries = append(result.Entries, models.RankedEntry{
			Name:       e.name,
			Value:      e.value,
			Percentage: pct,
		})
	}
	return result
}

// ============================================================================
// EFFICIENCY METRICS
// ============================================================================

// EfficiencyMetrics computes catch-per-X ratios under optional gear,
// effort-unit and vessel filters. Every ratio with a zero denominator is
// exactly 0, never NaN or Inf.
func (s *AnalyticsService) EfficiencyMetrics(ctx context.Context, scope models.AnalyticsScope, filters models.EfficiencyFilters) (models.EfficiencyMetrics, error) {
	key := cache.Key(methodEfficiencyMetrics, append(scopeKeyArgs(scope),
		uuidPtrKey(filters.GearID), uuidPtrKey(filters.EffortUnitID), uuidPtrKey(filters.VesselID))...)
	var cached models.EfficiencyMetrics
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	empty := models.EfficiencyMetrics{CatchPerGear: []models.GearEfficiency{}}

	chain, err := s.fetchUnloadChain(ctx, scope)
	if err != nil {
		return empty, err
	}

	metrics := s.foldEfficiency(chain, filters)
	s.cacheSet(ctx, key, metrics, cache.DefaultTTL)
	return metrics, nil
}

func (s *AnalyticsService) foldEfficiency(chain *unloadChain, filters models.EfficiencyFilters) models.EfficiencyMetrics {
	type gearAgg struct {
		total float64
		rows  int
	}

	var totalCatch, totalEffort float64
	vesselSeen := map[uuid.UUID]struct{}{}
	daySeen := map[uuid.UUID]struct{}{}
	gearAggs := map[string]*gearAgg{}

	for _, vu := range chain.vesselUnloads {
		gu, ok := chain.gearUnloadByID[vu.GearUnloadID]
		if !ok {
			continue
		}
		if filters.GearID != nil && gu.GearID != *filters.GearID {
			continue
		}
		if filters.VesselID != nil && (vu.VesselID == nil || *vu.VesselID != *filters.VesselID) {
			continue
		}
		effort, unitMatched := effortForUnit(vu, filters.EffortUnitID)
		if filters.EffortUnitID != nil && !unitMatched {
			continue
		}

		catch := models.Float64Value(vu.CatchTotalKg)
		totalCatch += catch
		totalEffort += effort
		if vu.VesselID != nil {
			vesselSeen[*vu.VesselID] = struct{}{}
		}
		daySeen[gu.SampleDayID] = struct{}{}

		gearName := s.names.GearDescription(gu.GearID)
		agg, ok := gearAggs[gearName]
		if !ok {
			agg = &gearAgg{}
			gearAggs[gearName] = agg
		}
		agg.total += catch
		agg.rows++
	}

	metrics := models.EfficiencyMetrics{
		CatchPerGear: []models.GearEfficiency{},
		TotalCatchKg: totalCatch,
	}
	metrics.CatchPerVessel = safeRatio(totalCatch, float64(len(vesselSeen)))
	metrics.CatchPerEffort = safeRatio(totalCatch, totalEffort)
	metrics.CatchPerSampleDay = safeRatio(totalCatch, float64(len(daySeen)))

	gearNames := make([]string, 0, len(gearAggs))
	for name := range gearAggs {
		gearNames = append(gearNames, name)
	}
	sort.Strings(gearNames)
	for _, name := range gearNames {
		agg := gearAggs[name]
		metrics.CatchPerGear = append(metrics.CatchPerGear, models.GearEfficiency{
			Gear:          name,
			CatchPerHaul:  safeRatio(agg.total, float64(agg.rows)),
			TotalCatchKg:  agg.total,
			UnloadRecords: agg.rows,
		})
	}
	return metrics
}

// effortForUnit picks the effort value matching the requested unit slot;
// with no unit filter, slot 1 (the gear's mandatory unit) is used.
func effortForUnit(vu models.VesselUnload, unitID *uuid.UUID) (float64, bool) {
	if unitID == nil {
		return models.Float64Value(vu.Effort1), true
	}
	switch {
	case vu.EffortUnit1 != nil && *vu.EffortUnit1 == *unitID:
		return models.Float64Value(vu.Effort1), true
	case vu.EffortUnit2 != nil && *vu.EffortUnit2 == *unitID:
		return models.Float64Value(vu.Effort2), true
	case vu.EffortUnit3 != nil && *vu.EffortUnit3 == *unitID:
		return models.Float64Value(vu.Effort3), true
	}
	return 0, false
}

func safeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// ============================================================================
// COMPARISON STATISTICS
// ============================================================================

// periodStats is one window's worth of comparison inputs.
type periodStats struct {
	totalCatch     float64
	sampleDayCount int
	vesselCount    int
}

// ComparisonStats compares the current window against the equal-length
// immediately preceding one.
func (s *AnalyticsService) ComparisonStats(ctx context.Context, scope models.AnalyticsScope) (models.ComparisonStats, error) {
	if scope.FromDate == nil || scope.ToDate == nil {
		return models.ComparisonStats{}, fmt.Errorf("%w: comparison requires both from and to dates", ErrValidation)
	}

	key := cache.Key(methodComparisonStats, scopeKeyArgs(scope)...)
	var cached models.ComparisonStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	from, to := *scope.FromDate, *scope.ToDate
	prevFrom, prevTo := previousPeriod(from, to)

	current, err := s.periodStatsFor(ctx, scope, from, to)
	if err != nil {
		return models.ComparisonStats{}, err
	}
	previous, err := s.periodStatsFor(ctx, scope, prevFrom, prevTo)
	if err != nil {
		return models.ComparisonStats{}, err
	}

	stats := models.ComparisonStats{
		CurrentFrom:  from,
		CurrentTo:    to,
		PreviousFrom: prevFrom,
		PreviousTo:   prevTo,
		TotalCatch:   compareMetric(current.totalCatch, previous.totalCatch),
		AvgCatchPerSampleDay: compareMetric(
			safeRatio(current.totalCatch, float64(current.sampleDayCount)),
			safeRatio(previous.totalCatch, float64(previous.sampleDayCount)),
		),
		VesselCount: compareMetric(float64(current.vesselCount), float64(previous.vesselCount)),
	}
	s.cacheSet(ctx, key, stats, cache.DefaultTTL)
	return stats, nil
}

// previousPeriod shifts both bounds back by the inclusive window length
// plus one day. For [2024-02-01, 2024-02-29] this yields
// [2024-01-02, 2024-01-30].
func previousPeriod(from, to time.Time) (time.Time, time.Time) {
	lengthDays := int(to.Sub(from).Hours()/24) + 1
	shift := -(lengthDays + 1)
	return from.AddDate(0, 0, shift), to.AddDate(0, 0, shift)
}

func (s *AnalyticsService) periodStatsFor(ctx context.Context, scope models.AnalyticsScope, from, to time.Time) (periodStats, error) {
	windowScope := scope
	windowScope.FromDate = &from
	windowScope.ToDate = &to

	chain, err := s.fetchUnloadChain(ctx, windowScope)
	if err != nil {
		return periodStats{}, err
	}

	stats := periodStats{sampleDayCount: len(chain.days)}
	vesselSeen := map[uuid.UUID]struct{}{}
	for _, vu := range chain.vesselUnloads {
		stats.totalCatch += models.Float64Value(vu.CatchTotalKg)
		if vu.VesselID != nil {
			vesselSeen[*vu.VesselID] = struct{}{}
		}
	}
	stats.vesselCount = len(vesselSeen)
	return stats, nil
}

func compareMetric(current, previous float64) models.ComparisonMetric {
	change := current - previous
	changePercent := 0.0
	if previous != 0 {
		changePercent = change / previous * 100
	}
	return models.ComparisonMetric{
		Current:       current,
		Previous:      previous,
		Change:        change,
		ChangePercent: changePercent,
	}
}

// cacheSet populates the cache after a successful fold; a cache write
// failure degrades to uncached operation, it never fails the request.
func (s *AnalyticsService) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		slog.Error("failed to cache analytics result", "key", key, "error", err)
	}
}

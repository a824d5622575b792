package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	localminio "nsap-service/internal/database/minio"
	"nsap-service/internal/models"

	"github.com/minio/minio-go/v7"
)

// Report types accepted by the export endpoint.
const (
	ReportCatchTrends         = "catch_trends"
	ReportSpeciesDistribution = "species_distribution"
	ReportRegionalComparison  = "regional_comparison"
	ReportGearAnalysis        = "gear_analysis"
	ReportTopVessels          = "top_vessels"
	ReportTopSpecies          = "top_species"
	ReportTopLandingCenters   = "top_landing_centers"
	ReportTopFishingGrounds   = "top_fishing_grounds"
	ReportEfficiencyMetrics   = "efficiency_metrics"
	ReportComparisonStats     = "comparison_stats"
)

const defaultRankingLimit = 10

// ExportService renders analytics results as CSV downloads and keeps a
// copy of each generated report in the archive bucket. Archiving is
// best-effort; a bucket failure never fails the download.
type ExportService struct {
	analytics *AnalyticsService
	archive   *minio.Client
}

func NewExportService(analytics *AnalyticsService, archive *minio.Client) *ExportService {
	return &ExportService{analytics: analytics, archive: archive}
}

// Export runs the named report for the scope and returns the filename and
// CSV payload. Unknown report types are a validation error.
func (s *ExportService) Export(ctx context.Context, scope models.AnalyticsScope, report string, period models.AggregationPeriod) (string, []byte, error) {
	var (
		data []byte
		err  error
	)

	switch report {
	case ReportCatchTrends:
		var series models.LabeledSeries
		if series, err = s.analytics.CatchTrends(ctx, scope, period); err == nil {
			data, err = seriesCSV("period", "catch_kg", series)
		}
	case ReportSpeciesDistribution:
		var series models.LabeledSeries
		if series, err = s.analytics.SpeciesDistribution(ctx, scope); err == nil {
			data, err = seriesCSV("species", "catch_kg", series)
		}
	case ReportRegionalComparison:
		var series models.LabeledSeries
		if series, err = s.analytics.RegionalComparison(ctx, scope); err == nil {
			data, err = seriesCSV("region", "catch_kg", series)
		}
	case ReportGearAnalysis:
		var series models.LabeledSeries
		if series, err = s.analytics.GearAnalysis(ctx, scope); err == nil {
			data, err = seriesCSV("gear", "catch_kg", series)
		}
	case ReportTopVessels:
		data, err = s.rankingCSV(ctx, scope, "vessel", s.analytics.TopVessels)
	case ReportTopSpecies:
		data, err = s.rankingCSV(ctx, scope, "species", s.analytics.TopSpecies)
	case ReportTopLandingCenters:
		data, err = s.rankingCSV(ctx, scope, "landing_center", s.analytics.TopLandingCenters)
	case ReportTopFishingGrounds:
		data, err = s.rankingCSV(ctx, scope, "fishing_ground", s.analytics.TopFishingGrounds)
	case ReportEfficiencyMetrics:
		var metrics models.EfficiencyMetrics
		if metrics, err = s.analytics.EfficiencyMetrics(ctx, scope, models.EfficiencyFilters{}); err == nil {
			data, err = efficiencyCSV(metrics)
		}
	case ReportComparisonStats:
		var stats models.ComparisonStats
		if stats, err = s.analytics.ComparisonStats(ctx, scope); err == nil {
			data, err = comparisonCSV(stats)
		}
	default:
		return "", nil, fmt.Errorf("%w: unknown report type %q", ErrValidation, report)
	}
	if err != nil {
		return "", nil, err
	}

	filename := reportFilename(report, scope.FromDate, scope.ToDate)
	s.archiveReport(ctx, filename, data)
	return filename, data, nil
}

// reportFilename is deterministic for a given report and window so
// repeated exports of the same window overwrite one archive object.
func reportFilename(report string, from, to *time.Time) string {
	return fmt.Sprintf("nsap_%s_%s_%s.csv", report, dateToken(from), dateToken(to))
}

func dateToken(t *time.Time) string {
	if t == nil {
		return "all"
	}
	return t.Format("2006-01-02")
}

func (s *ExportService) archiveReport(ctx context.Context, filename string, data []byte) {
	if s.archive == nil {
		return
	}
	_, err := s.archive.PutObject(ctx, localminio.ReportsBucket, filename,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		slog.Error("failed to archive report", "filename", filename, "error", err)
	}
}

// ============================================================================
// CSV RENDERING
// ============================================================================

func seriesCSV(labelHeader, valueHeader string, series models.LabeledSeries) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{labelHeader, valueHeader}); err != nil {
		return nil, err
	}
	for i, label := range series.Labels {
		if err := w.Write([]string{label, formatFloat(series.Values[i])}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (s *ExportService) rankingCSV(ctx context.Context, scope models.AnalyticsScope, dimension string, fetch func(context.Context, models.AnalyticsScope, int) (models.RankingResult, error)) ([]byte, error) {
	ranking, err := fetch(ctx, scope, defaultRankingLimit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"rank", dimension, "catch_kg", "percentage"}); err != nil {
		return nil, err
	}
	for i, entry := range ranking.Entries {
		row := []string{
			strconv.Itoa(i + 1),
			entry.Name,
			formatFloat(entry.Value),
			formatFloat(entry.Percentage),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func efficiencyCSV(metrics models.EfficiencyMetrics) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{
		{"metric", "value"},
		{"total_catch_kg", formatFloat(metrics.TotalCatchKg)},
		{"catch_per_vessel", formatFloat(metrics.CatchPerVessel)},
		{"catch_per_effort", formatFloat(metrics.CatchPerEffort)},
		{"catch_per_sample_day", formatFloat(metrics.CatchPerSampleDay)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"gear", "catch_per_haul", "total_catch_kg", "unload_records"}); err != nil {
		return nil, err
	}
	for _, g := range metrics.CatchPerGear {
		row := []string{
			g.Gear,
			formatFloat(g.CatchPerHaul),
			formatFloat(g.TotalCatchKg),
			strconv.Itoa(g.UnloadRecords),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func comparisonCSV(stats models.ComparisonStats) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"metric", "current", "previous", "change", "change_percent"}); err != nil {
		return nil, err
	}
	rows := []struct {
		name   string
		metric models.ComparisonMetric
	}{
		{"total_catch_kg", stats.TotalCatch},
		{"avg_catch_per_sample_day", stats.AvgCatchPerSampleDay},
		{"vessel_count", stats.VesselCount},
	}
	for _, row := range rows {
		record := []string{
			row.name,
			formatFloat(row.metric.Current),
			formatFloat(row.metric.Previous),
			formatFloat(row.metric.Change),
			formatFloat(row.metric.ChangePercent),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

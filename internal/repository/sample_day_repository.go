package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nsap-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

type SampleDayRepository struct {
	db *sqlx.DB
}

func NewSampleDayRepository(db *sqlx.DB) *SampleDayRepository {
	return &SampleDayRepository{db: db}
}

func (r *SampleDayRepository) Create(ctx context.Context, day *models.SampleDay) error {
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	day.CreatedAt = time.Now()
	day.UpdatedAt = day.CreatedAt

	query := `
		INSERT INTO sample_day (
			id, sampling_date, region_id, landing_center_id, fishing_ground_id,
			is_sampling_day, remarks, created_at, updated_at
		) VALUES (
			:id, :sampling_date, :region_id, :landing_center_id, :fishing_ground_id,
			:is_sampling_day, :remarks, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, day); err != nil {
		slog.Error("failed to insert sample day", "date", day.SamplingDate, "error", err)
		return fmt.Errorf("failed to insert sample day: %w", err)
	}
	return nil
}

func (r *SampleDayRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SampleDay, error) {
	var day models.SampleDay
	query := `SELECT * FROM sample_day WHERE id = $1`
	if err := r.db.GetContext(ctx, &day, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("failed to get sample day", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get sample day: %w", err)
	}
	return &day, nil
}

func (r *SampleDayRepository) Update(ctx context.Context, day *models.SampleDay) error {
	day.UpdatedAt = time.Now()
	query := `
		UPDATE sample_day SET
			sampling_date = :sampling_date,
			region_id = :region_id,
			landing_center_id = :landing_center_id,
			fishing_ground_id = :fishing_ground_id,
			is_sampling_day = :is_sampling_day,
			remarks = :remarks,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, day)
	if err != nil {
		slog.Error("failed to update sample day", "id", day.ID, "error", err)
		return fmt.Errorf("failed to update sample day: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SampleDayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sample_day WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete sample day", "id", id, "error", err)
		return fmt.Errorf("failed to delete sample day: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByDateRange fetches sample days inside the inclusive date window,
// restricted to one region when regionID is set. This is the root query of
// every aggregation chain.
func (r *SampleDayRepository) ListByDateRange(ctx context.Context, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error) {
	query := `SELECT * FROM sample_day WHERE 1=1`
	args := []any{}
	pos := 1

	if from != nil {
		query += fmt.Sprintf(" AND sampling_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND sampling_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	if regionID != nil {
		query += fmt.Sprintf(" AND region_id = $%d", pos)
		args = append(args, *regionID)
		pos++
	}
	query += " ORDER BY sampling_date"

	days := []models.SampleDay{}
	if err := r.db.SelectContext(ctx, &days, query, args...); err != nil {
		slog.Error("failed to list sample days", "error", err)
		return nil, fmt.Errorf("failed to list sample days: %w", err)
	}
	return days, nil
}

// ListByRegion returns the page-listing view of sample days for one region
// (all regions when regionID is nil), newest first.
func (r *SampleDayRepository) ListByRegion(ctx context.Context, regionID *uuid.UUID, limit int) ([]models.SampleDay, error) {
	query := `SELECT * FROM sample_day`
	args := []any{}
	if regionID != nil {
		query += ` WHERE region_id = $1`
		args = append(args, *regionID)
	}
	query += ` ORDER BY sampling_date DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	days := []models.SampleDay{}
	if err := r.db.SelectContext(ctx, &days, query, args...); err != nil {
		slog.Error("failed to list sample days by region", "error", err)
		return nil, fmt.Errorf("failed to list sample days by region: %w", err)
	}
	return days, nil
}

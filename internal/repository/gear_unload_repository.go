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

type GearUnloadRepository struct {
	db *sqlx.DB
}

func NewGearUnloadRepository(db *sqlx.DB) *GearUnloadRepository {
	return &GearUnloadRepository{db: db}
}

func (r *GearUnloadRepository) Create(ctx context.Context, unload *models.GearUnload) error {
	if unload.ID == uuid.Nil {
		unload.ID = uuid.New()
	}
	unload.CreatedAt = time.Now()
	unload.UpdatedAt = unload.CreatedAt

	query := `
		INSERT INTO gear_unload (
			id, sample_day_id, gear_id, boats_count, catch_total_kg, created_at, updated_at
		) VALUES (
			:id, :sample_day_id, :gear_id, :boats_count, :catch_total_kg, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, unload); err != nil {
		slog.Error("failed to insert gear unload", "sample_day_id", unload.SampleDayID, "error", err)
		return fmt.Errorf("failed to insert gear unload: %w", err)
	}
	return nil
}

func (r *GearUnloadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GearUnload, error) {
	var unload models.GearUnload
	if err := r.db.GetContext(ctx, &unload, `SELECT * FROM gear_unload WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("failed to get gear unload", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get gear unload: %w", err)
	}
	return &unload, nil
}

func (r *GearUnloadRepository) Update(ctx context.Context, unload *models.GearUnload) error {
	unload.UpdatedAt = time.Now()
	query := `
		UPDATE gear_unload SET
			gear_id = :gear_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, unload)
	if err != nil {
		slog.Error("failed to update gear unload", "id", unload.ID, "error", err)
		return fmt.Errorf("failed to update gear unload: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRollup persists the recomputed child aggregates. Only the rollup
// columns move; gear assignment is untouched.
func (r *GearUnloadRepository) UpdateRollup(ctx context.Context, id uuid.UUID, boatsCount int, catchTotalKg *float64) error {
	query := `
		UPDATE gear_unload SET
			boats_count = $2,
			catch_total_kg = $3,
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, boatsCount, catchTotalKg)
	if err != nil {
		slog.Error("failed to update gear unload rollup", "id", id, "error", err)
		return fmt.Errorf("failed to update gear unload rollup: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GearUnloadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gear_unload WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete gear unload", "id", id, "error", err)
		return fmt.Errorf("failed to delete gear unload: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GearUnloadRepository) ListBySampleDayID(ctx context.Context, sampleDayID uuid.UUID) ([]models.GearUnload, error) {
	unloads := []models.GearUnload{}
	query := `SELECT * FROM gear_unload WHERE sample_day_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &unloads, query, sampleDayID); err != nil {
		slog.Error("failed to list gear unloads", "sample_day_id", sampleDayID, "error", err)
		return nil, fmt.Errorf("failed to list gear unloads: %w", err)
	}
	return unloads, nil
}

// ListBySampleDayIDs is the second link of the aggregation chain: all gear
// unloads belonging to the given sample-day id set.
func (r *GearUnloadRepository) ListBySampleDayIDs(ctx context.Context, sampleDayIDs []uuid.UUID) ([]models.GearUnload, error) {
	if len(sampleDayIDs) == 0 {
		return []models.GearUnload{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM gear_unload WHERE sample_day_id IN (?)`, sampleDayIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build gear unload query: %w", err)
	}
	query = r.db.Rebind(query)

	unloads := []models.GearUnload{}
	if err := r.db.SelectContext(ctx, &unloads, query, args...); err != nil {
		slog.Error("failed to list gear unloads by sample day ids", "count", len(sampleDayIDs), "error", err)
		return nil, fmt.Errorf("failed to list gear unloads by sample day ids: %w", err)
	}
	return unloads, nil
}

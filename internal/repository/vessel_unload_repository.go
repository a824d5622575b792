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

type VesselUnloadRepository struct {
	db *sqlx.DB
}

func NewVesselUnloadRepository(db *sqlx.DB) *VesselUnloadRepository {
	return &VesselUnloadRepository{db: db}
}

func (r *VesselUnloadRepository) Create(ctx context.Context, unload *models.VesselUnload) error {
	if unload.ID == uuid.Nil {
		unload.ID = uuid.New()
	}
	unload.CreatedAt = time.Now()
	unload.UpdatedAt = unload.CreatedAt

	query := `
		INSERT INTO vessel_unload (
			id, gear_unload_id, vessel_id,
			effort1, effort_unit1_id, effort2, effort_unit2_id, effort3, effort_unit3_id,
			boxes_total, boxes_sample, catch_total_kg, catch_sample_kg, boxes_pieces_id,
			created_at, updated_at
		) VALUES (
			:id, :gear_unload_id, :vessel_id,
			:effort1, :effort_unit1_id, :effort2, :effort_unit2_id, :effort3, :effort_unit3_id,
			:boxes_total, :boxes_sample, :catch_total_kg, :catch_sample_kg, :boxes_pieces_id,
			:created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, unload); err != nil {
		slog.Error("failed to insert vessel unload", "gear_unload_id", unload.GearUnloadID, "error", err)
		return fmt.Errorf("failed to insert vessel unload: %w", err)
	}
	return nil
}

func (r *VesselUnloadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VesselUnload, error) {
	var unload models.VesselUnload
	if err := r.db.GetContext(ctx, &unload, `SELECT * FROM vessel_unload WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("failed to get vessel unload", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get vessel unload: %w", err)
	}
	return &unload, nil
}

func (r *VesselUnloadRepository) Update(ctx context.Context, unload *models.VesselUnload) error {
	unload.UpdatedAt = time.Now()
	query := `
		UPDATE vessel_unload SET
			vessel_id = :vessel_id,
			effort1 = :effort1,
			effort_unit1_id = :effort_unit1_id,
			effort2 = :effort2,
			effort_unit2_id = :effort_unit2_id,
			effort3 = :effort3,
			effort_unit3_id = :effort_unit3_id,
			boxes_total = :boxes_total,
			boxes_sample = :boxes_sample,
			boxes_pieces_id = :boxes_pieces_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, unload)
	if err != nil {
		slog.Error("failed to update vessel unload", "id", unload.ID, "error", err)
		return fmt.Errorf("failed to update vessel unload: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRollup persists catch sums recomputed from child vessel catches.
func (r *VesselUnloadRepository) UpdateRollup(ctx context.Context, id uuid.UUID, catchTotalKg, catchSampleKg *float64) error {
	query := `
		UPDATE vessel_unload SET
			catch_total_kg = $2,
			catch_sample_kg = $3,
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, catchTotalKg, catchSampleKg)
	if err != nil {
		slog.Error("failed to update vessel unload rollup", "id", id, "error", err)
		return fmt.Errorf("failed to update vessel unload rollup: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VesselUnloadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vessel_unload WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete vessel unload", "id", id, "error", err)
		return fmt.Errorf("failed to delete vessel unload: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VesselUnloadRepository) ListByGearUnloadID(ctx context.Context, gearUnloadID uuid.UUID) ([]models.VesselUnload, error) {
	unloads := []models.VesselUnload{}
	query := `SELECT * FROM vessel_unload WHERE gear_unload_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &unloads, query, gearUnloadID); err != nil {
		slog.Error("failed to list vessel unloads", "gear_unload_id", gearUnloadID, "error", err)
		return nil, fmt.Errorf("failed to list vessel unloads: %w", err)
	}
	return unloads, nil
}

// ListByGearUnloadIDs is the third link of the aggregation chain. When
// onlyWithCatch is set, rows without a recorded catch total are excluded at
// the query, matching the catch-weighted aggregations.
func (r *VesselUnloadRepository) ListByGearUnloadIDs(ctx context.Context, gearUnloadIDs []uuid.UUID, onlyWithCatch bool) ([]models.VesselUnload, error) {
	if len(gearUnloadIDs) == 0 {
		return []models.VesselUnload{}, nil
	}

	base := `SELECT * FROM vessel_unload WHERE gear_unload_id IN (?)`
	if onlyWithCatch {
		base += ` AND catch_total_kg IS NOT NULL`
	}

	query, args, err := sqlx.In(base, gearUnloadIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build vessel unload query: %w", err)
	}
	query = r.db.Rebind(query)

	unloads := []models.VesselUnload{}
	if err := r.db.SelectContext(ctx, &unloads, query, args...); err != nil {
		slog.Error("failed to list vessel unloads by gear unload ids", "count", len(gearUnloadIDs), "error", err)
		return nil, fmt.Errorf("failed to list vessel unloads by gear unload ids: %w", err)
	}
	return unloads, nil
}

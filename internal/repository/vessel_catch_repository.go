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

type VesselCatchRepository struct {
	db *sqlx.DB
}

func NewVesselCatchRepository(db *sqlx.DB) *VesselCatchRepository {
	return &VesselCatchRepository{db: db}
}

func (r *VesselCatchRepository) Create(ctx context.Context, vc *models.VesselCatch) error {
	if vc.ID == uuid.Nil {
		vc.ID = uuid.New()
	}
	vc.CreatedAt = time.Now()
	vc.UpdatedAt = vc.CreatedAt

	query := `
		INSERT INTO vessel_catch (
			id, vessel_unload_id, species_id, catch_kg, sample_kg,
			length_measure_type_id, length_unit_id, total_kg, total_weight_if_measured_kg,
			created_at, updated_at
		) VALUES (
			:id, :vessel_unload_id, :species_id, :catch_kg, :sample_kg,
			:length_measure_type_id, :length_unit_id, :total_kg, :total_weight_if_measured_kg,
			:created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, vc); err != nil {
		slog.Error("failed to insert vessel catch", "vessel_unload_id", vc.VesselUnloadID, "error", err)
		return fmt.Errorf("failed to insert vessel catch: %w", err)
	}
	return nil
}

func (r *VesselCatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VesselCatch, error) {
	var vc models.VesselCatch
	if err := r.db.GetContext(ctx, &vc, `SELECT * FROM vessel_catch WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("failed to get vessel catch", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get vessel catch: %w", err)
	}
	return &vc, nil
}

func (r *VesselCatchRepository) Update(ctx context.Context, vc *models.VesselCatch) error {
	vc.UpdatedAt = time.Now()
	query := `
		UPDATE vessel_catch SET
			species_id = :species_id,
			catch_kg = :catch_kg,
			sample_kg = :sample_kg,
			length_measure_type_id = :length_measure_type_id,
			length_unit_id = :length_unit_id,
			total_kg = :total_kg,
			total_weight_if_measured_kg = :total_weight_if_measured_kg,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, vc)
	if err != nil {
		slog.Error("failed to update vessel catch", "id", vc.ID, "error", err)
		return fmt.Errorf("failed to update vessel catch: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VesselCatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vessel_catch WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete vessel catch", "id", id, "error", err)
		return fmt.Errorf("failed to delete vessel catch: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VesselCatchRepository) ListByVesselUnloadID(ctx context.Context, vesselUnloadID uuid.UUID) ([]models.VesselCatch, error) {
	catches := []models.VesselCatch{}
	query := `SELECT * FROM vessel_catch WHERE vessel_unload_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &catches, query, vesselUnloadID); err != nil {
		slog.Error("failed to list vessel catches", "vessel_unload_id", vesselUnloadID, "error", err)
		return nil, fmt.Errorf("failed to list vessel catches: %w", err)
	}
	return catches, nil
}

// ListByVesselUnloadIDs is the species-level link of the aggregation chain;
// rows without a recorded catch weight are excluded at the query.
func (r *VesselCatchRepository) ListByVesselUnloadIDs(ctx context.Context, vesselUnloadIDs []uuid.UUID) ([]models.VesselCatch, error) {
	if len(vesselUnloadIDs) == 0 {
		return []models.VesselCatch{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM vessel_catch WHERE vessel_unload_id IN (?) AND catch_kg IS NOT NULL`,
		vesselUnloadIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build vessel catch query: %w", err)
	}
	query = r.db.Rebind(query)

	catches := []models.VesselCatch{}
	if err := r.db.SelectContext(ctx, &catches, query, args...); err != nil {
		slog.Error("failed to list vessel catches by vessel unload ids", "count", len(vesselUnloadIDs), "error", err)
		return nil, fmt.Errorf("failed to list vessel catches by vessel unload ids: %w", err)
	}
	return catches, nil
}

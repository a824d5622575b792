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

type SampleLengthRepository struct {
	db *sqlx.DB
}

func NewSampleLengthRepository(db *sqlx.DB) *SampleLengthRepository {
	return &SampleLengthRepository{db: db}
}

func (r *SampleLengthRepository) Create(ctx context.Context, sl *models.SampleLength) error {
	if sl.ID == uuid.Nil {
		sl.ID = uuid.New()
	}
	sl.CreatedAt = time.Now()

	query := `
		INSERT INTO sample_length (id, catch_id, length_value, created_at)
		VALUES (:id, :catch_id, :length_value, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, sl); err != nil {
		slog.Error("failed to insert sample length", "catch_id", sl.CatchID, "error", err)
		return fmt.Errorf("failed to insert sample length: %w", err)
	}
	return nil
}

func (r *SampleLengthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SampleLength, error) {
	var sl models.SampleLength
	if err := r.db.GetContext(ctx, &sl, `SELECT * FROM sample_length WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("failed to get sample length", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get sample length: %w", err)
	}
	return &sl, nil
}

func (r *SampleLengthRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sample_length WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete sample length", "id", id, "error", err)
		return fmt.Errorf("failed to delete sample length: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCatchID pages through specimen lengths of one catch record.
func (r *SampleLengthRepository) ListByCatchID(ctx context.Context, catchID uuid.UUID, limit, offset int) ([]models.SampleLength, error) {
	lengths := []models.SampleLength{}
	query := `
		SELECT * FROM sample_length
		WHERE catch_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3`

	if err := r.db.SelectContext(ctx, &lengths, query, catchID, limit, offset); err != nil {
		slog.Error("failed to list sample lengths", "catch_id", catchID, "error", err)
		return nil, fmt.Errorf("failed to list sample lengths: %w", err)
	}
	return lengths, nil
}

func (r *SampleLengthRepository) CountByCatchID(ctx context.Context, catchID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM sample_length WHERE catch_id = $1`
	if err := r.db.GetContext(ctx, &count, query, catchID); err != nil {
		slog.Error("failed to count sample lengths", "catch_id", catchID, "error", err)
		return 0, fmt.Errorf("failed to count sample lengths: %w", err)
	}
	return count, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"nsap-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// ReferenceRepository reads the lookup tables. Region-scoped entities
// (landing centers, fishing grounds, vessels) take an optional region
// predicate so visibility is enforced in the query, never client-side.
type ReferenceRepository struct {
	db *sqlx.DB
}

func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ListRegions(ctx context.Context) ([]models.Region, error) {
	regions := []models.Region{}
	if err := r.db.SelectContext(ctx, &regions, `SELECT * FROM region ORDER BY name`); err != nil {
		slog.Error("failed to list regions", "error", err)
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	return regions, nil
}

func (r *ReferenceRepository) ListLandingCenters(ctx context.Context, regionID *uuid.UUID) ([]models.LandingCenter, error) {
	query := `SELECT * FROM landing_center`
	args := []any{}
	if regionID != nil {
		query += ` WHERE region_id = $1`
		args = append(args, *regionID)
	}
	query += ` ORDER BY name`

	centers := []models.LandingCenter{}
	if err := r.db.SelectContext(ctx, &centers, query, args...); err != nil {
		slog.Error("failed to list landing centers", "error", err)
		return nil, fmt.Errorf("failed to list landing centers: %w", err)
	}
	return centers, nil
}

func (r *ReferenceRepository) GetLandingCenterByID(ctx context.Context, id uuid.UUID) (*models.LandingCenter, error) {
	var center models.LandingCenter
	if err := r.db.GetContext(ctx, &center, `SELECT * FROM landing_center WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("failed to get landing center", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get landing center: %w", err)
	}
	return &center, nil
}

func (r *ReferenceRepository) ListFishingGrounds(ctx context.Context, regionID *uuid.UUID) ([]models.FishingGround, error) {
	query := `SELECT id, region_id, name, centroid, created_at FROM fishing_ground`
	args := []any{}
	if regionID != nil {
		query += ` WHERE region_id = $1`
		args = append(args, *regionID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		slog.Error("failed to list fishing grounds", "error", err)
		return nil, fmt.Errorf("failed to list fishing grounds: %w", err)
	}
	defer rows.Close()

	grounds := []models.FishingGround{}
	for rows.Next() {
		var ground models.FishingGround
		var centroidWKB []byte
		if err := rows.Scan(&ground.ID, &ground.RegionID, &ground.Name, &centroidWKB, &ground.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fishing ground: %w", err)
		}
		if len(centroidWKB) > 0 {
			g, err := wkb.Unmarshal(centroidWKB)
			if err != nil {
				slog.Error("failed to decode fishing ground centroid", "id", ground.ID, "error", err)
			} else if point, ok := g.(*geom.Point); ok {
				lon, lat := point.X(), point.Y()
				ground.CentroidLon = &lon
				ground.CentroidLat = &lat
			}
		}
		grounds = append(grounds, ground)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fishing grounds: %w", err)
	}
	return grounds, nil
}

func (r *ReferenceRepository) ListGears(ctx context.Context) ([]models.FishingGear, error) {
	gears := []models.FishingGear{}
	if err := r.db.SelectContext(ctx, &gears, `SELECT * FROM fishing_gear ORDER BY description`); err != nil {
		slog.Error("failed to list gears", "error", err)
		return nil, fmt.Errorf("failed to list gears: %w", err)
	}
	return gears, nil
}

func (r *ReferenceRepository) GetGearByID(ctx context.Context, id uuid.UUID) (*models.FishingGear, error) {
	var gear models.FishingGear
	if err := r.db.GetContext(ctx, &gear, `SELECT * FROM fishing_gear WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Error("failed to get gear", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get gear: %w", err)
	}
	return &gear, nil
}

func (r *ReferenceRepository) ListVessels(ctx context.Context, regionID *uuid.UUID) ([]models.Vessel, error) {
	query := `SELECT * FROM vessel`
	args := []any{}
	if regionID != nil {
		query += ` WHERE region_id = $1`
		args = append(args, *regionID)
	}
	query += ` ORDER BY name`

	vessels := []models.Vessel{}
	if err := r.db.SelectContext(ctx, &vessels, query, args...); err != nil {
		slog.Error("failed to list vessels", "error", err)
		return nil, fmt.Errorf("failed to list vessels: %w", err)
	}
	return vessels, nil
}

func (r *ReferenceRepository) ListSpecies(ctx context.Context) ([]models.Species, error) {
	species := []models.Species{}
	if err := r.db.SelectContext(ctx, &species, `SELECT * FROM species ORDER BY name`); err != nil {
		slog.Error("failed to list species", "error", err)
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	return species, nil
}

func (r *ReferenceRepository) ListEffortUnits(ctx context.Context) ([]models.FishingEffortUnit, error) {
	units := []models.FishingEffortUnit{}
	if err := r.db.SelectContext(ctx, &units, `SELECT * FROM fishing_effort_unit ORDER BY name`); err != nil {
		slog.Error("failed to list effort units", "error", err)
		return nil, fmt.Errorf("failed to list effort units: %w", err)
	}
	return units, nil
}

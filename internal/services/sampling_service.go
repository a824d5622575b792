package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nsap-service/internal/cache"
	"nsap-service/internal/models"
	"nsap-service/internal/utils"

	"github.com/google/uuid"
)

// AuditSink receives committed-mutation events. Publishing is
// fire-and-forget; a sink failure never fails the mutation.
type AuditSink interface {
	Publish(ctx context.Context, event models.AuditEvent) error
}

// SamplingService owns the write path of the sample-day hierarchy:
// validation before any query, region-based visibility on every row
// touched, and the cascading rollup recomputation that keeps parent
// aggregates consistent with their children. Rollups are recomputed from a
// fresh child query rather than incremented, so any prior drift heals on
// the next mutation.
type SamplingService struct {
	store SamplingStore
	cache cache.Store
	audit AuditSink
}

func NewSamplingService(store SamplingStore, cacheStore cache.Store, audit AuditSink) *SamplingService {
	return &SamplingService{store: store, cache: cacheStore, audit: audit}
}

// ============================================================================
// AUTHORIZATION
// ============================================================================

func (s *SamplingService) authorizeRead(claims *models.Claims, regionID uuid.UUID) error {
	if claims.Role.IsAdmin() {
		return nil
	}
	if claims.RegionID == nil || *claims.RegionID != regionID {
		return fmt.Errorf("%w: record belongs to another region", ErrForbidden)
	}
	return nil
}

func (s *SamplingService) authorizeMutation(claims *models.Claims, regionID uuid.UUID) error {
	if claims.Role == models.RoleViewer {
		return fmt.Errorf("%w: viewer role cannot modify records", ErrForbidden)
	}
	return s.authorizeRead(claims, regionID)
}

// sampleDayRegionOfGearUnload walks a gear unload up to its sample day so
// child mutations inherit the day's region for authorization.
func (s *SamplingService) sampleDayOfGearUnload(ctx context.Context, gearUnloadID uuid.UUID) (*models.SampleDay, *models.GearUnload, error) {
	gearUnload, err := s.store.GetGearUnload(ctx, gearUnloadID)
	if err != nil {
		return nil, nil, err
	}
	day, err := s.store.GetSampleDay(ctx, gearUnload.SampleDayID)
	if err != nil {
		return nil, nil, err
	}
	return day, gearUnload, nil
}

// ============================================================================
// SAMPLE DAY
// ============================================================================

func (s *SamplingService) GetSampleDay(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.SampleDay, error) {
	day, err := s.store.GetSampleDay(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(claims, day.RegionID); err != nil {
		return nil, err
	}
	return day, nil
}

// ListSampleDays returns days in the window, pinned to the caller's own
// region unless the caller is an admin.
func (s *SamplingService) ListSampleDays(ctx context.Context, claims *models.Claims, from, to *time.Time, regionID *uuid.UUID) ([]models.SampleDay, error) {
	if !claims.Role.IsAdmin() {
		regionID = claims.RegionID
	}
	return s.store.ListSampleDaysByDateRange(ctx, from, to, regionID)
}

func (s *SamplingService) CreateSampleDay(ctx context.Context, claims *models.Claims, input models.SampleDayInput) (*models.SampleDay, error) {
	if err := s.authorizeMutation(claims, input.RegionID); err != nil {
		return nil, err
	}
	date, err := input.ParseDate()
	if err != nil {
		return nil, fmt.Errorf("%w: sampling_date must be YYYY-MM-DD", ErrValidation)
	}
	if input.LandingCenterID == uuid.Nil || input.FishingGroundID == uuid.Nil {
		return nil, fmt.Errorf("%w: landing_center_id and fishing_ground_id are required", ErrValidation)
	}

	center, err := s.store.GetLandingCenter(ctx, input.LandingCenterID)
	if err != nil {
		return nil, err
	}
	if center.RegionID != input.RegionID {
		return nil, fmt.Errorf("%w: landing center belongs to another region", ErrValidation)
	}

	day := &models.SampleDay{
		SamplingDate:    date,
		RegionID:        input.RegionID,
		LandingCenterID: input.LandingCenterID,
		FishingGroundID: input.FishingGroundID,
		IsSamplingDay:   IsSamplingDay(date, center.CenterType),
		Remarks:         input.Remarks,
	}
	if err := s.store.CreateSampleDay(ctx, day); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, claims, "sample_day", models.AuditActionCreate, day.ID, &day.RegionID)
	return day, nil
}

func (s *SamplingService) UpdateSampleDay(ctx context.Context, claims *models.Claims, id uuid.UUID, input models.SampleDayInput) (*models.SampleDay, error) {
	day, err := s.store.GetSampleDay(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}
	date, err := input.ParseDate()
	if err != nil {
		return nil, fmt.Errorf("%w: sampling_date must be YYYY-MM-DD", ErrValidation)
	}

	center, err := s.store.GetLandingCenter(ctx, input.LandingCenterID)
	if err != nil {
		return nil, err
	}
	if center.RegionID != day.RegionID {
		return nil, fmt.Errorf("%w: landing center belongs to another region", ErrValidation)
	}

	day.SamplingDate = date
	day.LandingCenterID = input.LandingCenterID
	day.FishingGroundID = input.FishingGroundID
	day.Remarks = input.Remarks
	// The flag follows date and landing-center type, never the payload.
	day.IsSamplingDay = IsSamplingDay(date, center.CenterType)

	if err := s.store.UpdateSampleDay(ctx, day); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, claims, "sample_day", models.AuditActionUpdate, day.ID, &day.RegionID)
	return day, nil
}

// DeleteSampleDay is admin-only; children go with the day.
func (s *SamplingService) DeleteSampleDay(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	if !claims.Role.IsAdmin() {
		return fmt.Errorf("%w: only administrators can delete sample days", ErrForbidden)
	}
	day, err := s.store.GetSampleDay(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSampleDay(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, claims, "sample_day", models.AuditActionDelete, id, &day.RegionID)
	return nil
}

// ============================================================================
// GEAR UNLOAD
// ============================================================================

func (s *SamplingService) ListGearUnloads(ctx context.Context, claims *models.Claims, sampleDayID uuid.UUID) ([]models.GearUnload, error) {
	day, err := s.store.GetSampleDay(ctx, sampleDayID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(claims, day.RegionID); err != nil {
		return nil, err
	}
	return s.store.ListGearUnloadsBySampleDay(ctx, sampleDayID)
}

func (s *SamplingService) CreateGearUnload(ctx context.Context, claims *models.Claims, input models.GearUnloadInput) (*models.GearUnload, error) {
	if input.SampleDayID == uuid.Nil || input.GearID == uuid.Nil {
		return nil, fmt.Errorf("%w: sample_day_id and gear_id are required", ErrValidation)
	}
	day, err := s.store.GetSampleDay(ctx, input.SampleDayID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}

	unload := &models.GearUnload{
		SampleDayID: input.SampleDayID,
		GearID:      input.GearID,
	}
	if err := s.store.CreateGearUnload(ctx, unload); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, claims, "gear_unload", models.AuditActionCreate, unload.ID, &day.RegionID)
	return unload, nil
}

func (s *SamplingService) UpdateGearUnload(ctx context.Context, claims *models.Claims, id uuid.UUID, gearID uuid.UUID) (*models.GearUnload, error) {
	if gearID == uuid.Nil {
		return nil, fmt.Errorf("%w: gear_id is required", ErrValidation)
	}
	day, unload, err := s.sampleDayOfGearUnload(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}

	unload.GearID = gearID
	if err := s.store.UpdateGearUnload(ctx, unload); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, claims, "gear_unload", models.AuditActionUpdate, id, &day.RegionID)
	return unload, nil
}

func (s *SamplingService) DeleteGearUnload(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	day, _, err := s.sampleDayOfGearUnload(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return err
	}
	if err := s.store.DeleteGearUnload(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, claims, "gear_unload", models.AuditActionDelete, id, &day.RegionID)
	return nil
}

// ============================================================================
// VESSEL UNLOAD
// ============================================================================

func (s *SamplingService) ListVesselUnloads(ctx context.Context, claims *models.Claims, gearUnloadID uuid.UUID) ([]models.VesselUnload, error) {
	day, _, err := s.sampleDayOfGearUnload(ctx, gearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(claims, day.RegionID); err != nil {
		return nil, err
	}
	return s.store.ListVesselUnloadsByGearUnload(ctx, gearUnloadID)
}

func (s *SamplingService) CreateVesselUnload(ctx context.Context, claims *models.Claims, input models.VesselUnloadInput) (*models.VesselUnload, error) {
	if input.GearUnloadID == uuid.Nil {
		return nil, fmt.Errorf("%w: gear_unload_id is required", ErrValidation)
	}
	if err := validateNonNegative("effort1", input.Effort1); err != nil {
		return nil, err
	}
	if err := validateNonNegative("effort2", input.Effort2); err != nil {
		return nil, err
	}
	if err := validateNonNegative("effort3", input.Effort3); err != nil {
		return nil, err
	}

	day, gearUnload, err := s.sampleDayOfGearUnload(ctx, input.GearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}

	unload := &models.VesselUnload{
		GearUnloadID:  input.GearUnloadID,
		VesselID:      input.VesselID,
		Effort1:       input.Effort1,
		Effort2:       input.Effort2,
		Effort3:       input.Effort3,
		BoxesTotal:    input.BoxesTotal,
		BoxesSample:   input.BoxesSample,
		BoxesPiecesID: input.BoxesPiecesID,
	}
	if err := s.applyGearEffortUnits(ctx, gearUnload.GearID, unload); err != nil {
		return nil, err
	}

	if err := s.store.CreateVesselUnload(ctx, unload); err != nil {
		return nil, err
	}

	s.RecomputeGearUnloadRollup(ctx, input.GearUnloadID)
	s.afterMutation(ctx, claims, "vessel_unload", models.AuditActionCreate, unload.ID, &day.RegionID)
	return unload, nil
}

func (s *SamplingService) UpdateVesselUnload(ctx context.Context, claims *models.Claims, id uuid.UUID, input models.VesselUnloadInput) (*models.VesselUnload, error) {
	unload, err := s.store.GetVesselUnload(ctx, id)
	if err != nil {
		return nil, err
	}
	day, gearUnload, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}
	if err := validateNonNegative("effort1", input.Effort1); err != nil {
		return nil, err
	}
	if err := validateNonNegative("effort2", input.Effort2); err != nil {
		return nil, err
	}
	if err := validateNonNegative("effort3", input.Effort3); err != nil {
		return nil, err
	}

	unload.VesselID = input.VesselID
	unload.Effort1 = input.Effort1
	unload.Effort2 = input.Effort2
	unload.Effort3 = input.Effort3
	unload.BoxesTotal = input.BoxesTotal
	unload.BoxesSample = input.BoxesSample
	unload.BoxesPiecesID = input.BoxesPiecesID
	if err := s.applyGearEffortUnits(ctx, gearUnload.GearID, unload); err != nil {
		return nil, err
	}

	if err := s.store.UpdateVesselUnload(ctx, unload); err != nil {
		return nil, err
	}

	s.RecomputeGearUnloadRollup(ctx, unload.GearUnloadID)
	s.afterMutation(ctx, claims, "vessel_unload", models.AuditActionUpdate, id, &day.RegionID)
	return unload, nil
}

func (s *SamplingService) DeleteVesselUnload(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	unload, err := s.store.GetVesselUnload(ctx, id)
	if err != nil {
		return err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return err
	}
	if err := s.store.DeleteVesselUnload(ctx, id); err != nil {
		return err
	}

	s.RecomputeGearUnloadRollup(ctx, unload.GearUnloadID)
	s.afterMutation(ctx, claims, "vessel_unload", models.AuditActionDelete, id, &day.RegionID)
	return nil
}

// applyGearEffortUnits stamps the gear-implied effort units onto the
// unload. Unit slots are read-only derived data: a numeric effort is only
// accepted for slots the gear actually defines.
func (s *SamplingService) applyGearEffortUnits(ctx context.Context, gearID uuid.UUID, unload *models.VesselUnload) error {
	gear, err := s.store.GetGear(ctx, gearID)
	if err != nil {
		return err
	}

	unload.EffortUnit1 = gear.EffortUnitID
	unload.EffortUnit2 = gear.EffortUnit2ID
	unload.EffortUnit3 = gear.EffortUnit3ID

	if unload.Effort2 != nil && gear.EffortUnit2ID == nil {
		return fmt.Errorf("%w: gear defines no second effort unit", ErrValidation)
	}
	if unload.Effort3 != nil && gear.EffortUnit3ID == nil {
		return fmt.Errorf("%w: gear defines no third effort unit", ErrValidation)
	}
	return nil
}

// ============================================================================
// VESSEL CATCH
// ============================================================================

func (s *SamplingService) ListVesselCatches(ctx context.Context, claims *models.Claims, vesselUnloadID uuid.UUID) ([]models.VesselCatch, error) {
	unload, err := s.store.GetVesselUnload(ctx, vesselUnloadID)
	if err != nil {
		return nil, err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(claims, day.RegionID); err != nil {
		return nil, err
	}
	return s.store.ListVesselCatchesByVesselUnload(ctx, vesselUnloadID)
}

func (s *SamplingService) CreateVesselCatch(ctx context.Context, claims *models.Claims, input models.VesselCatchInput) (*models.VesselCatch, error) {
	if input.VesselUnloadID == uuid.Nil || input.SpeciesID == uuid.Nil {
		return nil, fmt.Errorf("%w: vessel_unload_id and species_id are required", ErrValidation)
	}
	if err := validateNonNegative("catch_kg", input.CatchKg); err != nil {
		return nil, err
	}
	if err := validateNonNegative("sample_kg", input.SampleKg); err != nil {
		return nil, err
	}

	unload, err := s.store.GetVesselUnload(ctx, input.VesselUnloadID)
	if err != nil {
		return nil, err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}

	vc := &models.VesselCatch{
		VesselUnloadID:          input.VesselUnloadID,
		SpeciesID:               input.SpeciesID,
		CatchKg:                 input.CatchKg,
		SampleKg:                input.SampleKg,
		LengthMeasureTypeID:     input.LengthMeasureTypeID,
		LengthUnitID:            input.LengthUnitID,
		TotalKg:                 input.TotalKg,
		TotalWeightIfMeasuredKg: input.TotalWeightIfMeasuredKg,
	}
	if err := s.store.CreateVesselCatch(ctx, vc); err != nil {
		return nil, err
	}

	s.RecomputeVesselUnloadRollup(ctx, input.VesselUnloadID)
	s.afterMutation(ctx, claims, "vessel_catch", models.AuditActionCreate, vc.ID, &day.RegionID)
	return vc, nil
}

func (s *SamplingService) UpdateVesselCatch(ctx context.Context, claims *models.Claims, id uuid.UUID, input models.VesselCatchInput) (*models.VesselCatch, error) {
	vc, err := s.store.GetVesselCatch(ctx, id)
	if err != nil {
		return nil, err
	}
	unload, err := s.store.GetVesselUnload(ctx, vc.VesselUnloadID)
	if err != nil {
		return nil, err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}
	if err := validateNonNegative("catch_kg", input.CatchKg); err != nil {
		return nil, err
	}
	if err := validateNonNegative("sample_kg", input.SampleKg); err != nil {
		return nil, err
	}

	vc.SpeciesID = input.SpeciesID
	vc.CatchKg = input.CatchKg
	vc.SampleKg = input.SampleKg
	vc.LengthMeasureTypeID = input.LengthMeasureTypeID
	vc.LengthUnitID = input.LengthUnitID
	vc.TotalKg = input.TotalKg
	vc.TotalWeightIfMeasuredKg = input.TotalWeightIfMeasuredKg

	if err := s.store.UpdateVesselCatch(ctx, vc); err != nil {
		return nil, err
	}

	s.RecomputeVesselUnloadRollup(ctx, vc.VesselUnloadID)
	s.afterMutation(ctx, claims, "vessel_catch", models.AuditActionUpdate, id, &day.RegionID)
	return vc, nil
}

func (s *SamplingService) DeleteVesselCatch(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	vc, err := s.store.GetVesselCatch(ctx, id)
	if err != nil {
		return err
	}
	unload, err := s.store.GetVesselUnload(ctx, vc.VesselUnloadID)
	if err != nil {
		return err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return err
	}
	if err := s.store.DeleteVesselCatch(ctx, id); err != nil {
		return err
	}

	s.RecomputeVesselUnloadRollup(ctx, vc.VesselUnloadID)
	s.afterMutation(ctx, claims, "vessel_catch", models.AuditActionDelete, id, &day.RegionID)
	return nil
}

// ============================================================================
// SAMPLE LENGTH
// ============================================================================

type SampleLengthPage struct {
	Lengths  []models.SampleLength `json:"lengths"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

const DefaultLengthPageSize = 10

func (s *SamplingService) ListSampleLengths(ctx context.Context, claims *models.Claims, catchID uuid.UUID, page, pageSize int) (*SampleLengthPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultLengthPageSize
	}

	vc, err := s.store.GetVesselCatch(ctx, catchID)
	if err != nil {
		return nil, err
	}
	unload, err := s.store.GetVesselUnload(ctx, vc.VesselUnloadID)
	if err != nil {
		return nil, err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(claims, day.RegionID); err != nil {
		return nil, err
	}

	total, err := s.store.CountSampleLengths(ctx, catchID)
	if err != nil {
		return nil, err
	}
	lengths, err := s.store.ListSampleLengths(ctx, catchID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &SampleLengthPage{Lengths: lengths, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *SamplingService) CreateSampleLength(ctx context.Context, claims *models.Claims, input models.SampleLengthInput) (*models.SampleLength, error) {
	if input.CatchID == uuid.Nil {
		return nil, fmt.Errorf("%w: catch_id is required", ErrValidation)
	}
	if input.LengthValue <= 0 {
		return nil, fmt.Errorf("%w: length_value must be greater than 0", ErrValidation)
	}

	vc, err := s.store.GetVesselCatch(ctx, input.CatchID)
	if err != nil {
		return nil, err
	}
	unload, err := s.store.GetVesselUnload(ctx, vc.VesselUnloadID)
	if err != nil {
		return nil, err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return nil, err
	}

	sl := &models.SampleLength{CatchID: input.CatchID, LengthValue: input.LengthValue}
	if err := s.store.CreateSampleLength(ctx, sl); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, claims, "sample_length", models.AuditActionCreate, sl.ID, &day.RegionID)
	return sl, nil
}

func (s *SamplingService) DeleteSampleLength(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	sl, err := s.store.GetSampleLength(ctx, id)
	if err != nil {
		return err
	}
	vc, err := s.store.GetVesselCatch(ctx, sl.CatchID)
	if err != nil {
		return err
	}
	unload, err := s.store.GetVesselUnload(ctx, vc.VesselUnloadID)
	if err != nil {
		return err
	}
	day, _, err := s.sampleDayOfGearUnload(ctx, unload.GearUnloadID)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(claims, day.RegionID); err != nil {
		return err
	}
	if err := s.store.DeleteSampleLength(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, claims, "sample_length", models.AuditActionDelete, id, &day.RegionID)
	return nil
}

// ============================================================================
// ROLLUP RECOMPUTATION
// ============================================================================

// RecomputeGearUnloadRollup refreshes boats_count and catch_total_kg from
// the current child set. A failure here is logged but not returned: the
// child mutation already committed, and the stale aggregate heals on the
// next recompute.
func (s *SamplingService) RecomputeGearUnloadRollup(ctx context.Context, gearUnloadID uuid.UUID) {
	children, err := s.store.ListVesselUnloadsByGearUnload(ctx, gearUnloadID)
	if err != nil {
		slog.Error("rollup recompute query failed, parent aggregate left stale",
			"gear_unload_id", gearUnloadID, "error", err)
		return
	}

	boatsCount, catchTotal := FoldGearUnloadRollup(children)
	if err := s.store.UpdateGearUnloadRollup(ctx, gearUnloadID, boatsCount, &catchTotal); err != nil {
		slog.Error("rollup persist failed, parent aggregate left stale",
			"gear_unload_id", gearUnloadID, "error", err)
	}
}

// RecomputeVesselUnloadRollup refreshes the unload's catch sums from its
// catches, then cascades into the grandparent gear unload.
func (s *SamplingService) RecomputeVesselUnloadRollup(ctx context.Context, vesselUnloadID uuid.UUID) {
	catches, err := s.store.ListVesselCatchesByVesselUnload(ctx, vesselUnloadID)
	if err != nil {
		slog.Error("rollup recompute query failed, parent aggregate left stale",
			"vessel_unload_id", vesselUnloadID, "error", err)
		return
	}

	catchTotal, catchSample := FoldVesselUnloadRollup(catches)
	if err := s.store.UpdateVesselUnloadRollup(ctx, vesselUnloadID, &catchTotal, &catchSample); err != nil {
		slog.Error("rollup persist failed, parent aggregate left stale",
			"vessel_unload_id", vesselUnloadID, "error", err)
		return
	}

	unload, err := s.store.GetVesselUnload(ctx, vesselUnloadID)
	if err != nil {
		slog.Error("rollup cascade lookup failed", "vessel_unload_id", vesselUnloadID, "error", err)
		return
	}
	s.RecomputeGearUnloadRollup(ctx, unload.GearUnloadID)
}

// FoldGearUnloadRollup computes a gear unload's aggregates from its
// children: row count and plain float sum with missing values as 0.
func FoldGearUnloadRollup(children []models.VesselUnload) (int, float64) {
	var total float64
	for _, child := range children {
		total += models.Float64Value(child.CatchTotalKg)
	}
	return len(children), total
}

// FoldVesselUnloadRollup computes catch_total_kg and catch_sample_kg from
// the unload's catch records.
func FoldVesselUnloadRollup(catches []models.VesselCatch) (float64, float64) {
	var total, sample float64
	for _, vc := range catches {
		total += models.Float64Value(vc.CatchKg)
		sample += models.Float64Value(vc.SampleKg)
	}
	return total, sample
}

// ============================================================================
// SIDE EFFECTS
// ============================================================================

// afterMutation invalidates cached analytics and emits an audit event.
// Both are best-effort: the mutation has already committed.
func (s *SamplingService) afterMutation(ctx context.Context, claims *models.Claims, entity, action string, entityID uuid.UUID, regionID *uuid.UUID) {
	if s.cache != nil {
		if err := InvalidateAnalyticsCache(ctx, s.cache); err != nil {
			slog.Error("failed to invalidate analytics cache", "entity", entity, "error", err)
		}
	}
	if s.audit != nil {
		event := models.AuditEvent{
			ID:         utils.GenerateRandomStringWithLength(6),
			Entity:     entity,
			Action:     action,
			EntityID:   entityID,
			ActorID:    claims.UserID,
			RegionID:   regionID,
			OccurredAt: time.Now(),
		}
		if err := s.audit.Publish(ctx, event); err != nil {
			slog.Error("failed to publish audit event", "entity", entity, "action", action, "error", err)
		}
	}
}

func validateNonNegative(field string, value *float64) error {
	if value != nil && *value < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"nsap-service/internal/models"

	"github.com/google/uuid"
)

// editSessionKey scopes one session to one user working one sample day.
// Two users on the same day never share state.
type editSessionKey struct {
	UserID      uuid.UUID
	SampleDayID uuid.UUID
}

// editSession is the in-process master-detail state for one open day:
// the gear-unload master list, the selection at each level, and the
// sample-length page position. revision increases on every selection
// change so a reload fetched for an old selection is discarded instead of
// overwriting newer state.
type editSession struct {
	Day         *models.SampleDay
	GearUnloads []models.GearUnload

	SelectedGearUnloadID   *uuid.UUID
	VesselUnloads          []models.VesselUnload
	SelectedVesselUnloadID *uuid.UUID
	VesselCatches          []models.VesselCatch
	SelectedCatchID        *uuid.UUID
	LengthPage             *SampleLengthPage

	revision uint64
}

// EditSessionView is the snapshot handed back to the caller after every
// session operation. Lists are never nil.
type EditSessionView struct {
	Day                    *models.SampleDay     `json:"day"`
	GearUnloads            []models.GearUnload   `json:"gear_unloads"`
	SelectedGearUnloadID   *uuid.UUID            `json:"selected_gear_unload_id,omitempty"`
	VesselUnloads          []models.VesselUnload `json:"vessel_unloads"`
	SelectedVesselUnloadID *uuid.UUID            `json:"selected_vessel_unload_id,omitempty"`
	VesselCatches          []models.VesselCatch  `json:"vessel_catches"`
	SelectedCatchID        *uuid.UUID            `json:"selected_catch_id,omitempty"`
	LengthPage             *SampleLengthPage     `json:"length_page,omitempty"`
}

// EditSessionService drives the master-detail editing flow on top of
// SamplingService. All reads and mutations go through the sampling layer
// (which owns RBAC, validation and rollups); this layer only keeps the
// per-user selection state consistent with what those calls return.
type EditSessionService struct {
	sampling *SamplingService

	mu       sync.Mutex
	sessions map[editSessionKey]*editSession
}

func NewEditSessionService(sampling *SamplingService) *EditSessionService {
	return &EditSessionService{
		sampling: sampling,
		sessions: make(map[editSessionKey]*editSession),
	}
}

// ============================================================================
// SESSION LIFECYCLE
// ============================================================================

// Open loads the day and its gear unloads and selects the first one.
// Reopening an existing session keeps the previous selection when that row
// still exists, otherwise falls back to first-or-none.
func (s *EditSessionService) Open(ctx context.Context, claims *models.Claims, sampleDayID uuid.UUID) (*EditSessionView, error) {
	day, err := s.sampling.GetSampleDay(ctx, claims, sampleDayID)
	if err != nil {
		return nil, err
	}
	gearUnloads, err := s.sampling.ListGearUnloads(ctx, claims, sampleDayID)
	if err != nil {
		return nil, err
	}

	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if !ok {
		session = &editSession{}
		s.sessions[key] = session
	}
	session.Day = day
	session.GearUnloads = gearUnloads
	session.revision++

	var keep *uuid.UUID
	if session.SelectedGearUnloadID != nil && containsGearUnload(gearUnloads, *session.SelectedGearUnloadID) {
		keep = session.SelectedGearUnloadID
	} else if len(gearUnloads) > 0 {
		id := gearUnloads[0].ID
		keep = &id
	}
	session.selectGearUnloadLocked(keep)
	rev := session.revision
	selected := session.SelectedGearUnloadID
	s.mu.Unlock()

	if selected != nil {
		s.reloadVesselUnloads(ctx, claims, key, *selected, rev)
	}
	return s.snapshot(key), nil
}

func (s *EditSessionService) Close(claims *models.Claims, sampleDayID uuid.UUID) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
}

// ============================================================================
// SELECTION
// ============================================================================

// SelectGearUnload moves the master selection. The id must belong to the
// loaded master list; everything downstream of the old selection is
// cleared before the child reload.
func (s *EditSessionService) SelectGearUnload(ctx context.Context, claims *models.Claims, sampleDayID, gearUnloadID uuid.UUID) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no open edit session for this sample day", ErrNoSelection)
	}
	if !containsGearUnload(session.GearUnloads, gearUnloadID) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: gear unload does not belong to this sample day", ErrValidation)
	}
	session.revision++
	session.selectGearUnloadLocked(&gearUnloadID)
	rev := session.revision
	s.mu.Unlock()

	if err := s.reloadVesselUnloads(ctx, claims, key, gearUnloadID, rev); err != nil {
		return nil, err
	}
	return s.snapshot(key), nil
}

func (s *EditSessionService) SelectVesselUnload(ctx context.Context, claims *models.Claims, sampleDayID, vesselUnloadID uuid.UUID) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no open edit session for this sample day", ErrNoSelection)
	}
	if !containsVesselUnload(session.VesselUnloads, vesselUnloadID) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: vessel unload is not in the current selection", ErrValidation)
	}
	session.revision++
	session.selectVesselUnloadLocked(&vesselUnloadID)
	rev := session.revision
	s.mu.Unlock()

	if err := s.reloadVesselCatches(ctx, claims, key, vesselUnloadID, rev); err != nil {
		return nil, err
	}
	return s.snapshot(key), nil
}

func (s *EditSessionService) SelectVesselCatch(ctx context.Context, claims *models.Claims, sampleDayID, catchID uuid.UUID) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no open edit session for this sample day", ErrNoSelection)
	}
	if !containsVesselCatch(session.VesselCatches, catchID) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: catch is not in the current selection", ErrValidation)
	}
	session.revision++
	session.SelectedCatchID = &catchID
	session.LengthPage = nil
	rev := session.revision
	s.mu.Unlock()

	if err := s.reloadLengthPage(ctx, claims, key, catchID, 1, DefaultLengthPageSize, rev); err != nil {
		return nil, err
	}
	return s.snapshot(key), nil
}

// LengthPage moves the sample-length pager for the selected catch.
func (s *EditSessionService) LengthPage(ctx context.Context, claims *models.Claims, sampleDayID uuid.UUID, page, pageSize int) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if !ok || session.SelectedCatchID == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no catch selected", ErrNoSelection)
	}
	catchID := *session.SelectedCatchID
	rev := session.revision
	s.mu.Unlock()

	if err := s.reloadLengthPage(ctx, claims, key, catchID, page, pageSize, rev); err != nil {
		return nil, err
	}
	return s.snapshot(key), nil
}

// ============================================================================
// MUTATIONS
// Each delegates to SamplingService, then reloads the affected level. A
// child add with no parent selected fails here, before any query runs.
// ============================================================================

func (s *EditSessionService) AddVesselUnload(ctx context.Context, claims *models.Claims, sampleDayID uuid.UUID, input models.VesselUnloadInput) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	gearUnloadID, rev, err := s.requireGearUnloadSelection(key)
	if err != nil {
		return nil, err
	}
	input.GearUnloadID = gearUnloadID

	unload, err := s.sampling.CreateVesselUnload(ctx, claims, input)
	if err != nil {
		return nil, err
	}

	s.refreshAfterVesselUnloadChange(ctx, claims, key, gearUnloadID, rev)
	s.mu.Lock()
	if session, ok := s.sessions[key]; ok && session.revision == rev {
		id := unload.ID
		session.SelectedVesselUnloadID = &id
	}
	s.mu.Unlock()
	return s.snapshot(key), nil
}

func (s *EditSessionService) EditVesselUnload(ctx context.Context, claims *models.Claims, sampleDayID, vesselUnloadID uuid.UUID, input models.VesselUnloadInput) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	gearUnloadID, rev, err := s.requireGearUnloadSelection(key)
	if err != nil {
		return nil, err
	}

	if _, err := s.sampling.UpdateVesselUnload(ctx, claims, vesselUnloadID, input); err != nil {
		return nil, err
	}

	s.refreshAfterVesselUnloadChange(ctx, claims, key, gearUnloadID, rev)
	return s.snapshot(key), nil
}

func (s *EditSessionService) RemoveVesselUnload(ctx context.Context, claims *models.Claims, sampleDayID, vesselUnloadID uuid.UUID) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	gearUnloadID, rev, err := s.requireGearUnloadSelection(key)
	if err != nil {
		return nil, err
	}

	if err := s.sampling.DeleteVesselUnload(ctx, claims, vesselUnloadID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if session, ok := s.sessions[key]; ok {
		if session.SelectedVesselUnloadID != nil && *session.SelectedVesselUnloadID == vesselUnloadID {
			session.revision++
			rev = session.revision
			session.selectVesselUnloadLocked(nil)
		}
	}
	s.mu.Unlock()

	s.refreshAfterVesselUnloadChange(ctx, claims, key, gearUnloadID, rev)
	return s.snapshot(key), nil
}

func (s *EditSessionService) AddVesselCatch(ctx context.Context, claims *models.Claims, sampleDayID uuid.UUID, input models.VesselCatchInput) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	vesselUnloadID, rev, err := s.requireVesselUnloadSelection(key)
	if err != nil {
		return nil, err
	}
	input.VesselUnloadID = vesselUnloadID

	vc, err := s.sampling.CreateVesselCatch(ctx, claims, input)
	if err != nil {
		return nil, err
	}

	s.refreshAfterVesselCatchChange(ctx, claims, key, vesselUnloadID, rev)
	s.mu.Lock()
	if session, ok := s.sessions[key]; ok && session.revision == rev {
		id := vc.ID
		session.SelectedCatchID = &id
	}
	s.mu.Unlock()
	return s.snapshot(key), nil
}

func (s *EditSessionService) EditVesselCatch(ctx context.Context, claims *models.Claims, sampleDayID, catchID uuid.UUID, input models.VesselCatchInput) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	vesselUnloadID, rev, err := s.requireVesselUnloadSelection(key)
	if err != nil {
		return nil, err
	}

	if _, err := s.sampling.UpdateVesselCatch(ctx, claims, catchID, input); err != nil {
		return nil, err
	}

	s.refreshAfterVesselCatchChange(ctx, claims, key, vesselUnloadID, rev)
	return s.snapshot(key), nil
}

func (s *EditSessionService) RemoveVesselCatch(ctx context.Context, claims *models.Claims, sampleDayID, catchID uuid.UUID) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	vesselUnloadID, rev, err := s.requireVesselUnloadSelection(key)
	if err != nil {
		return nil, err
	}

	if err := s.sampling.DeleteVesselCatch(ctx, claims, catchID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if session, ok := s.sessions[key]; ok {
		if session.SelectedCatchID != nil && *session.SelectedCatchID == catchID {
			session.revision++
			rev = session.revision
			session.SelectedCatchID = nil
			session.LengthPage = nil
		}
	}
	s.mu.Unlock()

	s.refreshAfterVesselCatchChange(ctx, claims, key, vesselUnloadID, rev)
	return s.snapshot(key), nil
}

func (s *EditSessionService) AddSampleLength(ctx context.Context, claims *models.Claims, sampleDayID uuid.UUID, lengthValue float64) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	catchID, rev, page, pageSize, err := s.requireCatchSelection(key)
	if err != nil {
		return nil, err
	}

	if _, err := s.sampling.CreateSampleLength(ctx, claims, models.SampleLengthInput{CatchID: catchID, LengthValue: lengthValue}); err != nil {
		return nil, err
	}

	if err := s.reloadLengthPage(ctx, claims, key, catchID, page, pageSize, rev); err != nil {
		slog.Error("length page refresh failed after add", "catch_id", catchID, "error", err)
	}
	return s.snapshot(key), nil
}

func (s *EditSessionService) RemoveSampleLength(ctx context.Context, claims *models.Claims, sampleDayID, lengthID uuid.UUID) (*EditSessionView, error) {
	key := editSessionKey{UserID: claims.UserID, SampleDayID: sampleDayID}
	catchID, rev, page, pageSize, err := s.requireCatchSelection(key)
	if err != nil {
		return nil, err
	}

	if err := s.sampling.DeleteSampleLength(ctx, claims, lengthID); err != nil {
		return nil, err
	}

	if err := s.reloadLengthPage(ctx, claims, key, catchID, page, pageSize, rev); err != nil {
		slog.Error("length page refresh failed after delete", "catch_id", catchID, "error", err)
	}
	return s.snapshot(key), nil
}

// ============================================================================
// SELECTION PRECONDITIONS
// ============================================================================

func (s *EditSessionService) requireGearUnloadSelection(key editSessionKey) (uuid.UUID, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok || session.SelectedGearUnloadID == nil {
		return uuid.Nil, 0, fmt.Errorf("%w: no gear unload selected", ErrNoSelection)
	}
	return *session.SelectedGearUnloadID, session.revision, nil
}

func (s *EditSessionService) requireVesselUnloadSelection(key editSessionKey) (uuid.UUID, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok || session.SelectedVesselUnloadID == nil {
		return uuid.Nil, 0, fmt.Errorf("%w: no vessel unload selected", ErrNoSelection)
	}
	return *session.SelectedVesselUnloadID, session.revision, nil
}

func (s *EditSessionService) requireCatchSelection(key editSessionKey) (uuid.UUID, uint64, int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok || session.SelectedCatchID == nil {
		return uuid.Nil, 0, 0, 0, fmt.Errorf("%w: no catch selected", ErrNoSelection)
	}
	page, pageSize := 1, DefaultLengthPageSize
	if session.LengthPage != nil {
		page, pageSize = session.LengthPage.Page, session.LengthPage.PageSize
	}
	return *session.SelectedCatchID, session.revision, page, pageSize, nil
}

// ============================================================================
// LEVEL RELOADS
// Each reload captures the revision it was fetched for and applies the
// result only if the selection has not moved since.
// ============================================================================

func (s *EditSessionService) reloadVesselUnloads(ctx context.Context, claims *models.Claims, key editSessionKey, gearUnloadID uuid.UUID, rev uint64) error {
	unloads, err := s.sampling.ListVesselUnloads(ctx, claims, gearUnloadID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok || session.revision != rev {
		return nil
	}
	session.VesselUnloads = unloads
	if session.SelectedVesselUnloadID != nil && !containsVesselUnload(unloads, *session.SelectedVesselUnloadID) {
		session.selectVesselUnloadLocked(nil)
	}
	return nil
}

func (s *EditSessionService) reloadVesselCatches(ctx context.Context, claims *models.Claims, key editSessionKey, vesselUnloadID uuid.UUID, rev uint64) error {
	catches, err := s.sampling.ListVesselCatches(ctx, claims, vesselUnloadID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok || session.revision != rev {
		return nil
	}
	session.VesselCatches = catches
	if session.SelectedCatchID != nil && !containsVesselCatch(catches, *session.SelectedCatchID) {
		session.SelectedCatchID = nil
		session.LengthPage = nil
	}
	return nil
}

func (s *EditSessionService) reloadLengthPage(ctx context.Context, claims *models.Claims, key editSessionKey, catchID uuid.UUID, page, pageSize int, rev uint64) error {
	lengthPage, err := s.sampling.ListSampleLengths(ctx, claims, catchID, page, pageSize)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok || session.revision != rev {
		return nil
	}
	if session.SelectedCatchID == nil || *session.SelectedCatchID != catchID {
		return nil
	}
	session.LengthPage = lengthPage
	return nil
}

// refreshAfterVesselUnloadChange reloads the vessel-unload list plus the
// gear-unload master list so the recomputed rollups show up immediately.
func (s *EditSessionService) refreshAfterVesselUnloadChange(ctx context.Context, claims *models.Claims, key editSessionKey, gearUnloadID uuid.UUID, rev uint64) {
	if err := s.reloadVesselUnloads(ctx, claims, key, gearUnloadID, rev); err != nil {
		slog.Error("vessel unload refresh failed", "gear_unload_id", gearUnloadID, "error", err)
	}
	s.refreshGearUnloads(ctx, claims, key)
}

func (s *EditSessionService) refreshAfterVesselCatchChange(ctx context.Context, claims *models.Claims, key editSessionKey, vesselUnloadID uuid.UUID, rev uint64) {
	if err := s.reloadVesselCatches(ctx, claims, key, vesselUnloadID, rev); err != nil {
		slog.Error("vessel catch refresh failed", "vessel_unload_id", vesselUnloadID, "error", err)
	}
	s.mu.Lock()
	session, ok := s.sessions[key]
	var gearUnloadID *uuid.UUID
	if ok {
		gearUnloadID = session.SelectedGearUnloadID
		rev = session.revision
	}
	s.mu.Unlock()
	if gearUnloadID != nil {
		if err := s.reloadVesselUnloads(ctx, claims, key, *gearUnloadID, rev); err != nil {
			slog.Error("vessel unload refresh failed", "gear_unload_id", *gearUnloadID, "error", err)
		}
	}
	s.refreshGearUnloads(ctx, claims, key)
}

func (s *EditSessionService) refreshGearUnloads(ctx context.Context, claims *models.Claims, key editSessionKey) {
	gearUnloads, err := s.sampling.ListGearUnloads(ctx, claims, key.SampleDayID)
	if err != nil {
		slog.Error("gear unload refresh failed", "sample_day_id", key.SampleDayID, "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok {
		return
	}
	session.GearUnloads = gearUnloads
	if session.SelectedGearUnloadID != nil && !containsGearUnload(gearUnloads, *session.SelectedGearUnloadID) {
		session.selectGearUnloadLocked(nil)
	}
}

// ============================================================================
// INTERNALS
// ============================================================================

// selectGearUnloadLocked moves the master selection and clears everything
// downstream. Caller holds the service mutex.
func (session *editSession) selectGearUnloadLocked(id *uuid.UUID) {
	session.SelectedGearUnloadID = id
	session.VesselUnloads = []models.VesselUnload{}
	session.selectVesselUnloadLocked(nil)
}

func (session *editSession) selectVesselUnloadLocked(id *uuid.UUID) {
	session.SelectedVesselUnloadID = id
	session.VesselCatches = []models.VesselCatch{}
	session.SelectedCatchID = nil
	session.LengthPage = nil
}

func (s *EditSessionService) snapshot(key editSessionKey) *EditSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok {
		return &EditSessionView{
			GearUnloads:   []models.GearUnload{},
			VesselUnloads: []models.VesselUnload{},
			VesselCatches: []models.VesselCatch{},
		}
	}
	view := &EditSessionView{
		Day:                    session.Day,
		GearUnloads:            append([]models.GearUnload{}, session.GearUnloads...),
		SelectedGearUnloadID:   session.SelectedGearUnloadID,
		VesselUnloads:          append([]models.VesselUnload{}, session.VesselUnloads...),
		SelectedVesselUnloadID: session.SelectedVesselUnloadID,
		VesselCatches:          append([]models.VesselCatch{}, session.VesselCatches...),
		SelectedCatchID:        session.SelectedCatchID,
		LengthPage:             session.LengthPage,
	}
	return view
}

func containsGearUnload(list []models.GearUnload, id uuid.UUID) bool {
	for _, item := range list {
		if item.ID == id {
			return true
		}
	}
	return false
}

func containsVesselUnload(list []models.VesselUnload, id uuid.UUID) bool {
	for _, item := range list {
		if item.ID == id {
			return true
		}
	}
	return false
}

func containsVesselCatch(list []models.VesselCatch, id uuid.UUID) bool {
	for _, item := range list {
		if item.ID == id {
			return true
		}
	}
	return false
}

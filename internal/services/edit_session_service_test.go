package services

import (
	"context"
	"testing"

	"nsap-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditSessionFixture(t *testing.T) (*samplingFixture, *EditSessionService) {
	t.Helper()
	fix := newSamplingFixture(t)
	return fix, NewEditSessionService(fix.service)
}

// ============================================================================
// LIFECYCLE
// ============================================================================

func TestOpen_AutoSelectsFirstGearUnload(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	claims := fix.encoder()

	view, err := sessions.Open(context.Background(), claims, fix.dayID)
	require.NoError(t, err)

	require.NotNil(t, view.SelectedGearUnloadID)
	assert.Equal(t, fix.gearUnload, *view.SelectedGearUnloadID)
	assert.NotNil(t, view.GearUnloads)
	assert.NotNil(t, view.VesselUnloads)
	assert.NotNil(t, view.VesselCatches)
	assert.Nil(t, view.SelectedVesselUnloadID)
}

func TestOpen_EmptyDayHasNoSelection(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	claims := fix.encoder()
	require.NoError(t, fix.store.DeleteGearUnload(context.Background(), fix.gearUnload))

	view, err := sessions.Open(context.Background(), claims, fix.dayID)
	require.NoError(t, err)

	assert.Nil(t, view.SelectedGearUnloadID)
	assert.Empty(t, view.GearUnloads)
	assert.Empty(t, view.VesselUnloads)
}

func TestOpen_ReopenKeepsSurvivingSelection(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	second, err := fix.service.CreateGearUnload(ctx, claims, models.GearUnloadInput{
		SampleDayID: fix.dayID, GearID: fix.gearID,
	})
	require.NoError(t, err)

	_, err = sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	view, err := sessions.SelectGearUnload(ctx, claims, fix.dayID, second.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, *view.SelectedGearUnloadID)

	view, err = sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	require.NotNil(t, view.SelectedGearUnloadID)
	assert.Equal(t, second.ID, *view.SelectedGearUnloadID)
}

func TestOpen_ViewerCanBrowse(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)

	view, err := sessions.Open(context.Background(), fix.viewer(), fix.dayID)
	require.NoError(t, err)
	assert.NotNil(t, view.SelectedGearUnloadID)
}

// ============================================================================
// SELECTION
// ============================================================================

func TestSelectGearUnload_RejectsForeignID(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)

	_, err = sessions.SelectGearUnload(ctx, claims, fix.dayID, uuid.New())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSelectGearUnload_ClearsDownstreamState(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	second, err := fix.service.CreateGearUnload(ctx, claims, models.GearUnloadInput{
		SampleDayID: fix.dayID, GearID: fix.gearID,
	})
	require.NoError(t, err)
	unload, err := fix.service.CreateVesselUnload(ctx, claims, models.VesselUnloadInput{GearUnloadID: fix.gearUnload})
	require.NoError(t, err)

	_, err = sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	view, err := sessions.SelectGearUnload(ctx, claims, fix.dayID, fix.gearUnload)
	require.NoError(t, err)
	view, err = sessions.SelectVesselUnload(ctx, claims, fix.dayID, unload.ID)
	require.NoError(t, err)
	require.NotNil(t, view.SelectedVesselUnloadID)

	view, err = sessions.SelectGearUnload(ctx, claims, fix.dayID, second.ID)
	require.NoError(t, err)
	assert.Nil(t, view.SelectedVesselUnloadID)
	assert.Empty(t, view.VesselCatches)
	assert.Nil(t, view.SelectedCatchID)
	assert.Nil(t, view.LengthPage)
}

func TestSelectVesselUnload_RequiresMembership(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)

	_, err = sessions.SelectVesselUnload(ctx, claims, fix.dayID, uuid.New())
	assert.ErrorIs(t, err, ErrValidation)
}

// ============================================================================
// MUTATIONS
// ============================================================================

func TestAddVesselUnload_WithoutOpenSession(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)

	_, err := sessions.AddVesselUnload(context.Background(), fix.encoder(), fix.dayID, models.VesselUnloadInput{})
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, fix.store.vesselUnloads)
}

func TestAddVesselCatch_WithoutVesselUnloadSelection(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)

	// A gear unload is selected but no vessel unload; the add must fail
	// before touching the store.
	_, err = sessions.AddVesselCatch(ctx, claims, fix.dayID, models.VesselCatchInput{
		SpeciesID: uuid.New(), CatchKg: fptr(5),
	})
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, fix.store.vesselCatches)
}

func TestAddVesselUnload_SelectsNewRowAndRefreshesRollup(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)

	view, err := sessions.AddVesselUnload(ctx, claims, fix.dayID, models.VesselUnloadInput{Effort1: fptr(3)})
	require.NoError(t, err)

	require.Len(t, view.VesselUnloads, 1)
	require.NotNil(t, view.SelectedVesselUnloadID)
	assert.Equal(t, view.VesselUnloads[0].ID, *view.SelectedVesselUnloadID)

	// The master list reflects the recomputed boats count.
	require.Len(t, view.GearUnloads, 1)
	assert.Equal(t, 1, view.GearUnloads[0].BoatsCount)
}

func TestRemoveVesselUnload_ClearsSelectionAndDependents(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	view, err := sessions.AddVesselUnload(ctx, claims, fix.dayID, models.VesselUnloadInput{})
	require.NoError(t, err)
	unloadID := *view.SelectedVesselUnloadID
	view, err = sessions.AddVesselCatch(ctx, claims, fix.dayID, models.VesselCatchInput{
		SpeciesID: uuid.New(), CatchKg: fptr(12),
	})
	require.NoError(t, err)
	require.NotNil(t, view.SelectedCatchID)

	view, err = sessions.RemoveVesselUnload(ctx, claims, fix.dayID, unloadID)
	require.NoError(t, err)

	assert.Nil(t, view.SelectedVesselUnloadID)
	assert.Empty(t, view.VesselUnloads)
	assert.Empty(t, view.VesselCatches)
	assert.Nil(t, view.SelectedCatchID)
	assert.Nil(t, view.LengthPage)
	require.Len(t, view.GearUnloads, 1)
	assert.Equal(t, 0, view.GearUnloads[0].BoatsCount)
}

func TestRemoveVesselCatch_ClearsCatchSelection(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	_, err = sessions.AddVesselUnload(ctx, claims, fix.dayID, models.VesselUnloadInput{})
	require.NoError(t, err)
	view, err := sessions.AddVesselCatch(ctx, claims, fix.dayID, models.VesselCatchInput{
		SpeciesID: uuid.New(), CatchKg: fptr(8),
	})
	require.NoError(t, err)
	catchID := *view.SelectedCatchID

	view, err = sessions.RemoveVesselCatch(ctx, claims, fix.dayID, catchID)
	require.NoError(t, err)

	assert.Nil(t, view.SelectedCatchID)
	assert.Nil(t, view.LengthPage)
	assert.Empty(t, view.VesselCatches)
}

// ============================================================================
// SAMPLE LENGTHS
// ============================================================================

func TestAddSampleLength_PagesThroughSelectedCatch(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	_, err = sessions.AddVesselUnload(ctx, claims, fix.dayID, models.VesselUnloadInput{})
	require.NoError(t, err)
	view, err := sessions.AddVesselCatch(ctx, claims, fix.dayID, models.VesselCatchInput{
		SpeciesID: uuid.New(), CatchKg: fptr(20), SampleKg: fptr(5),
	})
	require.NoError(t, err)
	catchID := *view.SelectedCatchID

	view, err = sessions.SelectVesselCatch(ctx, claims, fix.dayID, catchID)
	require.NoError(t, err)
	require.NotNil(t, view.LengthPage)
	assert.Equal(t, 0, view.LengthPage.Total)

	for i := 0; i < 12; i++ {
		view, err = sessions.AddSampleLength(ctx, claims, fix.dayID, 14.0+float64(i))
		require.NoError(t, err)
	}
	require.NotNil(t, view.LengthPage)
	assert.Equal(t, 12, view.LengthPage.Total)
	assert.Len(t, view.LengthPage.Lengths, DefaultLengthPageSize)

	view, err = sessions.LengthPage(ctx, claims, fix.dayID, 2, DefaultLengthPageSize)
	require.NoError(t, err)
	assert.Equal(t, 2, view.LengthPage.Page)
	assert.Len(t, view.LengthPage.Lengths, 2)
}

func TestAddSampleLength_WithoutCatchSelection(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	_, err = sessions.AddVesselUnload(ctx, claims, fix.dayID, models.VesselUnloadInput{})
	require.NoError(t, err)

	_, err = sessions.AddSampleLength(ctx, claims, fix.dayID, 15.0)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, fix.store.sampleLengths)
}

func TestClose_DropsSessionState(t *testing.T) {
	fix, sessions := newEditSessionFixture(t)
	ctx := context.Background()
	claims := fix.encoder()

	_, err := sessions.Open(ctx, claims, fix.dayID)
	require.NoError(t, err)
	sessions.Close(claims, fix.dayID)

	_, err = sessions.AddVesselUnload(ctx, claims, fix.dayID, models.VesselUnloadInput{})
	assert.ErrorIs(t, err, ErrNoSelection)
}

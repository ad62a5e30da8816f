package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirogiorgini/turnero-client/internal/api"
)

type fakeSubmitter struct {
	calls []api.AppointmentInput
	err   error
}

func (f *fakeSubmitter) CreateAppointment(_ context.Context, in api.AppointmentInput) error {
	f.calls = append(f.calls, in)
	return f.err
}

func readyWizard(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard(NewStore())
	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1", Name: "Centro", Address: "San Martín 100"}))
	require.NoError(t, w.SelectBarber("matias"))
	w.ApplyAvailability("matias", []Entry{{Date: "2025-06-02", FreeSlots: []string{"09:00", "10:00"}}})
	require.NoError(t, w.SelectDate("2025-06-02"))
	require.NoError(t, w.SelectTime("09:00"))
	require.NoError(t, w.SetDetails("Ana López", "a@b.com", "12345"))
	return w
}

func advanceToSummary(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.Equal(t, StepSummary, w.Step())
}

func TestStepIndexBounds(t *testing.T) {
	w := readyWizard(t)

	w.Back()
	assert.Equal(t, StepBranch, w.Step(), "back on first step is a no-op")

	advanceToSummary(t, w)
	assert.NoError(t, w.Next())
	assert.Equal(t, StepSummary, w.Step(), "next on last step does not advance")
}

func TestProgress(t *testing.T) {
	w := readyWizard(t)
	assert.Equal(t, 0.0, w.Progress())
	require.NoError(t, w.Next())
	assert.InDelta(t, 1.0/3.0, w.Progress(), 1e-9)
	advanceToSummary(t, w)
	assert.Equal(t, 1.0, w.Progress())
}

func TestNextGatedOnStepValidity(t *testing.T) {
	w := NewWizard(NewStore())

	err := w.Next()
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, StepBranch, w.Step())

	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1"}))
	require.NoError(t, w.Next())

	err = w.Next()
	assert.ErrorIs(t, err, ErrStepIncomplete, "schedule step needs barber, date and time")

	require.NoError(t, w.SelectBarber("matias"))
	w.ApplyAvailability("matias", []Entry{{Date: "2025-06-02", FreeSlots: []string{"09:00"}}})
	require.NoError(t, w.SelectDate("2025-06-02"))
	require.NoError(t, w.SelectTime("09:00"))
	require.NoError(t, w.Next())

	err = w.Next()
	assert.ErrorIs(t, err, ErrStepIncomplete, "details step needs valid contact fields")

	require.NoError(t, w.SetDetails("Ana", "a@b.com", "12345"))
	require.NoError(t, w.Next())
	assert.Equal(t, StepSummary, w.Step())
}

func TestDateGating(t *testing.T) {
	w := NewWizard(NewStore())
	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1"}))
	require.NoError(t, w.SelectBarber("matias"))

	// Fetch still pending: everything is unavailable.
	assert.True(t, w.Loading())
	assert.ErrorIs(t, w.SelectDate("2025-06-02"), ErrDateUnavailable)

	w.ApplyAvailability("matias", []Entry{
		{Date: "2025-06-02", FreeSlots: []string{"09:00", "10:00"}},
		{Date: "2025-06-03", FreeSlots: nil},
	})
	assert.False(t, w.Loading())

	assert.ErrorIs(t, w.SelectDate("2025-06-03"), ErrDateUnavailable, "day with no slots")
	assert.ErrorIs(t, w.SelectDate("2025-06-04"), ErrDateUnavailable, "unknown day")
	assert.NoError(t, w.SelectDate("2025-06-02"))
	assert.Equal(t, "2025-06-02", w.Draft().Date)
}

func TestSlotGating(t *testing.T) {
	w := NewWizard(NewStore())
	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1"}))
	require.NoError(t, w.SelectBarber("matias"))
	w.ApplyAvailability("matias", []Entry{{Date: "2025-06-02", FreeSlots: []string{"09:00", "10:00"}}})
	require.NoError(t, w.SelectDate("2025-06-02"))

	// Exactly 09:00 and 10:00 are selectable out of the candidate universe.
	var enabled []string
	for _, slot := range SlotUniverse() {
		if w.Availability().SlotFree("2025-06-02", slot) {
			enabled = append(enabled, slot)
		}
	}
	assert.Equal(t, []string{"09:00", "10:00"}, enabled)

	err := w.SelectTime("11:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, w.Draft().Time, "rejected selection leaves state unchanged")

	assert.NoError(t, w.SelectTime("10:00"))
	assert.Equal(t, "10:00", w.Draft().Time)
}

func TestBarberSwitchResetsDownstream(t *testing.T) {
	w := readyWizard(t)

	require.NoError(t, w.SelectBarber("joaquin"))
	d := w.Draft()
	assert.Empty(t, d.Date)
	assert.Empty(t, d.Time)
	assert.True(t, w.Loading())
	assert.ErrorIs(t, w.SelectDate("2025-06-02"), ErrDateUnavailable, "old table is gone")
}

func TestStaleAvailabilityDropped(t *testing.T) {
	w := NewWizard(NewStore())
	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1"}))

	require.NoError(t, w.SelectBarber("A"))
	require.NoError(t, w.SelectBarber("B"))

	// B's response lands first, then A's late response arrives.
	w.ApplyAvailability("B", []Entry{{Date: "2025-06-05", FreeSlots: []string{"12:00"}}})
	w.ApplyAvailability("A", []Entry{{Date: "2025-06-01", FreeSlots: []string{"09:00"}}})

	assert.True(t, w.Availability().DayAvailable("2025-06-05"), "current barber's data kept")
	assert.False(t, w.Availability().DayAvailable("2025-06-01"), "stale response ignored")

	// A late failure for the old barber must not clear B's table either.
	w.AvailabilityFailed("A")
	assert.True(t, w.Availability().DayAvailable("2025-06-05"))
}

func TestAvailabilityFailureFailsClosed(t *testing.T) {
	w := NewWizard(NewStore())
	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1"}))
	require.NoError(t, w.SelectBarber("matias"))

	w.AvailabilityFailed("matias")
	assert.False(t, w.Loading())
	assert.ErrorIs(t, w.SelectDate("2025-06-02"), ErrDateUnavailable)
}

func TestConfirmSuccessIsTerminal(t *testing.T) {
	w := readyWizard(t)
	advanceToSummary(t, w)

	sub := &fakeSubmitter{}
	require.NoError(t, w.Confirm(context.Background(), sub))
	require.Len(t, sub.calls, 1)

	in := sub.calls[0]
	assert.Equal(t, "Ana López", in.ClientName)
	assert.Equal(t, "2025-06-02", in.Date)
	assert.Equal(t, "09:00", in.Time)
	assert.Equal(t, "matias", in.Barber)
	assert.Equal(t, api.BranchRef{ID: "b1", Name: "Centro", Address: "San Martín 100"}, in.Branch)

	assert.True(t, w.Complete())
	assert.ErrorIs(t, w.SelectBarber("joaquin"), ErrComplete)
	assert.ErrorIs(t, w.SetDetails("x", "x@y.z", "1"), ErrComplete)
	assert.ErrorIs(t, w.Confirm(context.Background(), sub), ErrComplete)
	assert.Len(t, sub.calls, 1, "no second submission")
}

func TestConfirmFailureKeepsDraft(t *testing.T) {
	w := readyWizard(t)
	advanceToSummary(t, w)

	sub := &fakeSubmitter{err: &api.Error{Status: 400, Message: "Slot taken"}}
	err := w.Confirm(context.Background(), sub)
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Slot taken", apiErr.Message)

	assert.False(t, w.Complete())
	assert.Equal(t, "Ana López", w.Draft().ClientName, "draft retained for retry")

	sub.err = nil
	assert.NoError(t, w.Confirm(context.Background(), sub))
	assert.True(t, w.Complete())
}

func TestConfirmRequiresSummaryStep(t *testing.T) {
	w := readyWizard(t)
	err := w.Confirm(context.Background(), &fakeSubmitter{})
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSelectBranchIdempotent(t *testing.T) {
	w := readyWizard(t)
	before := w.Draft()
	require.NoError(t, w.SelectBranch(before.Branch))
	assert.Equal(t, before, w.Draft())
	assert.NotNil(t, w.Availability(), "re-selecting the same branch keeps the table")
}

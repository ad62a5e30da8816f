package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cirogiorgini/turnero-client/internal/api"
)

// Wizard steps, in order.
type Step int

const (
	StepBranch Step = iota + 1
	StepSchedule
	StepDetails
	StepSummary
)

const stepCount = 4

func (s Step) String() string {
	switch s {
	case StepBranch:
		return "branch"
	case StepSchedule:
		return "schedule"
	case StepDetails:
		return "details"
	case StepSummary:
		return "summary"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	// ErrStepIncomplete blocks forward navigation until the current step's
	// data is valid.
	ErrStepIncomplete = errors.New("booking: current step is incomplete")

	// ErrDateUnavailable rejects days with no known free slots. Pending or
	// failed availability counts as unavailable.
	ErrDateUnavailable = errors.New("booking: date is not available")

	// ErrSlotUnavailable rejects slots outside the selected date's free set.
	ErrSlotUnavailable = errors.New("booking: time slot is not available")

	// ErrComplete rejects edits after a successful confirmation.
	ErrComplete = errors.New("booking: appointment already confirmed")

	// ErrNotReady is returned by Confirm outside the summary step.
	ErrNotReady = errors.New("booking: draft is not ready to confirm")
)

// Submitter issues the appointment-creation request. *api.Client satisfies it.
type Submitter interface {
	CreateAppointment(ctx context.Context, in api.AppointmentInput) error
}

// Wizard drives the booking flow: it owns the step index, gates forward
// navigation on per-step validity, and guards availability lookups so a late
// response for a previously selected barber can never overwrite current data.
type Wizard struct {
	mu      sync.Mutex
	store   *Store
	step    Step
	table   *Table
	loading bool
	done    bool
}

// NewWizard starts a wizard on the first step, writing into store. The store
// is injected so the surfaces rendering each step share the same draft.
func NewWizard(store *Store) *Wizard {
	if store == nil {
		store = NewStore()
	}
	return &Wizard{store: store, step: StepBranch}
}

func (w *Wizard) Store() *Store { return w.store }

func (w *Wizard) Draft() Draft { return w.store.Get() }

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) StepCount() int { return stepCount }

// Progress is the fraction of steps completed, 0 on the first step and 1 on
// the last.
func (w *Wizard) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return float64(w.step-1) / float64(stepCount-1)
}

func (w *Wizard) Complete() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Loading reports whether an availability fetch is outstanding.
func (w *Wizard) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// Availability returns the current table; nil while nothing is loaded.
func (w *Wizard) Availability() *Table {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.table
}

// Next advances one step if the current step's data is valid. On the last
// step it is a no-op; Confirm is the terminal action there.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step >= StepSummary {
		return nil
	}
	if err := w.stepValid(); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back moves one step back; a no-op on the first step.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepBranch {
		w.step--
	}
}

func (w *Wizard) stepValid() error {
	d := w.store.Get()
	switch w.step {
	case StepBranch:
		if d.Branch.ID == "" {
			return fmt.Errorf("%w: select a branch", ErrStepIncomplete)
		}
	case StepSchedule:
		if d.Barber == "" || d.Date == "" || d.Time == "" {
			return fmt.Errorf("%w: select a barber, date and time", ErrStepIncomplete)
		}
	case StepDetails:
		if errs := ValidateDetails(d.ClientName, d.ClientEmail, d.ClientPhone); len(errs) > 0 {
			return fmt.Errorf("%w: %s", ErrStepIncomplete, errs)
		}
	}
	return nil
}

// SelectBranch records the branch. Re-selecting the current branch is a
// no-op; a different branch clears the barber, date, time and the
// availability table along with them.
func (w *Wizard) SelectBranch(b BranchSelection) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return ErrComplete
	}
	prev := w.store.Get().Branch
	w.store.Update(Patch{Branch: &b})
	if b != prev {
		w.table = nil
		w.loading = false
	}
	return nil
}

// SelectBarber records the barber and invalidates the availability table.
// The caller is expected to start a fetch and deliver its result through
// ApplyAvailability or AvailabilityFailed.
func (w *Wizard) SelectBarber(barberID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return ErrComplete
	}
	if w.store.Get().Barber == barberID {
		return nil
	}
	w.store.Update(Patch{Barber: &barberID})
	w.table = nil
	w.loading = barberID != ""
	return nil
}

// ApplyAvailability commits a fetched table, but only if barberID is still
// the selected barber. A response that raced with a newer selection is
// dropped so stale data never lands in shared state.
func (w *Wizard) ApplyAvailability(barberID string, entries []Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done || barberID != w.store.Get().Barber {
		return
	}
	w.table = NewTable(entries)
	w.loading = false
}

// AvailabilityFailed marks the fetch for barberID as finished without data.
// Days keep rendering as unavailable.
func (w *Wizard) AvailabilityFailed(barberID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if barberID != w.store.Get().Barber {
		return
	}
	w.table = NewTable(nil)
	w.loading = false
}

// SelectDate picks a calendar day. Days without a free slot, or queried
// while availability is loading or missing, are rejected with no state
// change.
func (w *Wizard) SelectDate(date string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return ErrComplete
	}
	if w.loading || !w.table.DayAvailable(date) {
		return ErrDateUnavailable
	}
	w.store.Update(Patch{Date: &date})
	return nil
}

// SelectTime picks a slot on the selected date. Slots outside the date's
// free set are rejected with no state change.
func (w *Wizard) SelectTime(slot string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return ErrComplete
	}
	d := w.store.Get()
	if d.Date == "" || w.loading || !w.table.SlotFree(d.Date, slot) {
		return ErrSlotUnavailable
	}
	w.store.Update(Patch{Time: &slot})
	return nil
}

// SetDetails writes the client contact fields.
func (w *Wizard) SetDetails(name, email, phone string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return ErrComplete
	}
	w.store.Update(Patch{ClientName: &name, ClientEmail: &email, ClientPhone: &phone})
	return nil
}

// Confirm submits the full draft. Success is terminal for this wizard; on
// failure the draft is kept so the user can retry.
func (w *Wizard) Confirm(ctx context.Context, s Submitter) error {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return ErrComplete
	}
	if w.step != StepSummary {
		w.mu.Unlock()
		return ErrNotReady
	}
	d := w.store.Get()
	w.mu.Unlock()

	if d.Branch.ID == "" || d.Barber == "" || d.Date == "" || d.Time == "" {
		return ErrNotReady
	}
	if errs := ValidateDetails(d.ClientName, d.ClientEmail, d.ClientPhone); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrNotReady, errs)
	}

	err := s.CreateAppointment(ctx, api.AppointmentInput{
		ClientName:  d.ClientName,
		ClientEmail: d.ClientEmail,
		ClientPhone: d.ClientPhone,
		Date:        d.Date,
		Time:        d.Time,
		Barber:      d.Barber,
		Branch: api.BranchRef{
			ID:      d.Branch.ID,
			Name:    d.Branch.Name,
			Address: d.Branch.Address,
		},
	})
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.done = true
	w.mu.Unlock()
	return nil
}

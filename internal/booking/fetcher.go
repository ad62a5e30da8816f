package booking

import (
	"context"
	"log/slog"

	"github.com/cirogiorgini/turnero-client/internal/api"
)

// Fetcher loads availability from the backend and normalizes it into a
// Table. Fetch failures are non-fatal: the wizard just shows no available
// days and the user can switch barbers or retry.
type Fetcher struct {
	client *api.Client
	log    *slog.Logger
}

func NewFetcher(client *api.Client, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{client: client, log: log}
}

// ForBarber builds the per-day availability for one barber from their raw
// appointment records: each record contributes its time label to the day's
// free set when it is still open.
func (f *Fetcher) ForBarber(ctx context.Context, barberID string) ([]Entry, error) {
	records, err := f.client.BarberAppointments(ctx, barberID)
	if err != nil {
		f.log.Warn("availability fetch failed", "barber", barberID, "error", err)
		return nil, err
	}
	return entriesFromRecords(records), nil
}

// OpenDays returns the shop-wide availability from the public endpoint,
// used by the slots listing outside the wizard.
func (f *Fetcher) OpenDays(ctx context.Context) ([]Entry, error) {
	days, err := f.client.AvailableDays(ctx)
	if err != nil {
		f.log.Warn("open days fetch failed", "error", err)
		return nil, err
	}
	entries := make([]Entry, 0, len(days))
	for _, d := range days {
		entries = append(entries, Entry{Date: d.Date, FreeSlots: d.FreeSlots})
	}
	return entries, nil
}

// Feed runs a fetch for barberID and delivers the outcome to the wizard,
// which drops it if the selection has moved on.
func (f *Fetcher) Feed(ctx context.Context, w *Wizard, barberID string) {
	entries, err := f.ForBarber(ctx, barberID)
	if err != nil {
		w.AvailabilityFailed(barberID)
		return
	}
	w.ApplyAvailability(barberID, entries)
}

func entriesFromRecords(records []api.BarberAppointment) []Entry {
	byDate := make(map[string][]string)
	var order []string
	for _, r := range records {
		if !r.Available {
			continue
		}
		if _, ok := byDate[r.Date]; !ok {
			order = append(order, r.Date)
		}
		byDate[r.Date] = append(byDate[r.Date], r.Time)
	}
	entries := make([]Entry, 0, len(order))
	for _, d := range order {
		entries = append(entries, Entry{Date: d, FreeSlots: byDate[d]})
	}
	return entries
}

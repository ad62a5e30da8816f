package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirogiorgini/turnero-client/internal/api"
)

func TestFetcherForBarber(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/appointments/barber/matias", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"availableAppointments": []map[string]any{
				{"_id": "1", "date": "2025-06-02", "time": "09:00", "isAvailable": true},
				{"_id": "2", "date": "2025-06-02", "time": "10:00", "isAvailable": true},
				{"_id": "3", "date": "2025-06-02", "time": "11:00", "isAvailable": false},
				{"_id": "4", "date": "2025-06-03", "time": "09:00", "isAvailable": false},
			},
		})
	}))
	defer ts.Close()

	f := NewFetcher(api.New(ts.URL, nil), nil)
	entries, err := f.ForBarber(context.Background(), "matias")
	require.NoError(t, err)

	table := NewTable(entries)
	assert.Equal(t, []string{"09:00", "10:00"}, table.FreeSlots("2025-06-02"))
	assert.False(t, table.DayAvailable("2025-06-03"), "fully booked day is unavailable")
}

func TestFetcherFeedGuardsStaleResponses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"availableAppointments": []map[string]any{
				{"_id": "1", "date": "2025-06-02", "time": "09:00", "isAvailable": true},
			},
		})
	}))
	defer ts.Close()

	f := NewFetcher(api.New(ts.URL, nil), nil)
	w := NewWizard(NewStore())
	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1"}))
	require.NoError(t, w.SelectBarber("A"))
	require.NoError(t, w.SelectBarber("B"))

	// The fetch that was started for A resolves after the switch to B.
	f.Feed(context.Background(), w, "A")
	assert.True(t, w.Loading(), "late result for the old barber is dropped")

	f.Feed(context.Background(), w, "B")
	assert.False(t, w.Loading())
	assert.True(t, w.Availability().DayAvailable("2025-06-02"))
}

func TestFetcherFailureFeedsFailClosed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	f := NewFetcher(api.New(ts.URL, nil), nil)
	w := NewWizard(NewStore())
	require.NoError(t, w.SelectBranch(BranchSelection{ID: "b1"}))
	require.NoError(t, w.SelectBarber("matias"))

	f.Feed(context.Background(), w, "matias")
	assert.False(t, w.Loading())
	assert.ErrorIs(t, w.SelectDate("2025-06-02"), ErrDateUnavailable)
}

func TestFetcherOpenDays(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/appointments/available", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"availableAppointments": []map[string]any{
				{"date": "2025-06-02", "freeSlots": []string{"09:00", "10:00"}},
			},
		})
	}))
	defer ts.Close()

	f := NewFetcher(api.New(ts.URL, nil), nil)
	entries, err := f.OpenDays(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"09:00", "10:00"}, entries[0].FreeSlots)
}

package api

import (
	"context"
	"net/http"
)

// AvailableDays fetches the per-day availability used by the booking wizard.
func (c *Client) AvailableDays(ctx context.Context) ([]AvailabilityDay, error) {
	var out struct {
		AvailableAppointments []AvailabilityDay `json:"availableAppointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/appointments/available", nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out.AvailableAppointments, nil
}

// BarberAppointments fetches a barber's availability records.
func (c *Client) BarberAppointments(ctx context.Context, barberID string) ([]BarberAppointment, error) {
	var out struct {
		AvailableAppointments []BarberAppointment `json:"availableAppointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/appointments/barber/"+barberID, nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out.AvailableAppointments, nil
}

// AssignedAppointments fetches the appointments assigned to a barber.
func (c *Client) AssignedAppointments(ctx context.Context, barberID string) ([]AssignedAppointment, error) {
	var out struct {
		Appointments []AssignedAppointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/appointments/barber/"+barberID+"/assigned", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// CreateAppointment submits a complete draft. A non-2xx status comes back as
// *Error with the backend message when one was provided.
func (c *Client) CreateAppointment(ctx context.Context, in AppointmentInput) error {
	return c.do(ctx, http.MethodPost, "/api/appointments", nil, in, nil, false)
}

// UpdateAppointmentStatus moves an appointment between pending, completed and
// canceled.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) error {
	in := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, "/api/appointments/"+id+"/status", nil, in, nil, true)
}

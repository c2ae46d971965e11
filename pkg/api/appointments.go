package api

import (
	"context"
	"net/http"

	"medicsense-client/internal/dto"
)

// ScheduleAppointment is a write: re-invoking it books a duplicate slot, so
// callers disable their trigger until the call resolves.
func (c *Client) ScheduleAppointment(ctx context.Context, req dto.ScheduleAppointmentRequest) (*dto.ScheduleAppointmentResponse, error) {
	var resp dto.ScheduleAppointmentResponse
	if err := c.postJSON(ctx, "/appointments/schedule", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	return &resp, nil
}

func (c *Client) ListAppointments(ctx context.Context, userID string) ([]dto.AppointmentDTO, error) {
	var resp dto.ListAppointmentsResponse
	if err := c.getJSON(ctx, "/appointments/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	return resp.Appointments, nil
}

func (c *Client) CancelAppointment(ctx context.Context, userID, appointmentID string) error {
	var resp dto.CancelAppointmentResponse
	req := dto.CancelAppointmentRequest{UserID: userID, AppointmentID: appointmentID}
	if err := c.postJSON(ctx, "/appointments/cancel", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return rejected(http.StatusOK, resp.Error)
	}
	return nil
}

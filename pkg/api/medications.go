package api

import (
	"context"
	"net/http"

	"medicsense-client/internal/dto"
)

func (c *Client) AddMedication(ctx context.Context, req dto.AddMedicationRequest) error {
	var resp dto.AddMedicationResponse
	if err := c.postJSON(ctx, "/medications/add", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return rejected(http.StatusOK, resp.Error)
	}
	return nil
}

func (c *Client) ListMedications(ctx context.Context, userID string) ([]dto.MedicationDTO, error) {
	var resp dto.ListMedicationsResponse
	if err := c.getJSON(ctx, "/medications/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	return resp.Medications, nil
}

// MedicationSchedule returns today's doses keyed by time-of-day.
func (c *Client) MedicationSchedule(ctx context.Context, userID string) (map[string][]string, error) {
	var resp dto.MedicationScheduleResponse
	if err := c.getJSON(ctx, "/medications/schedule/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	return resp.Schedule, nil
}

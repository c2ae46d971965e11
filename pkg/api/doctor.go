package api

import (
	"context"
	"net/http"

	"medicsense-client/internal/dto"
)

func (c *Client) SaveDoctor(ctx context.Context, req dto.SaveDoctorRequest) error {
	var resp dto.SaveDoctorResponse
	if err := c.postJSON(ctx, "/save-doctor", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return rejected(http.StatusOK, resp.Error)
	}
	return nil
}

// GetDoctor returns (nil, nil) when the user has no family doctor on file;
// that is an empty state, not an error.
func (c *Client) GetDoctor(ctx context.Context, userID string) (*dto.FamilyDoctorDTO, error) {
	var resp dto.GetDoctorResponse
	if err := c.getJSON(ctx, "/get-doctor/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Doctor == nil {
		return nil, nil
	}
	return resp.Doctor, nil
}

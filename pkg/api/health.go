package api

import (
	"context"
	"errors"
	"net/http"

	"medicsense-client/internal/dto"
)

func errMissingField(name string) error {
	return errors.New("missing expected field: " + name)
}

func (c *Client) RecordVitals(ctx context.Context, req dto.RecordVitalsRequest) error {
	var resp dto.RecordVitalsResponse
	if err := c.postJSON(ctx, "/health/vitals", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return rejected(http.StatusOK, resp.Error)
	}
	return nil
}

func (c *Client) HealthHistory(ctx context.Context, userID string) (*dto.HealthPattern, error) {
	var resp dto.HealthHistoryResponse
	if err := c.getJSON(ctx, "/health/history/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	// A null pattern is the empty state: not enough reports yet.
	return resp.Pattern, nil
}

func (c *Client) CheckDrugInteraction(ctx context.Context, drug1, drug2 string) (*dto.DrugInteractionResponse, error) {
	var resp dto.DrugInteractionResponse
	req := dto.DrugInteractionRequest{Drug1: drug1, Drug2: drug2}
	if err := c.postJSON(ctx, "/drug-interaction", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

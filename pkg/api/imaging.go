package api

import (
	"context"
	"net/http"

	"medicsense-client/internal/dto"
)

// AnalyzeInjuryImage posts a base64 data-URL image for injury/disease
// recognition. Image analysis is slow; the caller should be showing a
// loading state for the duration.
func (c *Client) AnalyzeInjuryImage(ctx context.Context, req dto.AnalyzeInjuryImageRequest) (*dto.AnalyzeInjuryImageResponse, error) {
	var resp dto.AnalyzeInjuryImageResponse
	if err := c.postJSON(ctx, "/analyze-injury-image", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	return &resp, nil
}

// AnalyzeImage uploads the raw file through the multipart endpoint.
func (c *Client) AnalyzeImage(ctx context.Context, filePath, userID string) (*dto.AnalyzeImageResponse, error) {
	var resp dto.AnalyzeImageResponse
	fields := map[string]string{"user_id": userID}
	if err := c.postMultipartFile(ctx, "/analyze-image", "image", filePath, fields, &resp); err != nil {
		return nil, err
	}
	if !resp.Success && resp.Error != "" {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	if resp.Text() == "" {
		return nil, &MalformedError{Endpoint: "/analyze-image", Err: errMissingField("analysis")}
	}
	return &resp, nil
}

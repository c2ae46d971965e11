package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"medicsense-client/internal/pkg/logger"
)

// Client is the request dispatcher: every outbound call to the MedicSense
// backend goes through it. It does transport and decoding only; triage
// interpretation stays on the server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	logger  logger.ILogger
}

func NewClient(baseURL string, timeout time.Duration, log logger.ILogger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, path, out)
}

func (c *Client) postMultipartFile(ctx context.Context, path, fieldName, filePath string, fields map[string]string, out interface{}) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, file.Name())
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		kind := classifyTransportError(req.Context(), err)
		c.logger.Error("Dispatcher", "request failed", map[string]interface{}{
			"endpoint": path,
			"error":    err.Error(),
		})
		return fmt.Errorf("%s %s: %w", req.Method, path, kind)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, path, ErrNetworkUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := extractErrorReason(bodyBytes)
		c.logger.Warn("Dispatcher", "non-2xx response", map[string]interface{}{
			"endpoint": path,
			"status":   resp.StatusCode,
			"reason":   reason,
		})
		return &ServerRejectedError{Status: resp.StatusCode, Reason: reason}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return &MalformedError{Endpoint: path, Err: err}
	}
	return nil
}

// classifyTransportError separates a deadline expiry from plain loss of
// connectivity so the UI can say "timed out" instead of "offline".
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrNetworkUnavailable
}

// rejected converts a 2xx body carrying success=false into the taxonomy.
func rejected(status int, reason string) error {
	if reason == "" {
		reason = "request was not successful"
	}
	return &ServerRejectedError{Status: status, Reason: reason}
}

func extractErrorReason(body []byte) string {
	var probe struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	if probe.Error != "" {
		return probe.Error
	}
	return probe.Message
}

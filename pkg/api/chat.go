package api

import (
	"context"
	"net/http"

	"medicsense-client/internal/dto"
)

// SendChat posts one user message. The session id ties multi-turn dialogue
// together on the backend; an empty session id is omitted from the payload.
func (c *Client) SendChat(ctx context.Context, req dto.SendChatRequest) (*dto.SendChatResponse, error) {
	var resp dto.SendChatResponse
	if err := c.postJSON(ctx, "/chat", req, &resp); err != nil {
		return nil, err
	}
	if resp.Response == "" {
		return nil, &MalformedError{Endpoint: "/chat", Err: errMissingField("response")}
	}
	return &resp, nil
}

// ListNotifications fetches the inbox used for the unread badge count.
func (c *Client) ListNotifications(ctx context.Context, userID string) (*dto.ListNotificationsResponse, error) {
	var resp dto.ListNotificationsResponse
	if err := c.getJSON(ctx, "/notifications/"+userID, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(http.StatusOK, resp.Error)
	}
	return &resp, nil
}

// SendWhatsApp relays an appointment notification through the messaging
// bridge.
func (c *Client) SendWhatsApp(ctx context.Context, req dto.SendWhatsAppRequest) error {
	var resp dto.SendWhatsAppResponse
	if err := c.postJSON(ctx, "/whatsapp/send", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return rejected(http.StatusOK, resp.Error)
	}
	return nil
}

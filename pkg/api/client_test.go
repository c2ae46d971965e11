package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/dto"
	"medicsense-client/internal/pkg/logger"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(baseURL, timeout, logger.NewNopLogger())
}

func TestSendChatDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"response":"Rest and hydrate.","severity":2,"sentiment":"concerned"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	resp, err := client.SendChat(context.Background(), dto.SendChatRequest{Message: "headache", UserID: "user_x"})
	require.NoError(t, err)
	assert.Equal(t, "Rest and hydrate.", resp.Response)
	assert.Equal(t, constant.SeverityModerate, resp.Severity)
}

func TestSendChatStringSeverity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"Call 911.","severity":"emergency"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	resp, err := client.SendChat(context.Background(), dto.SendChatRequest{Message: "chest pain", UserID: "user_x"})
	require.NoError(t, err)
	assert.True(t, resp.Severity.IsEmergency())
}

func TestServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"model unavailable"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.SendChat(context.Background(), dto.SendChatRequest{Message: "hi", UserID: "user_x"})
	require.Error(t, err)

	var rejected *ServerRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusInternalServerError, rejected.Status)
	assert.Equal(t, "model unavailable", rejected.Reason)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.SendChat(context.Background(), dto.SendChatRequest{Message: "hi", UserID: "user_x"})
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}

func TestTimeoutClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 20*time.Millisecond)
	_, err := client.SendChat(context.Background(), dto.SendChatRequest{Message: "hi", UserID: "user_x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestConnectionRefusedClassification(t *testing.T) {
	// A server that is already closed guarantees a refused connection.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL, 2*time.Second)
	_, err := client.SendChat(context.Background(), dto.SendChatRequest{Message: "hi", UserID: "user_x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
}

func TestSuccessFalseBecomesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"no slots left"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.ScheduleAppointment(context.Background(), dto.ScheduleAppointmentRequest{
		UserID: "user_x", Doctor: "Dr. Priya", Date: "2026-09-01", Time: "10:30 AM",
	})
	require.Error(t, err)
	assert.True(t, IsServerRejected(err))
	assert.Contains(t, err.Error(), "no slots left")
}

func TestGetDoctorEmptyState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"doctor":null}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	doctor, err := client.GetDoctor(context.Background(), "user_x")
	require.NoError(t, err)
	assert.Nil(t, doctor)
}

package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/pkg/api"
)

func newTestNotifier() (*NotifierService, *recorderSink) {
	sink := &recorderSink{}
	return NewNotifierService(sink, logger.NewNopLogger()), sink
}

func TestNoticesStackIndependently(t *testing.T) {
	notifier, sink := newTestNotifier()

	notifier.Show("saved", constant.NotificationKindSuccess)
	notifier.Show("heads up", constant.NotificationKindWarning)
	notifier.Show("saved", constant.NotificationKindSuccess)

	rendered := sink.all()
	require.Len(t, rendered, 3)
	assert.NotEqual(t, rendered[0].Id, rendered[2].Id)
	assert.Len(t, notifier.Active(), 3)
}

func TestEmergencyAlertsNeverDeduplicate(t *testing.T) {
	notifier, sink := newTestNotifier()

	notifier.ShowEmergency(EmergencyAlertMessage)
	notifier.ShowEmergency(EmergencyAlertMessage)

	rendered := sink.all()
	require.Len(t, rendered, 2)
	for _, notice := range rendered {
		assert.True(t, notice.Emergency)
		assert.Equal(t, constant.NotificationKindError, notice.Kind)
	}
}

func TestNotifyErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
		wantMsg  string
	}{
		{
			name:     "validation surfaces as warning with its own message",
			err:      validationErr("email", "Please enter a valid email address"),
			wantKind: constant.NotificationKindWarning,
			wantMsg:  "Please enter a valid email address",
		},
		{
			name:     "timeout",
			err:      api.ErrTimeout,
			wantKind: constant.NotificationKindError,
			wantMsg:  "The request timed out. Please try again.",
		},
		{
			name:     "network unavailable",
			err:      api.ErrNetworkUnavailable,
			wantKind: constant.NotificationKindError,
			wantMsg:  "Network error. Please check if the backend server is running.",
		},
		{
			name:     "malformed body",
			err:      &api.MalformedError{Endpoint: "/chat", Err: errors.New("bad json")},
			wantKind: constant.NotificationKindError,
			wantMsg:  "Received an unexpected response from the server.",
		},
		{
			name:     "anything else",
			err:      errors.New("boom"),
			wantKind: constant.NotificationKindError,
			wantMsg:  "Something went wrong. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, sink := newTestNotifier()
			notifier.NotifyError(tt.err)

			rendered := sink.all()
			require.Len(t, rendered, 1)
			assert.Equal(t, tt.wantKind, rendered[0].Kind)
			assert.Equal(t, tt.wantMsg, rendered[0].Message)
		})
	}
}

func TestActiveOldestFirst(t *testing.T) {
	notifier, _ := newTestNotifier()
	notifier.Show("one", constant.NotificationKindInfo)
	notifier.Show("two", constant.NotificationKindInfo)

	active := notifier.Active()
	require.Len(t, active, 2)
	assert.False(t, active[1].CreatedAt.Before(active[0].CreatedAt))
}

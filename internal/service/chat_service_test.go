package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/implementation"
)

func newTestChat(t *testing.T, baseURL string) (*ChatService, *recorderSink) {
	t.Helper()
	db := newTestDB(t)
	transcript, _ := newTestTranscript(t, db)
	sink := &recorderSink{}
	notifier := NewNotifierService(sink, logger.NewNopLogger())
	chat := NewChatService(
		newTestClient(t, baseURL),
		newTestSession(t, db, ""),
		transcript,
		notifier,
		implementation.NewSymptomLogRepository(db),
		logger.NewNopLogger(),
	)
	return chat, sink
}

func chatHandler(severity int) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"response":"Noted.","severity":%d,"context":"general"}`, severity)
	}
}

func TestSendAppendsBothTurns(t *testing.T) {
	srv := newCountingServer(chatHandler(1))
	defer srv.Close()

	chat, _ := newTestChat(t, srv.URL)
	resp, err := chat.Send(context.Background(), "I have a mild cough")
	require.NoError(t, err)
	assert.Equal(t, "Noted.", resp.Response)

	entries := chat.transcript.List()
	require.Len(t, entries, 3)
	assert.Equal(t, constant.TranscriptRoleUser, entries[1].Role)
	assert.Equal(t, "I have a mild cough", entries[1].Content)
	assert.Equal(t, constant.TranscriptRoleAssistant, entries[2].Role)
	assert.Equal(t, 1, entries[2].Metadata.Severity)
}

func TestEmergencySeverityRaisesExactlyOneAlert(t *testing.T) {
	srv := newCountingServer(chatHandler(4))
	defer srv.Close()

	chat, sink := newTestChat(t, srv.URL)
	_, err := chat.Send(context.Background(), "crushing chest pain")
	require.NoError(t, err)

	emergencies := 0
	for _, notice := range sink.all() {
		if notice.Emergency {
			emergencies++
		}
	}
	assert.Equal(t, 1, emergencies)
}

func TestEmergencyShortcutAlertsBeforeDispatch(t *testing.T) {
	srv := newCountingServer(chatHandler(2))
	defer srv.Close()

	chat, sink := newTestChat(t, srv.URL)
	_, err := chat.SendEmergency(context.Background())
	require.NoError(t, err)

	notices := sink.all()
	require.NotEmpty(t, notices)
	assert.True(t, notices[0].Emergency)

	entries := chat.transcript.List()
	require.Len(t, entries, 3)
	assert.Equal(t, EmergencyChatMessage, entries[1].Content)
}

func TestSeriousSeverityDoesNotAlert(t *testing.T) {
	srv := newCountingServer(chatHandler(3))
	defer srv.Close()

	chat, sink := newTestChat(t, srv.URL)
	_, err := chat.Send(context.Background(), "sprained ankle")
	require.NoError(t, err)

	for _, notice := range sink.all() {
		assert.False(t, notice.Emergency)
	}
}

func TestSendFailureAppendsFallbackEntry(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	chat, sink := newTestChat(t, srv.URL)
	_, err := chat.Send(context.Background(), "hello")
	require.Error(t, err)

	entries := chat.transcript.List()
	require.Len(t, entries, 3)
	assert.Equal(t, constant.TranscriptRoleAssistant, entries[2].Role)
	assert.Contains(t, entries[2].Content, "encountered an error")
	assert.Equal(t, constant.ContextError, entries[2].Metadata.Context)
	assert.Len(t, sink.all(), 1)
}

func TestEmptyMessageNeverReachesNetwork(t *testing.T) {
	srv := newCountingServer(chatHandler(1))
	defer srv.Close()

	chat, _ := newTestChat(t, srv.URL)
	_, err := chat.Send(context.Background(), "   ")
	require.Error(t, err)

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, 0, srv.total())
	assert.Len(t, chat.transcript.List(), 1)
}

func TestAnalyzeSymptomsComposesPromptAndLogs(t *testing.T) {
	var gotMessage string
	var mu sync.Mutex
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		gotMessage, _ = body["message"].(string)
		mu.Unlock()
		fmt.Fprint(w, `{"response":"Sounds like tension headache.","severity":2}`)
	})
	defer srv.Close()

	chat, _ := newTestChat(t, srv.URL)
	ctx := context.Background()

	_, err := chat.AnalyzeSymptoms(ctx, "throbbing headache", "2 days", 6)
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, "Analyze these symptoms: throbbing headache. Duration: 2 days. Severity: 6/10.", gotMessage)
	mu.Unlock()

	log, err := chat.SymptomLog(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "throbbing headache", log[0].Symptoms)
	assert.Equal(t, 6, log[0].SeverityScore)
	assert.Equal(t, "Sounds like tension headache.", log[0].Analysis)

	report, err := chat.ExportSymptomReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, report, "Symptom Report")
	assert.Contains(t, report, "Severity: 6/10")
}

func TestAnalyzeSymptomsRejectsOutOfRangeScore(t *testing.T) {
	srv := newCountingServer(chatHandler(1))
	defer srv.Close()

	chat, _ := newTestChat(t, srv.URL)
	_, err := chat.AnalyzeSymptoms(context.Background(), "fever", "1 day", 11)
	require.Error(t, err)
	assert.Equal(t, 0, srv.total())
}

func TestConcurrentSendsLandInCompletionOrder(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		msg, _ := body["message"].(string)
		if strings.Contains(msg, "slow") {
			time.Sleep(150 * time.Millisecond)
		}
		fmt.Fprintf(w, `{"response":"reply to %s","severity":1}`, msg)
	})
	defer srv.Close()

	chat, _ := newTestChat(t, srv.URL)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = chat.Send(ctx, "slow question")
	}()
	time.Sleep(30 * time.Millisecond)
	go func() {
		defer wg.Done()
		_, _ = chat.Send(ctx, "fast question")
	}()
	wg.Wait()

	var replies []string
	for _, entry := range chat.transcript.List() {
		if entry.Role == constant.TranscriptRoleAssistant && strings.HasPrefix(entry.Content, "reply to") {
			replies = append(replies, entry.Content)
		}
	}
	require.Len(t, replies, 2)
	assert.Equal(t, "reply to fast question", replies[0])
	assert.Equal(t, "reply to slow question", replies[1])
}

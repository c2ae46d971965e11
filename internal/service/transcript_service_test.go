package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/model"
	"medicsense-client/internal/pkg/logger"
)

func TestTranscriptSeedsWelcome(t *testing.T) {
	svc, _ := newTestTranscript(t, newTestDB(t))

	entries := svc.List()
	require.Len(t, entries, 1)
	assert.Equal(t, constant.TranscriptRoleAssistant, entries[0].Role)
	assert.Equal(t, constant.WelcomeMessage, entries[0].Content)
}

func TestTranscriptAppendOrderAndIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTranscript(t, newTestDB(t))

	first, err := svc.Append(ctx, Entry{Role: constant.TranscriptRoleUser, Content: "I have a headache"})
	require.NoError(t, err)
	second, err := svc.Append(ctx, Entry{Role: constant.TranscriptRoleAssistant, Content: "How long has it lasted?"})
	require.NoError(t, err)

	entries := svc.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "I have a headache", entries[1].Content)
	assert.Equal(t, "How long has it lasted?", entries[2].Content)

	assert.NotEqual(t, uuid.Nil, first.Id)
	assert.NotEqual(t, first.Id, second.Id)
	assert.False(t, first.Timestamp.IsZero())
}

func TestTranscriptSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	svc, repo := newTestTranscript(t, db)
	_, err := svc.Append(ctx, Entry{
		Role:     constant.TranscriptRoleUser,
		Content:  "my arm hurts",
		Metadata: model.EntryMetadata{Context: constant.ContextSymptomCheck},
	})
	require.NoError(t, err)

	reloaded, err := NewTranscriptService(ctx, repo, logger.NewNopLogger())
	require.NoError(t, err)

	entries := reloaded.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "my arm hurts", entries[1].Content)
	assert.Equal(t, constant.ContextSymptomCheck, entries[1].Metadata.Context)
}

func TestTranscriptClearRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTranscript(t, newTestDB(t))

	_, err := svc.Append(ctx, Entry{Role: constant.TranscriptRoleUser, Content: "hello"})
	require.NoError(t, err)

	err = svc.Clear(ctx, false)
	assert.ErrorIs(t, err, ErrClearNotConfirmed)
	assert.Len(t, svc.List(), 2)

	require.NoError(t, svc.Clear(ctx, true))
	entries := svc.List()
	require.Len(t, entries, 1)
	assert.Equal(t, constant.WelcomeMessage, entries[0].Content)
}

func TestTranscriptExportFormat(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTranscript(t, newTestDB(t))

	_, err := svc.Append(ctx, Entry{Role: constant.TranscriptRoleUser, Content: "I feel dizzy"})
	require.NoError(t, err)

	export := svc.ExportAsText("user_test123")
	assert.Contains(t, export, "MedicSense AI - Chat Export")
	assert.Contains(t, export, "User ID: user_test123")
	assert.Contains(t, export, "[ASSISTANT]")
	assert.Contains(t, export, "[USER]")
	assert.Contains(t, export, "I feel dizzy")
	assert.Contains(t, export, "\n---\n")
	assert.Contains(t, export, "Always consult with healthcare professionals")
}

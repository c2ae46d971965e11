package service

import (
	"context"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDStableAcrossCalls(t *testing.T) {
	ctx := context.Background()
	svc := newTestSession(t, newTestDB(t), "")

	first, err := svc.GetOrCreateUserID(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "user_"))
	assert.NotContains(t, first, "-")

	second, err := svc.GetOrCreateUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSessionIDFormatAndReset(t *testing.T) {
	ctx := context.Background()
	svc := newTestSession(t, newTestDB(t), "")

	userID, err := svc.GetOrCreateUserID(ctx)
	require.NoError(t, err)
	sessionID, err := svc.GetOrCreateSessionID(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sessionID, "chat_"))

	again, err := svc.GetOrCreateSessionID(ctx)
	require.NoError(t, err)
	assert.Equal(t, sessionID, again)

	// Reset discards the session but keeps the user identity.
	require.NoError(t, svc.ResetSession(ctx))
	fresh, err := svc.GetOrCreateSessionID(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, sessionID, fresh)

	sameUser, err := svc.GetOrCreateUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, userID, sameUser)
}

func TestAuthTokenSubjectOverridesLocalID(t *testing.T) {
	ctx := context.Background()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "patient-777"})
	signed, err := token.SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	svc := newTestSession(t, newTestDB(t), signed)
	effective, err := svc.EffectiveUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "patient-777", effective)
}

func TestGarbageAuthTokenFallsBack(t *testing.T) {
	ctx := context.Background()
	svc := newTestSession(t, newTestDB(t), "not-a-jwt")

	effective, err := svc.EffectiveUserID(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(effective, "user_"))
}

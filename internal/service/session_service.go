package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/contract"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionService owns the two identifiers every backend call is keyed by:
// a stable per-install user id and a per-conversation session id. Both are
// generated once and never mutated; minting a new session id is what starts
// a logically new conversation with the backend.
type SessionService struct {
	settings contract.SettingRepository
	logger   logger.ILogger

	// authToken, when present, supersedes the generated user id with the
	// identity provider's subject. The generated id stays on disk as the
	// fallback for when the provider is not configured.
	authToken string
}

func NewSessionService(settings contract.SettingRepository, authToken string, log logger.ILogger) *SessionService {
	return &SessionService{
		settings:  settings,
		authToken: authToken,
		logger:    log,
	}
}

func (s *SessionService) GetOrCreateUserID(ctx context.Context) (string, error) {
	return s.getOrCreate(ctx, constant.SettingUserID, func() string {
		return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	})
}

func (s *SessionService) GetOrCreateSessionID(ctx context.Context) (string, error) {
	return s.getOrCreate(ctx, constant.SettingChatSessionID, func() string {
		return fmt.Sprintf("chat_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	})
}

// EffectiveUserID is what actually goes on the wire: the authenticated
// subject when a token is configured, the local id otherwise.
func (s *SessionService) EffectiveUserID(ctx context.Context) (string, error) {
	if sub := s.authenticatedSubject(); sub != "" {
		return sub, nil
	}
	return s.GetOrCreateUserID(ctx)
}

// ResetSession discards the current session id so the next chat turn starts
// a fresh backend conversation. The user id is untouched.
func (s *SessionService) ResetSession(ctx context.Context) error {
	if err := s.settings.Delete(ctx, constant.SettingChatSessionID); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	s.logger.Info("Session", "chat session reset", nil)
	return nil
}

func (s *SessionService) getOrCreate(ctx context.Context, key string, generate func() string) (string, error) {
	value, found, err := s.settings.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	if found {
		return value, nil
	}

	value = generate()
	if err := s.settings.Set(ctx, key, value); err != nil {
		return "", fmt.Errorf("persist %s: %w", key, err)
	}
	s.logger.Info("Session", "generated identifier", map[string]interface{}{"key": key})
	return value, nil
}

// authenticatedSubject pulls the subject claim out of the configured token.
// The token is not verified here: the backend owns verification, the client
// only needs the stable identifier it carries.
func (s *SessionService) authenticatedSubject() string {
	if s.authToken == "" {
		return ""
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.authToken, claims); err != nil {
		s.logger.Warn("Session", "auth token unparseable, falling back to local id", map[string]interface{}{"error": err.Error()})
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return ""
	}
	return sub
}

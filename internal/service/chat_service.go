package service

import (
	"context"
	"fmt"
	"strings"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/dto"
	"medicsense-client/internal/model"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/contract"
	"medicsense-client/pkg/api"
)

// EmergencyAlertMessage is the escalation banner raised when the backend
// classifies a reply at the top of the severity scale.
const EmergencyAlertMessage = "🚨 Emergency Detected! Call 911 or seek immediate medical attention."

// EmergencyChatMessage is the quick-action shortcut text sent on the
// user's behalf when they ask for emergency help.
const EmergencyChatMessage = "🚨 EMERGENCY - I need immediate medical help!"

// ChatService drives the conversational flow: append the user's turn, call
// the backend, append the reply in completion order, and escalate when the
// reply crosses the emergency threshold. It is the one place the client
// enforces a business rule of its own.
type ChatService struct {
	client     *api.Client
	session    *SessionService
	transcript *TranscriptService
	notifier   *NotifierService
	symptoms   contract.SymptomLogRepository
	logger     logger.ILogger
}

func NewChatService(
	client *api.Client,
	session *SessionService,
	transcript *TranscriptService,
	notifier *NotifierService,
	symptoms contract.SymptomLogRepository,
	log logger.ILogger,
) *ChatService {
	return &ChatService{
		client:     client,
		session:    session,
		transcript: transcript,
		notifier:   notifier,
		symptoms:   symptoms,
		logger:     log,
	}
}

// Send submits one chat turn. The user entry is appended before dispatch;
// the assistant entry is appended when the response actually arrives, so
// concurrent sends interleave in completion order. On failure a fallback
// assistant entry keeps the conversation usable and the error surfaces as a
// notification, never as a crash or a stuck busy state.
func (s *ChatService) Send(ctx context.Context, message string) (*dto.SendChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validationErr("message", "Please type a message first")
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}
	sessionID, err := s.session.GetOrCreateSessionID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.transcript.Append(ctx, Entry{
		Role:    constant.TranscriptRoleUser,
		Content: message,
	}); err != nil {
		return nil, err
	}

	resp, err := s.client.SendChat(ctx, dto.SendChatRequest{
		Message:   message,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		s.notifier.NotifyError(err)
		if _, appendErr := s.transcript.Append(ctx, Entry{
			Role:     constant.TranscriptRoleAssistant,
			Content:  "⚠️ I encountered an error. Please try again or check your internet connection.",
			Metadata: model.EntryMetadata{Context: constant.ContextError},
		}); appendErr != nil {
			s.logger.Error("Chat", "failed to append error entry", map[string]interface{}{"error": appendErr.Error()})
		}
		return nil, err
	}

	if _, err := s.transcript.Append(ctx, Entry{
		Role:    constant.TranscriptRoleAssistant,
		Content: resp.Response,
		Metadata: model.EntryMetadata{
			Severity:  int(resp.Severity),
			Context:   responseContext(resp),
			Sentiment: resp.Sentiment,
		},
	}); err != nil {
		return nil, err
	}

	if resp.Severity.IsEmergency() {
		s.notifier.ShowEmergency(EmergencyAlertMessage)
		s.logger.Warn("Chat", "emergency severity reported", map[string]interface{}{
			"severity": int(resp.Severity),
		})
	}

	return resp, nil
}

// SendEmergency is the emergency quick action: it sends the fixed shortcut
// message and raises the alert immediately instead of waiting for the
// backend's classification.
func (s *ChatService) SendEmergency(ctx context.Context) (*dto.SendChatResponse, error) {
	s.notifier.ShowEmergency(EmergencyAlertMessage)
	return s.Send(ctx, EmergencyChatMessage)
}

// AnalyzeSymptoms runs the symptom-checker flow through the chat endpoint
// and appends a symptom log entry on success.
func (s *ChatService) AnalyzeSymptoms(ctx context.Context, symptoms, duration string, severityScore int) (*dto.SendChatResponse, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, validationErr("symptoms", "Please describe your symptoms")
	}
	if severityScore < 1 || severityScore > 10 {
		return nil, validationErr("severity", "Severity must be between 1 and 10")
	}

	message := fmt.Sprintf("Analyze these symptoms: %s. Duration: %s. Severity: %d/10.", symptoms, duration, severityScore)
	resp, err := s.Send(ctx, message)
	if err != nil {
		return nil, err
	}

	if err := s.symptoms.Append(ctx, &model.SymptomLogEntry{
		Symptoms:      symptoms,
		Duration:      duration,
		SeverityScore: severityScore,
		Analysis:      resp.Response,
	}); err != nil {
		// The analysis already reached the transcript; a log write
		// failure downgrades to a diagnostic.
		s.logger.Error("Chat", "failed to append symptom log", map[string]interface{}{"error": err.Error()})
	}

	return resp, nil
}

// SymptomLog returns the locally persisted analyses, oldest first.
func (s *ChatService) SymptomLog(ctx context.Context) ([]*model.SymptomLogEntry, error) {
	return s.symptoms.ListOrdered(ctx)
}

// ExportSymptomReport renders the most recent analysis as a shareable
// report, or "" when nothing has been logged yet.
func (s *ChatService) ExportSymptomReport(ctx context.Context) (string, error) {
	latest, err := s.symptoms.Latest(ctx)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("MedicSense AI - Symptom Report\n")
	b.WriteString("Generated: " + latest.CreatedAt.Format("2006-01-02 15:04:05") + "\n\n")
	b.WriteString("Symptoms: " + latest.Symptoms + "\n")
	b.WriteString("Duration: " + latest.Duration + "\n")
	b.WriteString(fmt.Sprintf("Severity: %d/10\n\n", latest.SeverityScore))
	b.WriteString("AI Analysis:\n" + latest.Analysis + "\n\n")
	b.WriteString("---\n")
	b.WriteString("This is not a medical diagnosis. Please consult a healthcare professional.\n")
	return b.String(), nil
}

func responseContext(resp *dto.SendChatResponse) string {
	if resp.Context != "" {
		return resp.Context
	}
	return constant.ContextGeneral
}

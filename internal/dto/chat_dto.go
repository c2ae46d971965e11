package dto

import "medicsense-client/internal/constant"

type SendChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
}

// SendChatResponse is the union of the fields the backend attaches to a chat
// reply. Everything beyond Response is optional display material; the client
// extracts it without interpreting the triage.
type SendChatResponse struct {
	Response          string            `json:"response"`
	Severity          constant.Severity `json:"severity,omitempty"`
	Context           string            `json:"context,omitempty"`
	Intent            string            `json:"intent,omitempty"`
	Sentiment         string            `json:"sentiment,omitempty"`
	SuggestedDoctors  []string          `json:"suggested_doctors,omitempty"`
	FirstAid          []string          `json:"first_aid,omitempty"`
	FollowUp          []string          `json:"follow_up,omitempty"`
	FollowUpQuestions []string          `json:"follow_up_questions,omitempty"`
	QuickActions      []string          `json:"quick_actions,omitempty"`
}

// FollowUps merges the two field names the backend has used for follow-up
// prompts.
func (r *SendChatResponse) FollowUps() []string {
	if len(r.FollowUpQuestions) > 0 {
		return r.FollowUpQuestions
	}
	return r.FollowUp
}

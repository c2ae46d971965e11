package constant

const (
	TranscriptRoleUser      = "user"
	TranscriptRoleAssistant = "assistant"

	// Settings keys in the local store. Both identifiers are written once
	// and never mutated; deleting a key starts a logically new session
	// with the backend.
	SettingUserID        = "user_id"
	SettingChatSessionID = "chat_session_id"
	SettingFamilyDoctor  = "family_doctor"

	NotificationKindInfo    = "info"
	NotificationKindSuccess = "success"
	NotificationKindWarning = "warning"
	NotificationKindError   = "error"

	// WelcomeMessage seeds a fresh or cleared transcript.
	WelcomeMessage = "👋 Welcome to MedicSense AI! Describe your symptoms and I'll help you figure out what to do next."

	// Context tags stamped on transcript metadata so rendering can pick
	// the right path.
	ContextGeneral       = "general"
	ContextError         = "error"
	ContextImageUpload   = "image-upload"
	ContextImageAnalysis = "image-analysis"
	ContextSymptomCheck  = "symptom-check"
)

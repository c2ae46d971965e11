package dto

type AddMedicationRequest struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Timing    string `json:"timing,omitempty"`
}

type AddMedicationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type MedicationDTO struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Timing    string `json:"timing,omitempty"`
}

type ListMedicationsResponse struct {
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	Medications []MedicationDTO `json:"medications"`
}

// MedicationScheduleResponse keys today's doses by time-of-day
// ("morning", "afternoon", "evening", "night" or clock times).
type MedicationScheduleResponse struct {
	Success  bool                `json:"success"`
	Error    string              `json:"error,omitempty"`
	Schedule map[string][]string `json:"schedule"`
}

type DrugInteractionRequest struct {
	Drug1 string `json:"drug1"`
	Drug2 string `json:"drug2"`
}

type DrugInteractionResponse struct {
	HasInteraction bool   `json:"has_interaction"`
	Severity       string `json:"severity,omitempty"`
	Details        string `json:"details,omitempty"`
}

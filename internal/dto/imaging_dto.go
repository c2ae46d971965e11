package dto

type AnalyzeInjuryImageRequest struct {
	// Image is a base64 data URL (data:image/...;base64,...).
	Image string `json:"image"`
	Notes string `json:"notes,omitempty"`
}

type AnalyzeInjuryImageResponse struct {
	Success                bool     `json:"success"`
	Error                  string   `json:"error,omitempty"`
	InjuryType             string   `json:"injury_type"`
	Severity               string   `json:"severity"`
	Confidence             float64  `json:"confidence"`
	Description            string   `json:"description"`
	CureSteps              []string `json:"cure_steps"`
	WarningSigns           []string `json:"warning_signs"`
	DoNot                  []string `json:"do_not"`
	MedicalAdvice          string   `json:"medical_advice"`
	PossibleConditions     []string `json:"possible_conditions,omitempty"`
	DiseaseCharacteristics []string `json:"disease_characteristics,omitempty"`
	RecommendedSpecialist  string   `json:"recommended_specialist,omitempty"`
}

// AnalyzeImageResponse is the multipart endpoint's reply; older backend
// revisions used "response" instead of "analysis".
type AnalyzeImageResponse struct {
	Success         bool     `json:"success"`
	Error           string   `json:"error,omitempty"`
	Analysis        string   `json:"analysis,omitempty"`
	Response        string   `json:"response,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	FirstAid        []string `json:"first_aid,omitempty"`
}

func (r *AnalyzeImageResponse) Text() string {
	if r.Analysis != "" {
		return r.Analysis
	}
	return r.Response
}

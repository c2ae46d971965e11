package dto

type RecordVitalsRequest struct {
	UserID           string `json:"user_id"`
	Temperature      string `json:"temperature,omitempty"`
	BloodPressure    string `json:"blood_pressure,omitempty"`
	HeartRate        string `json:"heart_rate,omitempty"`
	OxygenSaturation string `json:"oxygen_saturation,omitempty"`
	Weight           string `json:"weight,omitempty"`
}

type RecordVitalsResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type HealthHistoryResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Pattern *HealthPattern `json:"pattern,omitempty"`
}

// HealthPattern summarizes the last week of symptom reports. The
// most_common_symptoms pairs arrive as [symptom, count] tuples.
type HealthPattern struct {
	Pattern        string          `json:"pattern"`
	Frequency      int             `json:"frequency"`
	SeverityTrend  string          `json:"severity_trend"`
	RawSymptoms    [][]interface{} `json:"most_common_symptoms"`
	Recommendation string          `json:"recommendation"`
}

type SymptomCount struct {
	Symptom string
	Count   int
}

// CommonSymptoms decodes the tuple-shaped most_common_symptoms payload.
func (p *HealthPattern) CommonSymptoms() []SymptomCount {
	out := make([]SymptomCount, 0, len(p.RawSymptoms))
	for _, pair := range p.RawSymptoms {
		if len(pair) != 2 {
			continue
		}
		name, ok := pair[0].(string)
		if !ok {
			continue
		}
		count := 0
		if f, ok := pair[1].(float64); ok {
			count = int(f)
		}
		out = append(out, SymptomCount{Symptom: name, Count: count})
	}
	return out
}

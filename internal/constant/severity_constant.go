package constant

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Severity is the ordered triage classification attached to assistant
// responses. The backend owns the classification; the client only renders
// it and escalates at the top of the scale.
type Severity int

const (
	SeverityNone      Severity = 0
	SeverityMild      Severity = 1
	SeverityModerate  Severity = 2
	SeveritySerious   Severity = 3
	SeverityEmergency Severity = 4

	// EmergencyThreshold is the level at or above which the client must
	// raise a persistent emergency alert.
	EmergencyThreshold = SeverityEmergency
)

func (s Severity) Label() string {
	switch s {
	case SeverityMild:
		return "Mild"
	case SeverityModerate:
		return "Moderate"
	case SeveritySerious:
		return "Serious"
	case SeverityEmergency:
		return "EMERGENCY"
	default:
		return ""
	}
}

func (s Severity) IsEmergency() bool {
	return s >= EmergencyThreshold
}

// UnmarshalJSON accepts both numeric levels (1-4) and the string labels the
// backend emits on some endpoints ("low", "serious", "emergency", ...).
func (s *Severity) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*s = SeverityNone
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = ParseSeverity(raw)
		return nil
	}

	var level int
	if err := json.Unmarshal(data, &level); err != nil {
		return err
	}
	if level < int(SeverityNone) {
		level = int(SeverityNone)
	}
	if level > int(SeverityEmergency) {
		level = int(SeverityEmergency)
	}
	*s = Severity(level)
	return nil
}

// ParseSeverity maps the label variants seen across backend endpoints onto
// the ordered scale. Unknown labels map to SeverityNone rather than failing
// the whole response decode.
func ParseSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mild", "low", "minor":
		return SeverityMild
	case "moderate", "medium":
		return SeverityModerate
	case "serious", "severe", "high":
		return SeveritySerious
	case "emergency", "critical":
		return SeverityEmergency
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 4 {
		return Severity(n)
	}
	return SeverityNone
}

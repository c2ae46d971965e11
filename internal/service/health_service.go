package service

import (
	"context"
	"strings"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/dto"
	"medicsense-client/internal/model"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/contract"
	"medicsense-client/pkg/api"
)

// VitalsInput is the manual vitals form. All fields are free text the way a
// patient would type them ("98.6", "120/80", "72 bpm").
type VitalsInput struct {
	Temperature      string
	BloodPressure    string
	HeartRate        string
	OxygenSaturation string
	Weight           string
}

func (v *VitalsInput) empty() bool {
	return strings.TrimSpace(v.Temperature) == "" &&
		strings.TrimSpace(v.BloodPressure) == "" &&
		strings.TrimSpace(v.HeartRate) == "" &&
		strings.TrimSpace(v.OxygenSaturation) == "" &&
		strings.TrimSpace(v.Weight) == ""
}

// HealthService records vitals and fetches the weekly symptom pattern.
// Successful submissions are mirrored into the local vitals log.
type HealthService struct {
	client   *api.Client
	session  *SessionService
	notifier *NotifierService
	vitals   contract.VitalsLogRepository
	logger   logger.ILogger
}

func NewHealthService(
	client *api.Client,
	session *SessionService,
	notifier *NotifierService,
	vitals contract.VitalsLogRepository,
	log logger.ILogger,
) *HealthService {
	return &HealthService{client: client, session: session, notifier: notifier, vitals: vitals, logger: log}
}

// RecordVitals sends the measurements to the backend. At least one
// measurement must be filled in.
func (s *HealthService) RecordVitals(ctx context.Context, input VitalsInput) error {
	if input.empty() {
		err := validationErr("vitals", "Please enter at least one measurement")
		s.notifier.NotifyError(err)
		return err
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.client.RecordVitals(ctx, dto.RecordVitalsRequest{
		UserID:           userID,
		Temperature:      strings.TrimSpace(input.Temperature),
		BloodPressure:    strings.TrimSpace(input.BloodPressure),
		HeartRate:        strings.TrimSpace(input.HeartRate),
		OxygenSaturation: strings.TrimSpace(input.OxygenSaturation),
		Weight:           strings.TrimSpace(input.Weight),
	}); err != nil {
		s.notifier.NotifyError(err)
		return err
	}

	if err := s.vitals.Append(ctx, &model.VitalsLogEntry{
		Temperature:      strings.TrimSpace(input.Temperature),
		BloodPressure:    strings.TrimSpace(input.BloodPressure),
		HeartRate:        strings.TrimSpace(input.HeartRate),
		OxygenSaturation: strings.TrimSpace(input.OxygenSaturation),
		Weight:           strings.TrimSpace(input.Weight),
	}); err != nil {
		// Already recorded server-side; the local mirror is best effort.
		s.logger.Error("Health", "failed to append vitals log", map[string]interface{}{"error": err.Error()})
	}

	s.notifier.Show("Vitals recorded", constant.NotificationKindSuccess)
	return nil
}

// RecentVitals returns the locally mirrored submissions, oldest first.
func (s *HealthService) RecentVitals(ctx context.Context) ([]*model.VitalsLogEntry, error) {
	return s.vitals.ListOrdered(ctx)
}

// History returns the weekly pattern summary, or nil when the backend has
// nothing yet for this user.
func (s *HealthService) History(ctx context.Context) (*dto.HealthPattern, error) {
	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}

	pattern, err := s.client.HealthHistory(ctx, userID)
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}
	return pattern, nil
}

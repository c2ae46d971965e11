package service

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/dto"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/pkg/api"
)

const (
	scheduleCacheKey = "medication_schedule"
	scheduleCacheTTL = 60 * time.Second
)

// MedicationService manages the medication list and today's dose schedule.
// The schedule is cached for one refresh interval so repeated renders don't
// hammer the backend.
type MedicationService struct {
	client   *api.Client
	session  *SessionService
	notifier *NotifierService
	cache    *cache.Cache
	logger   logger.ILogger
}

func NewMedicationService(client *api.Client, session *SessionService, notifier *NotifierService, log logger.ILogger) *MedicationService {
	return &MedicationService{
		client:   client,
		session:  session,
		notifier: notifier,
		cache:    cache.New(scheduleCacheTTL, 2*scheduleCacheTTL),
		logger:   log,
	}
}

// Add registers a medication with the backend and invalidates the cached
// schedule so the next read reflects it.
func (s *MedicationService) Add(ctx context.Context, name, dosage, frequency, timing string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		err := validationErr("name", "Please enter the medication name")
		s.notifier.NotifyError(err)
		return err
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.client.AddMedication(ctx, dto.AddMedicationRequest{
		UserID:    userID,
		Name:      name,
		Dosage:    strings.TrimSpace(dosage),
		Frequency: strings.TrimSpace(frequency),
		Timing:    strings.TrimSpace(timing),
	}); err != nil {
		s.notifier.NotifyError(err)
		return err
	}

	s.cache.Delete(scheduleCacheKey)
	s.notifier.Show(name+" added to your medications", constant.NotificationKindSuccess)
	return nil
}

// List returns the current medications from the backend.
func (s *MedicationService) List(ctx context.Context) ([]dto.MedicationDTO, error) {
	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}

	meds, err := s.client.ListMedications(ctx, userID)
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}
	return meds, nil
}

// Schedule returns today's doses keyed by time-of-day, served from cache
// when fresh.
func (s *MedicationService) Schedule(ctx context.Context) (map[string][]string, error) {
	if cached, ok := s.cache.Get(scheduleCacheKey); ok {
		return cached.(map[string][]string), nil
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}

	schedule, err := s.client.MedicationSchedule(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(scheduleCacheKey, schedule, cache.DefaultExpiration)
	return schedule, nil
}

// RefreshSchedule drops the cache and refetches. The periodic refresher
// calls this so foreground reads stay warm.
func (s *MedicationService) RefreshSchedule(ctx context.Context) error {
	s.cache.Delete(scheduleCacheKey)
	_, err := s.Schedule(ctx)
	return err
}

// CheckInteraction asks the backend whether two drugs interact. An
// interaction at severe or higher raises a warning notification.
func (s *MedicationService) CheckInteraction(ctx context.Context, drug1, drug2 string) (*dto.DrugInteractionResponse, error) {
	drug1 = strings.TrimSpace(drug1)
	drug2 = strings.TrimSpace(drug2)
	if drug1 == "" || drug2 == "" {
		err := validationErr("drugs", "Please enter both drug names")
		s.notifier.NotifyError(err)
		return nil, err
	}

	resp, err := s.client.CheckDrugInteraction(ctx, drug1, drug2)
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}

	if resp.HasInteraction {
		s.notifier.Show("Interaction found between "+drug1+" and "+drug2, constant.NotificationKindWarning)
	}
	return resp, nil
}

package service

import (
	"context"
	"encoding/json"
	"strings"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/dto"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/contract"
	"medicsense-client/pkg/api"
)

// DoctorService manages the user's saved family doctor. The server copy is
// authoritative; a mirror in the local settings table keeps the detail
// available offline. Loads go through a sequence guard so a stale fetch
// can't clobber a save that landed after it started.
type DoctorService struct {
	client   *api.Client
	session  *SessionService
	notifier *NotifierService
	settings contract.SettingRepository
	logger   logger.ILogger

	guard sequenceGuard
}

func NewDoctorService(
	client *api.Client,
	session *SessionService,
	notifier *NotifierService,
	settings contract.SettingRepository,
	log logger.ILogger,
) *DoctorService {
	return &DoctorService{client: client, session: session, notifier: notifier, settings: settings, logger: log}
}

// Save validates and stores the doctor's details on the backend, then
// mirrors them locally.
func (s *DoctorService) Save(ctx context.Context, name, contact, specialization string) error {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	specialization = strings.TrimSpace(specialization)
	if name == "" {
		err := validationErr("name", "Please enter the doctor's name")
		s.notifier.NotifyError(err)
		return err
	}
	if contact == "" {
		err := validationErr("contact", "Please enter a contact number or email")
		s.notifier.NotifyError(err)
		return err
	}
	if strings.Contains(contact, "@") {
		if err := validateEmail(contact); err != nil {
			s.notifier.NotifyError(err)
			return err
		}
	} else if err := validatePhone(contact); err != nil {
		s.notifier.NotifyError(err)
		return err
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.client.SaveDoctor(ctx, dto.SaveDoctorRequest{
		UserID:         userID,
		Name:           name,
		Contact:        contact,
		Specialization: specialization,
	}); err != nil {
		s.notifier.NotifyError(err)
		return err
	}

	// Any in-flight load is now stale.
	s.guard.next()
	s.storeLocal(ctx, &dto.FamilyDoctorDTO{Name: name, Contact: contact, Specialization: specialization})
	s.notifier.Show("Family doctor saved", constant.NotificationKindSuccess)
	return nil
}

// Load fetches the saved doctor, or nil when none has been saved. A
// response overtaken by a Save yields the locally mirrored value instead.
func (s *DoctorService) Load(ctx context.Context) (*dto.FamilyDoctorDTO, error) {
	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}

	seq := s.guard.next()
	doctor, err := s.client.GetDoctor(ctx, userID)
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}
	if !s.guard.isLatest(seq) {
		s.logger.Debug("Doctor", "dropping stale load response", nil)
		return s.loadLocal(ctx), nil
	}

	s.storeLocal(ctx, doctor)
	return doctor, nil
}

// StoredDoctor returns the local mirror without touching the network.
func (s *DoctorService) StoredDoctor(ctx context.Context) *dto.FamilyDoctorDTO {
	return s.loadLocal(ctx)
}

func (s *DoctorService) storeLocal(ctx context.Context, doctor *dto.FamilyDoctorDTO) {
	if doctor == nil {
		if err := s.settings.Delete(ctx, constant.SettingFamilyDoctor); err != nil {
			s.logger.Error("Doctor", "failed to clear doctor mirror", map[string]interface{}{"error": err.Error()})
		}
		return
	}
	raw, err := json.Marshal(doctor)
	if err != nil {
		s.logger.Error("Doctor", "failed to encode doctor mirror", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.settings.Set(ctx, constant.SettingFamilyDoctor, string(raw)); err != nil {
		s.logger.Error("Doctor", "failed to persist doctor mirror", map[string]interface{}{"error": err.Error()})
	}
}

func (s *DoctorService) loadLocal(ctx context.Context) *dto.FamilyDoctorDTO {
	raw, found, err := s.settings.Get(ctx, constant.SettingFamilyDoctor)
	if err != nil || !found {
		return nil
	}
	var doctor dto.FamilyDoctorDTO
	if err := json.Unmarshal([]byte(raw), &doctor); err != nil {
		return nil
	}
	return &doctor
}

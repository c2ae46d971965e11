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

// BookingRequest carries the user-facing booking form. Validation runs
// locally before any network traffic.
type BookingRequest struct {
	Doctor         string
	Specialization string
	Date           string
	Time           string
	Reason         string
	Name           string
	Phone          string
	Email          string
}

// AppointmentService books and cancels appointments against the backend and
// mirrors the authoritative list into the local store so it survives
// restarts and offline stretches.
type AppointmentService struct {
	client   *api.Client
	session  *SessionService
	notifier *NotifierService
	repo     contract.AppointmentRepository
	logger   logger.ILogger
	guard    sequenceGuard
}

func NewAppointmentService(
	client *api.Client,
	session *SessionService,
	notifier *NotifierService,
	repo contract.AppointmentRepository,
	log logger.ILogger,
) *AppointmentService {
	return &AppointmentService{
		client:   client,
		session:  session,
		notifier: notifier,
		repo:     repo,
		logger:   log,
	}
}

// Book validates the form, schedules the appointment on the backend and
// records it locally as confirmed. For the on-platform doctor the booking is
// also relayed over WhatsApp; a relay failure does not fail the booking.
func (s *AppointmentService) Book(ctx context.Context, req BookingRequest) (*model.Appointment, error) {
	if err := s.validateBooking(&req); err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.ScheduleAppointment(ctx, dto.ScheduleAppointmentRequest{
		UserID:         userID,
		Doctor:         req.Doctor,
		Specialization: req.Specialization,
		Date:           req.Date,
		Time:           req.Time,
		Reason:         req.Reason,
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
	})
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}

	appt := &model.Appointment{
		Id:             resp.AppointmentID,
		Doctor:         req.Doctor,
		Specialization: req.Specialization,
		Date:           req.Date,
		Time:           req.Time,
		Reason:         req.Reason,
		Status:         model.AppointmentStatusConfirmed,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.notifier.Show(fmt.Sprintf("Appointment booked with %s on %s at %s", req.Doctor, req.Date, req.Time), constant.NotificationKindSuccess)

	if isPlatformDoctor(req.Doctor) && req.Phone != "" {
		s.relayWhatsApp(ctx, req)
	}

	return appt, nil
}

// Cancel asks the backend to cancel and flips the local status. The local
// row stays so the history view keeps showing it.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID string) error {
	if strings.TrimSpace(appointmentID) == "" {
		err := validationErr("appointment_id", "Appointment id is required")
		s.notifier.NotifyError(err)
		return err
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return err
	}

	if err := s.client.CancelAppointment(ctx, userID, appointmentID); err != nil {
		s.notifier.NotifyError(err)
		return err
	}
	if err := s.repo.UpdateStatus(ctx, appointmentID, model.AppointmentStatusCancelled); err != nil {
		return err
	}

	s.notifier.Show("Appointment cancelled", constant.NotificationKindInfo)
	return nil
}

// List returns the locally cached bookings in creation order.
func (s *AppointmentService) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.ListOrdered(ctx)
}

// Refresh pulls the server's list and replaces the local cache. Responses
// from superseded refreshes are dropped so a slow fetch never overwrites a
// newer one.
func (s *AppointmentService) Refresh(ctx context.Context) ([]*model.Appointment, error) {
	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}

	seq := s.guard.next()
	remote, err := s.client.ListAppointments(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.guard.isLatest(seq) {
		s.logger.Debug("Appointment", "dropping stale refresh response", map[string]interface{}{"seq": seq})
		return s.repo.ListOrdered(ctx)
	}

	appts := make([]*model.Appointment, 0, len(remote))
	for _, a := range remote {
		appts = append(appts, &model.Appointment{
			Id:             a.ID,
			Doctor:         a.Doctor,
			Specialization: a.Specialization,
			Date:           a.Date,
			Time:           a.Time,
			Reason:         a.Reason,
			Status:         a.Status,
		})
	}
	if err := s.repo.ReplaceAll(ctx, appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *AppointmentService) validateBooking(req *BookingRequest) error {
	req.Doctor = strings.TrimSpace(req.Doctor)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Name = strings.TrimSpace(req.Name)

	if req.Doctor == "" {
		return validationErr("doctor", "Please select a doctor")
	}
	if req.Date == "" {
		return validationErr("date", "Please pick a date")
	}
	if req.Time == "" {
		return validationErr("time", "Please pick a time slot")
	}
	if req.Name == "" {
		return validationErr("name", "Please enter your name")
	}
	if req.Email != "" {
		if err := validateEmail(req.Email); err != nil {
			return err
		}
	}
	if req.Phone != "" {
		if err := validatePhone(req.Phone); err != nil {
			return err
		}
	}
	return nil
}

func (s *AppointmentService) relayWhatsApp(ctx context.Context, req BookingRequest) {
	message := fmt.Sprintf(
		"New appointment request:\nPatient: %s\nDate: %s\nTime: %s\nReason: %s",
		req.Name, req.Date, req.Time, req.Reason,
	)
	if err := s.client.SendWhatsApp(ctx, dto.SendWhatsAppRequest{
		To:         req.Phone,
		Message:    message,
		DoctorName: req.Doctor,
	}); err != nil {
		s.logger.Warn("Appointment", "whatsapp relay failed", map[string]interface{}{"error": err.Error()})
	}
}

// isPlatformDoctor reports whether the booking targets the doctor who is
// registered on the platform and reachable over WhatsApp.
func isPlatformDoctor(doctor string) bool {
	return strings.EqualFold(doctor, "Dr. Aakash") || strings.EqualFold(doctor, "dr_aakash")
}

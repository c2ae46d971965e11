package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/model"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/contract"
	"medicsense-client/internal/repository/implementation"
)

func newTestAppointments(t *testing.T, baseURL string) (*AppointmentService, contract.AppointmentRepository, *recorderSink) {
	t.Helper()
	db := newTestDB(t)
	sink := &recorderSink{}
	repo := implementation.NewAppointmentRepository(db)
	svc := NewAppointmentService(
		newTestClient(t, baseURL),
		newTestSession(t, db, ""),
		NewNotifierService(sink, logger.NewNopLogger()),
		repo,
		logger.NewNopLogger(),
	)
	return svc, repo, sink
}

func validBooking() BookingRequest {
	return BookingRequest{
		Doctor: "Dr. Priya Sharma",
		Date:   "2026-09-01",
		Time:   "10:30 AM",
		Reason: "follow-up",
		Name:   "Jordan Lee",
		Email:  "jordan@example.com",
		Phone:  "+1 (555) 123-4567",
	}
}

func TestInvalidEmailBlocksBookingBeforeNetwork(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"appointment_id":"apt_1"}`)
	})
	defer srv.Close()

	svc, repo, sink := newTestAppointments(t, srv.URL)

	booking := validBooking()
	booking.Email = "not-an-email"
	_, err := svc.Book(context.Background(), booking)
	require.Error(t, err)

	assert.Equal(t, 0, srv.total())
	notices := sink.all()
	require.Len(t, notices, 1)
	assert.Equal(t, constant.NotificationKindWarning, notices[0].Kind)

	appts, err := repo.ListOrdered(context.Background())
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestShortPhoneRejected(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {})
	defer srv.Close()

	svc, _, _ := newTestAppointments(t, srv.URL)
	booking := validBooking()
	booking.Phone = "555-1234"
	_, err := svc.Book(context.Background(), booking)
	require.Error(t, err)
	assert.Equal(t, 0, srv.total())
}

func TestBookingRecordsConfirmedAppointment(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"appointment_id":"apt_42"}`)
	})
	defer srv.Close()

	svc, repo, sink := newTestAppointments(t, srv.URL)
	appt, err := svc.Book(context.Background(), validBooking())
	require.NoError(t, err)
	assert.Equal(t, "apt_42", appt.Id)
	assert.Equal(t, model.AppointmentStatusConfirmed, appt.Status)

	stored, err := repo.ListOrdered(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "apt_42", stored[0].Id)

	notices := sink.all()
	require.Len(t, notices, 1)
	assert.Equal(t, constant.NotificationKindSuccess, notices[0].Kind)
}

func TestPlatformDoctorBookingRelaysWhatsApp(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"appointment_id":"apt_7"}`)
	})
	defer srv.Close()

	svc, _, _ := newTestAppointments(t, srv.URL)
	booking := validBooking()
	booking.Doctor = "Dr. Aakash"
	_, err := svc.Book(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.count("/appointments/schedule"))
	assert.Equal(t, 1, srv.count("/whatsapp/send"))
}

func TestWhatsAppFailureDoesNotFailBooking(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/whatsapp/send" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"success":true,"appointment_id":"apt_8"}`)
	})
	defer srv.Close()

	svc, _, _ := newTestAppointments(t, srv.URL)
	booking := validBooking()
	booking.Doctor = "Dr. Aakash"
	_, err := svc.Book(context.Background(), booking)
	assert.NoError(t, err)
}

func TestCancelFlipsLocalStatus(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"appointment_id":"apt_9"}`)
	})
	defer srv.Close()

	svc, repo, _ := newTestAppointments(t, srv.URL)
	ctx := context.Background()

	_, err := svc.Book(ctx, validBooking())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, "apt_9"))

	stored, err := repo.ListOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, model.AppointmentStatusCancelled, stored[0].Status)
}

func TestRefreshReplacesLocalCache(t *testing.T) {
	srv := newCountingServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"appointments":[
			{"id":"apt_a","doctor":"Dr. Priya Sharma","date":"2026-09-05","time":"09:00 AM","status":"confirmed"},
			{"id":"apt_b","doctor":"Dr. Aakash","date":"2026-09-06","time":"11:00 AM","status":"pending"}
		]}`)
	})
	defer srv.Close()

	svc, repo, _ := newTestAppointments(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Appointment{
		Id: "stale", Doctor: "Dr. Old", Date: "2026-01-01", Time: "08:00 AM",
		Status: model.AppointmentStatusConfirmed,
	}))

	appts, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 2)

	stored, err := repo.ListOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "apt_a", stored[0].Id)
}

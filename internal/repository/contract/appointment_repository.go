package contract

import (
	"context"

	"medicsense-client/internal/model"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	ListOrdered(ctx context.Context) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ReplaceAll swaps the local cache for the server's authoritative list.
	ReplaceAll(ctx context.Context, appts []*model.Appointment) error
}

package implementation

import (
	"context"

	"medicsense-client/internal/model"
	"medicsense-client/internal/repository/contract"

	"gorm.io/gorm"
)

type AppointmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) contract.AppointmentRepository {
	return &AppointmentRepositoryImpl{db: db}
}

func (r *AppointmentRepositoryImpl) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *AppointmentRepositoryImpl) ListOrdered(ctx context.Context) ([]*model.Appointment, error) {
	var appts []*model.Appointment
	if err := r.db.WithContext(ctx).Order("created_at asc").Order("id asc").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentRepositoryImpl) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *AppointmentRepositoryImpl) ReplaceAll(ctx context.Context, appts []*model.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Appointment{}).Error; err != nil {
			return err
		}
		if len(appts) == 0 {
			return nil
		}
		return tx.Create(appts).Error
	})
}

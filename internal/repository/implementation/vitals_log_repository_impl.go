package implementation

import (
	"context"

	"medicsense-client/internal/model"
	"medicsense-client/internal/repository/contract"

	"gorm.io/gorm"
)

type VitalsLogRepositoryImpl struct {
	db *gorm.DB
}

func NewVitalsLogRepository(db *gorm.DB) contract.VitalsLogRepository {
	return &VitalsLogRepositoryImpl{db: db}
}

func (r *VitalsLogRepositoryImpl) Append(ctx context.Context, entry *model.VitalsLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *VitalsLogRepositoryImpl) ListOrdered(ctx context.Context) ([]*model.VitalsLogEntry, error) {
	var entries []*model.VitalsLogEntry
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

package implementation

import (
	"context"
	"errors"

	"medicsense-client/internal/model"
	"medicsense-client/internal/repository/contract"

	"gorm.io/gorm"
)

type SymptomLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSymptomLogRepository(db *gorm.DB) contract.SymptomLogRepository {
	return &SymptomLogRepositoryImpl{db: db}
}

func (r *SymptomLogRepositoryImpl) Append(ctx context.Context, entry *model.SymptomLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *SymptomLogRepositoryImpl) ListOrdered(ctx context.Context) ([]*model.SymptomLogEntry, error) {
	var entries []*model.SymptomLogEntry
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SymptomLogRepositoryImpl) Latest(ctx context.Context) (*model.SymptomLogEntry, error) {
	var entry model.SymptomLogEntry
	if err := r.db.WithContext(ctx).Order("seq desc").First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

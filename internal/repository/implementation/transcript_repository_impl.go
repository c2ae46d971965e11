package implementation

import (
	"context"

	"medicsense-client/internal/model"
	"medicsense-client/internal/repository/contract"

	"gorm.io/gorm"
)

type TranscriptRepositoryImpl struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) contract.TranscriptRepository {
	return &TranscriptRepositoryImpl{db: db}
}

func (r *TranscriptRepositoryImpl) Append(ctx context.Context, entry *model.TranscriptEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *TranscriptRepositoryImpl) ListOrdered(ctx context.Context) ([]*model.TranscriptEntry, error) {
	var entries []*model.TranscriptEntry
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *TranscriptRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.TranscriptEntry{}).Error
}

func (r *TranscriptRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TranscriptEntry{}).Count(&count).Error
	return count, err
}

package contract

import (
	"context"

	"medicsense-client/internal/model"
)

type TranscriptRepository interface {
	Append(ctx context.Context, entry *model.TranscriptEntry) error
	// ListOrdered returns every entry in insertion order.
	ListOrdered(ctx context.Context) ([]*model.TranscriptEntry, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

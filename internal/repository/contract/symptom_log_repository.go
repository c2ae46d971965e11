package contract

import (
	"context"

	"medicsense-client/internal/model"
)

type SymptomLogRepository interface {
	Append(ctx context.Context, entry *model.SymptomLogEntry) error
	ListOrdered(ctx context.Context) ([]*model.SymptomLogEntry, error)
	Latest(ctx context.Context) (*model.SymptomLogEntry, error)
}

package contract

import (
	"context"

	"medicsense-client/internal/model"
)

type VitalsLogRepository interface {
	Append(ctx context.Context, entry *model.VitalsLogEntry) error
	ListOrdered(ctx context.Context) ([]*model.VitalsLogEntry, error)
}

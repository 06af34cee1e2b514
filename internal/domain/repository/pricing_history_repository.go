package repository

import (
	"context"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// PricingHistoryRepository define el puerto del ledger de precios (DIP).
// El ledger es append-only: no hay Update ni Delete.
type PricingHistoryRepository interface {
	Append(ctx context.Context, entry *entity.PricingHistoryEntry) error
	// ListByEntity devuelve las entradas más recientes primero.
	ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entity.PricingHistoryEntry, int, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

var _ repository.PricingHistoryRepository = (*PricingHistoryRepo)(nil)

// PricingHistoryRepo implementación del ledger de precios sobre PostgreSQL
// (usable con pool o tx). Append-only: no hay UPDATE ni DELETE.
type PricingHistoryRepo struct {
	q Querier
}

// NewPricingHistoryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewPricingHistoryRepository(q Querier) *PricingHistoryRepo {
	return &PricingHistoryRepo{q: q}
}

// Append persiste una entrada del ledger.
func (r *PricingHistoryRepo) Append(ctx context.Context, e *entity.PricingHistoryEntry) error {
	query := `
		INSERT INTO module_pricing_history
			(id, entity_id, entity_type, module_id, old_price, new_price, price_type, changed_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.EntityID, e.EntityType, e.ModuleID, e.OldPrice, e.NewPrice,
		e.PriceType, e.ChangedBy, e.Reason, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append pricing history: %w", err)
	}
	return nil
}

// ListByEntity devuelve las entradas de una entidad, más recientes primero, con el total.
func (r *PricingHistoryRepo) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entity.PricingHistoryEntry, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM module_pricing_history WHERE entity_type = $1 AND entity_id = $2`
	if err := r.q.QueryRow(ctx, countQuery, entityType, entityID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pricing history: %w", err)
	}

	query := `
		SELECT id, entity_id, entity_type, module_id, old_price, new_price, price_type, changed_by, reason, created_at
		FROM module_pricing_history
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, entityType, entityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pricing history: %w", err)
	}
	defer rows.Close()

	var list []*entity.PricingHistoryEntry
	for rows.Next() {
		var e entity.PricingHistoryEntry
		if err := rows.Scan(&e.ID, &e.EntityID, &e.EntityType, &e.ModuleID, &e.OldPrice, &e.NewPrice, &e.PriceType, &e.ChangedBy, &e.Reason, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan pricing history: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

package financer

import (
	"context"

	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la actualización del
// financiador: si fn devuelve error, todo (escalares, pivots, ledger) se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		financerRepo repository.FinancerRepository,
		divisionRepo repository.DivisionRepository,
		historyRepo repository.PricingHistoryRepository,
	) error) error
}

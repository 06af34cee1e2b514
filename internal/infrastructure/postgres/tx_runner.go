package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beneflow/beneflow-api/internal/application/financer"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

// Ensure TxRunner implements financer.TxRunner.
var _ financer.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	financerRepo repository.FinancerRepository,
	divisionRepo repository.DivisionRepository,
	historyRepo repository.PricingHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	financerRepo := NewFinancerRepository(tx)
	divisionRepo := NewDivisionRepository(tx)
	historyRepo := NewPricingHistoryRepository(tx)

	if err := fn(financerRepo, divisionRepo, historyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

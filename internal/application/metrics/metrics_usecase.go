// Package metrics contiene el caso de uso de métricas de facturación de un
// financiador: beneficiarios activos, módulos activos e ingreso mensual estimado.
package metrics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

var centsPerEuro = decimal.NewFromInt(100)

// MetricsUseCase calcula las métricas de un financiador.
//
// Fuente de datos: FinancerRepository (consultas read-only).
// El ingreso mensual estimado es (paquete core + Σ precios de módulos activos)
// multiplicado por los beneficiarios activos, en céntimos.
type MetricsUseCase struct {
	financerRepo repository.FinancerRepository
}

// NewMetricsUseCase construye el caso de uso.
func NewMetricsUseCase(financerRepo repository.FinancerRepository) *MetricsUseCase {
	return &MetricsUseCase{financerRepo: financerRepo}
}

// GetFinancerMetrics construye el FinancerMetricsResponse para el financiador indicado.
//
// Dos llamadas en paralelo tras resolver el financiador:
//  1. CountActiveBeneficiaries → ActiveBeneficiaries
//  2. ListAssignments          → ActiveModules + precios de módulo
func (uc *MetricsUseCase) GetFinancerMetrics(
	ctx context.Context,
	scope entity.AccessScope,
	financerID string,
) (*dto.FinancerMetricsResponse, error) {
	fin, err := uc.financerRepo.GetByID(ctx, financerID)
	if err != nil {
		return nil, err
	}
	if fin == nil || !scope.CanAccessDivision(fin.DivisionID) {
		return nil, domain.ErrNotFound
	}

	type countResult struct {
		n   int
		err error
	}
	type assignmentsResult struct {
		items []*entity.FinancerModuleAssignment
		err   error
	}

	countCh := make(chan countResult, 1)
	assignCh := make(chan assignmentsResult, 1)

	go func() {
		n, err := uc.financerRepo.CountActiveBeneficiaries(ctx, fin.ID)
		countCh <- countResult{n, err}
	}()
	go func() {
		items, err := uc.financerRepo.ListAssignments(ctx, fin.ID)
		assignCh <- assignmentsResult{items, err}
	}()

	count := <-countCh
	assignments := <-assignCh

	if count.err != nil {
		return nil, fmt.Errorf("metrics: beneficiarios activos: %w", count.err)
	}
	if assignments.err != nil {
		return nil, fmt.Errorf("metrics: asignaciones de módulos: %w", assignments.err)
	}

	perBeneficiary := decimal.Zero
	if fin.CorePackagePrice != nil {
		perBeneficiary = decimal.NewFromInt(*fin.CorePackagePrice)
	}
	activeModules := 0
	for _, a := range assignments.items {
		if !a.Active {
			continue
		}
		activeModules++
		if a.PricePerBeneficiary != nil {
			perBeneficiary = perBeneficiary.Add(decimal.NewFromInt(*a.PricePerBeneficiary))
		}
	}

	revenue := perBeneficiary.Mul(decimal.NewFromInt(int64(count.n)))

	return &dto.FinancerMetricsResponse{
		FinancerID:              fin.ID,
		ActiveBeneficiaries:     count.n,
		ActiveModules:           activeModules,
		MonthlyRevenueCents:     revenue.IntPart(),
		MonthlyRevenueFormatted: formatEuros(revenue),
	}, nil
}

// formatEuros convierte céntimos a una etiqueta legible, ej: "1234.50 EUR".
func formatEuros(cents decimal.Decimal) string {
	return fmt.Sprintf("%s EUR", cents.Div(centsPerEuro).StringFixed(2))
}

package repository

import (
	"context"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// FinancerFilter filtros opcionales para el listado de financiadores.
type FinancerFilter struct {
	DivisionID string // vacío = todas las divisiones
	Status     string
	Limit      int
	Offset     int
}

// FinancerRepository define el puerto de persistencia para Financer y su pivot
// financer_module (DIP). La implementación vive en infrastructure.
type FinancerRepository interface {
	Create(ctx context.Context, financer *entity.Financer) error
	GetByID(ctx context.Context, id string) (*entity.Financer, error)
	List(ctx context.Context, filter FinancerFilter) ([]*entity.Financer, int, error)
	Update(ctx context.Context, financer *entity.Financer) error
	Delete(ctx context.Context, id string) error

	// Pivot financer_module. La ausencia de fila significa "nunca asignado":
	// GetAssignment devuelve (nil, nil) en ese caso.
	ListAssignments(ctx context.Context, financerID string) ([]*entity.FinancerModuleAssignment, error)
	GetAssignment(ctx context.Context, financerID, moduleID string) (*entity.FinancerModuleAssignment, error)
	UpsertAssignment(ctx context.Context, assignment *entity.FinancerModuleAssignment) error

	// Beneficiarios (financer_users), usados por métricas y prorrateo.
	CountActiveBeneficiaries(ctx context.Context, financerID string) (int, error)
	ListBeneficiaries(ctx context.Context, financerID string) ([]*entity.FinancerBeneficiary, error)
}

package repository

import (
	"context"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// DivisionRepository define el puerto de persistencia para Division y su pivot
// division_module, la lista blanca de módulos contratables (DIP).
type DivisionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Division, error)
	List(ctx context.Context) ([]*entity.Division, error)

	// Pivot division_module. GetActivation devuelve (nil, nil) si el módulo
	// nunca fue activado para la división.
	ListActivations(ctx context.Context, divisionID string) ([]*entity.DivisionModuleActivation, error)
	GetActivation(ctx context.Context, divisionID, moduleID string) (*entity.DivisionModuleActivation, error)
	UpsertActivation(ctx context.Context, activation *entity.DivisionModuleActivation) error

	// ListFinancerIDs se usa en la cascada de desactivación de módulos.
	ListFinancerIDs(ctx context.Context, divisionID string) ([]string, error)
}

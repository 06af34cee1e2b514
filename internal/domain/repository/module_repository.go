package repository

import (
	"context"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// ModuleRepository define el puerto de persistencia para el catálogo de módulos (DIP).
type ModuleRepository interface {
	Create(ctx context.Context, module *entity.Module) error
	GetByID(ctx context.Context, id string) (*entity.Module, error)
	// GetByIDs devuelve solo los módulos encontrados; los ids desconocidos
	// simplemente no aparecen en el resultado.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Module, error)
	List(ctx context.Context) ([]*entity.Module, error)
	Update(ctx context.Context, module *entity.Module) error
	Delete(ctx context.Context, id string) error
}

package usecase

import (
	"context"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

// DivisionUseCase lecturas de divisiones con scoping multi-tenant.
type DivisionUseCase struct {
	divisionRepo repository.DivisionRepository
}

// NewDivisionUseCase construye el caso de uso con el puerto de persistencia.
func NewDivisionUseCase(divisionRepo repository.DivisionRepository) *DivisionUseCase {
	return &DivisionUseCase{divisionRepo: divisionRepo}
}

// List lista divisiones. Los admins ven todas; el resto solo la suya.
func (uc *DivisionUseCase) List(ctx context.Context, scope entity.AccessScope) (*dto.DivisionListResponse, error) {
	divisions, err := uc.divisionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DivisionResponse, 0, len(divisions))
	for _, d := range divisions {
		if !scope.CanAccessDivision(d.ID) {
			continue
		}
		items = append(items, toDivisionResponse(d))
	}
	return &dto.DivisionListResponse{Items: items}, nil
}

// GetByID obtiene una división. Fuera de alcance responde como inexistente.
func (uc *DivisionUseCase) GetByID(ctx context.Context, scope entity.AccessScope, id string) (*dto.DivisionResponse, error) {
	d, err := uc.divisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || !scope.CanAccessDivision(d.ID) {
		return nil, domain.ErrNotFound
	}
	resp := toDivisionResponse(d)
	return &resp, nil
}

func toDivisionResponse(d *entity.Division) dto.DivisionResponse {
	return dto.DivisionResponse{
		ID:               d.ID,
		Name:             d.Name,
		Country:          d.Country,
		Language:         d.Language,
		CorePackagePrice: d.CorePackagePrice,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

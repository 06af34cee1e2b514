package financer

import (
	"context"
	"sort"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
	"github.com/beneflow/beneflow-api/pkg/i18n"
)

// buildModuleView arma la vista de módulos del financiador sobre los repos del
// orquestador.
func (uc *UpdateFinancerUseCase) buildModuleView(ctx context.Context, fin *entity.Financer) ([]dto.FinancerModuleView, error) {
	return BuildModuleView(ctx, uc.financerRepo, uc.divisionRepo, uc.moduleRepo, fin)
}

// BuildModuleView arma la vista de módulos del financiador: la unión de los
// módulos no-core activos en su división, anotados con el estado del pivot del
// financiador. Para módulos activos en la división que el financiador nunca
// asignó se usa el fallback inactivo/sin promoción/sin precio. Los módulos core
// quedan siempre fuera de la vista. La comparten PUT /financers/{id},
// GET /financers/{id} y GET /financers/{id}/modules.
func BuildModuleView(
	ctx context.Context,
	financerRepo repository.FinancerRepository,
	divisionRepo repository.DivisionRepository,
	moduleRepo repository.ModuleRepository,
	fin *entity.Financer,
) ([]dto.FinancerModuleView, error) {
	activations, err := divisionRepo.ListActivations(ctx, fin.DivisionID)
	if err != nil {
		return nil, err
	}

	allowed := make([]string, 0, len(activations))
	for _, a := range activations {
		if a.Active {
			allowed = append(allowed, a.ModuleID)
		}
	}
	if len(allowed) == 0 {
		return []dto.FinancerModuleView{}, nil
	}

	modules, err := moduleRepo.GetByIDs(ctx, allowed)
	if err != nil {
		return nil, err
	}

	assignments, err := financerRepo.ListAssignments(ctx, fin.ID)
	if err != nil {
		return nil, err
	}
	pivots := make(map[string]*entity.FinancerModuleAssignment, len(assignments))
	for _, a := range assignments {
		pivots[a.ModuleID] = a
	}

	view := make([]dto.FinancerModuleView, 0, len(modules))
	for _, m := range modules {
		if m.IsCore {
			continue
		}
		item := dto.FinancerModuleView{
			ID:       m.ID,
			Name:     i18n.Resolve(m.Name, ""),
			Category: m.Category,
		}
		if p, ok := pivots[m.ID]; ok {
			item.Active = p.Active
			item.Promoted = p.Promoted
			item.PricePerBeneficiary = p.PricePerBeneficiary
		}
		view = append(view, item)
	}
	sort.Slice(view, func(i, j int) bool { return view[i].Name < view[j].Name })
	return view, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/application/financer"
	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
	"github.com/beneflow/beneflow-api/pkg/i18n"
)

// ModuleUseCase gestiona el catálogo de módulos y su activación por división.
// Es el único punto de la aplicación que conoce la cascada de desactivación:
// quitar un módulo de una división lo desactiva para sus financiadores.
type ModuleUseCase struct {
	moduleRepo   repository.ModuleRepository
	divisionRepo repository.DivisionRepository
	txRunner     financer.TxRunner
}

// NewModuleUseCase construye el caso de uso de catálogo.
func NewModuleUseCase(
	moduleRepo repository.ModuleRepository,
	divisionRepo repository.DivisionRepository,
	txRunner financer.TxRunner,
) *ModuleUseCase {
	return &ModuleUseCase{moduleRepo: moduleRepo, divisionRepo: divisionRepo, txRunner: txRunner}
}

// List devuelve el catálogo completo con el nombre resuelto al locale del caller.
func (uc *ModuleUseCase) List(ctx context.Context, acceptLanguage string) (*dto.ModuleListResponse, error) {
	modules, err := uc.moduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		items = append(items, toModuleResponse(m, acceptLanguage))
	}
	return &dto.ModuleListResponse{Items: items}, nil
}

// GetByID devuelve un módulo del catálogo.
func (uc *ModuleUseCase) GetByID(ctx context.Context, id, acceptLanguage string) (*dto.ModuleResponse, error) {
	m, err := uc.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := toModuleResponse(m, acceptLanguage)
	return &resp, nil
}

// Create crea una entrada del catálogo. Solo admins; el nombre en-GB es obligatorio.
func (uc *ModuleUseCase) Create(ctx context.Context, scope entity.AccessScope, in dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	verrs := &domain.ValidationErrors{}
	if in.Name[i18n.DefaultLocale] == "" {
		verrs.Add("name."+i18n.DefaultLocale, "The en-GB name is required")
	}
	if in.Category == "" {
		verrs.Add("category", "The category field is required")
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	now := time.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	m := &entity.Module{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		IsCore:      in.IsCore,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.moduleRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := toModuleResponse(m, "")
	return &resp, nil
}

// Update actualiza una entrada del catálogo. IsCore es inmutable: no existe
// forma de cambiarlo por esta vía.
func (uc *ModuleUseCase) Update(ctx context.Context, scope entity.AccessScope, id string, in dto.UpdateModuleRequest) (*dto.ModuleResponse, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	m, err := uc.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if in.Name[i18n.DefaultLocale] == "" {
			verrs := &domain.ValidationErrors{}
			verrs.Add("name."+i18n.DefaultLocale, "The en-GB name is required")
			return nil, verrs
		}
		m.Name = in.Name
	}
	if in.Description != nil {
		m.Description = in.Description
	}
	if in.Category != nil {
		m.Category = *in.Category
	}
	if in.Active != nil {
		m.Active = *in.Active
	}
	m.UpdatedAt = time.Now()
	if err := uc.moduleRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := toModuleResponse(m, "")
	return &resp, nil
}

// Delete elimina una entrada del catálogo. Los módulos core no se borran.
func (uc *ModuleUseCase) Delete(ctx context.Context, scope entity.AccessScope, id string) error {
	if !scope.IsAdmin() {
		return domain.ErrForbidden
	}
	m, err := uc.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if m.IsCore {
		return domain.ErrConflict
	}
	return uc.moduleRepo.Delete(ctx, id)
}

// ActivateForDivision activa un módulo en la lista blanca de la división, con
// precio por defecto opcional. Si el precio de división cambia se escribe la
// entrada correspondiente del historial de precios.
func (uc *ModuleUseCase) ActivateForDivision(ctx context.Context, scope entity.AccessScope, in dto.DivisionModuleRequest) error {
	module, division, err := uc.resolvePair(ctx, scope, in)
	if err != nil {
		return err
	}

	existing, err := uc.divisionRepo.GetActivation(ctx, division.ID, module.ID)
	if err != nil {
		return err
	}
	var oldPrice *int64
	now := time.Now()
	activation := &entity.DivisionModuleActivation{
		DivisionID:          division.ID,
		ModuleID:            module.ID,
		Active:              true,
		PricePerBeneficiary: in.PricePerBeneficiary,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if existing != nil {
		oldPrice = existing.PricePerBeneficiary
		activation.CreatedAt = existing.CreatedAt
	}

	return uc.txRunner.Run(ctx, func(
		_ repository.FinancerRepository,
		divisionRepo repository.DivisionRepository,
		historyRepo repository.PricingHistoryRepository,
	) error {
		if err := divisionRepo.UpsertActivation(ctx, activation); err != nil {
			return err
		}
		if !samePrice(oldPrice, activation.PricePerBeneficiary) {
			moduleID := module.ID
			reason := in.Reason
			if reason == "" {
				reason = "division module activation"
			}
			entry := &entity.PricingHistoryEntry{
				ID:         uuid.New().String(),
				EntityID:   division.ID,
				EntityType: entity.PricingEntityDivision,
				ModuleID:   &moduleID,
				OldPrice:   oldPrice,
				NewPrice:   activation.PricePerBeneficiary,
				PriceType:  entity.PriceTypeModulePrice,
				ChangedBy:  &scope.UserID,
				Reason:     reason,
				CreatedAt:  now,
			}
			if err := historyRepo.Append(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeactivateForDivision quita un módulo de la lista blanca y lo desactiva en
// cascada para todos los financiadores de la división, todo en una transacción.
func (uc *ModuleUseCase) DeactivateForDivision(ctx context.Context, scope entity.AccessScope, in dto.DivisionModuleRequest) error {
	module, division, err := uc.resolvePair(ctx, scope, in)
	if err != nil {
		return err
	}

	existing, err := uc.divisionRepo.GetActivation(ctx, division.ID, module.ID)
	if err != nil {
		return err
	}
	now := time.Now()
	activation := &entity.DivisionModuleActivation{
		DivisionID: division.ID,
		ModuleID:   module.ID,
		Active:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existing != nil {
		activation.CreatedAt = existing.CreatedAt
	}

	return uc.txRunner.Run(ctx, func(
		financerRepo repository.FinancerRepository,
		divisionRepo repository.DivisionRepository,
		historyRepo repository.PricingHistoryRepository,
	) error {
		if err := divisionRepo.UpsertActivation(ctx, activation); err != nil {
			return err
		}

		financerIDs, err := divisionRepo.ListFinancerIDs(ctx, division.ID)
		if err != nil {
			return err
		}
		for _, financerID := range financerIDs {
			assignment, err := financerRepo.GetAssignment(ctx, financerID, module.ID)
			if err != nil {
				return err
			}
			// Sin fila no hay nada que desactivar: "nunca asignado" se conserva.
			if assignment == nil {
				continue
			}
			oldPrice := assignment.PricePerBeneficiary
			assignment.Active = false
			assignment.PricePerBeneficiary = nil
			assignment.UpdatedAt = now
			if err := financerRepo.UpsertAssignment(ctx, assignment); err != nil {
				return err
			}
			if !samePrice(oldPrice, nil) {
				moduleID := module.ID
				entry := &entity.PricingHistoryEntry{
					ID:         uuid.New().String(),
					EntityID:   financerID,
					EntityType: entity.PricingEntityFinancer,
					ModuleID:   &moduleID,
					OldPrice:   oldPrice,
					NewPrice:   nil,
					PriceType:  entity.PriceTypeModulePrice,
					ChangedBy:  &scope.UserID,
					Reason:     "division module deactivation",
					CreatedAt:  now,
				}
				if err := historyRepo.Append(ctx, entry); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// resolvePair carga módulo y división aplicando permisos de escritura.
func (uc *ModuleUseCase) resolvePair(ctx context.Context, scope entity.AccessScope, in dto.DivisionModuleRequest) (*entity.Module, *entity.Division, error) {
	if !scope.CanManage() {
		return nil, nil, domain.ErrForbidden
	}
	module, err := uc.moduleRepo.GetByID(ctx, in.ModuleID)
	if err != nil {
		return nil, nil, err
	}
	if module == nil {
		return nil, nil, domain.ErrNotFound
	}
	division, err := uc.divisionRepo.GetByID(ctx, in.DivisionID)
	if err != nil {
		return nil, nil, err
	}
	if division == nil || !scope.CanAccessDivision(division.ID) {
		return nil, nil, domain.ErrNotFound
	}
	return module, division, nil
}

func toModuleResponse(m *entity.Module, acceptLanguage string) dto.ModuleResponse {
	return dto.ModuleResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		DisplayName: i18n.Resolve(m.Name, acceptLanguage),
		Category:    m.Category,
		IsCore:      m.IsCore,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// samePrice compara precios opcionales: nil == nil cuenta como igual.
func samePrice(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

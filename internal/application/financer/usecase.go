package financer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

// FinancerUseCase casos de uso CRUD del financiador (la actualización compleja
// vive aparte en UpdateFinancerUseCase).
type FinancerUseCase struct {
	financerRepo repository.FinancerRepository
	divisionRepo repository.DivisionRepository
	moduleRepo   repository.ModuleRepository
	historyRepo  repository.PricingHistoryRepository
}

// NewFinancerUseCase construye el caso de uso.
func NewFinancerUseCase(
	financerRepo repository.FinancerRepository,
	divisionRepo repository.DivisionRepository,
	moduleRepo repository.ModuleRepository,
	historyRepo repository.PricingHistoryRepository,
) *FinancerUseCase {
	return &FinancerUseCase{
		financerRepo: financerRepo,
		divisionRepo: divisionRepo,
		moduleRepo:   moduleRepo,
		historyRepo:  historyRepo,
	}
}

// Create crea un financiador en la división indicada. El caller debe poder
// gestionar esa división.
func (uc *FinancerUseCase) Create(ctx context.Context, scope entity.AccessScope, in dto.CreateFinancerRequest) (*dto.FinancerResponse, error) {
	if !scope.CanManage() {
		return nil, domain.ErrForbidden
	}
	verrs := &domain.ValidationErrors{}
	if in.Name == "" {
		verrs.Add("name", "The name field is required")
	} else if len(in.Name) > maxNameLength {
		verrs.Add("name", "The name may not be greater than 255 characters")
	}
	if in.DivisionID == "" {
		verrs.Add("division_id", "The division id field is required")
	} else if _, err := uuid.Parse(in.DivisionID); err != nil {
		verrs.Add("division_id", "The division id must be a valid UUID")
	}
	if in.CorePackagePrice != nil && (*in.CorePackagePrice < 0 || *in.CorePackagePrice > maxCorePackagePrice) {
		verrs.Add("core_package_price", "The core package price must be between 0 and 9999999")
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	division, err := uc.divisionRepo.GetByID(ctx, in.DivisionID)
	if err != nil {
		return nil, err
	}
	if division == nil || !scope.CanAccessDivision(division.ID) {
		verrs.Add("division_id", "The selected division does not exist")
		return nil, verrs
	}

	now := time.Now()
	languages := in.AvailableLanguages
	if len(languages) == 0 && division.Language != "" {
		// Por defecto el financiador hereda el idioma de su división.
		languages = []string{division.Language}
	}
	fin := &entity.Financer{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		DivisionID:          in.DivisionID,
		ExternalID:          in.ExternalID,
		Timezone:            in.Timezone,
		RegistrationNumber:  in.RegistrationNumber,
		RegistrationCountry: in.RegistrationCountry,
		Website:             in.Website,
		IBAN:                in.IBAN,
		BIC:                 in.BIC,
		VATNumber:           in.VATNumber,
		CompanyNumber:       in.CompanyNumber,
		RepresentativeID:    in.RepresentativeID,
		Active:              true,
		Status:              entity.FinancerStatusPending,
		AvailableLanguages:  languages,
		CorePackagePrice:    in.CorePackagePrice,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.financerRepo.Create(ctx, fin); err != nil {
		return nil, err
	}
	return toFinancerResponse(fin), nil
}

// GetByID devuelve el financiador con su vista de módulos.
// Responde ErrNotFound si está fuera del ámbito del caller.
func (uc *FinancerUseCase) GetByID(ctx context.Context, scope entity.AccessScope, id string) (*dto.FinancerResponse, error) {
	fin, err := uc.scopedFinancer(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := toFinancerResponse(fin)
	view, err := BuildModuleView(ctx, uc.financerRepo, uc.divisionRepo, uc.moduleRepo, fin)
	if err != nil {
		return nil, err
	}
	resp.Modules = &view
	return resp, nil
}

// List lista financiadores con paginación. Los callers no-admin quedan siempre
// restringidos a su propia división, pidan lo que pidan por query.
func (uc *FinancerUseCase) List(ctx context.Context, scope entity.AccessScope, divisionID string, page dto.PageRequest) (*dto.FinancerListResponse, error) {
	page.DefaultPage()
	if !scope.IsAdmin() {
		divisionID = scope.DivisionID
	}
	items, total, err := uc.financerRepo.List(ctx, repository.FinancerFilter{
		DivisionID: divisionID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.FinancerResponse, 0, len(items))
	for _, f := range items {
		out = append(out, *toFinancerResponse(f))
	}
	return &dto.FinancerListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un financiador.
func (uc *FinancerUseCase) Delete(ctx context.Context, scope entity.AccessScope, id string) error {
	if !scope.CanManage() {
		return domain.ErrForbidden
	}
	if _, err := uc.scopedFinancer(ctx, scope, id); err != nil {
		return err
	}
	return uc.financerRepo.Delete(ctx, id)
}

// ToggleActive fija el flag active, o lo invierte si active es nil.
func (uc *FinancerUseCase) ToggleActive(ctx context.Context, scope entity.AccessScope, id string, active *bool) (*dto.FinancerResponse, error) {
	if !scope.CanManage() {
		return nil, domain.ErrForbidden
	}
	fin, err := uc.scopedFinancer(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if active != nil {
		fin.Active = *active
	} else {
		fin.Active = !fin.Active
	}
	fin.UpdatedAt = time.Now()
	if err := uc.financerRepo.Update(ctx, fin); err != nil {
		return nil, err
	}
	return toFinancerResponse(fin), nil
}

// SetCorePrice actualiza el precio del paquete core y escribe la entrada del
// ledger cuando el precio cambia de verdad (nil == nil cuenta como sin cambio).
func (uc *FinancerUseCase) SetCorePrice(ctx context.Context, scope entity.AccessScope, id string, in dto.SetCorePriceRequest) (*dto.FinancerResponse, error) {
	if !scope.CanManage() {
		return nil, domain.ErrForbidden
	}
	if in.CorePackagePrice != nil && (*in.CorePackagePrice < 0 || *in.CorePackagePrice > maxCorePackagePrice) {
		verrs := &domain.ValidationErrors{}
		verrs.Add("core_package_price", "The core package price must be between 0 and 9999999")
		return nil, verrs
	}
	fin, err := uc.scopedFinancer(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	oldPrice := fin.CorePackagePrice
	now := time.Now()
	fin.CorePackagePrice = in.CorePackagePrice
	fin.UpdatedAt = now
	if err := uc.financerRepo.Update(ctx, fin); err != nil {
		return nil, err
	}
	if !samePrice(oldPrice, fin.CorePackagePrice) {
		reason := in.Reason
		if reason == "" {
			reason = "core price update"
		}
		entry := &entity.PricingHistoryEntry{
			ID:         uuid.New().String(),
			EntityID:   fin.ID,
			EntityType: entity.PricingEntityFinancer,
			OldPrice:   oldPrice,
			NewPrice:   fin.CorePackagePrice,
			PriceType:  entity.PriceTypeCorePackage,
			ChangedBy:  &scope.UserID,
			Reason:     reason,
			CreatedAt:  now,
		}
		if err := uc.historyRepo.Append(ctx, entry); err != nil {
			return nil, err
		}
	}
	return toFinancerResponse(fin), nil
}

// ListModules devuelve la vista de módulos del financiador (GET /financers/{id}/modules).
func (uc *FinancerUseCase) ListModules(ctx context.Context, scope entity.AccessScope, id string) (*dto.FinancerModulesResponse, error) {
	fin, err := uc.scopedFinancer(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	view, err := BuildModuleView(ctx, uc.financerRepo, uc.divisionRepo, uc.moduleRepo, fin)
	if err != nil {
		return nil, err
	}
	return &dto.FinancerModulesResponse{Modules: view}, nil
}

// ListPricingHistory devuelve el ledger del financiador, más recientes primero.
func (uc *FinancerUseCase) ListPricingHistory(ctx context.Context, scope entity.AccessScope, id string, page dto.PageRequest) (*dto.PricingHistoryListResponse, error) {
	if _, err := uc.scopedFinancer(ctx, scope, id); err != nil {
		return nil, err
	}
	page.DefaultPage()
	entries, total, err := uc.historyRepo.ListByEntity(ctx, entity.PricingEntityFinancer, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PricingHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.PricingHistoryEntryResponse{
			ID:         e.ID,
			EntityID:   e.EntityID,
			EntityType: e.EntityType,
			ModuleID:   e.ModuleID,
			OldPrice:   e.OldPrice,
			NewPrice:   e.NewPrice,
			PriceType:  e.PriceType,
			ChangedBy:  e.ChangedBy,
			Reason:     e.Reason,
			CreatedAt:  e.CreatedAt,
		})
	}
	return &dto.PricingHistoryListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// scopedFinancer carga el financiador aplicando el ámbito de tenant: fuera de
// ámbito o inexistente responden igual (ErrNotFound).
func (uc *FinancerUseCase) scopedFinancer(ctx context.Context, scope entity.AccessScope, id string) (*entity.Financer, error) {
	fin, err := uc.financerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fin == nil || !scope.CanAccessDivision(fin.DivisionID) {
		return nil, domain.ErrNotFound
	}
	return fin, nil
}

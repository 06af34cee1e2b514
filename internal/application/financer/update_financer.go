package financer

import (
	"context"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

// Límites de la entrada (mismos rangos que la validación del formulario original).
const (
	maxNameLength       = 255
	maxModuleDirectives = 100
	maxCorePackagePrice = 9_999_999
	maxModulePrice      = 999_999
)

var bicPattern = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

// UpdateFinancerUseCase es el orquestador de PUT /financers/{id}: valida los
// escalares y las directivas de módulos contra la lista blanca de la división y
// las reglas de módulos core, y aplica todo (escalares, upserts del pivot,
// entradas del ledger) dentro de una única transacción. Cualquier fallo de
// validación aborta la petición completa sin tocar la BD.
type UpdateFinancerUseCase struct {
	txRunner     TxRunner
	financerRepo repository.FinancerRepository
	divisionRepo repository.DivisionRepository
	moduleRepo   repository.ModuleRepository
}

// NewUpdateFinancerUseCase construye el orquestador.
func NewUpdateFinancerUseCase(
	txRunner TxRunner,
	financerRepo repository.FinancerRepository,
	divisionRepo repository.DivisionRepository,
	moduleRepo repository.ModuleRepository,
) *UpdateFinancerUseCase {
	return &UpdateFinancerUseCase{
		txRunner:     txRunner,
		financerRepo: financerRepo,
		divisionRepo: divisionRepo,
		moduleRepo:   moduleRepo,
	}
}

// Update aplica una actualización atómica del financiador. Devuelve
// *domain.ValidationErrors ante cualquier fallo de validación (sin persistir
// nada), domain.ErrNotFound si el financiador no existe o está fuera del ámbito
// del caller, y el financiador actualizado (con la vista de módulos si el
// request traía directivas) en caso de éxito.
func (uc *UpdateFinancerUseCase) Update(
	ctx context.Context,
	scope entity.AccessScope,
	financerID string,
	in dto.UpdateFinancerRequest,
) (*dto.FinancerResponse, error) {
	fin, err := uc.financerRepo.GetByID(ctx, financerID)
	if err != nil {
		return nil, err
	}
	if fin == nil {
		return nil, domain.ErrNotFound
	}
	// Cross-tenant: un caller sin acceso a la división ve 404, no 403.
	if !scope.CanAccessDivision(fin.DivisionID) {
		return nil, domain.ErrNotFound
	}
	if !scope.CanManage() {
		return nil, domain.ErrForbidden
	}

	// Fase de validación: se recolectan TODOS los errores (escalares y de cada
	// directiva) antes de decidir; ningún write ocurre si algo falla.
	verrs := &domain.ValidationErrors{}
	uc.validateScalars(ctx, scope, in, verrs)

	var catalog map[string]*entity.Module
	if in.Modules.HasDirectives() {
		// La lista blanca se comprueba contra la división EFECTIVA: si el
		// request cambia division_id, las directivas se validan contra la
		// división destino, que es bajo la que quedará el pivot al commitear.
		divisionID := fin.DivisionID
		if in.DivisionID != nil {
			if _, parseErr := uuid.Parse(*in.DivisionID); parseErr == nil {
				divisionID = *in.DivisionID
			}
		}
		catalog, err = uc.validateDirectives(ctx, divisionID, in.Modules.Items, verrs)
		if err != nil {
			return nil, err
		}
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	now := time.Now()
	oldCorePrice := fin.CorePackagePrice
	applyScalarChanges(fin, in, now)

	// Fase de commit: todo o nada dentro de una transacción.
	err = uc.txRunner.Run(ctx, func(
		financerRepo repository.FinancerRepository,
		_ repository.DivisionRepository,
		historyRepo repository.PricingHistoryRepository,
	) error {
		if err := financerRepo.Update(ctx, fin); err != nil {
			return err
		}

		if in.CorePackagePriceSent() && !samePrice(oldCorePrice, fin.CorePackagePrice) {
			entry := &entity.PricingHistoryEntry{
				ID:         uuid.New().String(),
				EntityID:   fin.ID,
				EntityType: entity.PricingEntityFinancer,
				OldPrice:   oldCorePrice,
				NewPrice:   fin.CorePackagePrice,
				PriceType:  entity.PriceTypeCorePackage,
				ChangedBy:  &scope.UserID,
				Reason:     "financer update",
				CreatedAt:  now,
			}
			if err := historyRepo.Append(ctx, entry); err != nil {
				return err
			}
		}

		if !in.Modules.HasDirectives() {
			return nil
		}
		for _, d := range in.Modules.Items {
			if err := uc.applyDirective(ctx, financerRepo, historyRepo, fin, scope, d, catalog[d.ID], now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toFinancerResponse(fin)
	if in.Modules.HasDirectives() {
		view, err := uc.buildModuleView(ctx, fin)
		if err != nil {
			return nil, err
		}
		resp.Modules = &view
	}
	return resp, nil
}

// applyDirective hace el upsert explícito del pivot (¿existe? update : insert) y
// escribe la entrada del ledger cuando el precio del módulo cambió de verdad.
func (uc *UpdateFinancerUseCase) applyDirective(
	ctx context.Context,
	financerRepo repository.FinancerRepository,
	historyRepo repository.PricingHistoryRepository,
	fin *entity.Financer,
	scope entity.AccessScope,
	d dto.ModuleDirective,
	module *entity.Module,
	now time.Time,
) error {
	existing, err := financerRepo.GetAssignment(ctx, fin.ID, d.ID)
	if err != nil {
		return err
	}

	var oldPrice *int64
	assignment := &entity.FinancerModuleAssignment{
		FinancerID: fin.ID,
		ModuleID:   d.ID,
		CreatedAt:  now,
	}
	if existing != nil {
		oldPrice = existing.PricePerBeneficiary
		assignment.CreatedAt = existing.CreatedAt
		// promoted omitido conserva el valor actual del pivot.
		assignment.Promoted = existing.Promoted
	}

	assignment.Active = *d.Active
	if d.Promoted != nil {
		assignment.Promoted = *d.Promoted
	}
	assignment.PricePerBeneficiary = d.PricePerBeneficiary
	// Atajo de desactivación: desactivar deja el precio en nil aunque venga informado.
	if !assignment.Active {
		assignment.PricePerBeneficiary = nil
	}
	// Los módulos core nunca llevan precio y quedan fijados en activo.
	if module != nil && module.IsCore {
		assignment.Active = true
		assignment.PricePerBeneficiary = nil
	}
	assignment.UpdatedAt = now

	if err := financerRepo.UpsertAssignment(ctx, assignment); err != nil {
		return err
	}

	if !samePrice(oldPrice, assignment.PricePerBeneficiary) {
		moduleID := d.ID
		entry := &entity.PricingHistoryEntry{
			ID:         uuid.New().String(),
			EntityID:   fin.ID,
			EntityType: entity.PricingEntityFinancer,
			ModuleID:   &moduleID,
			OldPrice:   oldPrice,
			NewPrice:   assignment.PricePerBeneficiary,
			PriceType:  entity.PriceTypeModulePrice,
			ChangedBy:  &scope.UserID,
			Reason:     "financer update",
			CreatedAt:  now,
		}
		if err := historyRepo.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// validateScalars valida los atributos escalares del financiador.
func (uc *UpdateFinancerUseCase) validateScalars(
	ctx context.Context,
	scope entity.AccessScope,
	in dto.UpdateFinancerRequest,
	verrs *domain.ValidationErrors,
) {
	if in.Name != nil {
		if *in.Name == "" {
			verrs.Add("name", "The name field cannot be empty")
		} else if len(*in.Name) > maxNameLength {
			verrs.Add("name", "The name may not be greater than 255 characters")
		}
	}
	if in.Website != nil && *in.Website != "" {
		u, err := url.Parse(*in.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			verrs.Add("website", "The website must be a valid URL")
		}
	}
	if in.BIC != nil && *in.BIC != "" && !bicPattern.MatchString(*in.BIC) {
		verrs.Add("bic", "The bic format is invalid")
	}
	if in.RegistrationCountry != nil && *in.RegistrationCountry != "" && len(*in.RegistrationCountry) != 2 {
		verrs.Add("registration_country", "The registration country must be 2 characters")
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.FinancerStatusActive, entity.FinancerStatusPending, entity.FinancerStatusArchived:
		default:
			verrs.Add("status", "The selected status is invalid")
		}
	}
	if in.CorePackagePrice != nil && (*in.CorePackagePrice < 0 || *in.CorePackagePrice > maxCorePackagePrice) {
		verrs.Add("core_package_price", "The core package price must be between 0 and 9999999")
	}
	if in.RepresentativeID != nil && *in.RepresentativeID != "" {
		if _, err := uuid.Parse(*in.RepresentativeID); err != nil {
			verrs.Add("representative_id", "The representative id must be a valid UUID")
		}
	}
	if in.DivisionID != nil {
		if _, err := uuid.Parse(*in.DivisionID); err != nil {
			verrs.Add("division_id", "The division id must be a valid UUID")
			return
		}
		division, err := uc.divisionRepo.GetByID(ctx, *in.DivisionID)
		if err != nil || division == nil {
			verrs.Add("division_id", "The selected division does not exist")
			return
		}
		if !scope.CanAccessDivision(division.ID) {
			verrs.Add("division_id", "The selected division does not exist")
		}
	}
}

// validateDirectives valida la lista de directivas contra el catálogo, la lista
// blanca de la división indicada y las reglas de módulos core. Los errores se
// acumulan por índice (no corta en el primero), pero dentro de una misma
// directiva los chequeos de módulo core cortocircuitan el resto. Devuelve el
// catálogo precargado (id -> módulo) para la fase de commit.
func (uc *UpdateFinancerUseCase) validateDirectives(
	ctx context.Context,
	divisionID string,
	directives []dto.ModuleDirective,
	verrs *domain.ValidationErrors,
) (map[string]*entity.Module, error) {
	if len(directives) > maxModuleDirectives {
		verrs.Add("modules", "The modules may not have more than 100 items")
		return nil, nil
	}

	ids := make([]string, 0, len(directives))
	for _, d := range directives {
		if d.ID != "" {
			ids = append(ids, d.ID)
		}
	}

	modules, err := uc.moduleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]*entity.Module, len(modules))
	for _, m := range modules {
		catalog[m.ID] = m
	}

	activations, err := uc.divisionRepo.ListActivations(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	allowlist := make(map[string]bool, len(activations))
	for _, a := range activations {
		allowlist[a.ModuleID] = a.Active
	}

	for i, d := range directives {
		if d.ID == "" {
			verrs.Addf("The id field is required", "modules.%d.id", i)
			continue
		}
		if _, err := uuid.Parse(d.ID); err != nil {
			verrs.Addf("The id must be a valid UUID", "modules.%d.id", i)
			continue
		}
		if d.Active == nil {
			verrs.Addf("The active field is required", "modules.%d.active", i)
			continue
		}

		module, ok := catalog[d.ID]
		if !ok {
			verrs.Addf("The selected module does not exist", "modules.%d.id", i)
			continue
		}

		if !allowlist[d.ID] {
			verrs.Addf("Module is not activated for the financer's division", "modules.%d.id", i)
			continue
		}

		if module.IsCore {
			// Los chequeos core cortocircuitan el resto de reglas de este ítem.
			if !*d.Active {
				verrs.Addf("Core module cannot be deactivated", "modules.%d.active", i)
			}
			if d.PricePerBeneficiary != nil {
				verrs.Addf("Core module price must always be null (included in core package price)", "modules.%d.price_per_beneficiary", i)
			}
			continue
		}
		if d.PricePerBeneficiary != nil && (*d.PricePerBeneficiary < 0 || *d.PricePerBeneficiary > maxModulePrice) {
			verrs.Addf("The price per beneficiary must be between 0 and 999999", "modules.%d.price_per_beneficiary", i)
			continue
		}
		if *d.Active && d.PricePerBeneficiary == nil {
			verrs.Addf("Active non-core modules must have a price", "modules.%d.price_per_beneficiary", i)
		}
	}
	return catalog, nil
}

// applyScalarChanges copia al entity los escalares presentes en el request.
func applyScalarChanges(fin *entity.Financer, in dto.UpdateFinancerRequest, now time.Time) {
	if in.Name != nil {
		fin.Name = *in.Name
	}
	if in.DivisionID != nil {
		fin.DivisionID = *in.DivisionID
	}
	if in.ExternalID != nil {
		fin.ExternalID = in.ExternalID
	}
	if in.Timezone != nil {
		fin.Timezone = in.Timezone
	}
	if in.RegistrationNumber != nil {
		fin.RegistrationNumber = in.RegistrationNumber
	}
	if in.RegistrationCountry != nil {
		fin.RegistrationCountry = in.RegistrationCountry
	}
	if in.Website != nil {
		fin.Website = in.Website
	}
	if in.IBAN != nil {
		fin.IBAN = in.IBAN
	}
	if in.BIC != nil {
		fin.BIC = in.BIC
	}
	if in.VATNumber != nil {
		fin.VATNumber = in.VATNumber
	}
	if in.CompanyNumber != nil {
		fin.CompanyNumber = in.CompanyNumber
	}
	if in.RepresentativeID != nil {
		fin.RepresentativeID = in.RepresentativeID
	}
	if in.Active != nil {
		fin.Active = *in.Active
	}
	if in.Status != nil {
		fin.Status = *in.Status
	}
	if in.AvailableLanguages != nil {
		fin.AvailableLanguages = in.AvailableLanguages
	}
	if in.CorePackagePriceSent() {
		fin.CorePackagePrice = in.CorePackagePrice
	}
	fin.UpdatedAt = now
}

// samePrice compara precios opcionales: nil == nil cuenta como igual.
func samePrice(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

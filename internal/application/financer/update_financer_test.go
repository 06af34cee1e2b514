package financer_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beneflow/beneflow-api/internal/application/apptest"
	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/application/financer"
	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del orquestador de PUT /financers/{id}.
//
// Cubren las propiedades clave de la transacción de actualización:
//   - validación completa antes de escribir (todos los errores, ningún write)
//   - reglas de módulos core y lista blanca de la división
//   - atajo de desactivación y entradas del ledger solo ante cambio real
//   - atomicidad: un fallo a mitad de commit revierte todo
//   - aislamiento multi-tenant (404 para divisiones ajenas)
// ──────────────────────────────────────────────────────────────────────────────

const (
	testDivisionID      = "11111111-1111-1111-1111-111111111111"
	testOtherDivisionID = "22222222-2222-2222-2222-222222222222"
	testFinancerID      = "33333333-3333-3333-3333-333333333333"
	testCoreModuleID    = "44444444-4444-4444-4444-444444444444"
	testWellnessID      = "55555555-5555-5555-5555-555555555555"
	testVouchersID      = "66666666-6666-6666-6666-666666666666"
	testUnlistedID      = "77777777-7777-7777-7777-777777777777"
	testAdminUserID     = "88888888-8888-8888-8888-888888888888"
)

func adminScope() entity.AccessScope {
	return entity.AccessScope{UserID: testAdminUserID, Role: entity.RoleAdmin}
}

func i64(v int64) *int64 { return &v }

// seedStore construye el estado base: una división con el módulo core y dos
// módulos no-core (wellness y vouchers) en su lista blanca, un módulo de
// catálogo no activado para la división y un financiador con wellness ya
// contratado a 300 céntimos.
func seedStore() *apptest.MemStore {
	store := apptest.NewMemStore()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	store.Divisions[testDivisionID] = &entity.Division{
		ID: testDivisionID, Name: "Benelux", Country: "BE", Language: "fr-BE",
		CorePackagePrice: i64(1200), CreatedAt: now, UpdatedAt: now,
	}
	store.Divisions[testOtherDivisionID] = &entity.Division{
		ID: testOtherDivisionID, Name: "Iberia", Country: "ES", Language: "es-ES",
		CreatedAt: now, UpdatedAt: now,
	}

	store.Modules[testCoreModuleID] = &entity.Module{
		ID: testCoreModuleID, Name: entity.LocalizedText{"en-GB": "Internal link"},
		Category: entity.ModuleCategoryHR, IsCore: true, Active: true,
	}
	store.Modules[testWellnessID] = &entity.Module{
		ID: testWellnessID, Name: entity.LocalizedText{"en-GB": "Wellness"},
		Category: entity.ModuleCategoryWellness, Active: true,
	}
	store.Modules[testVouchersID] = &entity.Module{
		ID: testVouchersID, Name: entity.LocalizedText{"en-GB": "Vouchers"},
		Category: entity.ModuleCategoryBenefits, Active: true,
	}
	store.Modules[testUnlistedID] = &entity.Module{
		ID: testUnlistedID, Name: entity.LocalizedText{"en-GB": "Survey"},
		Category: entity.ModuleCategoryEngagement, Active: true,
	}

	for _, moduleID := range []string{testCoreModuleID, testWellnessID, testVouchersID} {
		store.Activations[apptest.PairKey(testDivisionID, moduleID)] = &entity.DivisionModuleActivation{
			DivisionID: testDivisionID, ModuleID: moduleID, Active: true,
			PricePerBeneficiary: i64(500),
		}
	}

	store.Financers[testFinancerID] = &entity.Financer{
		ID: testFinancerID, Name: "Acme Benefits", DivisionID: testDivisionID,
		Active: true, Status: entity.FinancerStatusActive,
		CorePackagePrice: i64(300), CreatedAt: now, UpdatedAt: now,
	}
	store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)] = &entity.FinancerModuleAssignment{
		FinancerID: testFinancerID, ModuleID: testWellnessID, Active: true,
		PricePerBeneficiary: i64(300), CreatedAt: now, UpdatedAt: now,
	}
	return store
}

func newUpdateUseCase(store *apptest.MemStore) (*financer.UpdateFinancerUseCase, *apptest.TxRunner) {
	txRunner := &apptest.TxRunner{Store: store}
	uc := financer.NewUpdateFinancerUseCase(
		txRunner,
		&apptest.FinancerRepo{Store: store},
		&apptest.DivisionRepo{Store: store},
		&apptest.ModuleRepo{Store: store},
	)
	return uc, txRunner
}

// mustRequest decodifica el body JSON igual que lo haría el handler, para que
// los estados "campo ausente" y "campo null" se distingan como en producción.
func mustRequest(t *testing.T, body string) dto.UpdateFinancerRequest {
	t.Helper()
	var in dto.UpdateFinancerRequest
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func requireValidation(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verrs *domain.ValidationErrors
	require.ErrorAs(t, err, &verrs, "se esperaba un error de validación")
	return verrs.AsMap()
}

// ── Escalares ──

func TestUpdate_EscalaresValidos(t *testing.T) {
	store := seedStore()
	uc, txRunner := newUpdateUseCase(store)

	in := mustRequest(t, `{"name": "Acme Group", "website": "https://acme.example", "bic": "GEBABEBB"}`)
	resp, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	assert.Equal(t, "Acme Group", resp.Name)
	assert.Equal(t, 1, txRunner.Runs, "los escalares se aplican dentro de la transacción")
	assert.Equal(t, "Acme Group", store.Financers[testFinancerID].Name)
	assert.Nil(t, resp.Modules, "sin directivas el response no incluye la clave modules")
}

func TestUpdate_EscalaresInvalidos_RecolectaTodos(t *testing.T) {
	store := seedStore()
	uc, txRunner := newUpdateUseCase(store)

	in := mustRequest(t, `{
		"name": "",
		"website": "no-es-una-url",
		"bic": "XX",
		"status": "deleted",
		"core_package_price": 10000000
	}`)
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "website")
	assert.Contains(t, fields, "bic")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "core_package_price")
	assert.Equal(t, 0, txRunner.Runs, "ante errores de validación no se abre transacción")
	assert.Equal(t, "Acme Benefits", store.Financers[testFinancerID].Name, "nada debe persistirse")
}

func TestUpdate_DivisionInexistente(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, `{"division_id": "99999999-9999-9999-9999-999999999999"}`)
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.Equal(t, []string{"The selected division does not exist"}, fields["division_id"])
}

// ── core_package_price: null borra, ausente no toca ──

func TestUpdate_CorePriceNull_BorraYRegistraEnLedger(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, `{"core_package_price": null}`)
	resp, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	assert.Nil(t, resp.CorePackagePrice)
	assert.Nil(t, store.Financers[testFinancerID].CorePackagePrice)

	require.Len(t, store.Ledger, 1)
	entry := store.Ledger[0]
	assert.Equal(t, entity.PriceTypeCorePackage, entry.PriceType)
	assert.Equal(t, int64(300), *entry.OldPrice)
	assert.Nil(t, entry.NewPrice)
}

func TestUpdate_CorePriceAusente_NoSeToca(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, `{"name": "Acme Group"}`)
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	assert.Equal(t, int64(300), *store.Financers[testFinancerID].CorePackagePrice)
	assert.Empty(t, store.Ledger, "precio sin cambios no genera entrada en el ledger")
}

func TestUpdate_CorePriceMismoValor_SinEntradaEnLedger(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, `{"core_package_price": 300}`)
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	assert.Empty(t, store.Ledger)
}

// ── Directivas de módulos ──

func TestUpdate_DirectivaActiva_UpsertYLedger(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true, "price_per_beneficiary": 700}]}`, testWellnessID))
	resp, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	require.NotNil(t, resp.Modules, "con directivas el response incluye la vista de módulos")

	a := store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)]
	require.NotNil(t, a)
	assert.True(t, a.Active)
	assert.Equal(t, int64(700), *a.PricePerBeneficiary)

	require.Len(t, store.Ledger, 1, "el cambio de 300 a 700 genera una entrada")
	entry := store.Ledger[0]
	assert.Equal(t, entity.PriceTypeModulePrice, entry.PriceType)
	assert.Equal(t, testWellnessID, *entry.ModuleID)
	assert.Equal(t, int64(300), *entry.OldPrice)
	assert.Equal(t, int64(700), *entry.NewPrice)
	assert.Equal(t, testAdminUserID, *entry.ChangedBy)
}

func TestUpdate_DirectivaIdempotente_SinNuevaEntrada(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	body := fmt.Sprintf(`{"modules": [{"id": %q, "active": true, "price_per_beneficiary": 300}]}`, testWellnessID)
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, mustRequest(t, body))
	require.NoError(t, err)
	_, err = uc.Update(context.Background(), adminScope(), testFinancerID, mustRequest(t, body))
	require.NoError(t, err)

	assert.Empty(t, store.Ledger, "reaplicar el mismo estado no escribe en el ledger")
}

func TestUpdate_AtajoDesactivacion_AnulaPrecio(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	// El precio informado se ignora: desactivar siempre deja el precio en nil.
	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": false, "price_per_beneficiary": 900}]}`, testWellnessID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	a := store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)]
	assert.False(t, a.Active)
	assert.Nil(t, a.PricePerBeneficiary)

	require.Len(t, store.Ledger, 1, "pasar de 300 a nil es un cambio real")
	assert.Equal(t, int64(300), *store.Ledger[0].OldPrice)
	assert.Nil(t, store.Ledger[0].NewPrice)
}

func TestUpdate_PromotedOmitido_ConservaElFlag(t *testing.T) {
	store := seedStore()
	store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)].Promoted = true
	uc, _ := newUpdateUseCase(store)

	// La directiva no trae promoted: el valor actual del pivot debe sobrevivir.
	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true, "price_per_beneficiary": 300}]}`, testWellnessID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	assert.True(t, store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)].Promoted)
}

func TestUpdate_PromotedExplicitoFalse_LoApaga(t *testing.T) {
	store := seedStore()
	store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)].Promoted = true
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true, "promoted": false, "price_per_beneficiary": 300}]}`, testWellnessID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	assert.False(t, store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)].Promoted)
}

func TestUpdate_PrimeraAsignacion_CreaPivot(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true, "promoted": true, "price_per_beneficiary": 450}]}`, testVouchersID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	a := store.Assignments[apptest.PairKey(testFinancerID, testVouchersID)]
	require.NotNil(t, a, "la primera directiva crea la fila del pivot")
	assert.True(t, a.Active)
	assert.True(t, a.Promoted)
	assert.Equal(t, int64(450), *a.PricePerBeneficiary)

	require.Len(t, store.Ledger, 1)
	assert.Nil(t, store.Ledger[0].OldPrice, "sin fila previa el precio anterior es nil")
	assert.Equal(t, int64(450), *store.Ledger[0].NewPrice)
}

func TestUpdate_ModuloCore_NoSePuedeDesactivar(t *testing.T) {
	store := seedStore()
	uc, txRunner := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": false}]}`, testCoreModuleID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.Equal(t, []string{"Core module cannot be deactivated"}, fields["modules.0.active"])
	assert.Equal(t, 0, txRunner.Runs)
}

func TestUpdate_ModuloCore_PrecioProhibido(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true, "price_per_beneficiary": 100}]}`, testCoreModuleID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.Equal(t,
		[]string{"Core module price must always be null (included in core package price)"},
		fields["modules.0.price_per_beneficiary"])
}

func TestUpdate_ModuloFueraDeListaBlanca(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true, "price_per_beneficiary": 100}]}`, testUnlistedID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.Equal(t,
		[]string{"Module is not activated for the financer's division"},
		fields["modules.0.id"])
}

func TestUpdate_ModuloActivoSinPrecio(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true}]}`, testVouchersID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.Equal(t,
		[]string{"Active non-core modules must have a price"},
		fields["modules.0.price_per_beneficiary"])
}

func TestUpdate_LoteMixto_ErroresPorIndice(t *testing.T) {
	store := seedStore()
	uc, txRunner := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(`{"modules": [
		{"id": %q, "active": true, "price_per_beneficiary": 700},
		{"id": %q, "active": false},
		{"id": %q, "active": true, "price_per_beneficiary": 1000000},
		{"id": "no-es-uuid", "active": true}
	]}`, testWellnessID, testCoreModuleID, testVouchersID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.NotContains(t, fields, "modules.0.id", "la directiva válida no produce errores")
	assert.Equal(t, []string{"Core module cannot be deactivated"}, fields["modules.1.active"])
	assert.Equal(t,
		[]string{"The price per beneficiary must be between 0 and 999999"},
		fields["modules.2.price_per_beneficiary"])
	assert.Equal(t, []string{"The id must be a valid UUID"}, fields["modules.3.id"])

	// Un solo ítem inválido bloquea también las directivas válidas del lote.
	assert.Equal(t, 0, txRunner.Runs)
	assert.Equal(t, int64(300),
		*store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)].PricePerBeneficiary)
}

// ── Cambio de división combinado con directivas ──

func TestUpdate_CambioDeDivision_DirectivasContraListaBlancaDestino(t *testing.T) {
	store := seedStore()
	uc, txRunner := newUpdateUseCase(store)

	// Iberia no tiene wellness en su lista blanca: mover el financiador y
	// contratar wellness en la misma petición debe rechazarse entero.
	in := mustRequest(t, fmt.Sprintf(
		`{"division_id": %q, "modules": [{"id": %q, "active": true, "price_per_beneficiary": 700}]}`,
		testOtherDivisionID, testWellnessID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	fields := requireValidation(t, err)
	assert.Equal(t,
		[]string{"Module is not activated for the financer's division"},
		fields["modules.0.id"])
	assert.Equal(t, 0, txRunner.Runs)
	assert.Equal(t, testDivisionID, store.Financers[testFinancerID].DivisionID,
		"el cambio de división tampoco se persiste")
}

func TestUpdate_CambioDeDivision_DirectivaValidaEnDestino(t *testing.T) {
	store := seedStore()
	store.Activations[apptest.PairKey(testOtherDivisionID, testVouchersID)] = &entity.DivisionModuleActivation{
		DivisionID: testOtherDivisionID, ModuleID: testVouchersID, Active: true,
	}
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"division_id": %q, "modules": [{"id": %q, "active": true, "price_per_beneficiary": 450}]}`,
		testOtherDivisionID, testVouchersID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.NoError(t, err)
	assert.Equal(t, testOtherDivisionID, store.Financers[testFinancerID].DivisionID)
	a := store.Assignments[apptest.PairKey(testFinancerID, testVouchersID)]
	require.NotNil(t, a)
	assert.True(t, a.Active)
	assert.Equal(t, int64(450), *a.PricePerBeneficiary)
}

func TestUpdate_DemasiadasDirectivas(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	items := make([]dto.ModuleDirective, 101)
	raw, err := json.Marshal(items)
	require.NoError(t, err)
	in := mustRequest(t, `{"modules": `+string(raw)+`}`)

	_, err = uc.Update(context.Background(), adminScope(), testFinancerID, in)
	fields := requireValidation(t, err)
	assert.Equal(t, []string{"The modules may not have more than 100 items"}, fields["modules"])
}

// ── Estados del campo modules: ausente, null, vacío ──

func TestUpdate_ModulesAusenteNullOVacio_NoTocaPivots(t *testing.T) {
	for name, body := range map[string]string{
		"ausente": `{"name": "Acme Group"}`,
		"null":    `{"name": "Acme Group", "modules": null}`,
		"vacío":   `{"name": "Acme Group", "modules": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			store := seedStore()
			uc, _ := newUpdateUseCase(store)

			resp, err := uc.Update(context.Background(), adminScope(), testFinancerID, mustRequest(t, body))
			require.NoError(t, err)

			a := store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)]
			assert.True(t, a.Active, "los pivots existentes no se tocan")
			assert.Equal(t, int64(300), *a.PricePerBeneficiary)
			assert.Nil(t, resp.Modules)
		})
	}
}

// ── Atomicidad ──

func TestUpdate_FalloEnLedger_RevierteTodo(t *testing.T) {
	store := seedStore()
	store.FailAppend = true
	uc, txRunner := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"name": "Acme Group", "modules": [{"id": %q, "active": true, "price_per_beneficiary": 700}]}`,
		testWellnessID))
	_, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)

	require.Error(t, err)
	assert.ErrorIs(t, err, apptest.ErrAppendFallido)
	assert.Equal(t, 1, txRunner.Runs)

	// Rollback completo: ni los escalares ni el pivot quedan aplicados.
	assert.Equal(t, "Acme Benefits", store.Financers[testFinancerID].Name)
	assert.Equal(t, int64(300),
		*store.Assignments[apptest.PairKey(testFinancerID, testWellnessID)].PricePerBeneficiary)
	assert.Empty(t, store.Ledger)
}

// ── Autorización y multi-tenancy ──

func TestUpdate_FinancerInexistente(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	_, err := uc.Update(context.Background(), adminScope(), "99999999-9999-9999-9999-999999999999",
		mustRequest(t, `{"name": "X"}`))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_OtraDivision_Responde404(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	// Gestor de otra división: 404, no 403, para no revelar el tenant.
	scope := entity.AccessScope{
		UserID: testAdminUserID, DivisionID: testOtherDivisionID, Role: entity.RoleDivisionManager,
	}
	_, err := uc.Update(context.Background(), scope, testFinancerID, mustRequest(t, `{"name": "X"}`))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_Viewer_Responde403(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	scope := entity.AccessScope{
		UserID: testAdminUserID, DivisionID: testDivisionID, Role: entity.RoleViewer,
	}
	_, err := uc.Update(context.Background(), scope, testFinancerID, mustRequest(t, `{"name": "X"}`))
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ── Vista de módulos del response ──

func TestUpdate_VistaDeModulos_SinCoreYConFallback(t *testing.T) {
	store := seedStore()
	uc, _ := newUpdateUseCase(store)

	in := mustRequest(t, fmt.Sprintf(
		`{"modules": [{"id": %q, "active": true, "price_per_beneficiary": 700}]}`, testWellnessID))
	resp, err := uc.Update(context.Background(), adminScope(), testFinancerID, in)
	require.NoError(t, err)

	require.NotNil(t, resp.Modules)
	view := *resp.Modules
	require.Len(t, view, 2, "solo los módulos no-core activos en la división")

	byID := map[string]dto.FinancerModuleView{}
	for _, item := range view {
		byID[item.ID] = item
	}
	assert.NotContains(t, byID, testCoreModuleID, "los módulos core nunca aparecen en la vista")

	wellness := byID[testWellnessID]
	assert.True(t, wellness.Active)
	assert.Equal(t, int64(700), *wellness.PricePerBeneficiary)

	// Vouchers nunca fue asignado: fallback inactivo, sin promoción, sin precio.
	vouchers := byID[testVouchersID]
	assert.False(t, vouchers.Active)
	assert.False(t, vouchers.Promoted)
	assert.Nil(t, vouchers.PricePerBeneficiary)
}

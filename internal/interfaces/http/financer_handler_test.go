package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beneflow/beneflow-api/internal/application/apptest"
	"github.com/beneflow/beneflow-api/internal/application/auth"
	appfinancer "github.com/beneflow/beneflow-api/internal/application/financer"
	"github.com/beneflow/beneflow-api/internal/application/invoicing"
	"github.com/beneflow/beneflow-api/internal/application/metrics"
	"github.com/beneflow/beneflow-api/internal/application/usecase"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	apphttp "github.com/beneflow/beneflow-api/internal/interfaces/http"
	pkgjwt "github.com/beneflow/beneflow-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de extremo a extremo de la API de financiadores: router real, handlers
// reales y casos de uso reales sobre repos en memoria. Verifican sobre todo el
// mapeo de errores a HTTP (422 con errors por campo, 404 multi-tenant, 403 por
// rol) y el contrato JSON de los endpoints.
// ──────────────────────────────────────────────────────────────────────────────

const (
	apiDivisionID = "11111111-1111-1111-1111-111111111111"
	apiFinancerID = "33333333-3333-3333-3333-333333333333"
	apiWellnessID = "55555555-5555-5555-5555-555555555555"
	apiCoreModID  = "44444444-4444-4444-4444-444444444444"
)

func i64(v int64) *int64 { return &v }

type apiFixture struct {
	app   *fiber.App
	store *apptest.MemStore
}

// newAPI arma la aplicación completa sobre un estado en memoria: una división
// con wellness en su lista blanca y un financiador con wellness a 300.
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := apptest.NewMemStore()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	store.Divisions[apiDivisionID] = &entity.Division{
		ID: apiDivisionID, Name: "Benelux", Country: "BE", Language: "fr-BE",
		CorePackagePrice: i64(1000),
	}
	store.Modules[apiWellnessID] = &entity.Module{
		ID: apiWellnessID, Name: entity.LocalizedText{"en-GB": "Wellness", "fr-FR": "Bien-être"},
		Category: entity.ModuleCategoryWellness, Active: true,
	}
	store.Modules[apiCoreModID] = &entity.Module{
		ID: apiCoreModID, Name: entity.LocalizedText{"en-GB": "Internal link"},
		Category: entity.ModuleCategoryHR, IsCore: true, Active: true,
	}
	store.Activations[apptest.PairKey(apiDivisionID, apiWellnessID)] = &entity.DivisionModuleActivation{
		DivisionID: apiDivisionID, ModuleID: apiWellnessID, Active: true, PricePerBeneficiary: i64(500),
	}
	store.Activations[apptest.PairKey(apiDivisionID, apiCoreModID)] = &entity.DivisionModuleActivation{
		DivisionID: apiDivisionID, ModuleID: apiCoreModID, Active: true,
	}
	store.Financers[apiFinancerID] = &entity.Financer{
		ID: apiFinancerID, Name: "Acme Benefits", DivisionID: apiDivisionID,
		Active: true, Status: entity.FinancerStatusActive,
		CorePackagePrice: i64(300), CreatedAt: now, UpdatedAt: now,
	}
	store.Assignments[apptest.PairKey(apiFinancerID, apiWellnessID)] = &entity.FinancerModuleAssignment{
		FinancerID: apiFinancerID, ModuleID: apiWellnessID, Active: true, PricePerBeneficiary: i64(300),
	}

	financerRepo := &apptest.FinancerRepo{Store: store}
	divisionRepo := &apptest.DivisionRepo{Store: store}
	moduleRepo := &apptest.ModuleRepo{Store: store}
	historyRepo := &apptest.HistoryRepo{Store: store}
	txRunner := &apptest.TxRunner{Store: store}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(nil, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		FinancerUC:     appfinancer.NewFinancerUseCase(financerRepo, divisionRepo, moduleRepo, historyRepo),
		UpdateFinancer: appfinancer.NewUpdateFinancerUseCase(txRunner, financerRepo, divisionRepo, moduleRepo),
		ModuleUC:       usecase.NewModuleUseCase(moduleRepo, divisionRepo, txRunner),
		DivisionUC:     usecase.NewDivisionUseCase(divisionRepo),
		MetricsUC:      metrics.NewMetricsUseCase(financerRepo),
		PreviewUC: invoicing.NewPreviewUseCase(
			financerRepo, divisionRepo, moduleRepo,
			invoicing.NewProrataService(financerRepo), nil, "EUR",
		),
		JWTSecret: testJWTSecret,
	})
	return &apiFixture{app: app, store: store}
}

func (f *apiFixture) request(t *testing.T, method, path, role, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		tok, err := pkgjwt.Generate(testJWTSecret, testUserID, apiDivisionID, role, testIssuer, testExpMin)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
}

// ── PUT /financers/:id ──

func TestPutFinancer_ActualizacionAtomicaOK(t *testing.T) {
	api := newAPI(t)

	body := fmt.Sprintf(`{
		"name": "Acme Group",
		"modules": [{"id": %q, "active": true, "price_per_beneficiary": 700}]
	}`, apiWellnessID)
	resp := api.request(t, http.MethodPut, "/api/v1/financers/"+apiFinancerID, entity.RoleAdmin, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Name    string `json:"name"`
		Modules []struct {
			ID                  string `json:"id"`
			Active              bool   `json:"active"`
			PricePerBeneficiary *int64 `json:"price_per_beneficiary"`
		} `json:"modules"`
	}
	decodeBody(t, resp, &payload)
	assert.Equal(t, "Acme Group", payload.Name)
	require.Len(t, payload.Modules, 1)
	assert.Equal(t, apiWellnessID, payload.Modules[0].ID)
	assert.Equal(t, int64(700), *payload.Modules[0].PricePerBeneficiary)

	require.Len(t, api.store.Ledger, 1)
	assert.Equal(t, int64(700), *api.store.Ledger[0].NewPrice)
}

func TestPutFinancer_ValidacionFallida_422ConErroresPorCampo(t *testing.T) {
	api := newAPI(t)

	body := fmt.Sprintf(`{
		"name": "",
		"modules": [{"id": %q, "active": false}]
	}`, apiCoreModID)
	resp := api.request(t, http.MethodPut, "/api/v1/financers/"+apiFinancerID, entity.RoleAdmin, body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload struct {
		Code   string              `json:"code"`
		Errors map[string][]string `json:"errors"`
	}
	decodeBody(t, resp, &payload)
	assert.Equal(t, "VALIDATION", payload.Code)
	assert.Equal(t, []string{"The name field cannot be empty"}, payload.Errors["name"])
	assert.Equal(t, []string{"Core module cannot be deactivated"}, payload.Errors["modules.0.active"])

	assert.Equal(t, "Acme Benefits", api.store.Financers[apiFinancerID].Name, "nada se persiste ante 422")
}

func TestPutFinancer_Inexistente_404(t *testing.T) {
	api := newAPI(t)
	resp := api.request(t, http.MethodPut,
		"/api/v1/financers/99999999-9999-9999-9999-999999999999", entity.RoleAdmin, `{"name": "X"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutFinancer_Viewer_403(t *testing.T) {
	api := newAPI(t)
	resp := api.request(t, http.MethodPut,
		"/api/v1/financers/"+apiFinancerID, entity.RoleViewer, `{"name": "X"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPutFinancer_SinToken_401(t *testing.T) {
	api := newAPI(t)
	resp := api.request(t, http.MethodPut, "/api/v1/financers/"+apiFinancerID, "", `{"name": "X"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── GET /financers/:id/modules y PUT /financers/:id/modules ──

func TestGetFinancerModules_VistaConFallback(t *testing.T) {
	api := newAPI(t)
	resp := api.request(t, http.MethodGet,
		"/api/v1/financers/"+apiFinancerID+"/modules", entity.RoleViewer, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Modules []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Active bool   `json:"active"`
		} `json:"modules"`
	}
	decodeBody(t, resp, &payload)
	require.Len(t, payload.Modules, 1, "solo los no-core activos en la división")
	assert.Equal(t, "Wellness", payload.Modules[0].Name)
	assert.True(t, payload.Modules[0].Active)
}

func TestPutFinancerModules_SoloDirectivas(t *testing.T) {
	api := newAPI(t)

	body := fmt.Sprintf(`{"modules": [{"id": %q, "active": false}]}`, apiWellnessID)
	resp := api.request(t, http.MethodPut,
		"/api/v1/financers/"+apiFinancerID+"/modules", entity.RoleDivisionManager, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	a := api.store.Assignments[apptest.PairKey(apiFinancerID, apiWellnessID)]
	assert.False(t, a.Active)
	assert.Nil(t, a.PricePerBeneficiary)
}

// ── GET /financers/:id/pricing-history ──

func TestGetPricingHistory_MasRecientesPrimero(t *testing.T) {
	api := newAPI(t)

	// Dos cambios de precio seguidos (300 -> 700 -> 900).
	for _, price := range []int64{700, 900} {
		body := fmt.Sprintf(`{"modules": [{"id": %q, "active": true, "price_per_beneficiary": %d}]}`,
			apiWellnessID, price)
		resp := api.request(t, http.MethodPut, "/api/v1/financers/"+apiFinancerID, entity.RoleAdmin, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := api.request(t, http.MethodGet,
		"/api/v1/financers/"+apiFinancerID+"/pricing-history", entity.RoleViewer, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Items []struct {
			OldPrice *int64 `json:"old_price"`
			NewPrice *int64 `json:"new_price"`
		} `json:"items"`
		Page struct {
			Total int `json:"total"`
		} `json:"page"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, 2, payload.Page.Total)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, int64(900), *payload.Items[0].NewPrice, "la entrada más reciente va primero")
	assert.Equal(t, int64(700), *payload.Items[1].NewPrice)
}

// ── GET /financers/:id/metrics ──

func TestGetMetrics_OK(t *testing.T) {
	api := newAPI(t)
	api.store.SetBeneficiaries(apiFinancerID, []*entity.FinancerBeneficiary{
		{ID: "b1", FinancerID: apiFinancerID, UserID: "u1", Active: true,
			From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	})

	resp := api.request(t, http.MethodGet,
		"/api/v1/financers/"+apiFinancerID+"/metrics", entity.RoleViewer, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		ActiveBeneficiaries int   `json:"active_beneficiaries"`
		MonthlyRevenueCents int64 `json:"monthly_revenue_cents"`
	}
	decodeBody(t, resp, &payload)
	assert.Equal(t, 1, payload.ActiveBeneficiaries)
	// 300 core + 300 wellness = 600 céntimos por beneficiario.
	assert.Equal(t, int64(600), payload.MonthlyRevenueCents)
}

// ── GET /modules con Accept-Language ──

func TestListModules_AcceptLanguage(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/modules", nil)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, apiDivisionID, entity.RoleViewer, testIssuer, testExpMin)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept-Language", "fr-FR")

	resp, err := api.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Items []struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"items"`
	}
	decodeBody(t, resp, &payload)
	names := map[string]string{}
	for _, m := range payload.Items {
		names[m.ID] = m.DisplayName
	}
	assert.Equal(t, "Bien-être", names[apiWellnessID])
	assert.Equal(t, "Internal link", names[apiCoreModID], "sin traducción cae a en-GB")
}

// ── Administración por división ──

func TestDeactivateForDivision_CascadaViaHTTP(t *testing.T) {
	api := newAPI(t)

	body := fmt.Sprintf(`{"module_id": %q, "division_id": %q}`, apiWellnessID, apiDivisionID)
	resp := api.request(t, http.MethodPost,
		"/api/v1/modules/deactivate-for-division", entity.RoleDivisionManager, body)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.False(t, api.store.Activations[apptest.PairKey(apiDivisionID, apiWellnessID)].Active)
	a := api.store.Assignments[apptest.PairKey(apiFinancerID, apiWellnessID)]
	assert.False(t, a.Active, "la cascada desactiva el módulo en el financiador")
	assert.Nil(t, a.PricePerBeneficiary)
}

func TestDeleteModule_ModuloCore_409(t *testing.T) {
	api := newAPI(t)

	resp := api.request(t, http.MethodDelete, "/api/v1/modules/"+apiCoreModID, entity.RoleAdmin, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, api.store.Modules, apiCoreModID)
}

// ── Vista previa de factura: validación del periodo ──

func TestInvoicePreview_PeriodoMalFormado_400(t *testing.T) {
	api := newAPI(t)
	resp := api.request(t, http.MethodGet,
		"/api/v1/financers/"+apiFinancerID+"/invoice-preview?period_start=2026-01-01", entity.RoleAdmin, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoicePreview_PeriodoInvertido_422(t *testing.T) {
	api := newAPI(t)
	resp := api.request(t, http.MethodGet,
		"/api/v1/financers/"+apiFinancerID+"/invoice-preview?period_start=2026-01-31&period_end=2026-01-01",
		entity.RoleAdmin, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

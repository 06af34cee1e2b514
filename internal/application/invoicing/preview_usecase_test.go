package invoicing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beneflow/beneflow-api/internal/application/apptest"
	"github.com/beneflow/beneflow-api/internal/application/invoicing"
	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la vista previa de factura. La cantidad facturable es la suma de los
// prorrateos de beneficiarios; cada línea (core + módulos activos con precio)
// multiplica su precio unitario por esa cantidad y redondea al céntimo.
// ──────────────────────────────────────────────────────────────────────────────

const (
	previewDivID = "11111111-1111-1111-1111-111111111111"
	previewFinID = "33333333-3333-3333-3333-333333333333"
	wellnessID   = "55555555-5555-5555-5555-555555555555"
)

func i64(v int64) *int64 { return &v }

type pdfGeneratorStub struct {
	captured *invoicing.InvoicePreview
}

func (g *pdfGeneratorStub) GenerateInvoicePreviewPDF(_ context.Context, p *invoicing.InvoicePreview) ([]byte, error) {
	g.captured = p
	return []byte("%PDF-stub"), nil
}

// seedPreview prepara un financiador con core a 1200 (sobre división a 1000),
// wellness contratado a 300 y tres beneficiarios: dos en periodo completo y un
// alta el 17 de enero (ratio 0.48).
func seedPreview() *apptest.MemStore {
	store := apptest.NewMemStore()
	store.Divisions[previewDivID] = &entity.Division{
		ID: previewDivID, Name: "Benelux", Country: "BE", Language: "fr-BE",
		CorePackagePrice: i64(1000),
	}
	store.Financers[previewFinID] = &entity.Financer{
		ID: previewFinID, Name: "Acme Benefits", DivisionID: previewDivID,
		Active: true, Status: entity.FinancerStatusActive,
		CorePackagePrice: i64(1200),
	}
	store.Modules[wellnessID] = &entity.Module{
		ID: wellnessID, Name: entity.LocalizedText{"en-GB": "Wellness"},
		Category: entity.ModuleCategoryWellness, Active: true,
	}
	store.Assignments[apptest.PairKey(previewFinID, wellnessID)] = &entity.FinancerModuleAssignment{
		FinancerID: previewFinID, ModuleID: wellnessID, Active: true, PricePerBeneficiary: i64(300),
	}

	antiguo := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store.SetBeneficiaries(previewFinID, []*entity.FinancerBeneficiary{
		{ID: "b1", FinancerID: previewFinID, UserID: "u1", Active: true, From: antiguo},
		{ID: "b2", FinancerID: previewFinID, UserID: "u2", Active: true, From: antiguo},
		{ID: "b3", FinancerID: previewFinID, UserID: "u3", Active: true, From: day(17)},
	})
	return store
}

func newPreviewUseCase(store *apptest.MemStore, generator invoicing.InvoicePDFGenerator) *invoicing.PreviewUseCase {
	financerRepo := &apptest.FinancerRepo{Store: store}
	return invoicing.NewPreviewUseCase(
		financerRepo,
		&apptest.DivisionRepo{Store: store},
		&apptest.ModuleRepo{Store: store},
		invoicing.NewProrataService(financerRepo),
		generator,
		"EUR",
	)
}

func previewAdmin() entity.AccessScope {
	return entity.AccessScope{UserID: "admin", Role: entity.RoleAdmin}
}

func lineByLabel(t *testing.T, preview *invoicing.InvoicePreview, label string) invoicing.InvoiceLine {
	t.Helper()
	for _, l := range preview.Lines {
		if l.Label == label {
			return l
		}
	}
	t.Fatalf("línea %q no encontrada en la vista previa", label)
	return invoicing.InvoiceLine{}
}

func TestBuildPreview_LineasYTotal(t *testing.T) {
	store := seedPreview()
	uc := newPreviewUseCase(store, &pdfGeneratorStub{})

	preview, err := uc.BuildPreview(context.Background(), previewAdmin(), previewFinID, enero1, enero31)
	require.NoError(t, err)

	assert.Equal(t, "Acme Benefits", preview.FinancerName)
	assert.Equal(t, "Benelux", preview.DivisionName)
	assert.Equal(t, "EUR", preview.Currency)
	require.Len(t, preview.Lines, 2)

	// Cantidad prorrateada: 1 + 1 + 0.48 = 2.48 beneficiarios.
	core := lineByLabel(t, preview, "Core package")
	assert.Equal(t, "2.48", core.Quantity.StringFixed(2))
	assert.Equal(t, int64(1200), core.UnitPriceCents, "el precio del financiador sobreescribe el de la división")
	assert.Equal(t, int64(2976), core.AmountCents)

	wellness := lineByLabel(t, preview, "Wellness")
	assert.Equal(t, int64(300), wellness.UnitPriceCents)
	assert.Equal(t, int64(744), wellness.AmountCents)

	assert.Equal(t, int64(3720), preview.TotalCents)
}

func TestBuildPreview_SinOverride_UsaPrecioDeDivision(t *testing.T) {
	store := seedPreview()
	store.Financers[previewFinID].CorePackagePrice = nil
	uc := newPreviewUseCase(store, &pdfGeneratorStub{})

	preview, err := uc.BuildPreview(context.Background(), previewAdmin(), previewFinID, enero1, enero31)
	require.NoError(t, err)

	core := lineByLabel(t, preview, "Core package")
	assert.Equal(t, int64(1000), core.UnitPriceCents)
	assert.Equal(t, int64(2480), core.AmountCents)
}

func TestBuildPreview_SinPrecios_SinLineas(t *testing.T) {
	store := seedPreview()
	store.Financers[previewFinID].CorePackagePrice = nil
	store.Divisions[previewDivID].CorePackagePrice = nil
	delete(store.Assignments, apptest.PairKey(previewFinID, wellnessID))
	uc := newPreviewUseCase(store, &pdfGeneratorStub{})

	preview, err := uc.BuildPreview(context.Background(), previewAdmin(), previewFinID, enero1, enero31)
	require.NoError(t, err)
	assert.Empty(t, preview.Lines)
	assert.Equal(t, int64(0), preview.TotalCents)
}

func TestBuildPreview_ModuloInactivoNoFactura(t *testing.T) {
	store := seedPreview()
	a := store.Assignments[apptest.PairKey(previewFinID, wellnessID)]
	a.Active = false
	a.PricePerBeneficiary = nil
	uc := newPreviewUseCase(store, &pdfGeneratorStub{})

	preview, err := uc.BuildPreview(context.Background(), previewAdmin(), previewFinID, enero1, enero31)
	require.NoError(t, err)
	require.Len(t, preview.Lines, 1, "solo queda la línea del paquete core")
	assert.Equal(t, "Core package", preview.Lines[0].Label)
}

func TestBuildPreview_PeriodoInvalido(t *testing.T) {
	store := seedPreview()
	uc := newPreviewUseCase(store, &pdfGeneratorStub{})

	_, err := uc.BuildPreview(context.Background(), previewAdmin(), previewFinID, enero31, enero1)
	var verrs *domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t,
		[]string{"The period end must be on or after the period start"},
		verrs.AsMap()["period_end"])
}

func TestBuildPreview_OtraDivision_Responde404(t *testing.T) {
	store := seedPreview()
	uc := newPreviewUseCase(store, &pdfGeneratorStub{})
	scope := entity.AccessScope{
		UserID: "manager", DivisionID: "22222222-2222-2222-2222-222222222222",
		Role: entity.RoleDivisionManager,
	}

	_, err := uc.BuildPreview(context.Background(), scope, previewFinID, enero1, enero31)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeneratePreviewPDF_NombreDeArchivo(t *testing.T) {
	store := seedPreview()
	stub := &pdfGeneratorStub{}
	uc := newPreviewUseCase(store, stub)

	pdfBytes, filename, err := uc.GeneratePreviewPDF(context.Background(), previewAdmin(), previewFinID, enero1, enero31)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-stub"), pdfBytes)
	assert.Equal(t, "invoice_preview_"+previewFinID+"_2026-01.pdf", filename)
	require.NotNil(t, stub.captured, "el generador recibe la vista previa calculada")
	assert.Equal(t, int64(3720), stub.captured.TotalCents)
}

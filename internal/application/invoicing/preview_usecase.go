package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
	"github.com/beneflow/beneflow-api/pkg/i18n"
)

// PreviewUseCase calcula los cargos de un periodo para un financiador y genera
// la vista previa en PDF. No persiste nada: es una proyección de facturación.
type PreviewUseCase struct {
	financerRepo repository.FinancerRepository
	divisionRepo repository.DivisionRepository
	moduleRepo   repository.ModuleRepository
	prorata      *ProrataService
	generator    InvoicePDFGenerator
	currency     string
}

// NewPreviewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPreviewUseCase(
	financerRepo repository.FinancerRepository,
	divisionRepo repository.DivisionRepository,
	moduleRepo repository.ModuleRepository,
	prorata *ProrataService,
	generator InvoicePDFGenerator,
	currency string,
) *PreviewUseCase {
	return &PreviewUseCase{
		financerRepo: financerRepo,
		divisionRepo: divisionRepo,
		moduleRepo:   moduleRepo,
		prorata:      prorata,
		generator:    generator,
		currency:     currency,
	}
}

// BuildPreview calcula las líneas del periodo: paquete core más un cargo por
// cada módulo activo con precio, todos multiplicados por la cantidad
// prorrateada de beneficiarios.
func (uc *PreviewUseCase) BuildPreview(
	ctx context.Context,
	scope entity.AccessScope,
	financerID string,
	periodStart, periodEnd time.Time,
) (*InvoicePreview, error) {
	if periodEnd.Before(periodStart) {
		verrs := &domain.ValidationErrors{}
		verrs.Add("period_end", "The period end must be on or after the period start")
		return nil, verrs
	}

	fin, err := uc.financerRepo.GetByID(ctx, financerID)
	if err != nil {
		return nil, err
	}
	if fin == nil || !scope.CanAccessDivision(fin.DivisionID) {
		return nil, domain.ErrNotFound
	}
	division, err := uc.divisionRepo.GetByID(ctx, fin.DivisionID)
	if err != nil {
		return nil, err
	}
	if division == nil {
		return nil, fmt.Errorf("invoicing: división %s del financiador no existe", fin.DivisionID)
	}

	prorata, err := uc.prorata.BeneficiaryProrata(ctx, fin.ID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("invoicing: prorrateo de beneficiarios: %w", err)
	}
	quantity := decimal.Zero
	for _, ratio := range prorata {
		quantity = quantity.Add(ratio)
	}

	preview := &InvoicePreview{
		FinancerName: fin.Name,
		DivisionName: division.Name,
		PeriodStart:  dateOnly(periodStart),
		PeriodEnd:    dateOnly(periodEnd),
		Currency:     uc.currency,
	}

	// El precio core del financiador sobreescribe el de la división.
	corePrice := division.CorePackagePrice
	if fin.CorePackagePrice != nil {
		corePrice = fin.CorePackagePrice
	}
	if corePrice != nil {
		preview.Lines = append(preview.Lines, makeLine("Core package", quantity, *corePrice))
	}

	assignments, err := uc.financerRepo.ListAssignments(ctx, fin.ID)
	if err != nil {
		return nil, fmt.Errorf("invoicing: asignaciones de módulos: %w", err)
	}
	moduleIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.Active && a.PricePerBeneficiary != nil {
			moduleIDs = append(moduleIDs, a.ModuleID)
		}
	}
	modules, err := uc.moduleRepo.GetByIDs(ctx, moduleIDs)
	if err != nil {
		return nil, fmt.Errorf("invoicing: catálogo de módulos: %w", err)
	}
	modulesByID := make(map[string]*entity.Module, len(modules))
	for _, m := range modules {
		modulesByID[m.ID] = m
	}
	for _, a := range assignments {
		if !a.Active || a.PricePerBeneficiary == nil {
			continue
		}
		label := a.ModuleID
		if m, ok := modulesByID[a.ModuleID]; ok {
			label = i18n.Resolve(m.Name, "")
		}
		preview.Lines = append(preview.Lines, makeLine(label, quantity, *a.PricePerBeneficiary))
	}

	for _, line := range preview.Lines {
		preview.TotalCents += line.AmountCents
	}
	return preview, nil
}

// GeneratePreviewPDF calcula la vista previa y la renderiza.
func (uc *PreviewUseCase) GeneratePreviewPDF(
	ctx context.Context,
	scope entity.AccessScope,
	financerID string,
	periodStart, periodEnd time.Time,
) (pdfBytes []byte, filename string, err error) {
	preview, err := uc.BuildPreview(ctx, scope, financerID, periodStart, periodEnd)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePreviewPDF(ctx, preview)
	if err != nil {
		return nil, "", fmt.Errorf("invoicing: generación de PDF fallida: %w", err)
	}
	filename = fmt.Sprintf("invoice_preview_%s_%s.pdf", financerID, preview.PeriodStart.Format("2006-01"))
	return pdfBytes, filename, nil
}

// makeLine redondea el importe al céntimo (precio × cantidad prorrateada).
func makeLine(label string, quantity decimal.Decimal, unitPriceCents int64) InvoiceLine {
	amount := decimal.NewFromInt(unitPriceCents).Mul(quantity).Round(0)
	return InvoiceLine{
		Label:          label,
		Quantity:       quantity,
		UnitPriceCents: unitPriceCents,
		AmountCents:    amount.IntPart(),
	}
}

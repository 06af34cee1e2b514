package invoicing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine es un cargo del periodo: etiqueta, cantidad prorrateada de
// beneficiarios, precio unitario en céntimos e importe resultante.
type InvoiceLine struct {
	Label          string
	Quantity       decimal.Decimal
	UnitPriceCents int64
	AmountCents    int64
}

// InvoicePreview es el modelo de la vista previa que consume el generador PDF.
type InvoicePreview struct {
	FinancerName string
	DivisionName string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Currency     string
	Lines        []InvoiceLine
	TotalCents   int64
}

// InvoicePDFGenerator renderiza la vista previa de factura. La implementación
// (maroto) vive en infrastructure/pdf.
type InvoicePDFGenerator interface {
	GenerateInvoicePreviewPDF(ctx context.Context, preview *InvoicePreview) ([]byte, error)
}

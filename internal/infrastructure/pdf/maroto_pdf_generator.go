// Package pdf implementa la vista previa en PDF de la facturación de un
// financiador (paquete core + módulos con cantidades prorrateadas).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + IVA  │  "INVOICE PREVIEW" + Periodo       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FINANCIADOR: Nombre + División                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant. prorrateada | Concepto | P.Unit | Importe     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL PERIODO                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda "proyección, no es una factura"            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/beneflow/beneflow-api/internal/application/invoicing"
	appconfig "github.com/beneflow/beneflow-api/pkg/config"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var centsPerUnit = decimal.NewFromInt(100)

// ── Generator ─────────────────────────────────────────────────────────────────

// Asegura que MarotoPDFGenerator implementa invoicing.InvoicePDFGenerator.
var _ invoicing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa invoicing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer appconfig.InvoiceConfig
}

// NewMarotoPDFGenerator construye el generador con los datos del emisor.
func NewMarotoPDFGenerator(issuer appconfig.InvoiceConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// GenerateInvoicePreviewPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePreviewPDF(
	_ context.Context,
	preview *invoicing.InvoicePreview,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice preview", true).
		WithAuthor(g.issuer.IssuerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(preview))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(financerRow(preview))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(preview) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(preview))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y "INVOICE PREVIEW" + periodo (der).
func (g *MarotoPDFGenerator) headerRow(preview *invoicing.InvoicePreview) core.Row {
	period := fmt.Sprintf("%s - %s",
		preview.PeriodStart.Format("02/01/2006"),
		preview.PeriodEnd.Format("02/01/2006"),
	)

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.issuer.IssuerName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("VAT: "+nonEmpty(g.issuer.IssuerVAT, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE PREVIEW", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Currency: "+preview.Currency, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// financerRow: financiador facturado y su división.
func financerRow(preview *invoicing.InvoicePreview) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILLED FINANCER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(preview.FinancerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Division: "+preview.DivisionName, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de cargos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 2, align.Center),
		h("Concept", 5, align.Left),
		h("Unit price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// tableLineRows: una fila por cargo del periodo. La cantidad es la suma de
// prorrateos de beneficiarios, con dos decimales.
func tableLineRows(preview *invoicing.InvoicePreview) []core.Row {
	result := make([]core.Row, 0, len(preview.Lines))
	for _, l := range preview.Lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.Quantity.StringFixed(2),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.Label,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatCents(l.UnitPriceCents),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatCents(l.AmountCents),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total del periodo alineado a la derecha.
func totalRow(preview *invoicing.InvoicePreview) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("PERIOD TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})),
		col.New(3).Add(text.New(formatCents(preview.TotalCents)+" "+preview.Currency, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})),
	)
}

// footerRow: leyenda de proyección.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"This document is a billing projection based on current module prices and "+
				"prorated beneficiary memberships. It is not an invoice.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatCents convierte céntimos a unidades con dos decimales. Ej: 123450 → "1234.50"
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsPerUnit).StringFixed(2)
}

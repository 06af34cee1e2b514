package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/application/invoicing"
	"github.com/beneflow/beneflow-api/internal/application/metrics"
)

// BillingHandler agrupa las métricas de facturación del financiador y la
// previsualización de factura en PDF.
type BillingHandler struct {
	metricsUC *metrics.MetricsUseCase
	previewUC *invoicing.PreviewUseCase
}

func NewBillingHandler(metricsUC *metrics.MetricsUseCase, previewUC *invoicing.PreviewUseCase) *BillingHandler {
	return &BillingHandler{metricsUC: metricsUC, previewUC: previewUC}
}

// Metrics godoc
// @Summary      Métricas de facturación del financiador
// @Description  Beneficiarios activos, coste por beneficiario e ingreso mensual
// @Description  proyectado (core + módulos activos con precio).
// @Tags         billing
// @Produce      json
// @Param        id   path  string  true  "ID del financiador"
// @Success      200  {object}  dto.FinancerMetricsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/financers/{id}/metrics [get]
func (h *BillingHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.metricsUC.GetFinancerMetrics(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InvoicePreview godoc
// @Summary      Previsualización de factura en PDF
// @Description  Proyección de facturación del periodo con prorrateo por
// @Description  beneficiario. No es una factura.
// @Tags         billing
// @Produce      application/pdf
// @Param        id            path   string  true  "ID del financiador"
// @Param        period_start  query  string  true  "Inicio del periodo (YYYY-MM-DD)"
// @Param        period_end    query  string  true  "Fin del periodo (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/v1/financers/{id}/invoice-preview [get]
func (h *BillingHandler) InvoicePreview(c *fiber.Ctx) error {
	periodStart, err := parseDateQuery(c, "period_start")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PERIOD",
			Message: err.Error(),
		})
	}
	periodEnd, err := parseDateQuery(c, "period_end")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PERIOD",
			Message: err.Error(),
		})
	}

	pdfBytes, filename, err := h.previewUC.GeneratePreviewPDF(c.Context(), GetScope(c), c.Params("id"), periodStart, periodEnd)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// parseDateQuery lee un query param obligatorio en formato YYYY-MM-DD.
func parseDateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("query param %s is required (YYYY-MM-DD)", name)
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("query param %s must be a YYYY-MM-DD date", name)
	}
	return t, nil
}

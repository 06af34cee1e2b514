package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/application/financer"
)

// FinancerHandler maneja las peticiones HTTP para el recurso Financer,
// incluida la actualización atómica de escalares + módulos.
type FinancerHandler struct {
	uc       *financer.FinancerUseCase
	updateUC *financer.UpdateFinancerUseCase
}

// NewFinancerHandler construye el handler inyectando los casos de uso.
func NewFinancerHandler(uc *financer.FinancerUseCase, updateUC *financer.UpdateFinancerUseCase) *FinancerHandler {
	return &FinancerHandler{uc: uc, updateUC: updateUC}
}

// Create godoc
// @Summary      Crear financiador
// @Tags         financers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFinancerRequest  true  "Datos del financiador"
// @Success      201   {object}  dto.FinancerResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/v1/financers [post]
func (h *FinancerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFinancerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar financiadores
// @Tags         financers
// @Produce      json
// @Param        division_id  query  string  false  "Filtrar por división"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.FinancerListResponse
// @Router       /api/v1/financers [get]
func (h *FinancerHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.List(c.Context(), GetScope(c), c.Query("division_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener financiador por ID (incluye vista de módulos)
// @Tags         financers
// @Produce      json
// @Param        id   path  string  true  "ID del financiador"
// @Success      200  {object}  dto.FinancerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/financers/{id} [get]
func (h *FinancerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar financiador (escalares + directivas de módulos, atómico)
// @Description  Valida todo el payload antes de escribir; cualquier error de
// @Description  validación responde 422 sin persistir nada. Las directivas de
// @Description  módulos y las entradas del historial de precios se aplican en la
// @Description  misma transacción que los escalares.
// @Tags         financers
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del financiador"
// @Param        body  body  dto.UpdateFinancerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FinancerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/v1/financers/{id} [put]
func (h *FinancerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFinancerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.updateUC.Update(c.Context(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar financiador
// @Tags         financers
// @Param        id  path  string  true  "ID del financiador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/financers/{id} [delete]
func (h *FinancerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleActive godoc
// @Summary      Activar/desactivar financiador
// @Description  Con body {"active": bool} fija el estado; sin body lo invierte.
// @Tags         financers
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true   "ID del financiador"
// @Param        body  body  dto.ToggleFinancerActiveRequest  false  "Estado deseado"
// @Success      200   {object}  dto.FinancerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/financers/{id}/toggle-active [put]
func (h *FinancerHandler) ToggleActive(c *fiber.Ctx) error {
	var in dto.ToggleFinancerActiveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.ToggleActive(c.Context(), GetScope(c), c.Params("id"), in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetCorePrice godoc
// @Summary      Fijar el precio del paquete core del financiador
// @Description  null borra el precio (hereda el de la división). Cada cambio real
// @Description  escribe una entrada core_package en el historial de precios.
// @Tags         financers
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del financiador"
// @Param        body  body  dto.SetCorePriceRequest  true  "Nuevo precio en céntimos"
// @Success      200   {object}  dto.FinancerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/v1/financers/{id}/core-price [put]
func (h *FinancerHandler) SetCorePrice(c *fiber.Ctx) error {
	var in dto.SetCorePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetCorePrice(c.Context(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetModules godoc
// @Summary      Vista de módulos del financiador
// @Description  Unión de los módulos no-core activos en la división con el estado
// @Description  del pivot del financiador (fallback: inactivo, sin precio).
// @Tags         financers
// @Produce      json
// @Param        id   path  string  true  "ID del financiador"
// @Success      200  {object}  dto.FinancerModulesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/financers/{id}/modules [get]
func (h *FinancerHandler) GetModules(c *fiber.Ctx) error {
	out, err := h.uc.ListModules(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateModules godoc
// @Summary      Actualizar solo las directivas de módulos del financiador
// @Description  Mismo procesamiento atómico que PUT /financers/{id}, sin escalares.
// @Tags         financers
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del financiador"
// @Param        body  body  dto.UpdateFinancerModulesRequest  true  "Directivas"
// @Success      200   {object}  dto.FinancerModulesResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/v1/financers/{id}/modules [put]
func (h *FinancerHandler) UpdateModules(c *fiber.Ctx) error {
	var in dto.UpdateFinancerModulesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.updateUC.Update(c.Context(), GetScope(c), c.Params("id"), dto.UpdateFinancerRequest{Modules: in.Modules})
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.FinancerModulesResponse{Modules: []dto.FinancerModuleView{}}
	if out.Modules != nil {
		resp.Modules = *out.Modules
	}
	return c.JSON(resp)
}

// PricingHistory godoc
// @Summary      Historial de precios del financiador
// @Description  Entradas del ledger, más recientes primero.
// @Tags         financers
// @Produce      json
// @Param        id      path   string  true   "ID del financiador"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.PricingHistoryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/financers/{id}/pricing-history [get]
func (h *FinancerHandler) PricingHistory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.ListPricingHistory(c.Context(), GetScope(c), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

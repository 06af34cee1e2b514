package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/application/usecase"
)

// ModuleHandler maneja el catálogo de módulos y su activación por división.
type ModuleHandler struct {
	uc *usecase.ModuleUseCase
}

func NewModuleHandler(uc *usecase.ModuleUseCase) *ModuleHandler {
	return &ModuleHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogo de módulos
// @Description  DisplayName se resuelve con la cabecera Accept-Language (fallback en-GB).
// @Tags         modules
// @Produce      json
// @Success      200  {object}  dto.ModuleListResponse
// @Router       /api/v1/modules [get]
func (h *ModuleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener módulo por ID
// @Tags         modules
// @Produce      json
// @Param        id   path  string  true  "ID del módulo"
// @Success      200  {object}  dto.ModuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/modules/{id} [get]
func (h *ModuleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), c.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear módulo en el catálogo (solo admin)
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateModuleRequest  true  "Datos del módulo"
// @Success      201   {object}  dto.ModuleResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/v1/modules [post]
func (h *ModuleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar módulo del catálogo (solo admin)
// @Description  is_core es inmutable y se ignora si viene en el body.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del módulo"
// @Param        body  body  dto.UpdateModuleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ModuleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/modules/{id} [put]
func (h *ModuleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar módulo del catálogo (solo admin)
// @Description  Los módulos core no se pueden eliminar (409).
// @Tags         modules
// @Param        id  path  string  true  "ID del módulo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/modules/{id} [delete]
func (h *ModuleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ActivateForDivision godoc
// @Summary      Activar un módulo para una división
// @Description  Añade el módulo a la lista blanca de la división con un precio
// @Description  por defecto opcional.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DivisionModuleRequest  true  "Par división/módulo y precio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/modules/activate-for-division [post]
func (h *ModuleHandler) ActivateForDivision(c *fiber.Ctx) error {
	var in dto.DivisionModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ActivateForDivision(c.Context(), GetScope(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeactivateForDivision godoc
// @Summary      Desactivar un módulo para una división
// @Description  Desactiva el módulo en la división y en cascada lo desactiva y
// @Description  anula su precio en todos los financiadores de la división, en una
// @Description  sola transacción.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DivisionModuleRequest  true  "Par división/módulo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/modules/deactivate-for-division [post]
func (h *ModuleHandler) DeactivateForDivision(c *fiber.Ctx) error {
	var in dto.DivisionModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.DeactivateForDivision(c.Context(), GetScope(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

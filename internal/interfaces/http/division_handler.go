package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/beneflow/beneflow-api/internal/application/usecase"
)

// DivisionHandler expone las divisiones visibles para el caller.
type DivisionHandler struct {
	uc *usecase.DivisionUseCase
}

func NewDivisionHandler(uc *usecase.DivisionUseCase) *DivisionHandler {
	return &DivisionHandler{uc: uc}
}

// List godoc
// @Summary      Listar divisiones del ámbito del caller
// @Description  Un admin ve todas; un division_manager o viewer solo la suya.
// @Tags         divisions
// @Produce      json
// @Success      200  {object}  dto.DivisionListResponse
// @Router       /api/v1/divisions [get]
func (h *DivisionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetScope(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener división por ID
// @Tags         divisions
// @Produce      json
// @Param        id   path  string  true  "ID de la división"
// @Success      200  {object}  dto.DivisionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/divisions/{id} [get]
func (h *DivisionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

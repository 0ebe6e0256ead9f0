package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/tables"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
)

// TableHandler maneja las peticiones HTTP de mesas.
type TableHandler struct {
	registry *tables.Registry
}

// NewTableHandler construye el handler.
func NewTableHandler(registry *tables.Registry) *TableHandler {
	return &TableHandler{registry: registry}
}

// List godoc
// @Summary      Listar mesas
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TableResponse
// @Router       /api/tables [get]
func (h *TableHandler) List(c *fiber.Ctx) error {
	list, err := h.registry.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tableList(list))
}

// GetByNumber godoc
// @Summary      Obtener mesa por número
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Param        number  path  int  true  "Número de mesa"
// @Success      200     {object}  dto.TableResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/tables/{number} [get]
func (h *TableHandler) GetByNumber(c *fiber.Ctx) error {
	number, ok := paramTable(c)
	if !ok {
		return invalidParam(c, "number")
	}
	t, err := h.registry.GetByNumber(c.UserContext(), number)
	if err != nil {
		return writeError(c, err)
	}
	return h.tableOr404(c, t)
}

// SetStatus godoc
// @Summary      Fijar estado de la mesa
// @Tags         tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        number  path  int                          true  "Número de mesa"
// @Param        body    body  dto.SetTableStatusRequest  true  "available | occupied"
// @Success      200     {object}  dto.TableResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/tables/{number}/status [put]
func (h *TableHandler) SetStatus(c *fiber.Ctx) error {
	number, ok := paramTable(c)
	if !ok {
		return invalidParam(c, "number")
	}
	var in dto.SetTableStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.registry.SetStatus(c.UserContext(), number, in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return h.tableOr404(c, t)
}

// Toggle godoc
// @Summary      Alternar estado de la mesa
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Param        number  path  int  true  "Número de mesa"
// @Success      200     {object}  dto.TableResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/tables/{number}/toggle [post]
func (h *TableHandler) Toggle(c *fiber.Ctx) error {
	number, ok := paramTable(c)
	if !ok {
		return invalidParam(c, "number")
	}
	t, err := h.registry.Toggle(c.UserContext(), number)
	if err != nil {
		return writeError(c, err)
	}
	return h.tableOr404(c, t)
}

func (h *TableHandler) tableOr404(c *fiber.Ctx, t *entity.DiningTable) error {
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "mesa no encontrada"})
	}
	return c.JSON(dto.TableFromEntity(t))
}

func paramTable(c *fiber.Ctx) (int, bool) {
	n, err := strconv.Atoi(c.Params("number"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func tableList(list []*entity.DiningTable) []dto.TableResponse {
	out := make([]dto.TableResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TableFromEntity(t))
	}
	return out
}

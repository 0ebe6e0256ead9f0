package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
)

// InventoryHandler catálogo de artículos, lotes y alertas de stock.
type InventoryHandler struct {
	items     *inventory.ItemUseCase
	ledger    *inventory.StockLedger
	alerts    *inventory.AlertsUseCase
	movements *inventory.MovementHistory
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	items *inventory.ItemUseCase,
	ledger *inventory.StockLedger,
	alerts *inventory.AlertsUseCase,
	movements *inventory.MovementHistory,
) *InventoryHandler {
	return &InventoryHandler{items: items, ledger: ledger, alerts: alerts, movements: movements}
}

// CreateItem godoc
// @Summary      Crear artículo
// @Description  Si ya existe un artículo con el mismo nombre y tipo se devuelve ese (200) sin modificarlo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Artículo"
// @Success      201   {object}  dto.ItemResponse
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, created, err := h.items.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// ListItems godoc
// @Summary      Listar artículos con stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "RawMaterial | Product"
// @Param        with_batches  query  bool    false  "Incluir lotes"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.items.List(c.UserContext(), c.Query("type"), c.QueryBool("with_batches", true))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Obtener artículo con sus lotes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	out, err := h.items.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar artículo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del artículo"
// @Param        body  body  dto.ItemRequest  true  "Artículo"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.items.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar artículo
// @Description  Falla con 409 si el artículo tiene lotes o aparece en órdenes.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  int  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	if err := h.items.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SearchItems godoc
// @Summary      Buscar artículos por nombre o categoría
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Término"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/search [get]
func (h *InventoryHandler) SearchItems(c *fiber.Ctx) error {
	out, err := h.items.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// POSProducts godoc
// @Summary      Productos vendibles con stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.POSProductDTO
// @Router       /api/inventory/pos-products [get]
func (h *InventoryHandler) POSProducts(c *fiber.Ctx) error {
	out, err := h.items.ProductsForPOS(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListBatches godoc
// @Summary      Lotes del artículo en orden de consumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/inventory/items/{id}/batches [get]
func (h *InventoryHandler) ListBatches(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	batches, err := h.ledger.ListBatches(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchFromEntity(b))
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos del artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "ID del artículo"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.movements.List(c.UserContext(), id, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddBatch godoc
// @Summary      Registrar lote de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddBatchRequest  true  "Lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/batches [post]
func (h *InventoryHandler) AddBatch(c *fiber.Ctx) error {
	var in dto.AddBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	expiry, err := time.Parse(dto.DateLayout, in.Expiry)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiry debe tener formato YYYY-MM-DD"})
	}
	b, err := h.ledger.AddBatch(c.UserContext(), inventory.AddBatchInput{
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		Expiry:     expiry,
		UnitAmount: in.UnitAmount,
		UnitLabel:  in.UnitLabel,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchFromEntity(b))
}

// DiscardBatch godoc
// @Summary      Dar de baja un lote completo
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  int  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/batches/{id} [delete]
func (h *InventoryHandler) DiscardBatch(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	if err := h.ledger.DiscardBatch(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Alerts godoc
// @Summary      Alertas de stock bajo y vencimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockAlertsResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.alerts.GetAlerts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

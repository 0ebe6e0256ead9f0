package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de órdenes (protegido).
type OrderHandler struct {
	wf *orders.Workflow
}

// NewOrderHandler construye el handler.
func NewOrderHandler(wf *orders.Workflow) *OrderHandler {
	return &OrderHandler{wf: wf}
}

// Create godoc
// @Summary      Crear orden
// @Description  Valida la mesa, guarda la orden en pending y luego ocupa la mesa, descuenta stock y notifica (best-effort; ver advisory).
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Orden"
// @Success      201   {object}  dto.OrderWithAdvisoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.wf.CreateOrder(c.UserContext(), orders.CreateOrderInput{
		Items:             dto.OrderItemsToEntity(in.Items),
		Total:             in.Total,
		OrderType:         in.OrderType,
		TableNumber:       in.TableNumber,
		SameTableOverride: in.SameTableOverride,
		SameTableNumber:   in.SameTableNumber,
		Notes:             in.Notes,
		CreatedBy:         GetUsername(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderWithAdvisoryResponse{
		Order:    dto.OrderFromEntity(res.Order),
		Advisory: res.Advisory.ToDTO(),
	})
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, total, err := h.wf.ListOrders(c.UserContext(), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, o := range list {
		out.Items = append(out.Items, dto.OrderFromEntity(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	o, err := h.wf.GetOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrderFromEntity(o))
}

// Update godoc
// @Summary      Editar orden pendiente
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la orden"
// @Param        body  body  dto.EditOrderRequest  true  "Cambios"
// @Success      200   {object}  dto.OrderWithAdvisoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var in dto.EditOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.wf.EditOrder(c.UserContext(), orders.EditOrderInput{
		OrderID:     id,
		Items:       dto.OrderItemsToEntity(in.Items),
		Total:       in.Total,
		OrderType:   in.OrderType,
		TableNumber: in.TableNumber,
		Notes:       in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrderWithAdvisoryResponse{
		Order:    dto.OrderFromEntity(res.Order),
		Advisory: res.Advisory.ToDTO(),
	})
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                             true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o, err := h.wf.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrderFromEntity(o))
}

// Void godoc
// @Summary      Anular orden pendiente
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la orden"
// @Param        body  body  dto.VoidOrderRequest  true  "Credencial y motivo"
// @Success      200   {object}  dto.OrderResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/void [post]
func (h *OrderHandler) Void(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var in dto.VoidOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o, err := h.wf.VoidOrder(c.UserContext(), orders.VoidOrderInput{OrderID: id, Credential: in.Credential, Reason: in.Reason})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrderFromEntity(o))
}

// Ticket godoc
// @Summary      Comanda de cocina en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ticket [get]
func (h *OrderHandler) Ticket(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	pdf, err := h.wf.KitchenTicket(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="comanda-%d.pdf"`, id))
	return c.Send(pdf)
}

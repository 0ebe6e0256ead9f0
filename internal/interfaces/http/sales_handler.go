package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/sales"
)

// SalesHandler reportes de ventas (solo Admin/SuperAdmin).
type SalesHandler struct {
	uc *sales.SummaryUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.SummaryUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Summary godoc
// @Summary      KPIs de ventas (hoy y mes)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryResponse
// @Router       /api/sales/summary [get]
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopItems godoc
// @Summary      Artículos más vendidos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD), por defecto hace 30 días"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD), por defecto hoy"
// @Param        limit  query  int     false  "Máximo de artículos"  default(10)
// @Success      200    {array}   dto.TopItemDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/sales/top-items [get]
func (h *SalesHandler) TopItems(c *fiber.Ctx) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	from, err := queryDate(c, "from", today.AddDate(0, 0, -30))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
	}
	to, err := queryDate(c, "to", today)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
	}
	out, err := h.uc.TopItems(c.UserContext(), from, to, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func queryDate(c *fiber.Ctx, key string, def time.Time) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return time.ParseInLocation(dto.DateLayout, raw, time.Local)
}

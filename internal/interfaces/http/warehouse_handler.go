package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// WarehouseHandler listado de bodegas para los selectores de la UI (solo lectura).
type WarehouseHandler struct {
	repo repository.WarehouseRepository
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(repo repository.WarehouseRepository) *WarehouseHandler {
	return &WarehouseHandler{repo: repo}
}

// List godoc
// @Summary      Listar bodegas del tenant (incluye pseudo-bodegas de vehículo)
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  fiber.Map
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.repo.ListByTenant(c.Context(), GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, w := range list {
		out = append(out, fiber.Map{
			"id":         w.ID,
			"code":       w.Code,
			"name":       w.Name,
			"is_vehicle": w.IsVehicle,
		})
	}
	return c.JSON(out)
}

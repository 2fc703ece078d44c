package http

import (
	"github.com/gofiber/fiber/v2"

	appcap "github.com/jhoicas/StockLedger-api/internal/application/capacity"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	domaincap "github.com/jhoicas/StockLedger-api/internal/domain/capacity"
	"github.com/jhoicas/StockLedger-api/pkg/validator"
)

// CapacityHandler maneja el cálculo de capacidad de carga (peso/volumen).
type CapacityHandler struct {
	uc *appcap.UseCase
}

// NewCapacityHandler construye el handler.
func NewCapacityHandler(uc *appcap.UseCase) *CapacityHandler {
	return &CapacityHandler{uc: uc}
}

func toSnapshotDTO(snap domaincap.Snapshot) dto.CapacitySnapshotDTO {
	out := dto.CapacitySnapshotDTO{
		OrderID:       snap.OrderID,
		TotalWeightKg: snap.TotalWeightKg,
		TotalVolumeM3: snap.TotalVolumeM3,
		LineDetails:   make([]dto.CapacityLineDTO, 0, len(snap.Lines)),
	}
	for _, line := range snap.Lines {
		out.LineDetails = append(out.LineDetails, dto.CapacityLineDTO{
			VariantID:    line.VariantID,
			SKU:          line.SKU,
			Description:  line.Description,
			Quantity:     line.Quantity,
			UnitWeightKg: line.UnitWeightKg,
			UnitVolumeM3: line.UnitVolumeM3,
			LineWeightKg: line.LineWeightKg,
			LineVolumeM3: line.LineVolumeM3,
			Unresolved:   line.Unresolved,
		})
	}
	return out
}

// ForOrder godoc
// @Summary      Capacidad (peso/volumen) de un pedido
// @Tags         capacity
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.CapacitySnapshotDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/capacity/orders/{id} [get]
func (h *CapacityHandler) ForOrder(c *fiber.Ctx) error {
	snap, err := h.uc.ForOrder(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toSnapshotDTO(*snap))
}

// ForOrders godoc
// @Summary      Capacidad agregada de varios pedidos (carga mixta)
// @Tags         capacity
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MultiOrderCapacityRequest  true  "order_ids"
// @Success      200  {object}  dto.MultiOrderCapacityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/capacity/orders [post]
func (h *CapacityHandler) ForOrders(c *fiber.Ctx) error {
	var in dto.MultiOrderCapacityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": details})
	}
	snapshots, err := h.uc.ForOrders(c.Context(), GetTenantID(c), in.OrderIDs)
	if err != nil {
		return mapDomainError(c, err)
	}
	totalWeight, totalVolume := domaincap.Sum(snapshots)
	out := dto.MultiOrderCapacityResponse{
		TotalWeightKg: totalWeight,
		TotalVolumeM3: totalVolume,
		PerOrder:      make([]dto.CapacitySnapshotDTO, 0, len(snapshots)),
	}
	for _, snap := range snapshots {
		out.PerOrder = append(out.PerOrder, toSnapshotDTO(snap))
	}
	return c.JSON(out)
}

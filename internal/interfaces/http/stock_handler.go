package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	appinv "github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/application/query"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
	"github.com/jhoicas/StockLedger-api/pkg/validator"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	movements    *appinv.MovementUseCase
	reservations *appinv.ReservationUseCase
	queries      *query.StockLevelQuery
}

// NewStockHandler construye el handler.
func NewStockHandler(
	movements *appinv.MovementUseCase,
	reservations *appinv.ReservationUseCase,
	queries *query.StockLevelQuery,
) *StockHandler {
	return &StockHandler{movements: movements, reservations: reservations, queries: queries}
}

func toStockLevelDTO(level *entity.StockLevel, sku, name string) dto.StockLevelDTO {
	d := dto.StockLevelDTO{
		WarehouseID:  level.Key.WarehouseID,
		VariantID:    level.Key.VariantID,
		SKU:          sku,
		VariantName:  name,
		StockStatus:  string(level.Key.Status),
		Quantity:     level.Quantity,
		ReservedQty:  level.ReservedQty,
		AvailableQty: level.AvailableQty(),
		UnitCost:     level.UnitCost,
		TotalCost:    level.TotalCost,
	}
	if !level.LastTransactionAt.IsZero() {
		at := level.LastTransactionAt
		d.LastTransactionAt = &at
	}
	return d
}

// List godoc
// @Summary      Listar niveles de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id        query  string  false  "Filtrar por bodega"
// @Param        variant_id          query  string  false  "Filtrar por variante"
// @Param        stock_status        query  string  false  "ON_HAND | IN_TRANSIT | TRUCK_STOCK | QUARANTINE"
// @Param        min_quantity        query  string  false  "Cantidad mínima"
// @Param        include_zero_stock  query  bool    false  "Incluir filas en cero"
// @Success      200  {object}  dto.ListStockLevelsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-levels [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var in dto.ListStockLevelsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.DefaultPage()

	filter := repository.StockLevelFilter{
		TenantID:         tenantID,
		WarehouseID:      in.WarehouseID,
		VariantID:        in.VariantID,
		Status:           entity.StockStatus(in.StockStatus),
		IncludeZeroStock: in.IncludeZeroStock,
	}
	if in.StockStatus != "" && !filter.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock_status desconocido"})
	}
	if in.MinQuantity != "" {
		min, err := decimal.NewFromString(in.MinQuantity)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_quantity inválido"})
		}
		filter.MinQuantity = &min
	}

	result, err := h.queries.List(c.Context(), filter, in.Limit, in.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := dto.ListStockLevelsResponse{
		StockLevels: make([]dto.StockLevelDTO, 0, len(result.Rows)),
		TotalCount:  result.TotalCount,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	for _, row := range result.Rows {
		out.StockLevels = append(out.StockLevels, toStockLevelDTO(&row.StockLevel, row.SKU, row.VariantName))
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de stock por estado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockSummaryDTO
// @Router       /api/stock-levels/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	totals, err := h.queries.Summary(c.Context(), GetTenantID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.StockSummaryDTO, 0, len(totals))
	for status, t := range totals {
		out = append(out, dto.StockSummaryDTO{
			StockStatus:  string(status),
			Quantity:     t.Quantity,
			ReservedQty:  t.ReservedQty,
			AvailableQty: t.Quantity.Sub(t.ReservedQty),
			Rows:         t.Rows,
		})
	}
	return c.JSON(out)
}

// Transactions godoc
// @Summary      Auditoría de transacciones de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        variant_id    query  string  false  "Filtrar por variante"
// @Param        type          query  string  false  "Tipo de transacción"
// @Param        reference     query  string  false  "Referencia (pedido, vehículo...)"
// @Success      200  {array}  dto.StockTransactionDTO
// @Router       /api/stock-levels/transactions [get]
func (h *StockHandler) Transactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	filter := repository.StockTransactionFilter{
		TenantID:    GetTenantID(c),
		WarehouseID: c.Query("warehouse_id"),
		VariantID:   c.Query("variant_id"),
		Type:        c.Query("type"),
		Reference:   c.Query("reference"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		filter.To = &t
	}

	list, err := h.queries.Transactions(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.StockTransactionDTO, 0, len(list))
	for _, t := range list {
		out = append(out, dto.StockTransactionDTO{
			ID:          t.ID,
			GroupID:     t.GroupID,
			WarehouseID: t.WarehouseID,
			VariantID:   t.VariantID,
			StockStatus: string(t.Status),
			Type:        t.Type,
			Quantity:    t.Quantity,
			UnitCost:    t.UnitCost,
			Reference:   t.Reference,
			CreatedBy:   t.CreatedBy,
			CreatedAt:   t.CreatedAt,
		})
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar cantidad de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "warehouse_id, variant_id, stock_status, delta, unit_cost (entradas)"
// @Success      200  {object}  dto.StockLevelDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-levels/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": details})
	}
	level, err := h.movements.Adjust(c.Context(), appinv.AdjustInput{
		TenantID:    GetTenantID(c),
		UserID:      GetUserID(c),
		WarehouseID: in.WarehouseID,
		VariantID:   in.VariantID,
		Status:      entity.StockStatus(in.StockStatus),
		Delta:       in.Delta,
		UnitCost:    in.UnitCost,
		Reference:   in.Reference,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toStockLevelDTO(level, "", ""))
}

// Reserve godoc
// @Summary      Reservar stock disponible (solo ON_HAND)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveRequest  true  "warehouse_id, variant_id, amount"
// @Success      200  {object}  dto.ReserveResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-levels/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": details})
	}
	result, err := h.reservations.Reserve(c.Context(), appinv.ReservationInput{
		TenantID:    GetTenantID(c),
		UserID:      GetUserID(c),
		WarehouseID: in.WarehouseID,
		VariantID:   in.VariantID,
		Amount:      in.Amount,
		Reference:   in.Reference,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ReserveResponse{
		QuantityReserved:   result.Quantity,
		RemainingAvailable: result.RemainingAvailable,
	})
}

// Release godoc
// @Summary      Liberar una reserva
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveRequest  true  "warehouse_id, variant_id, amount"
// @Success      200  {object}  dto.ReserveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-levels/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": details})
	}
	result, err := h.reservations.Release(c.Context(), appinv.ReservationInput{
		TenantID:    GetTenantID(c),
		UserID:      GetUserID(c),
		WarehouseID: in.WarehouseID,
		VariantID:   in.VariantID,
		Amount:      in.Amount,
		Reference:   in.Reference,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ReserveResponse{
		QuantityReleased:   result.Quantity,
		RemainingAvailable: result.RemainingAvailable,
	})
}

// Transfer godoc
// @Summary      Trasladar stock entre bodegas/estados
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "from, to, variant_id, amount"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-levels/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": details})
	}
	result, err := h.movements.Transfer(c.Context(), appinv.TransferInput{
		TenantID:   GetTenantID(c),
		UserID:     GetUserID(c),
		VariantID:  in.VariantID,
		FromWHID:   in.From.WarehouseID,
		FromStatus: entity.StockStatus(in.From.StockStatus),
		ToWHID:     in.To.WarehouseID,
		ToStatus:   entity.StockStatus(in.To.StockStatus),
		Amount:     in.Amount,
		Reference:  in.Reference,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.TransferResponse{
		From: toStockLevelDTO(result.From, "", ""),
		To:   toStockLevelDTO(result.To, "", ""),
	})
}

// Reconcile godoc
// @Summary      Reconciliar conteo físico
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReconcileRequest  true  "warehouse_id, variant_id, stock_status, counted_qty"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-levels/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": details})
	}
	result, err := h.movements.Reconcile(c.Context(), appinv.ReconcileInput{
		TenantID:    GetTenantID(c),
		UserID:      GetUserID(c),
		WarehouseID: in.WarehouseID,
		VariantID:   in.VariantID,
		Status:      entity.StockStatus(in.StockStatus),
		CountedQty:  in.CountedQty,
		Reference:   in.Reference,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		Variance:   result.Variance,
		Adjustment: toStockLevelDTO(result.Level, "", ""),
	})
}

// LoadVehicle godoc
// @Summary      Cargar stock a un vehículo (TRUCK_STOCK)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoadVehicleRequest  true  "warehouse_id, vehicle_id, variant_id, amount"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-levels/load-vehicle [post]
func (h *StockHandler) LoadVehicle(c *fiber.Ctx) error {
	var in dto.LoadVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": details})
	}
	result, err := h.movements.LoadVehicle(c.Context(), appinv.LoadVehicleInput{
		TenantID:    GetTenantID(c),
		UserID:      GetUserID(c),
		WarehouseID: in.WarehouseID,
		VehicleID:   in.VehicleID,
		VariantID:   in.VariantID,
		Amount:      in.Amount,
		Reference:   in.Reference,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.TransferResponse{
		From: toStockLevelDTO(result.From, "", ""),
		To:   toStockLevelDTO(result.To, "", ""),
	})
}

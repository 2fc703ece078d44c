package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	domaininv "github.com/jhoicas/StockLedger-api/internal/domain/inventory"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// MovementUseCase implementa las operaciones que cambian cantidades
// (adjust, transfer, reconcile, load-vehicle) de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type MovementUseCase struct {
	txRunner      TxRunner
	variantRepo   repository.VariantRepository
	warehouseRepo repository.WarehouseRepository
	now           func() time.Time
}

// NewMovementUseCase construye el caso de uso. El reloj se inyecta para tests.
func NewMovementUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	warehouseRepo repository.WarehouseRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:      txRunner,
		variantRepo:   variantRepo,
		warehouseRepo: warehouseRepo,
		now:           time.Now,
	}
}

// WithClock reemplaza la fuente de tiempo (tests).
func (uc *MovementUseCase) WithClock(now func() time.Time) *MovementUseCase {
	uc.now = now
	return uc
}

// AdjustInput entrada para un ajuste de inventario.
type AdjustInput struct {
	TenantID    string
	UserID      string
	WarehouseID string
	VariantID   string
	Status      entity.StockStatus
	Delta       decimal.Decimal
	UnitCost    *decimal.Decimal // solo se aplica en entradas (delta > 0)
	Reference   string
}

// Adjust suma o resta cantidad sobre una clave; crea la fila si no existe.
// Un delta negativo nunca puede dejar la cantidad disponible bajo cero.
// Con delta positivo y costo informado recalcula el costo promedio ponderado.
func (uc *MovementUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.StockLevel, error) {
	if in.Delta.IsZero() || !in.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkVariant(ctx, in.TenantID, in.VariantID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.TenantID, in.WarehouseID); err != nil {
		return nil, err
	}

	key := entity.StockLevelKey{
		TenantID:    in.TenantID,
		WarehouseID: in.WarehouseID,
		VariantID:   in.VariantID,
		Status:      in.Status,
	}
	now := uc.now()

	var result *entity.StockLevel
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.WarehouseRepository,
	) error {
		level, err := levelRepo.GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		newQty := level.Quantity.Add(in.Delta)
		if newQty.LessThan(level.ReservedQty) {
			return domain.ErrWouldMakeAvailableNegative
		}
		unitCost := level.UnitCost
		if in.Delta.GreaterThan(decimal.Zero) && in.UnitCost != nil {
			unitCost = domaininv.WeightedAverageCost(level.Quantity, level.UnitCost, in.Delta, *in.UnitCost)
		}
		level.Quantity = newQty
		level.UnitCost = unitCost
		level.TotalCost = newQty.Mul(unitCost)
		level.LastTransactionAt = now
		if err := level.CheckInvariants(); err != nil {
			return domain.ErrInvariantViolation
		}
		if err := levelRepo.Upsert(ctx, level); err != nil {
			return err
		}
		if err := txnRepo.Create(ctx, uc.newTransaction(key, entity.TxTypeAdjust, in.Delta, unitCost, in.Reference, in.UserID, now, uuid.New().String())); err != nil {
			return err
		}
		result = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TransferInput entrada para un traslado entre dos claves.
type TransferInput struct {
	TenantID   string
	UserID     string
	VariantID  string
	FromWHID   string
	FromStatus entity.StockStatus
	ToWHID     string
	ToStatus   entity.StockStatus
	Amount     decimal.Decimal
	Reference  string
}

// TransferResult ambas filas después de un traslado.
type TransferResult struct {
	From *entity.StockLevel
	To   *entity.StockLevel
}

// Transfer mueve cantidad del origen al destino en una sola transacción.
// El stock reservado no se traslada: el monto no puede exceder lo disponible.
// El costo unitario viaja con las unidades (promedio ponderado en destino).
func (uc *MovementUseCase) Transfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !in.FromStatus.Valid() || !in.ToStatus.Valid() {
		return nil, domain.ErrInvalidInput
	}
	fromKey := entity.StockLevelKey{TenantID: in.TenantID, WarehouseID: in.FromWHID, VariantID: in.VariantID, Status: in.FromStatus}
	toKey := entity.StockLevelKey{TenantID: in.TenantID, WarehouseID: in.ToWHID, VariantID: in.VariantID, Status: in.ToStatus}
	if fromKey == toKey {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkVariant(ctx, in.TenantID, in.VariantID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.TenantID, in.FromWHID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.TenantID, in.ToWHID); err != nil {
		return nil, err
	}
	return uc.runTransfer(ctx, fromKey, toKey, in.Amount, entity.TxTypeTransferOut, entity.TxTypeTransferIn, in.Reference, in.UserID, false)
}

// ReconcileInput entrada para la reconciliación de conteo físico.
type ReconcileInput struct {
	TenantID    string
	UserID      string
	WarehouseID string
	VariantID   string
	Status      entity.StockStatus
	CountedQty  decimal.Decimal
	Reference   string
}

// ReconcileResult varianza registrada y fila resultante.
type ReconcileResult struct {
	Variance decimal.Decimal
	Level    *entity.StockLevel
}

// Reconcile ajusta la cantidad registrada al conteo físico y deja la varianza
// explícita en la auditoría (COUNT_RECONCILE, distinta de un ajuste ordinario).
// Un conteo por debajo de lo reservado se rechaza: las reservas vivas no se
// invalidan en silencio, el caller debe liberarlas primero.
func (uc *MovementUseCase) Reconcile(ctx context.Context, in ReconcileInput) (*ReconcileResult, error) {
	if in.CountedQty.IsNegative() || !in.Status.Valid() {
		return nil, domain.ErrInvalidAmount
	}
	if err := uc.checkVariant(ctx, in.TenantID, in.VariantID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.TenantID, in.WarehouseID); err != nil {
		return nil, err
	}

	key := entity.StockLevelKey{
		TenantID:    in.TenantID,
		WarehouseID: in.WarehouseID,
		VariantID:   in.VariantID,
		Status:      in.Status,
	}
	now := uc.now()

	var result *ReconcileResult
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.WarehouseRepository,
	) error {
		level, err := levelRepo.GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		if level.LastTransactionAt.IsZero() {
			return domain.ErrNotFound
		}
		if in.CountedQty.LessThan(level.ReservedQty) {
			return domain.ErrCountBelowReserved
		}
		variance := in.CountedQty.Sub(level.Quantity)
		level.Quantity = in.CountedQty
		level.TotalCost = level.Quantity.Mul(level.UnitCost)
		level.LastTransactionAt = now
		if err := level.CheckInvariants(); err != nil {
			return domain.ErrInvariantViolation
		}
		if err := levelRepo.Upsert(ctx, level); err != nil {
			return err
		}
		// Varianza cero también se registra: el conteo quedó hecho.
		if err := txnRepo.Create(ctx, uc.newTransaction(key, entity.TxTypeCountReconcile, variance, level.UnitCost, in.Reference, in.UserID, now, uuid.New().String())); err != nil {
			return err
		}
		result = &ReconcileResult{Variance: variance, Level: level}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LoadVehicleInput entrada para cargar stock a un vehículo.
type LoadVehicleInput struct {
	TenantID    string
	UserID      string
	WarehouseID string
	VehicleID   string
	VariantID   string
	Amount      decimal.Decimal
	Reference   string
}

// LoadVehicle traslada stock ON_HAND de la bodega a la pseudo-bodega del
// vehículo en estado TRUCK_STOCK. La validación de capacidad del vehículo es
// responsabilidad previa del caller (calculadora de capacidad); aquí solo se
// verifica disponibilidad en origen.
func (uc *MovementUseCase) LoadVehicle(ctx context.Context, in LoadVehicleInput) (*TransferResult, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.VehicleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkVariant(ctx, in.TenantID, in.VariantID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.TenantID, in.WarehouseID); err != nil {
		return nil, err
	}

	fromKey := entity.StockLevelKey{TenantID: in.TenantID, WarehouseID: in.WarehouseID, VariantID: in.VariantID, Status: entity.StatusOnHand}
	toKey := entity.StockLevelKey{TenantID: in.TenantID, WarehouseID: entity.VehicleWarehouseID(in.VehicleID), VariantID: in.VariantID, Status: entity.StatusTruckStock}
	reference := in.Reference
	if reference == "" {
		reference = in.VehicleID
	}
	return uc.runTransfer(ctx, fromKey, toKey, in.Amount, entity.TxTypeLoadVehicle, entity.TxTypeLoadVehicle, reference, in.UserID, true)
}

// runTransfer ejecuta las dos patas de un traslado dentro de una transacción.
// Bloquea ambas filas en orden lexicográfico de clave para evitar deadlocks
// entre traslados concurrentes en direcciones opuestas.
func (uc *MovementUseCase) runTransfer(
	ctx context.Context,
	fromKey, toKey entity.StockLevelKey,
	amount decimal.Decimal,
	outType, inType, reference, userID string,
	ensureVehicle bool,
) (*TransferResult, error) {
	now := uc.now()
	groupID := uuid.New().String()

	var result *TransferResult
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		if ensureVehicle {
			if err := warehouseRepo.EnsureVehicleWarehouse(ctx, &entity.Warehouse{
				ID:        toKey.WarehouseID,
				TenantID:  toKey.TenantID,
				Code:      toKey.WarehouseID,
				Name:      "Vehículo " + toKey.WarehouseID,
				IsVehicle: true,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
		}

		first, second := fromKey, toKey
		if second.Less(first) {
			first, second = second, first
		}
		firstLevel, err := levelRepo.GetForUpdate(ctx, first)
		if err != nil {
			return err
		}
		secondLevel, err := levelRepo.GetForUpdate(ctx, second)
		if err != nil {
			return err
		}
		from, to := firstLevel, secondLevel
		if first != fromKey {
			from, to = secondLevel, firstLevel
		}

		if from.LastTransactionAt.IsZero() {
			return domain.ErrNotFound
		}
		if amount.GreaterThan(from.AvailableQty()) {
			return domain.ErrInsufficientQuantity
		}

		unitCost := from.UnitCost
		from.Quantity = from.Quantity.Sub(amount)
		from.TotalCost = from.Quantity.Mul(from.UnitCost)
		from.LastTransactionAt = now

		to.UnitCost = domaininv.WeightedAverageCost(to.Quantity, to.UnitCost, amount, unitCost)
		to.Quantity = to.Quantity.Add(amount)
		to.TotalCost = to.Quantity.Mul(to.UnitCost)
		to.LastTransactionAt = now

		if err := from.CheckInvariants(); err != nil {
			return domain.ErrInvariantViolation
		}
		if err := to.CheckInvariants(); err != nil {
			return domain.ErrInvariantViolation
		}
		if err := levelRepo.Upsert(ctx, from); err != nil {
			return err
		}
		if err := levelRepo.Upsert(ctx, to); err != nil {
			return err
		}
		if err := txnRepo.Create(ctx, uc.newTransaction(fromKey, outType, amount.Neg(), unitCost, reference, userID, now, groupID)); err != nil {
			return err
		}
		if err := txnRepo.Create(ctx, uc.newTransaction(toKey, inType, amount, unitCost, reference, userID, now, groupID)); err != nil {
			return err
		}
		result = &TransferResult{From: from, To: to}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// newTransaction arma el registro de auditoría de una pata de la operación.
func (uc *MovementUseCase) newTransaction(
	key entity.StockLevelKey,
	txType string,
	quantity, unitCost decimal.Decimal,
	reference, userID string,
	at time.Time,
	groupID string,
) *entity.StockTransaction {
	return &entity.StockTransaction{
		ID:          uuid.New().String(),
		GroupID:     groupID,
		TenantID:    key.TenantID,
		WarehouseID: key.WarehouseID,
		VariantID:   key.VariantID,
		Status:      key.Status,
		Type:        txType,
		Quantity:    quantity,
		UnitCost:    unitCost,
		Reference:   reference,
		CreatedBy:   userID,
		CreatedAt:   at,
	}
}

// checkVariant valida que la variante exista y pertenezca al tenant.
func (uc *MovementUseCase) checkVariant(ctx context.Context, tenantID, variantID string) error {
	if variantID == "" {
		return domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	if variant.TenantID != tenantID {
		return domain.ErrForbidden
	}
	return nil
}

// checkWarehouse valida que la bodega exista y pertenezca al tenant.
// Las pseudo-bodegas de vehículo se crean dentro de la transacción, no aquí.
func (uc *MovementUseCase) checkWarehouse(ctx context.Context, tenantID, warehouseID string) error {
	if warehouseID == "" {
		return domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	if wh.TenantID != tenantID {
		return domain.ErrForbidden
	}
	return nil
}

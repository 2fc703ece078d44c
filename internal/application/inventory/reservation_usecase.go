package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// ReservationUseCase retiene y libera stock sin cambiar la cantidad física.
// Las reservas no expiran solas (sin TTL): liberar es siempre acción explícita
// del caller; cancelaciones de pedido deben liberar lo suyo.
type ReservationUseCase struct {
	txRunner    TxRunner
	variantRepo repository.VariantRepository
	now         func() time.Time
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(txRunner TxRunner, variantRepo repository.VariantRepository) *ReservationUseCase {
	return &ReservationUseCase{
		txRunner:    txRunner,
		variantRepo: variantRepo,
		now:         time.Now,
	}
}

// WithClock reemplaza la fuente de tiempo (tests).
func (uc *ReservationUseCase) WithClock(now func() time.Time) *ReservationUseCase {
	uc.now = now
	return uc
}

// ReservationInput entrada para reservar o liberar. Solo aplica a stock ON_HAND.
type ReservationInput struct {
	TenantID    string
	UserID      string
	WarehouseID string
	VariantID   string
	Amount      decimal.Decimal
	Reference   string
}

// ReservationResult estado de la reserva después de la operación.
type ReservationResult struct {
	Quantity           decimal.Decimal // monto reservado o liberado
	RemainingAvailable decimal.Decimal
}

// Reserve retiene Amount unidades contra fulfillment futuro. La disponibilidad
// se re-verifica bajo el bloqueo de fila, no solo al entrar: reservas
// concurrentes nunca dejan available bajo cero.
func (uc *ReservationUseCase) Reserve(ctx context.Context, in ReservationInput) (*ReservationResult, error) {
	return uc.mutate(ctx, in, entity.TxTypeReserve)
}

// Release libera una retención previa. Falla si Amount excede lo reservado.
func (uc *ReservationUseCase) Release(ctx context.Context, in ReservationInput) (*ReservationResult, error) {
	return uc.mutate(ctx, in, entity.TxTypeRelease)
}

func (uc *ReservationUseCase) mutate(ctx context.Context, in ReservationInput, txType string) (*ReservationResult, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.WarehouseID == "" || in.VariantID == "" {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByID(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	if variant.TenantID != in.TenantID {
		return nil, domain.ErrForbidden
	}

	key := entity.StockLevelKey{
		TenantID:    in.TenantID,
		WarehouseID: in.WarehouseID,
		VariantID:   in.VariantID,
		Status:      entity.StatusOnHand,
	}
	now := uc.now()

	var result *ReservationResult
	err = uc.txRunner.Run(ctx, func(
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
		switch txType {
		case entity.TxTypeReserve:
			if in.Amount.GreaterThan(level.AvailableQty()) {
				return domain.ErrInsufficientAvailable
			}
			level.ReservedQty = level.ReservedQty.Add(in.Amount)
		case entity.TxTypeRelease:
			if in.Amount.GreaterThan(level.ReservedQty) {
				return domain.ErrInvalidAmount
			}
			level.ReservedQty = level.ReservedQty.Sub(in.Amount)
		}
		level.LastTransactionAt = now
		if err := level.CheckInvariants(); err != nil {
			return domain.ErrInvariantViolation
		}
		if err := levelRepo.Upsert(ctx, level); err != nil {
			return err
		}
		// La auditoría registra el monto; la cantidad física no cambia.
		txn := &entity.StockTransaction{
			ID:          uuid.New().String(),
			GroupID:     uuid.New().String(),
			TenantID:    key.TenantID,
			WarehouseID: key.WarehouseID,
			VariantID:   key.VariantID,
			Status:      key.Status,
			Type:        txType,
			Quantity:    in.Amount,
			UnitCost:    level.UnitCost,
			Reference:   in.Reference,
			CreatedBy:   in.UserID,
			CreatedAt:   now,
		}
		if err := txnRepo.Create(ctx, txn); err != nil {
			return err
		}
		result = &ReservationResult{
			Quantity:           in.Amount,
			RemainingAvailable: level.AvailableQty(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

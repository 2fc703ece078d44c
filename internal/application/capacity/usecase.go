package capacity

import (
	"context"

	"github.com/jhoicas/StockLedger-api/internal/domain"
	domaincap "github.com/jhoicas/StockLedger-api/internal/domain/capacity"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// UseCase calcula la capacidad (peso/volumen) de pedidos contra el catálogo de
// variantes. Sin efectos: carga líneas y variantes y delega en el cálculo puro.
type UseCase struct {
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(orderRepo repository.OrderRepository, variantRepo repository.VariantRepository) *UseCase {
	return &UseCase{orderRepo: orderRepo, variantRepo: variantRepo}
}

// ForOrder snapshot de capacidad de un pedido. Líneas sin variante resoluble
// aportan cero y quedan marcadas; nunca bloquean el cálculo.
func (uc *UseCase) ForOrder(ctx context.Context, tenantID, orderID string) (*domaincap.Snapshot, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}

	ids := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		if line.VariantID != "" {
			ids = append(ids, line.VariantID)
		}
	}
	variants, err := uc.variantRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lookup := func(variantID string) *entity.Variant {
		v := variants[variantID]
		// Variante de otro tenant cuenta como no resuelta.
		if v != nil && v.TenantID != tenantID {
			return nil
		}
		return v
	}
	snap := domaincap.CalculateOrderCapacity(order.ID, order.Lines, lookup)
	return &snap, nil
}

// ForOrders calcula por pedido y suma los totales.
func (uc *UseCase) ForOrders(ctx context.Context, tenantID string, orderIDs []string) ([]domaincap.Snapshot, error) {
	if len(orderIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	snapshots := make([]domaincap.Snapshot, 0, len(orderIDs))
	for _, id := range orderIDs {
		snap, err := uc.ForOrder(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snap)
	}
	return snapshots, nil
}

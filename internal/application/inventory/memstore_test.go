package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memTxRunner serializa cada "transacción" con un mutex y trabaja sobre una
// copia del estado: si el callback falla no queda ningún efecto (mismo contrato
// todo-o-nada del TxRunner real sobre PostgreSQL).
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	levels     map[entity.StockLevelKey]entity.StockLevel
	txns       []entity.StockTransaction
	warehouses map[string]entity.Warehouse
}

func newMemState() *memState {
	return &memState{
		levels:     make(map[entity.StockLevelKey]entity.StockLevel),
		warehouses: make(map[string]entity.Warehouse),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.levels {
		c.levels[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	c.txns = append(c.txns, s.txns...)
	return c
}

type memTxRunner struct {
	mu    sync.Mutex
	state *memState
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func newMemTxRunner(state *memState) *memTxRunner {
	return &memTxRunner{state: state}
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	work := r.state.clone()
	if err := fn(&memLevelRepo{state: work}, &memTxnRepo{state: work}, &memWarehouseRepo{state: work}); err != nil {
		return err
	}
	*r.state = *work
	return nil
}

// memLevelRepo implementación en memoria de StockLevelRepository.
type memLevelRepo struct {
	state *memState
}

var _ repository.StockLevelRepository = (*memLevelRepo)(nil)

func (r *memLevelRepo) Get(_ context.Context, key entity.StockLevelKey) (*entity.StockLevel, error) {
	if level, ok := r.state.levels[key]; ok {
		c := level
		return &c, nil
	}
	return entity.NewZeroStockLevel(key), nil
}

func (r *memLevelRepo) GetForUpdate(ctx context.Context, key entity.StockLevelKey) (*entity.StockLevel, error) {
	// El mutex del runner ya da exclusión; aquí solo se siembra la fila en cero.
	if _, ok := r.state.levels[key]; !ok {
		r.state.levels[key] = *entity.NewZeroStockLevel(key)
	}
	level := r.state.levels[key]
	c := level
	return &c, nil
}

func (r *memLevelRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	r.state.levels[level.Key] = *level
	return nil
}

func (r *memLevelRepo) List(_ context.Context, filter repository.StockLevelFilter, limit, offset int) ([]*repository.StockLevelRow, error) {
	var rows []*repository.StockLevelRow
	for _, level := range r.state.levels {
		if !matchesFilter(level, filter) {
			continue
		}
		c := level
		rows = append(rows, &repository.StockLevelRow{StockLevel: c})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key.Less(rows[j].Key) })
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *memLevelRepo) Count(_ context.Context, filter repository.StockLevelFilter) (int, error) {
	total := 0
	for _, level := range r.state.levels {
		if matchesFilter(level, filter) {
			total++
		}
	}
	return total, nil
}

func (r *memLevelRepo) SummaryByStatus(_ context.Context, tenantID string) (map[entity.StockStatus]repository.StatusTotals, error) {
	totals := make(map[entity.StockStatus]repository.StatusTotals)
	for _, level := range r.state.levels {
		if level.Key.TenantID != tenantID {
			continue
		}
		t := totals[level.Key.Status]
		t.Quantity = t.Quantity.Add(level.Quantity)
		t.ReservedQty = t.ReservedQty.Add(level.ReservedQty)
		t.Rows++
		totals[level.Key.Status] = t
	}
	return totals, nil
}

func matchesFilter(level entity.StockLevel, filter repository.StockLevelFilter) bool {
	if level.Key.TenantID != filter.TenantID {
		return false
	}
	if filter.WarehouseID != "" && level.Key.WarehouseID != filter.WarehouseID {
		return false
	}
	if filter.VariantID != "" && level.Key.VariantID != filter.VariantID {
		return false
	}
	if filter.Status != "" && level.Key.Status != filter.Status {
		return false
	}
	if filter.MinQuantity != nil && level.Quantity.LessThan(*filter.MinQuantity) {
		return false
	}
	if !filter.IncludeZeroStock && level.Quantity.IsZero() {
		return false
	}
	return true
}

// memTxnRepo registro append-only en memoria.
type memTxnRepo struct {
	state *memState
}

var _ repository.StockTransactionRepository = (*memTxnRepo)(nil)

func (r *memTxnRepo) Create(_ context.Context, txn *entity.StockTransaction) error {
	r.state.txns = append(r.state.txns, *txn)
	return nil
}

func (r *memTxnRepo) List(_ context.Context, filter repository.StockTransactionFilter, limit, offset int) ([]*entity.StockTransaction, error) {
	var list []*entity.StockTransaction
	for i := range r.state.txns {
		t := r.state.txns[i]
		if t.TenantID != filter.TenantID {
			continue
		}
		if filter.WarehouseID != "" && t.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.VariantID != "" && t.VariantID != filter.VariantID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Reference != "" && t.Reference != filter.Reference {
			continue
		}
		if filter.From != nil && t.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.CreatedAt.After(*filter.To) {
			continue
		}
		list = append(list, &t)
	}
	return list, nil
}

// memWarehouseRepo bodegas en memoria.
type memWarehouseRepo struct {
	state *memState
}

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.state.warehouses[id]; ok {
		c := w
		return &c, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.state.warehouses {
		if w.TenantID == tenantID {
			c := w
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return strings.Compare(list[i].ID, list[j].ID) < 0 })
	return list, nil
}

func (r *memWarehouseRepo) EnsureVehicleWarehouse(_ context.Context, warehouse *entity.Warehouse) error {
	if _, ok := r.state.warehouses[warehouse.ID]; !ok {
		r.state.warehouses[warehouse.ID] = *warehouse
	}
	return nil
}

// memVariantRepo catálogo en memoria (solo lectura).
type memVariantRepo struct {
	variants map[string]entity.Variant
}

var _ repository.VariantRepository = (*memVariantRepo)(nil)

func (r *memVariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	if v, ok := r.variants[id]; ok {
		c := v
		return &c, nil
	}
	return nil, nil
}

func (r *memVariantRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Variant, error) {
	result := make(map[string]*entity.Variant, len(ids))
	for _, id := range ids {
		if v, ok := r.variants[id]; ok {
			c := v
			result[id] = &c
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado común de los tests
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenant  = "tenant-1"
	testUser    = "user-1"
	testWH1     = "wh-1"
	testWH2     = "wh-2"
	testVariant = "var-13kg"
)

type fixture struct {
	state        *memState
	runner       *memTxRunner
	variants     *memVariantRepo
	warehouses   *memWarehouseRepo
	movements    *inventory.MovementUseCase
	reservations *inventory.ReservationUseCase
}

func newFixture() *fixture {
	state := newMemState()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	state.warehouses[testWH1] = entity.Warehouse{ID: testWH1, TenantID: testTenant, Code: "WH1", Name: "Bodega Principal"}
	state.warehouses[testWH2] = entity.Warehouse{ID: testWH2, TenantID: testTenant, Code: "WH2", Name: "Bodega Norte"}

	variants := &memVariantRepo{variants: map[string]entity.Variant{
		testVariant: {ID: testVariant, TenantID: testTenant, SKU: "CIL-13KG", Name: "Cilindro 13kg"},
	}}

	runner := newMemTxRunner(state)
	warehouses := &memWarehouseRepo{state: state}
	clock := func() time.Time { return now }

	return &fixture{
		state:        state,
		runner:       runner,
		variants:     variants,
		warehouses:   warehouses,
		movements:    inventory.NewMovementUseCase(runner, variants, warehouses).WithClock(clock),
		reservations: inventory.NewReservationUseCase(runner, variants).WithClock(clock),
	}
}

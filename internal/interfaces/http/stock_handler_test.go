package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcap "github.com/jhoicas/StockLedger-api/internal/application/capacity"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	appinv "github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/application/query"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
	apihttp "github.com/jhoicas/StockLedger-api/internal/interfaces/http"
	"github.com/jhoicas/StockLedger-api/pkg/jwt"
)

const (
	testSecret = "secreto-de-test"
	testTenant = "tenant-1"
	testUser   = "user-1"
	testWH1    = "wh-1"
	testWH2    = "wh-2"
	testVar    = "var-13kg"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del lado HTTP: suficientes para recorrer handlers completos
// sin base de datos. El runner aplica el callback directo sobre el estado
// compartido; los tests HTTP son secuenciales.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	levels     map[entity.StockLevelKey]*entity.StockLevel
	txns       []*entity.StockTransaction
	warehouses map[string]*entity.Warehouse
	variants   map[string]*entity.Variant
	orders     map[string]*entity.Order
}

type memRunner struct{ store *memStore }

var _ appinv.TxRunner = (*memRunner)(nil)

func (r *memRunner) Run(_ context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	// Copia de trabajo: si fn falla no queda efecto visible.
	work := &memStore{
		levels:     make(map[entity.StockLevelKey]*entity.StockLevel, len(r.store.levels)),
		warehouses: make(map[string]*entity.Warehouse, len(r.store.warehouses)),
		variants:   r.store.variants,
		orders:     r.store.orders,
	}
	for k, v := range r.store.levels {
		c := *v
		work.levels[k] = &c
	}
	for k, v := range r.store.warehouses {
		c := *v
		work.warehouses[k] = &c
	}
	work.txns = append(work.txns, r.store.txns...)
	if err := fn(&levelRepo{work}, &txnRepo{work}, &warehouseRepo{work}); err != nil {
		return err
	}
	*r.store = *work
	return nil
}

type levelRepo struct{ store *memStore }

var _ repository.StockLevelRepository = (*levelRepo)(nil)

func (r *levelRepo) Get(_ context.Context, key entity.StockLevelKey) (*entity.StockLevel, error) {
	if l, ok := r.store.levels[key]; ok {
		c := *l
		return &c, nil
	}
	return entity.NewZeroStockLevel(key), nil
}

func (r *levelRepo) GetForUpdate(ctx context.Context, key entity.StockLevelKey) (*entity.StockLevel, error) {
	if _, ok := r.store.levels[key]; !ok {
		r.store.levels[key] = entity.NewZeroStockLevel(key)
	}
	c := *r.store.levels[key]
	return &c, nil
}

func (r *levelRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	c := *level
	r.store.levels[level.Key] = &c
	return nil
}

func (r *levelRepo) List(_ context.Context, filter repository.StockLevelFilter, limit, offset int) ([]*repository.StockLevelRow, error) {
	var rows []*repository.StockLevelRow
	for _, l := range r.store.levels {
		if l.Key.TenantID != filter.TenantID {
			continue
		}
		if !filter.IncludeZeroStock && l.Quantity.IsZero() {
			continue
		}
		rows = append(rows, &repository.StockLevelRow{StockLevel: *l})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key.Less(rows[j].Key) })
	return rows, nil
}

func (r *levelRepo) Count(ctx context.Context, filter repository.StockLevelFilter) (int, error) {
	rows, _ := r.List(ctx, filter, 0, 0)
	return len(rows), nil
}

func (r *levelRepo) SummaryByStatus(_ context.Context, tenantID string) (map[entity.StockStatus]repository.StatusTotals, error) {
	totals := make(map[entity.StockStatus]repository.StatusTotals)
	for _, l := range r.store.levels {
		if l.Key.TenantID != tenantID {
			continue
		}
		t := totals[l.Key.Status]
		t.Quantity = t.Quantity.Add(l.Quantity)
		t.ReservedQty = t.ReservedQty.Add(l.ReservedQty)
		t.Rows++
		totals[l.Key.Status] = t
	}
	return totals, nil
}

type txnRepo struct{ store *memStore }

var _ repository.StockTransactionRepository = (*txnRepo)(nil)

func (r *txnRepo) Create(_ context.Context, tx *entity.StockTransaction) error {
	c := *tx
	r.store.txns = append(r.store.txns, &c)
	return nil
}

func (r *txnRepo) List(_ context.Context, filter repository.StockTransactionFilter, _, _ int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, t := range r.store.txns {
		if t.TenantID != filter.TenantID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type warehouseRepo struct{ store *memStore }

var _ repository.WarehouseRepository = (*warehouseRepo)(nil)

func (r *warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return r.store.warehouses[id], nil
}

func (r *warehouseRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.store.warehouses {
		if w.TenantID == tenantID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *warehouseRepo) EnsureVehicleWarehouse(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.store.warehouses[w.ID]; !ok {
		c := *w
		r.store.warehouses[w.ID] = &c
	}
	return nil
}

type variantRepo struct{ store *memStore }

var _ repository.VariantRepository = (*variantRepo)(nil)

func (r *variantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	return r.store.variants[id], nil
}

func (r *variantRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Variant, error) {
	out := make(map[string]*entity.Variant, len(ids))
	for _, id := range ids {
		if v, ok := r.store.variants[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

type orderRepo struct{ store *memStore }

var _ repository.OrderRepository = (*orderRepo)(nil)

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.store.orders[id], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado de la app
// ──────────────────────────────────────────────────────────────────────────────

func newApp(t *testing.T) (*fiber.App, *memStore) {
	t.Helper()
	store := &memStore{
		levels: make(map[entity.StockLevelKey]*entity.StockLevel),
		warehouses: map[string]*entity.Warehouse{
			testWH1: {ID: testWH1, TenantID: testTenant, Code: "WH1", Name: "Bodega Principal"},
			testWH2: {ID: testWH2, TenantID: testTenant, Code: "WH2", Name: "Bodega Norte"},
		},
		variants: map[string]*entity.Variant{
			testVar: {ID: testVar, TenantID: testTenant, SKU: "CIL-13KG", Name: "Cilindro 13kg", GrossWeightKg: dec("13"), UnitVolumeM3: dec("0.05")},
		},
		orders: map[string]*entity.Order{
			"order-1": {
				ID: "order-1", TenantID: testTenant, Number: "PED-001",
				Lines: []entity.OrderLine{{VariantID: testVar, Quantity: dec("3")}},
			},
		},
	}
	runner := &memRunner{store: store}
	variants := &variantRepo{store}
	warehouses := &warehouseRepo{store}

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		Movements:     appinv.NewMovementUseCase(runner, variants, warehouses),
		Reservations:  appinv.NewReservationUseCase(runner, variants),
		Queries:       query.NewStockLevelQuery(&levelRepo{store}, &txnRepo{store}, 0),
		Capacity:      appcap.NewUseCase(&orderRepo{store}, variants),
		WarehouseRepo: warehouses,
		JWTSecret:     testSecret,
	})
	return app, store
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, testUser, testTenant, "stock-ledger", 5)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", bearerToken(t))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *nethttp.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	decodeInto(t, resp, &body)
	return body.Code
}

func seedStock(t *testing.T, app *fiber.App, warehouseID, qty, cost string) {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/adjust", fiber.Map{
		"warehouse_id": warehouseID,
		"variant_id":   testVar,
		"stock_status": "ON_HAND",
		"delta":        qty,
		"unit_cost":    cost,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SinTokenRechazado(t *testing.T) {
	app, _ := newApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/stock-levels/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuth_TokenConFirmaIncorrecta(t *testing.T) {
	app, _ := newApp(t)

	token, err := jwt.Generate("otro-secreto", testUser, testTenant, "stock-ledger", 5)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodGet, "/api/stock-levels/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_TokenSinTenantRechazado(t *testing.T) {
	app, _ := newApp(t)

	token, err := jwt.Generate(testSecret, testUser, "", "stock-ledger", 5)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodGet, "/api/stock-levels/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust / Reserve / Release
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustHTTP_CreaYDevuelveLaFila(t *testing.T) {
	app, _ := newApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/adjust", fiber.Map{
		"warehouse_id": testWH1,
		"variant_id":   testVar,
		"stock_status": "ON_HAND",
		"delta":        "100",
		"unit_cost":    "10",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.StockLevelDTO
	decodeInto(t, resp, &out)
	assert.Equal(t, testWH1, out.WarehouseID)
	assert.True(t, out.Quantity.Equal(dec("100")))
	assert.True(t, out.AvailableQty.Equal(dec("100")))
	assert.True(t, out.UnitCost.Equal(dec("10")))
	require.NotNil(t, out.LastTransactionAt)
}

func TestAdjustHTTP_CuerpoIncompleto(t *testing.T) {
	app, _ := newApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/adjust", fiber.Map{
		"variant_id": testVar,
		"delta":      "10",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAdjustHTTP_DisponibleNegativo(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "10", "5")
	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reserve", fiber.Map{
		"warehouse_id": testWH1, "variant_id": testVar, "amount": "8",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/stock-levels/adjust", fiber.Map{
		"warehouse_id": testWH1,
		"variant_id":   testVar,
		"stock_status": "ON_HAND",
		"delta":        "-5",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "AVAILABLE_WOULD_GO_NEGATIVE", errorCode(t, resp))
}

func TestReserveHTTP_InsuficienteDa409(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "10", "5")

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reserve", fiber.Map{
		"warehouse_id": testWH1, "variant_id": testVar, "amount": "11",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_AVAILABLE", errorCode(t, resp))
}

func TestReserveHTTP_ClaveInexistenteDa404(t *testing.T) {
	app, _ := newApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reserve", fiber.Map{
		"warehouse_id": testWH1, "variant_id": testVar, "amount": "1",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestReserveReleaseHTTP_IdaYVuelta(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "100", "10")

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reserve", fiber.Map{
		"warehouse_id": testWH1, "variant_id": testVar, "amount": "30", "reference": "order-1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var res dto.ReserveResponse
	decodeInto(t, resp, &res)
	assert.True(t, res.QuantityReserved.Equal(dec("30")))
	assert.True(t, res.RemainingAvailable.Equal(dec("70")))

	resp = doJSON(t, app, fiber.MethodPost, "/api/stock-levels/release", fiber.Map{
		"warehouse_id": testWH1, "variant_id": testVar, "amount": "30", "reference": "order-1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &res)
	assert.True(t, res.QuantityReleased.Equal(dec("30")))
	assert.True(t, res.RemainingAvailable.Equal(dec("100")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer / Reconcile / LoadVehicle
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferHTTP_DevuelveAmbasFilas(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "100", "10")

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/transfer", fiber.Map{
		"from":       fiber.Map{"warehouse_id": testWH1, "stock_status": "ON_HAND"},
		"to":         fiber.Map{"warehouse_id": testWH2, "stock_status": "ON_HAND"},
		"variant_id": testVar,
		"amount":     "40",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.TransferResponse
	decodeInto(t, resp, &out)
	assert.True(t, out.From.Quantity.Equal(dec("60")))
	assert.Equal(t, testWH2, out.To.WarehouseID)
	assert.True(t, out.To.Quantity.Equal(dec("40")))
}

func TestTransferHTTP_InsuficienteDa409(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "5", "10")

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/transfer", fiber.Map{
		"from":       fiber.Map{"warehouse_id": testWH1, "stock_status": "ON_HAND"},
		"to":         fiber.Map{"warehouse_id": testWH2, "stock_status": "ON_HAND"},
		"variant_id": testVar,
		"amount":     "10",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_QUANTITY", errorCode(t, resp))
}

func TestReconcileHTTP_ConteoBajoReservadoDa409(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "100", "10")
	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reserve", fiber.Map{
		"warehouse_id": testWH1, "variant_id": testVar, "amount": "60",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reconcile", fiber.Map{
		"warehouse_id": testWH1,
		"variant_id":   testVar,
		"stock_status": "ON_HAND",
		"counted_qty":  "50",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "COUNT_BELOW_RESERVED", errorCode(t, resp))
}

func TestReconcileHTTP_DevuelveLaVarianza(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "100", "10")

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reconcile", fiber.Map{
		"warehouse_id": testWH1,
		"variant_id":   testVar,
		"stock_status": "ON_HAND",
		"counted_qty":  "93",
		"reference":    "conteo-junio",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ReconcileResponse
	decodeInto(t, resp, &out)
	assert.True(t, out.Variance.Equal(dec("-7")))
	assert.True(t, out.Adjustment.Quantity.Equal(dec("93")))
}

func TestLoadVehicleHTTP_MueveATruckStock(t *testing.T) {
	app, store := newApp(t)
	seedStock(t, app, testWH1, "60", "12")

	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/load-vehicle", fiber.Map{
		"warehouse_id": testWH1,
		"vehicle_id":   "ABC-123",
		"variant_id":   testVar,
		"amount":       "20",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.TransferResponse
	decodeInto(t, resp, &out)
	assert.Equal(t, "TRUCK_STOCK", out.To.StockStatus)
	assert.Equal(t, entity.VehicleWarehouseID("ABC-123"), out.To.WarehouseID)
	assert.True(t, out.To.Quantity.Equal(dec("20")))

	veh, ok := store.warehouses[entity.VehicleWarehouseID("ABC-123")]
	require.True(t, ok)
	assert.True(t, veh.IsVehicle)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListHTTP_DevuelveFilasYTotal(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "100", "10")
	seedStock(t, app, testWH2, "50", "10")

	resp := doJSON(t, app, fiber.MethodGet, "/api/stock-levels/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ListStockLevelsResponse
	decodeInto(t, resp, &out)
	assert.Equal(t, 2, out.TotalCount)
	require.Len(t, out.StockLevels, 2)
	assert.Equal(t, testWH1, out.StockLevels[0].WarehouseID)
}

func TestSummaryHTTP_TotalesPorEstado(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "100", "10")
	seedStock(t, app, testWH2, "50", "10")

	resp := doJSON(t, app, fiber.MethodGet, "/api/stock-levels/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.StockSummaryDTO
	decodeInto(t, resp, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "ON_HAND", out[0].StockStatus)
	assert.True(t, out[0].Quantity.Equal(dec("150")))
	assert.Equal(t, 2, out[0].Rows)
}

func TestTransactionsHTTP_FiltraPorTipo(t *testing.T) {
	app, _ := newApp(t)
	seedStock(t, app, testWH1, "100", "10")
	resp := doJSON(t, app, fiber.MethodPost, "/api/stock-levels/reserve", fiber.Map{
		"warehouse_id": testWH1, "variant_id": testVar, "amount": "10",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodGet, "/api/stock-levels/transactions?type=RESERVE", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.StockTransactionDTO
	decodeInto(t, resp, &out)
	require.Len(t, out, 1)
	assert.Equal(t, entity.TxTypeReserve, out[0].Type)
	assert.True(t, out[0].Quantity.Equal(dec("10")))
}

func TestWarehousesHTTP_Listado(t *testing.T) {
	app, _ := newApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/warehouses/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []map[string]any
	decodeInto(t, resp, &out)
	assert.Len(t, out, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Capacidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCapacityHTTP_PorPedido(t *testing.T) {
	app, _ := newApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/capacity/orders/order-1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.CapacitySnapshotDTO
	decodeInto(t, resp, &out)
	assert.Equal(t, "order-1", out.OrderID)
	assert.True(t, out.TotalWeightKg.Equal(dec("39")))
	assert.True(t, out.TotalVolumeM3.Equal(dec("0.15")))
	require.Len(t, out.LineDetails, 1)
	assert.Equal(t, "CIL-13KG", out.LineDetails[0].SKU)
}

func TestCapacityHTTP_PedidoInexistenteDa404(t *testing.T) {
	app, _ := newApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/capacity/orders/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCapacityHTTP_MultiPedido(t *testing.T) {
	app, store := newApp(t)
	store.orders["order-2"] = &entity.Order{
		ID: "order-2", TenantID: testTenant, Number: "PED-002",
		Lines: []entity.OrderLine{{VariantID: testVar, Quantity: dec("2")}},
	}

	resp := doJSON(t, app, fiber.MethodPost, "/api/capacity/orders", fiber.Map{
		"order_ids": []string{"order-1", "order-2"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.MultiOrderCapacityResponse
	decodeInto(t, resp, &out)
	assert.True(t, out.TotalWeightKg.Equal(dec("65")), "3*13 + 2*13 = %s", out.TotalWeightKg)
	assert.True(t, out.TotalVolumeM3.Equal(dec("0.25")))
	require.Len(t, out.PerOrder, 2)
}

func TestCapacityHTTP_ListaVaciaDa400(t *testing.T) {
	app, _ := newApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/capacity/orders", fiber.Map{
		"order_ids": []string{},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

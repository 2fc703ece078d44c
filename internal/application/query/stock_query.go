package query

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// StockLevelQuery servicio de lectura sobre el libro de stock. Nunca muta estado;
// las lecturas pueden ser levemente stale respecto a transacciones en vuelo
// (read-committed alcanza, no se exige lectura linealizable entre claves).
type StockLevelQuery struct {
	levelRepo repository.StockLevelRepository
	txnRepo   repository.StockTransactionRepository

	// Cache TTL del resumen por tenant: es agregación de presentación,
	// externa al modelo de consistencia del libro.
	summaryTTL time.Duration
	mu         sync.Mutex
	summaries  map[string]cachedSummary
	now        func() time.Time
}

type cachedSummary struct {
	totals    map[entity.StockStatus]repository.StatusTotals
	expiresAt time.Time
}

// NewStockLevelQuery construye el servicio. summaryTTL <= 0 desactiva el cache.
func NewStockLevelQuery(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	summaryTTL time.Duration,
) *StockLevelQuery {
	return &StockLevelQuery{
		levelRepo:  levelRepo,
		txnRepo:    txnRepo,
		summaryTTL: summaryTTL,
		summaries:  make(map[string]cachedSummary),
		now:        time.Now,
	}
}

// ListResult filas más el total sin paginar.
type ListResult struct {
	Rows       []*repository.StockLevelRow
	TotalCount int
}

// List lectura filtrada y paginada para presentación.
func (q *StockLevelQuery) List(ctx context.Context, filter repository.StockLevelFilter, limit, offset int) (*ListResult, error) {
	rows, err := q.levelRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := q.levelRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListResult{Rows: rows, TotalCount: total}, nil
}

// Transactions listado de auditoría (append-only, orden de commit por clave).
func (q *StockLevelQuery) Transactions(ctx context.Context, filter repository.StockTransactionFilter, limit, offset int) ([]*entity.StockTransaction, error) {
	return q.txnRepo.List(ctx, filter, limit, offset)
}

// Summary totales por estado para el dashboard, memoizados por TTL.
func (q *StockLevelQuery) Summary(ctx context.Context, tenantID string) (map[entity.StockStatus]repository.StatusTotals, error) {
	if q.summaryTTL > 0 {
		q.mu.Lock()
		if c, ok := q.summaries[tenantID]; ok && q.now().Before(c.expiresAt) {
			q.mu.Unlock()
			return c.totals, nil
		}
		q.mu.Unlock()
	}

	totals, err := q.levelRepo.SummaryByStatus(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if q.summaryTTL > 0 {
		q.mu.Lock()
		q.summaries[tenantID] = cachedSummary{totals: totals, expiresAt: q.now().Add(q.summaryTTL)}
		q.mu.Unlock()
	}
	return totals, nil
}

package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/StockLedger-api/internal/domain"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestMapLockError(t *testing.T) {
	// lock_timeout vencido (55P03) aflora como conflicto reintentable.
	err := mapLockError(pgError("55P03"))
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	// También envuelto en otra capa.
	err = mapLockError(fmt.Errorf("seed stock level: %w", pgError("55P03")))
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	// Cualquier otro error pasa sin traducir.
	otro := errors.New("connection reset")
	assert.Equal(t, otro, mapLockError(otro))
	assert.NotErrorIs(t, mapLockError(pgError("23505")), domain.ErrConcurrencyConflict)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError("23505")))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", pgError("23505"))))
	assert.False(t, isUniqueViolation(pgError("23514")))
	assert.False(t, isUniqueViolation(errors.New("no es un error pg")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, isCheckViolation(pgError("23514")))
	assert.True(t, isCheckViolation(fmt.Errorf("upsert: %w", pgError("23514"))))
	assert.False(t, isCheckViolation(pgError("23505")))
	assert.False(t, isCheckViolation(errors.New("no es un error pg")))
}

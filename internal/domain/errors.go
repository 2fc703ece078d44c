package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada operación del motor
// retorna exactamente uno de estos ante un rechazo; ninguna aplica efectos parciales.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvariantViolation = errors.New("la escritura violaría los invariantes del stock")

	// ErrInsufficientAvailable reserva mayor que la cantidad disponible.
	ErrInsufficientAvailable = errors.New("cantidad disponible insuficiente para reservar")
	// ErrInsufficientQuantity transfer/load mayor que lo disponible en origen
	// (el stock reservado no se puede trasladar).
	ErrInsufficientQuantity = errors.New("cantidad insuficiente en origen")
	// ErrInvalidAmount liberación mayor que lo reservado, o monto no positivo
	// donde la operación exige delta positivo.
	ErrInvalidAmount = errors.New("monto inválido")
	// ErrWouldMakeAvailableNegative ajuste negativo que dejaría available < 0.
	ErrWouldMakeAvailableNegative = errors.New("el ajuste dejaría la cantidad disponible negativa")
	// ErrCountBelowReserved conteo físico por debajo de lo reservado; el caller
	// debe liberar reservas antes de reconciliar.
	ErrCountBelowReserved = errors.New("el conteo físico es menor que lo reservado")
	// ErrConcurrencyConflict no se pudo adquirir el bloqueo de la fila a tiempo;
	// el caller puede reintentar con backoff.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia sobre la fila de stock")
)

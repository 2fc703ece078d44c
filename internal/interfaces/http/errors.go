package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/domain"
)

// mapDomainError traduce errores de dominio a respuestas HTTP.
// Ningún error del motor es fatal para el proceso: cada fallo es local al request.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "monto inválido"})
	case errors.Is(err, domain.ErrWouldMakeAvailableNegative):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "AVAILABLE_WOULD_GO_NEGATIVE", Message: "el ajuste dejaría la cantidad disponible negativa"})
	case errors.Is(err, domain.ErrInvariantViolation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVARIANT_VIOLATION", Message: "la escritura violaría los invariantes del stock"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInsufficientAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_AVAILABLE", Message: "cantidad disponible insuficiente"})
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: "cantidad insuficiente en origen"})
	case errors.Is(err, domain.ErrCountBelowReserved):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COUNT_BELOW_RESERVED", Message: "el conteo es menor que lo reservado; liberar reservas primero"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		// Reintentable: el caller debería repetir con backoff.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintentar"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

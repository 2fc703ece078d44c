package http

import (
	"github.com/gofiber/fiber/v2"

	appcap "github.com/jhoicas/StockLedger-api/internal/application/capacity"
	appinv "github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/application/query"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements     *appinv.MovementUseCase
	Reservations  *appinv.ReservationUseCase
	Queries       *query.StockLevelQuery
	Capacity      *appcap.UseCase
	WarehouseRepo repository.WarehouseRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token con tenant)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock ledger (protegido)
	stock := protected.Group("/stock-levels")
	stockHandler := NewStockHandler(deps.Movements, deps.Reservations, deps.Queries)
	stock.Get("/", stockHandler.List)
	stock.Get("/summary", stockHandler.Summary)
	stock.Get("/transactions", stockHandler.Transactions)
	stock.Post("/adjust", stockHandler.Adjust)
	stock.Post("/reserve", stockHandler.Reserve)
	stock.Post("/release", stockHandler.Release)
	stock.Post("/transfer", stockHandler.Transfer)
	stock.Post("/reconcile", stockHandler.Reconcile)
	stock.Post("/load-vehicle", stockHandler.LoadVehicle)

	// Capacidad de carga (protegido)
	capGroup := protected.Group("/capacity")
	capacityHandler := NewCapacityHandler(deps.Capacity)
	capGroup.Get("/orders/:id", capacityHandler.ForOrder)
	capGroup.Post("/orders", capacityHandler.ForOrders)

	// Bodegas (protegido, solo lectura)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseRepo)
	warehouses.Get("/", warehouseHandler.List)
}

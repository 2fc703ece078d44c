package entity

import "time"

// Prefijo de las pseudo-bodegas de vehículo (stock TRUCK_STOCK).
const vehicleWarehousePrefix = "veh-"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
// Los vehículos se modelan como pseudo-bodegas (IsVehicle) creadas por load-vehicle.
type Warehouse struct {
	ID        string
	TenantID  string
	Code      string
	Name      string
	IsVehicle bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleWarehouseID deriva el id de la pseudo-bodega de un vehículo.
// Determinístico: el mismo vehículo siempre mapea a la misma bodega.
func VehicleWarehouseID(vehicleID string) string {
	return vehicleWarehousePrefix + vehicleID
}

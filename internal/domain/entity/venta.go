package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta.
const (
	VentaCompletada = "Completada"
	VentaCancelada  = "Cancelada"
)

// Venta venta de productos a un usuario cliente.
type Venta struct {
	ID        int64
	UsuarioID string
	Fecha     time.Time
	Total     decimal.Decimal
	Estado    string
	Detalles  []DetalleVenta
}

// DetalleVenta renglón de venta; el precio unitario se toma del precio sugerido al momento de vender.
type DetalleVenta struct {
	ID             int64
	VentaID        int64
	ProductoID     int64
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compra orden de compra a un proveedor. Cada detalle genera una Entrada en el kardex.
type Compra struct {
	ID          int64
	ProveedorID int64
	Fecha       time.Time
	Detalles    []DetalleCompra
}

// Total suma de precioTotal de los detalles.
func (c *Compra) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range c.Detalles {
		total = total.Add(d.PrecioTotal)
	}
	return total
}

// DetalleCompra renglón de la compra ligado al movimiento de pieza que originó.
type DetalleCompra struct {
	ID                 int64
	CompraID           int64
	MovimientosPiezaID int64
	PiezaID            int64
	Presentacion       string
	Cantidad           decimal.Decimal
	PrecioTotal        decimal.Decimal
}

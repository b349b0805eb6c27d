package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto dispositivo vendible (collar GPS, gateway, etc.) armado a partir de piezas.
type Producto struct {
	ID             int64
	Nombre         string
	Descripcion    string
	PrecioSugerido decimal.Decimal
	Imagen         string
	FechaRegistro  time.Time
}

// ComponenteProducto cantidad de una pieza que requiere un producto (lista de materiales).
type ComponenteProducto struct {
	ProductoID        int64
	PiezaID           int64
	CantidadRequerida decimal.Decimal
}

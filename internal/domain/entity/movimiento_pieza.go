package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovimientoEntrada = "Entrada"
	MovimientoSalida  = "Salida"
)

// MovimientoPieza renglón del kardex de una pieza. Guarda el saldo resultante después del movimiento.
type MovimientoPieza struct {
	ID             int64
	PiezaID        int64
	Fecha          time.Time
	TipoMovimiento string
	Cantidad       decimal.Decimal
	CostoUnitario  decimal.Decimal
	CostoPromedio  decimal.Decimal
	ValorDebe      decimal.Decimal
	ValorHaber     decimal.Decimal
	SaldoValor     decimal.Decimal
	Existencias    decimal.Decimal
	Referencia     string // p.ej. "compra:12" o "venta:7"
}

// Package inventory contiene el kardex de costo promedio ponderado de piezas (servicio de dominio).
package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// Escala decimales con que se guardan cantidades y valores del kardex, igual que las columnas NUMERIC(18,4).
const Escala = 4

func redondear(v decimal.Decimal) decimal.Decimal { return v.Round(Escala) }

// Saldo estado acumulado de una pieza después de su último movimiento.
type Saldo struct {
	Existencias   decimal.Decimal
	SaldoValor    decimal.Decimal
	CostoPromedio decimal.Decimal
}

// SaldoDe toma el saldo de un movimiento previo; nil = pieza sin movimientos.
func SaldoDe(m *entity.MovimientoPieza) Saldo {
	if m == nil {
		return Saldo{}
	}
	return Saldo{Existencias: m.Existencias, SaldoValor: m.SaldoValor, CostoPromedio: m.CostoPromedio}
}

// promedio = SaldoValor / Existencias (0 sin existencias).
func promedio(saldo, existencias decimal.Decimal) decimal.Decimal {
	if existencias.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return redondear(saldo.Div(existencias))
}

// Entrada aplica una entrada de `cantidad` piezas a `costoUnitario` y devuelve el renglón del kardex.
// Todos los valores salen redondeados a Escala.
func Entrada(prev Saldo, piezaID int64, cantidad, costoUnitario decimal.Decimal, fecha time.Time) (*entity.MovimientoPieza, error) {
	cantidad, costoUnitario = redondear(cantidad), redondear(costoUnitario)
	if !cantidad.IsPositive() || costoUnitario.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	debe := redondear(cantidad.Mul(costoUnitario))
	existencias := prev.Existencias.Add(cantidad)
	saldo := prev.SaldoValor.Add(debe)
	return &entity.MovimientoPieza{
		PiezaID:        piezaID,
		Fecha:          fecha,
		TipoMovimiento: entity.MovimientoEntrada,
		Cantidad:       cantidad,
		CostoUnitario:  costoUnitario,
		CostoPromedio:  promedio(saldo, existencias),
		ValorDebe:      debe,
		ValorHaber:     decimal.Zero,
		SaldoValor:     saldo,
		Existencias:    existencias,
	}, nil
}

// Salida retira `cantidad` piezas al costo promedio vigente. Devuelve ErrInsufficientStock si no alcanza.
func Salida(prev Saldo, piezaID int64, cantidad decimal.Decimal, fecha time.Time) (*entity.MovimientoPieza, error) {
	cantidad = redondear(cantidad)
	if !cantidad.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if prev.Existencias.LessThan(cantidad) {
		return nil, domain.ErrInsufficientStock
	}
	existencias := prev.Existencias.Sub(cantidad)
	haber := redondear(cantidad.Mul(prev.CostoPromedio))
	saldo := prev.SaldoValor.Sub(haber)
	costo := prev.CostoPromedio
	if existencias.IsZero() {
		// el redondeo del promedio puede dejar residuo; sin existencias el saldo es cero
		saldo = decimal.Zero
		costo = decimal.Zero
	}
	return &entity.MovimientoPieza{
		PiezaID:        piezaID,
		Fecha:          fecha,
		TipoMovimiento: entity.MovimientoSalida,
		Cantidad:       cantidad,
		CostoUnitario:  prev.CostoPromedio,
		CostoPromedio:  costo,
		ValorDebe:      decimal.Zero,
		ValorHaber:     haber,
		SaldoValor:     saldo,
		Existencias:    existencias,
	}, nil
}

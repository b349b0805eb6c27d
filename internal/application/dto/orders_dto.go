package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompraRequest alta de compra a proveedor. Fecha vacía = ahora.
type CompraRequest struct {
	ProveedorID int64                  `json:"proveedorId"`
	Fecha       *time.Time             `json:"fecha"`
	Detalles    []DetalleCompraRequest `json:"detalles"`
}

// DetalleCompraRequest renglón de compra; el costo unitario es PrecioTotal / Cantidad.
type DetalleCompraRequest struct {
	PiezaID      int64           `json:"piezaId"`
	Presentacion string          `json:"presentacion"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	PrecioTotal  decimal.Decimal `json:"precioTotal"`
}

// CompraResponse compra con proveedor y detalles resueltos.
type CompraResponse struct {
	ID          int64                   `json:"id"`
	ProveedorID int64                   `json:"proveedorId"`
	Proveedor   *ProveedorResponse      `json:"proveedor,omitempty"`
	Fecha       time.Time               `json:"fecha"`
	Total       decimal.Decimal         `json:"total"`
	Detalles    []DetalleCompraResponse `json:"detalles"`
}

// DetalleCompraResponse renglón de compra.
type DetalleCompraResponse struct {
	ID                 int64                  `json:"id"`
	CompraID           int64                  `json:"compraId"`
	MovimientosPiezaID int64                  `json:"movimientosPiezaId"`
	PiezaID            int64                  `json:"piezaId"`
	Presentacion       string                 `json:"presentacion"`
	Cantidad           decimal.Decimal        `json:"cantidad"`
	PrecioTotal        decimal.Decimal        `json:"precioTotal"`
	MovimientosPieza   *MovimientoRefResponse `json:"movimientosPieza,omitempty"`
}

// MovimientoRefResponse datos mínimos del movimiento que generó un detalle de compra.
type MovimientoRefResponse struct {
	Pieza         *PiezaResponse  `json:"pieza,omitempty"`
	CostoUnitario decimal.Decimal `json:"costoUnitario"`
	Referencia    string          `json:"referencia,omitempty"`
}

// VentaRequest alta de venta. Los precios se toman del producto; los enviados se ignoran.
type VentaRequest struct {
	UsuarioID string                `json:"usuarioId"`
	Fecha     *time.Time            `json:"fecha"`
	Detalles  []DetalleVentaRequest `json:"detalles"`
}

// DetalleVentaRequest renglón de venta.
type DetalleVentaRequest struct {
	ProductoID int64           `json:"productoId"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// VentaResponse venta con usuario y productos resueltos.
type VentaResponse struct {
	ID        int64                  `json:"id"`
	Fecha     time.Time              `json:"fecha"`
	Total     decimal.Decimal        `json:"total"`
	Estado    string                 `json:"estado"`
	UsuarioID string                 `json:"usuarioId"`
	Usuario   *UsuarioRef            `json:"usuario,omitempty"`
	Detalles  []DetalleVentaResponse `json:"detalles"`
}

// UsuarioRef datos públicos del usuario en listados.
type UsuarioRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// DetalleVentaResponse renglón de venta.
type DetalleVentaResponse struct {
	ID             int64             `json:"id"`
	VentaID        int64             `json:"ventaId"`
	ProductoID     int64             `json:"productoId"`
	Producto       *ProductoResponse `json:"producto,omitempty"`
	Cantidad       decimal.Decimal   `json:"cantidad"`
	PrecioUnitario decimal.Decimal   `json:"precioUnitario"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
}

// MovimientoRequest movimiento manual del kardex. CostoUnitario solo aplica a Entrada.
// Sin referencia se guarda "manual".
type MovimientoRequest struct {
	PiezaID        int64           `json:"piezaId"`
	TipoMovimiento string          `json:"tipoMovimiento"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	CostoUnitario  decimal.Decimal `json:"costoUnitario"`
	Fecha          *time.Time      `json:"fecha"`
	Referencia     string          `json:"referencia"`
}

// MovimientoResponse renglón del kardex con el saldo resultante.
type MovimientoResponse struct {
	ID             int64           `json:"id"`
	PiezaID        int64           `json:"piezaId"`
	Pieza          *PiezaResponse  `json:"pieza,omitempty"`
	Fecha          time.Time       `json:"fecha"`
	TipoMovimiento string          `json:"tipoMovimiento"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	CostoUnitario  decimal.Decimal `json:"costoUnitario"`
	CostoPromedio  decimal.Decimal `json:"costoPromedio"`
	ValorDebe      decimal.Decimal `json:"valorDebe"`
	ValorHaber     decimal.Decimal `json:"valorHaber"`
	SaldoValor     decimal.Decimal `json:"saldoValor"`
	Existencias    decimal.Decimal `json:"existencias"`
	Referencia     string          `json:"referencia,omitempty"`
}

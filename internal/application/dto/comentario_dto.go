package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComentarioRequest reseña del cliente. VentaID es opcional: sin él se busca cualquier compra del producto.
type ComentarioRequest struct {
	ProductoID   int64  `json:"productoId"`
	VentaID      *int64 `json:"ventaId"`
	Descripcion  string `json:"descripcion"`
	Calificacion int    `json:"calificacion"`
}

// ComentarioResponse reseña con nombres resueltos para testimonios.
type ComentarioResponse struct {
	ID             int64     `json:"id"`
	ProductoID     int64     `json:"productoId"`
	VentaID        *int64    `json:"ventaId"`
	UsuarioID      string    `json:"usuarioId"`
	Descripcion    string    `json:"descripcion"`
	Calificacion   int       `json:"calificacion"`
	Fecha          time.Time `json:"fecha"`
	NombreCliente  string    `json:"nombreCliente"`
	NombreProducto string    `json:"nombreProducto"`
}

// CompraClienteResponse venta vista desde el portal del cliente.
type CompraClienteResponse struct {
	VentaID   int64                   `json:"ventaId"`
	Fecha     time.Time               `json:"fecha"`
	Total     decimal.Decimal         `json:"total"`
	Estado    string                  `json:"estado"`
	Productos []ProductoCompraCliente `json:"productos"`
}

// ProductoCompraCliente producto dentro de una compra del cliente.
type ProductoCompraCliente struct {
	ProductoID     int64           `json:"productoId"`
	Nombre         string          `json:"nombre"`
	Imagen         string          `json:"imagen"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ManualesProductoResponse manuales agrupados por producto comprado.
type ManualesProductoResponse struct {
	ProductoID     int64            `json:"productoId"`
	NombreProducto string           `json:"nombreProducto"`
	Imagen         string           `json:"imagen"`
	Manuales       []ManualResponse `json:"manuales"`
}

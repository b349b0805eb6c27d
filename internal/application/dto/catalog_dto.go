package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ProductoRequest alta/modificación de producto.
type ProductoRequest struct {
	Nombre         string          `json:"nombre"`
	Descripcion    string          `json:"descripcion"`
	PrecioSugerido decimal.Decimal `json:"precioSugerido"`
	Imagen         string          `json:"imagen"`
}

// ManualUpload archivo de manual recibido junto con el producto (multipart).
type ManualUpload struct {
	Titulo      string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ProductoResponse producto; los campos relacionados se llenan solo en ObtenerProducto.
type ProductoResponse struct {
	ID                  int64                `json:"id"`
	Nombre              string               `json:"nombre"`
	Descripcion         string               `json:"descripcion"`
	PrecioSugerido      decimal.Decimal      `json:"precioSugerido"`
	Imagen              string               `json:"imagen"`
	FechaRegistro       time.Time            `json:"fechaRegistro"`
	ComponentesProducto []ComponenteResponse `json:"componentesProducto,omitempty"`
	Comentarios         []ComentarioResponse `json:"comentarios,omitempty"`
	Manuales            []ManualResponse     `json:"manuales,omitempty"`
}

// PiezaRequest alta/modificación de pieza.
type PiezaRequest struct {
	Nombre       string `json:"nombre"`
	UnidadMedida string `json:"unidadMedida"`
	Descripcion  string `json:"descripcion"`
}

// PiezaResponse pieza con existencias y costo promedio del kardex.
type PiezaResponse struct {
	ID            int64           `json:"id"`
	Nombre        string          `json:"nombre"`
	UnidadMedida  string          `json:"unidadMedida"`
	Descripcion   string          `json:"descripcion"`
	FechaRegistro time.Time       `json:"fechaRegistro"`
	Existencias   decimal.Decimal `json:"existencias"`
	CostoPromedio decimal.Decimal `json:"costoPromedio"`
}

// ProveedorRequest alta/modificación de proveedor.
type ProveedorRequest struct {
	ID            int64  `json:"id"`
	NombreEmpresa string `json:"nombreEmpresa"`
	Contacto      string `json:"contacto"`
	Telefono      string `json:"telefono"`
	Email         string `json:"email"`
}

// ProveedorResponse proveedor.
type ProveedorResponse struct {
	ID            int64  `json:"id"`
	NombreEmpresa string `json:"nombreEmpresa"`
	Contacto      string `json:"contacto"`
	Telefono      string `json:"telefono"`
	Email         string `json:"email"`
}

// ComponenteRequest pieza requerida por un producto.
type ComponenteRequest struct {
	ProductoID        int64           `json:"productoId"`
	PiezaID           int64           `json:"piezaId"`
	CantidadRequerida decimal.Decimal `json:"cantidadRequerida"`
}

// ComponenteResponse componente con producto y pieza resueltos.
type ComponenteResponse struct {
	ProductoID        int64             `json:"productoId"`
	PiezaID           int64             `json:"piezaId"`
	CantidadRequerida decimal.Decimal   `json:"cantidadRequerida"`
	Producto          *ProductoResponse `json:"producto,omitempty"`
	Pieza             *PiezaResponse    `json:"pieza,omitempty"`
}

// CostoProductoResponse costo de materiales de un producto a costo promedio vigente.
type CostoProductoResponse struct {
	ProductoID     int64                `json:"productoId"`
	Nombre         string               `json:"nombre"`
	PrecioSugerido decimal.Decimal      `json:"precioSugerido"`
	CostoTotal     decimal.Decimal      `json:"costoTotal"`
	Margen         decimal.Decimal      `json:"margen"`
	MargenPct      decimal.Decimal      `json:"margenPorcentaje"`
	Lineas         []CostoLineaResponse `json:"lineas"`
}

// CostoLineaResponse renglón del costo: cantidad * costo promedio de la pieza.
type CostoLineaResponse struct {
	PiezaID           int64           `json:"piezaId"`
	Nombre            string          `json:"nombre"`
	CantidadRequerida decimal.Decimal `json:"cantidadRequerida"`
	CostoPromedio     decimal.Decimal `json:"costoPromedio"`
	Subtotal          decimal.Decimal `json:"subtotal"`
}

// ManualRequest alta de manual por enlace.
type ManualRequest struct {
	ProductoID   int64  `json:"productoId"`
	Titulo       string `json:"titulo"`
	URLDocumento string `json:"urlDocumento"`
}

// ManualResponse manual de producto.
type ManualResponse struct {
	ID           int64  `json:"id"`
	ProductoID   int64  `json:"productoId"`
	Titulo       string `json:"titulo"`
	URLDocumento string `json:"urlDocumento"`
}

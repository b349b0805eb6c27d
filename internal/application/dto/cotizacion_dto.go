package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CotizacionRequest formulario público de cotización.
type CotizacionRequest struct {
	NombreCliente             string   `json:"nombreCliente"`
	EmailCliente              string   `json:"emailCliente"`
	Telefono                  string   `json:"telefono"`
	Empresa                   string   `json:"empresa"`
	CantidadDispositivos      int      `json:"cantidadDispositivos"`
	CantidadAnimales          int      `json:"cantidadAnimales"`
	TipoGanado                string   `json:"tipoGanado"`
	Hectareas                 int      `json:"hectareas"`
	FuncionalidadesRequeridas []string `json:"funcionalidadesRequeridas"`
	Comentarios               string   `json:"comentarios"`
}

// EstimarPrecioRequest datos mínimos para estimar sin guardar.
type EstimarPrecioRequest struct {
	CantidadDispositivos      int      `json:"cantidadDispositivos"`
	FuncionalidadesRequeridas []string `json:"funcionalidadesRequeridas"`
}

// EstimarPrecioResponse precio estimado.
type EstimarPrecioResponse struct {
	PrecioEstimado decimal.Decimal `json:"precioEstimado"`
}

// SolicitarCotizacionResponse confirmación al cliente.
type SolicitarCotizacionResponse struct {
	Success        bool            `json:"success"`
	CotizacionID   int64           `json:"cotizacionId"`
	PrecioEstimado decimal.Decimal `json:"precioEstimado"`
	Message        string          `json:"message"`
}

// CotizacionResponse cotización en el panel de administración.
type CotizacionResponse struct {
	ID                        int64           `json:"id"`
	NombreCliente             string          `json:"nombreCliente"`
	EmailCliente              string          `json:"emailCliente"`
	Telefono                  string          `json:"telefono"`
	Empresa                   string          `json:"empresa,omitempty"`
	CantidadDispositivos      int             `json:"cantidadDispositivos"`
	CantidadAnimales          int             `json:"cantidadAnimales"`
	TipoGanado                string          `json:"tipoGanado"`
	Hectareas                 int             `json:"hectareas"`
	FuncionalidadesRequeridas []string        `json:"funcionalidadesRequeridas"`
	Comentarios               string          `json:"comentarios,omitempty"`
	PrecioEstimado            decimal.Decimal `json:"precioEstimado"`
	Estado                    string          `json:"estado"`
	Fecha                     time.Time       `json:"fecha"`
}

// CotizacionListResponse listado paginado de cotizaciones.
type CotizacionListResponse struct {
	TotalItems int                  `json:"totalItems"`
	Items      []CotizacionResponse `json:"items"`
}

// CambiarEstadoRequest cambio de estado de una cotización.
type CambiarEstadoRequest struct {
	Estado string `json:"estado"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResumenResponse respuesta de GET /api/dashboard/Resumen.
type ResumenResponse struct {
	Totales          TotalesDTO           `json:"totales"`
	IngresosTotales  decimal.Decimal      `json:"ingresosTotales"`
	GastosTotales    decimal.Decimal      `json:"gastosTotales"`
	Utilidad         decimal.Decimal      `json:"utilidad"`
	MargenUtilidad   decimal.Decimal      `json:"margenUtilidad"` // porcentaje sobre ingresos
	VentasHoy        int                  `json:"ventasHoy"`
	VentasPorMes     []MesMontoDTO        `json:"ventasPorMes"`
	ComprasPorMes    []MesMontoDTO        `json:"comprasPorMes"`
	ProductosTop     []ProductoTopDTO     `json:"productosPopulares"`
	ComentariosRec   []ComentarioResponse `json:"comentariosRecientes"`
	CotizacionesPend []CotizacionResponse `json:"cotizacionesPendientes"`
	GeneradoEn       time.Time            `json:"generadoEn"`
}

// TotalesDTO conteos por entidad.
type TotalesDTO struct {
	Productos    int `json:"productos"`
	Ventas       int `json:"ventas"`
	Compras      int `json:"compras"`
	Proveedores  int `json:"proveedores"`
	Piezas       int `json:"piezas"`
	Comentarios  int `json:"comentarios"`
	Usuarios     int `json:"usuarios"`
	Cotizaciones int `json:"cotizaciones"`
}

// MesMontoDTO monto acumulado de un mes (YYYY-MM).
type MesMontoDTO struct {
	Mes   string          `json:"mes"`
	Monto decimal.Decimal `json:"monto"`
}

// ProductoTopDTO producto por unidades vendidas.
type ProductoTopDTO struct {
	ProductoID      int64           `json:"productoId"`
	Nombre          string          `json:"nombre"`
	Imagen          string          `json:"imagen"`
	UnidadesVendida decimal.Decimal `json:"unidadesVendidas"`
	Ingresos        decimal.Decimal `json:"ingresos"`
}

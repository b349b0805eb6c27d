package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cotización.
const (
	CotizacionPendiente  = "Pendiente"
	CotizacionContactado = "Contactado"
	CotizacionAprobada   = "Aprobada"
	CotizacionRechazada  = "Rechazada"
)

// EstadoCotizacionValido indica si el estado pertenece al flujo de cotizaciones.
func EstadoCotizacionValido(estado string) bool {
	switch estado {
	case CotizacionPendiente, CotizacionContactado, CotizacionAprobada, CotizacionRechazada:
		return true
	}
	return false
}

// Cotizacion solicitud de cotización enviada desde la página pública.
type Cotizacion struct {
	ID                        int64
	NombreCliente             string
	EmailCliente              string
	Telefono                  string
	Empresa                   string
	CantidadDispositivos      int
	CantidadAnimales          int
	TipoGanado                string
	Hectareas                 int
	FuncionalidadesRequeridas []string
	Comentarios               string
	PrecioEstimado            decimal.Decimal
	Estado                    string
	Fecha                     time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnidadMedidaDefault unidad asignada cuando el alta no especifica una.
const UnidadMedidaDefault = "Unidades"

// Pieza componente físico con existencias y costo promedio ponderado.
// Existencias y CostoPromedio se derivan del último movimiento (kardex); no se editan directamente.
type Pieza struct {
	ID            int64
	Nombre        string
	UnidadMedida  string
	Descripcion   string
	FechaRegistro time.Time
	Existencias   decimal.Decimal
	CostoPromedio decimal.Decimal
}

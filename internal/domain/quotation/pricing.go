// Package quotation calcula el precio estimado de una cotización.
package quotation

import "github.com/shopspring/decimal"

// Funcionalidades premium que se cotizan aparte.
const (
	FuncAlertasAvanzadas = "alertas-avanzadas"
	FuncAnalytics        = "analytics"
	FuncIntegracionERP   = "integracion-erp"
	FuncMultiUsuario     = "multi-usuario"
)

var (
	precioBase = decimal.NewFromInt(2500)

	// recargos por dispositivo
	porDispositivo = map[string]decimal.Decimal{
		FuncAlertasAvanzadas: decimal.NewFromInt(500),
		FuncAnalytics:        decimal.NewFromInt(800),
	}
	// recargos fijos
	fijos = map[string]decimal.Decimal{
		FuncIntegracionERP: decimal.NewFromInt(1500),
		FuncMultiUsuario:   decimal.NewFromInt(1000),
	}
)

// descuentoVolumen factor a aplicar según la cantidad de dispositivos; el tramo mayor se evalúa primero.
func descuentoVolumen(dispositivos int) decimal.Decimal {
	switch {
	case dispositivos > 50:
		return decimal.RequireFromString("0.80")
	case dispositivos > 20:
		return decimal.RequireFromString("0.85")
	case dispositivos > 10:
		return decimal.RequireFromString("0.90")
	}
	return decimal.NewFromInt(1)
}

// Estimar precio = base * dispositivos * descuento + recargos, redondeado a 2 decimales.
// Con 0 dispositivos o menos devuelve 0.
func Estimar(dispositivos int, funcionalidades []string) decimal.Decimal {
	if dispositivos <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(dispositivos))
	total := precioBase.Mul(n).Mul(descuentoVolumen(dispositivos))

	seen := make(map[string]bool, len(funcionalidades))
	for _, f := range funcionalidades {
		if seen[f] {
			continue
		}
		seen[f] = true
		if v, ok := porDispositivo[f]; ok {
			total = total.Add(v.Mul(n))
		}
		if v, ok := fijos[f]; ok {
			total = total.Add(v)
		}
	}
	return total.Round(2)
}

// FuncionalidadConocida indica si el identificador tiene precio.
func FuncionalidadConocida(f string) bool {
	_, a := porDispositivo[f]
	_, b := fijos[f]
	return a || b
}

// Linea concepto del desglose de una cotización.
type Linea struct {
	Concepto string
	Importe  decimal.Decimal
}

// Desglose detalla el cálculo de Estimar: base, descuento por volumen y recargos.
// La suma de los importes coincide con Estimar antes del redondeo.
func Desglose(dispositivos int, funcionalidades []string) []Linea {
	if dispositivos <= 0 {
		return nil
	}
	n := decimal.NewFromInt(int64(dispositivos))
	base := precioBase.Mul(n)
	out := []Linea{{Concepto: "Licencia base por dispositivo", Importe: base}}
	if f := descuentoVolumen(dispositivos); !f.Equal(decimal.NewFromInt(1)) {
		out = append(out, Linea{Concepto: "Descuento por volumen", Importe: base.Mul(f).Sub(base)})
	}

	seen := make(map[string]bool, len(funcionalidades))
	for _, f := range funcionalidades {
		if seen[f] {
			continue
		}
		seen[f] = true
		if v, ok := porDispositivo[f]; ok {
			out = append(out, Linea{Concepto: f, Importe: v.Mul(n)})
		}
		if v, ok := fijos[f]; ok {
			out = append(out, Linea{Concepto: f, Importe: v})
		}
	}
	return out
}

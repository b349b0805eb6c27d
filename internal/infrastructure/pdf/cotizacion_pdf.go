// Package pdf genera el documento PDF de una cotización con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Pecuadex              │  COTIZACIÓN N° + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Empresa + contacto                       │
//	│  OPERACIÓN: Ganado / Animales / Hectáreas                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Importe                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ESTIMADO                                             │
//	│  FOOTER: vigencia y comentarios                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/quotation"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 110, Blue: 58}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// etiquetas legibles de las funcionalidades cotizables
var nombresFuncionalidad = map[string]string{
	quotation.FuncAlertasAvanzadas: "Alertas avanzadas (por dispositivo)",
	quotation.FuncAnalytics:        "Analítica (por dispositivo)",
	quotation.FuncIntegracionERP:   "Integración con ERP",
	quotation.FuncMultiUsuario:     "Acceso multiusuario",
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// CotizacionPDF implementa ports.CotizacionRenderer.
type CotizacionPDF struct{}

// NewCotizacionPDF construye el renderer.
func NewCotizacionPDF() *CotizacionPDF { return &CotizacionPDF{} }

// Render genera el PDF y devuelve sus bytes.
func (g *CotizacionPDF) Render(c *entity.Cotizacion) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("pdf: cotización nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Cotización %d", c.ID), true).
		WithAuthor("Pecuadex", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(c))
	m.AddRows(operacionRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(quotation.Desglose(c.CantidadDispositivos, c.FuncionalidadesRequeridas))...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(c.PrecioEstimado))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(c)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c *entity.Cotizacion) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Pecuadex", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Monitoreo inteligente de ganado", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", c.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+c.Fecha.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clienteRow(c *entity.Cotizacion) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.NombreCliente, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Empresa: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(c.Empresa, "-"),
				c.EmailCliente,
				nonEmpty(c.Telefono, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func operacionRow(c *entity.Cotizacion) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OPERACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dispositivos: %d   |   Ganado: %s   |   Animales: %s   |   Hectáreas: %s",
				c.CantidadDispositivos,
				nonEmpty(c.TipoGanado, "-"),
				optionalInt(c.CantidadAnimales),
				optionalInt(c.Hectareas),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 8, align.Left),
		h("Importe", 4, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(lineas []quotation.Linea) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(8).Add(text.New(
				nonEmpty(nombresFuncionalidad[l.Concepto], l.Concepto),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				formatMoney(l.Importe),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL ESTIMADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total)+" MXN", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRows(c *entity.Cotizacion) []core.Row {
	var rows []core.Row
	if c.Comentarios != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("COMENTARIOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Comentarios, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Precio estimado sujeto a confirmación por el equipo de ventas. "+
				"Vigencia de 30 días a partir de la fecha de emisión.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func optionalInt(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

// formatMoney importe con separador de miles y dos decimales.
// Ej: 36600 → "$36,600.00", -3000 → "-$3,000.00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	entero, frac, _ := strings.Cut(d.StringFixed(2), ".")
	n := len(entero)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(entero) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}

package listquery

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fila struct {
	nombre string
	precio decimal.Decimal
	fecha  time.Time
	prov   *string
}

func strptr(s string) *string { return &s }

func fixture() []fila {
	d := func(s string) time.Time {
		t, _ := time.ParseInLocation("2006-01-02", s, time.Local)
		return t
	}
	return []fila{
		{nombre: "Collar GPS Bovino", precio: decimal.NewFromInt(2500), fecha: d("2025-01-10"), prov: strptr("Zeta")},
		{nombre: "Antena Camión", precio: decimal.NewFromInt(900), fecha: d("2025-02-01")},
		{nombre: "batería litio", precio: decimal.NewFromFloat(350.5), fecha: d("2025-02-15"), prov: strptr("alfa")},
		{nombre: "Gateway LoRa", precio: decimal.NewFromInt(4100), fecha: d("2025-03-01"), prov: strptr("Beta")},
	}
}

func spec() Spec[fila] {
	return Spec[fila]{
		Noun:   "productos",
		Search: func(f fila) []string { return []string{f.nombre, f.precio.String()} },
		Sort: map[string]KeyFunc[fila]{
			"nombre":         func(f fila) any { return f.nombre },
			"precioSugerido": func(f fila) any { return f.precio },
			"fecha":          func(f fila) any { return f.fecha },
			"proveedor": func(f fila) any {
				if f.prov == nil {
					return nil
				}
				return *f.prov
			},
		},
		Date: func(f fila) time.Time { return f.fecha },
	}
}

func nombres(p Page[fila]) []string {
	out := make([]string, 0, len(p.Items))
	for _, f := range p.Items {
		out = append(out, f.nombre)
	}
	return out
}

func TestApply_SearchIgnoresCaseAndAccents(t *testing.T) {
	p := Apply(fixture(), Query{Search: "CAMION"}, spec())
	assert.Equal(t, []string{"Antena Camión"}, nombres(p))

	p = Apply(fixture(), Query{Search: "bateria"}, spec())
	assert.Equal(t, []string{"batería litio"}, nombres(p))
}

func TestApply_SearchMatchesNumericField(t *testing.T) {
	p := Apply(fixture(), Query{Search: "350.5"}, spec())
	assert.Equal(t, []string{"batería litio"}, nombres(p))
}

func TestApply_SortStringsCaseInsensitive(t *testing.T) {
	p := Apply(fixture(), Query{SortField: "nombre", SortDirection: Asc}, spec())
	assert.Equal(t, []string{"Antena Camión", "batería litio", "Collar GPS Bovino", "Gateway LoRa"}, nombres(p))

	p = Apply(fixture(), Query{SortField: "nombre", SortDirection: Desc}, spec())
	assert.Equal(t, []string{"Gateway LoRa", "Collar GPS Bovino", "batería litio", "Antena Camión"}, nombres(p))
}

func TestApply_SortDecimal(t *testing.T) {
	p := Apply(fixture(), Query{SortField: "precioSugerido"}, spec())
	assert.Equal(t, []string{"batería litio", "Antena Camión", "Collar GPS Bovino", "Gateway LoRa"}, nombres(p))
}

func TestApply_MissingValuesSortLastAscFirstDesc(t *testing.T) {
	p := Apply(fixture(), Query{SortField: "proveedor", SortDirection: Asc}, spec())
	assert.Equal(t, "Antena Camión", p.Items[len(p.Items)-1].nombre)
	assert.Equal(t, "batería litio", p.Items[0].nombre)

	p = Apply(fixture(), Query{SortField: "proveedor", SortDirection: Desc}, spec())
	assert.Equal(t, "Antena Camión", p.Items[0].nombre)
}

func TestApply_UnknownSortFieldKeepsOrder(t *testing.T) {
	p := Apply(fixture(), Query{SortField: "noexiste"}, spec())
	assert.Equal(t, []string{"Collar GPS Bovino", "Antena Camión", "batería litio", "Gateway LoRa"}, nombres(p))
}

func TestApply_DateRangeInclusive(t *testing.T) {
	from, _ := time.ParseInLocation("2006-01-02", "2025-02-01", time.Local)
	to, _ := time.ParseInLocation("2006-01-02", "2025-02-15", time.Local)
	p := Apply(fixture(), Query{From: &from, To: &to}, spec())
	assert.Equal(t, []string{"Antena Camión", "batería litio"}, nombres(p))
}

func TestApply_Pagination(t *testing.T) {
	p := Apply(fixture(), Query{Page: 2, PageSize: 3}, spec())
	assert.Equal(t, 4, p.TotalItems)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, []string{"Gateway LoRa"}, nombres(p))
	assert.Equal(t, "Mostrando 4 a 4 de 4 productos", p.Info)
}

func TestApply_PageClampedToRange(t *testing.T) {
	p := Apply(fixture(), Query{Page: 99, PageSize: 2}, spec())
	assert.Equal(t, 2, p.CurrentPage)
	assert.Len(t, p.Items, 2)

	p = Apply(fixture(), Query{Page: -3, PageSize: 2}, spec())
	assert.Equal(t, 1, p.CurrentPage)
}

func TestApply_NoPaginationReturnsEverything(t *testing.T) {
	p := Apply(fixture(), Query{}, spec())
	assert.Len(t, p.Items, 4)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, "Mostrando 1 a 4 de 4 productos", p.Info)
}

func TestApply_EmptyResult(t *testing.T) {
	p := Apply(fixture(), Query{Search: "zzz", PageSize: 10}, spec())
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, "Mostrando 0 a 0 de 0 productos", p.Info)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	_ = Apply(in, Query{SortField: "nombre", SortDirection: Desc}, spec())
	assert.Equal(t, "Collar GPS Bovino", in[0].nombre)
}

func TestParseQuery(t *testing.T) {
	params := map[string]string{
		"search":        " collar ",
		"sortField":     "nombre",
		"sortDirection": "DESC",
		"page":          "2",
		"pageSize":      "500",
		"fechaDesde":    "2025-01-01",
		"fechaHasta":    "2025-01-31T00:00:00.000Z",
	}
	q, err := ParseQuery(func(k string) string { return params[k] })
	require.NoError(t, err)
	assert.Equal(t, "collar", q.Search)
	assert.Equal(t, Desc, q.SortDirection)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.Equal(t, 31, q.To.Day())
	assert.True(t, q.Paginated())
}

func TestParseQuery_PageWithoutSizeDefaultsToTen(t *testing.T) {
	q, err := ParseQuery(func(k string) string {
		if k == "page" {
			return "3"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, 10, q.PageSize)
}

func TestParseQuery_Errors(t *testing.T) {
	cases := []map[string]string{
		{"sortDirection": "sideways"},
		{"page": "x"},
		{"pageSize": "-1"},
		{"fechaDesde": "31/01/2025"},
		{"fechaDesde": "2024-01-01garbage"},
		{"fechaHasta": "2024-01-01T25:00:00Z"},
		{"fechaDesde": "2025-02-01", "fechaHasta": "2025-01-01"},
	}
	for _, params := range cases {
		_, err := ParseQuery(func(k string) string { return params[k] })
		assert.Error(t, err, "%v", params)
	}
}

func TestParseQuery_AceptaTimestampISO(t *testing.T) {
	params := map[string]string{"fechaDesde": "2025-03-01T08:30:00Z", "fechaHasta": "2025-03-31T23:59:59.999-06:00"}
	q, err := ParseQuery(func(k string) string { return params[k] })
	require.NoError(t, err)
	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.Equal(t, "2025-03-01", q.From.Format("2006-01-02"))
	assert.Equal(t, "2025-03-31", q.To.Format("2006-01-02"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pinon ganaderia", Fold("Piñón GANADERÍA"))
}

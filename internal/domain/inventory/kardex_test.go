package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSaldoDe_SinMovimientos(t *testing.T) {
	s := inventory.SaldoDe(nil)
	assert.True(t, s.Existencias.IsZero())
	assert.True(t, s.CostoPromedio.IsZero())
}

func TestKardex_EntradaSalidaEntrada(t *testing.T) {
	now := time.Now()

	m1, err := inventory.Entrada(inventory.Saldo{}, 1, dec("10"), dec("100"), now)
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoEntrada, m1.TipoMovimiento)
	assert.True(t, m1.ValorDebe.Equal(dec("1000")))
	assert.True(t, m1.Existencias.Equal(dec("10")))
	assert.True(t, m1.CostoPromedio.Equal(dec("100")))

	m2, err := inventory.Entrada(inventory.SaldoDe(m1), 1, dec("10"), dec("200"), now)
	require.NoError(t, err)
	assert.True(t, m2.SaldoValor.Equal(dec("3000")))
	assert.True(t, m2.CostoPromedio.Equal(dec("150")))

	m3, err := inventory.Salida(inventory.SaldoDe(m2), 1, dec("5"), now)
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoSalida, m3.TipoMovimiento)
	assert.True(t, m3.ValorHaber.Equal(dec("750")))
	assert.True(t, m3.SaldoValor.Equal(dec("2250")))
	assert.True(t, m3.Existencias.Equal(dec("15")))
	assert.True(t, m3.CostoPromedio.Equal(dec("150")), "la salida no cambia el promedio")
}

func TestKardex_ValoresConCuatroDecimales(t *testing.T) {
	now := time.Now()

	m1, err := inventory.Entrada(inventory.Saldo{}, 1, dec("3"), dec("100").Div(dec("3")), now)
	require.NoError(t, err)
	assert.True(t, m1.CostoUnitario.Equal(dec("33.3333")), "got %s", m1.CostoUnitario)
	assert.True(t, m1.ValorDebe.Equal(dec("99.9999")), "got %s", m1.ValorDebe)

	m2, err := inventory.Entrada(inventory.SaldoDe(m1), 1, dec("4"), dec("20"), now)
	require.NoError(t, err)
	assert.True(t, m2.SaldoValor.Equal(dec("179.9999")))
	assert.True(t, m2.CostoPromedio.Equal(dec("25.7143")), "got %s", m2.CostoPromedio)

	m3, err := inventory.Salida(inventory.SaldoDe(m2), 1, dec("1"), now)
	require.NoError(t, err)
	assert.True(t, m3.ValorHaber.Equal(dec("25.7143")))
	assert.True(t, m3.SaldoValor.Equal(dec("154.2856")))
	for _, v := range []decimal.Decimal{m3.CostoPromedio, m3.ValorHaber, m3.SaldoValor, m3.Existencias} {
		assert.True(t, v.Equal(v.Round(inventory.Escala)), "%s excede la escala", v)
	}
}

func TestKardex_SalidaTotalDejaSaldoCero(t *testing.T) {
	prev := inventory.Saldo{Existencias: dec("3"), SaldoValor: dec("100"), CostoPromedio: dec("33.3333333333333333")}
	m, err := inventory.Salida(prev, 7, dec("3"), time.Now())
	require.NoError(t, err)
	assert.True(t, m.Existencias.IsZero())
	assert.True(t, m.SaldoValor.IsZero())
	assert.True(t, m.CostoPromedio.IsZero())
	assert.True(t, m.ValorHaber.GreaterThan(decimal.Zero))
}

func TestKardex_SalidaSinExistencias(t *testing.T) {
	_, err := inventory.Salida(inventory.Saldo{Existencias: dec("2")}, 1, dec("3"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestKardex_CantidadInvalida(t *testing.T) {
	_, err := inventory.Entrada(inventory.Saldo{}, 1, decimal.Zero, dec("1"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.Entrada(inventory.Saldo{}, 1, dec("1"), dec("-1"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.Salida(inventory.Saldo{Existencias: dec("5")}, 1, dec("-1"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

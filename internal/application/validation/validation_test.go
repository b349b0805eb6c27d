package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/domain"
)

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, got %v", err)
	return ve.Fields
}

func TestChecker_SinErrores(t *testing.T) {
	err := New().
		MinLen("nombre", "Collar GPS", 3).
		MaxLen("telefono", "555 123 4567", 20).
		Email("email", "ventas@rancho.mx").
		Phone("telefono", "+52 (33) 1234-5678").
		Range("calificacion", 5, 1, 5).
		MinDecimal("precio", decimal.RequireFromString("0.01"), decimal.RequireFromString("0.01")).
		ID("productoId", 3).
		Err()
	assert.NoError(t, err)
}

func TestChecker_AcumulaPorCampo(t *testing.T) {
	err := New().
		MinLen("nombre", "ab", 3).
		MinLen("descripcion", "   ", 10).
		Email("email", "no-es-correo").
		Phone("telefono", "55-ABC").
		Range("calificacion", 6, 1, 5).
		Positive("cantidad", decimal.Zero).
		ID("piezaId", 0).
		Err()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f := fields(t, err)
	assert.Equal(t, "debe tener al menos 3 caracteres", f["nombre"])
	assert.Equal(t, "es obligatorio", f["descripcion"])
	assert.Equal(t, "no es un email válido", f["email"])
	assert.Equal(t, "formato de teléfono inválido", f["telefono"])
	assert.Contains(t, f["calificacion"], "entre 1 y 5")
	assert.Contains(t, f, "cantidad")
	assert.Contains(t, f, "piezaId")
}

func TestChecker_PrimerMensajeGana(t *testing.T) {
	err := New().Required("email", "").Email("email", "x").Err()
	assert.Equal(t, "es obligatorio", fields(t, err)["email"])
}

func TestChecker_MinLenCuentaRunas(t *testing.T) {
	// "Piñón" tiene 5 caracteres aunque ocupe más bytes
	assert.NoError(t, New().MinLen("nombre", "Piñón", 5).Err())
	assert.Error(t, New().MaxLen("nombre", "Piñón", 4).Err())
}

func TestChecker_OptionalEmail(t *testing.T) {
	assert.NoError(t, New().OptionalEmail("email", "").Err())
	assert.Error(t, New().OptionalEmail("email", "sin-arroba").Err())
}

// Package validation reglas declarativas de formularios; los errores se acumulan por campo en domain.ValidationError.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/domain"
)

// PhonePattern teléfonos de contacto: dígitos, espacios, +, -, paréntesis.
const PhonePattern = `^[\d\s+\-()]+$`

// Checker acumula errores de validación. El primer error de cada campo es el que se reporta.
type Checker struct {
	err *domain.ValidationError
}

// New crea un checker vacío.
func New() *Checker {
	return &Checker{err: domain.NewValidationError()}
}

// Err devuelve nil si todas las reglas pasaron.
func (c *Checker) Err() error {
	return c.err.OrNil()
}

// Fail registra un error arbitrario para el campo.
func (c *Checker) Fail(field, msg string) *Checker {
	c.err.Add(field, msg)
	return c
}

// Required el texto no puede quedar vacío (se ignoran espacios).
func (c *Checker) Required(field, v string) *Checker {
	if strings.TrimSpace(v) == "" {
		c.err.Add(field, "es obligatorio")
	}
	return c
}

// MinLen longitud mínima en caracteres; vacío cuenta como faltante.
func (c *Checker) MinLen(field, v string, n int) *Checker {
	v = strings.TrimSpace(v)
	if v == "" {
		c.err.Add(field, "es obligatorio")
	} else if utf8.RuneCountInString(v) < n {
		c.err.Add(field, fmt.Sprintf("debe tener al menos %d caracteres", n))
	}
	return c
}

// MaxLen longitud máxima en caracteres.
func (c *Checker) MaxLen(field, v string, n int) *Checker {
	if utf8.RuneCountInString(v) > n {
		c.err.Add(field, fmt.Sprintf("no puede exceder %d caracteres", n))
	}
	return c
}

// Email formato de correo; vacío se reporta como obligatorio.
func (c *Checker) Email(field, v string) *Checker {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		c.err.Add(field, "es obligatorio")
	case !govalidator.IsEmail(v):
		c.err.Add(field, "no es un email válido")
	}
	return c
}

// OptionalEmail igual que Email pero acepta vacío.
func (c *Checker) OptionalEmail(field, v string) *Checker {
	if strings.TrimSpace(v) == "" {
		return c
	}
	return c.Email(field, v)
}

// Phone teléfono con PhonePattern; vacío se reporta como obligatorio.
func (c *Checker) Phone(field, v string) *Checker {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		c.err.Add(field, "es obligatorio")
	case !govalidator.Matches(v, PhonePattern):
		c.err.Add(field, "formato de teléfono inválido")
	}
	return c
}

// MinInt entero mínimo.
func (c *Checker) MinInt(field string, v, min int) *Checker {
	if v < min {
		c.err.Add(field, fmt.Sprintf("debe ser mayor o igual a %d", min))
	}
	return c
}

// Range entero dentro de [min, max].
func (c *Checker) Range(field string, v, min, max int) *Checker {
	if v < min || v > max {
		c.err.Add(field, fmt.Sprintf("debe estar entre %d y %d", min, max))
	}
	return c
}

// MinDecimal decimal mínimo (inclusive).
func (c *Checker) MinDecimal(field string, v, min decimal.Decimal) *Checker {
	if v.LessThan(min) {
		c.err.Add(field, fmt.Sprintf("debe ser mayor o igual a %s", min.String()))
	}
	return c
}

// Positive decimal estrictamente mayor a cero.
func (c *Checker) Positive(field string, v decimal.Decimal) *Checker {
	if !v.IsPositive() {
		c.err.Add(field, "debe ser mayor a 0")
	}
	return c
}

// ID identificador numérico obligatorio.
func (c *Checker) ID(field string, v int64) *Checker {
	if v <= 0 {
		c.err.Add(field, "es obligatorio")
	}
	return c
}

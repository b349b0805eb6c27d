// Package listquery implementa la tubería de listados que comparten todas las pantallas
// del panel: filtro por fechas, búsqueda de texto, ordenamiento y paginación en memoria.
package listquery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Direction sentido del ordenamiento.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// MaxPageSize límite superior de elementos por página.
const MaxPageSize = 100

const dateLayout = "2006-01-02"

// Query parámetros de un listado. PageSize <= 0 significa "todo en una página".
type Query struct {
	Search        string
	SortField     string
	SortDirection Direction
	Page          int
	PageSize      int
	From          *time.Time
	To            *time.Time // día completo, inclusivo
}

// Paginated indica si el cliente pidió paginación explícita.
func (q Query) Paginated() bool { return q.PageSize > 0 }

// ParseQuery construye la consulta a partir de los parámetros de la URL:
// search, sortField, sortDirection, page, pageSize, fechaDesde, fechaHasta.
func ParseQuery(get func(key string) string) (Query, error) {
	q := Query{
		Search:        strings.TrimSpace(get("search")),
		SortField:     strings.TrimSpace(get("sortField")),
		SortDirection: Asc,
		Page:          1,
	}

	switch strings.ToLower(strings.TrimSpace(get("sortDirection"))) {
	case "", "asc":
	case "desc":
		q.SortDirection = Desc
	default:
		return Query{}, fmt.Errorf("sortDirection debe ser asc o desc")
	}

	if v := get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Query{}, fmt.Errorf("page inválido: %q", v)
		}
		q.Page = n
	}
	if v := get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("pageSize inválido: %q", v)
		}
		q.PageSize = n
	} else if get("page") != "" {
		q.PageSize = 10
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	var err error
	if q.From, err = parseDate(get("fechaDesde")); err != nil {
		return Query{}, fmt.Errorf("fechaDesde: %w", err)
	}
	if q.To, err = parseDate(get("fechaHasta")); err != nil {
		return Query{}, fmt.Errorf("fechaHasta: %w", err)
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return Query{}, fmt.Errorf("fechaHasta es anterior a fechaDesde")
	}
	return q, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	// un timestamp ISO completo vale por su fecha de calendario
	if len(s) > len(dateLayout) && !isTimestamp(s) {
		return nil, errDateFormat
	}
	t, err := time.ParseInLocation(dateLayout, s[:min(len(s), len(dateLayout))], time.Local)
	if err != nil {
		return nil, errDateFormat
	}
	return &t, nil
}

var errDateFormat = errors.New("formato esperado AAAA-MM-DD")

func isTimestamp(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02T15:04:05", s)
	return err == nil
}

package listquery

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// KeyFunc extrae el valor de ordenamiento de un elemento. nil = valor ausente.
// Tipos soportados: string, decimal.Decimal, time.Time, int, int64, float64, bool.
type KeyFunc[T any] func(T) any

// Spec describe cómo se busca, ordena y filtra por fecha un tipo concreto.
type Spec[T any] struct {
	Noun   string             // "productos", "compras"... para el texto informativo
	Search func(T) []string   // campos donde se busca el término
	Sort   map[string]KeyFunc[T]
	Date   func(T) time.Time // nil si el listado no admite rango de fechas
}

// Page resultado paginado.
type Page[T any] struct {
	Items        []T
	TotalItems   int
	TotalPages   int
	CurrentPage  int
	ItemsPerPage int
	Info         string
}

// Apply filtra por fechas, busca, ordena y pagina. No modifica el slice de entrada.
func Apply[T any](items []T, q Query, spec Spec[T]) Page[T] {
	filtered := make([]T, 0, len(items))
	term := Fold(strings.TrimSpace(q.Search))

	for _, it := range items {
		if spec.Date != nil && !inRange(spec.Date(it), q.From, q.To) {
			continue
		}
		if term != "" && !matches(it, term, spec.Search) {
			continue
		}
		filtered = append(filtered, it)
	}

	if key, ok := spec.Sort[q.SortField]; ok && key != nil {
		desc := q.SortDirection == Desc
		sort.SliceStable(filtered, func(i, j int) bool {
			c := compare(key(filtered[i]), key(filtered[j]))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	return paginate(filtered, q, spec.Noun)
}

func inRange(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && !d.Before(to.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func matches[T any](it T, term string, fields func(T) []string) bool {
	if fields == nil {
		return false
	}
	for _, f := range fields(it) {
		if f != "" && strings.Contains(Fold(f), term) {
			return true
		}
	}
	return false
}

func paginate[T any](filtered []T, q Query, noun string) Page[T] {
	total := len(filtered)
	size := q.PageSize
	if size <= 0 {
		size = total
	}
	if size > MaxPageSize && q.PageSize > 0 {
		size = MaxPageSize
	}

	totalPages := 0
	if size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(size)))
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}

	out := make([]T, end-start)
	copy(out, filtered[start:end])

	return Page[T]{
		Items:        out,
		TotalItems:   total,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: size,
		Info:         info(start, end, total, noun),
	}
}

func info(start, end, total int, noun string) string {
	from := start + 1
	if total == 0 {
		from = 0
	}
	if noun == "" {
		noun = "registros"
	}
	return fmt.Sprintf("Mostrando %d a %d de %d %s", from, end, total, noun)
}

// compare ordena valores heterogéneos. Un valor ausente (nil) es mayor que cualquier valor presente.
func compare(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(Fold(av), Fold(bv))
		}
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmpOrdered(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmpOrdered(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmpOrdered(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func cmpOrdered[N int | int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Package tokenstore adaptadores de ports.TokenStore: Redis y memoria.
package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/application/ports"
)

type entry struct {
	value   string
	expires time.Time
}

// Memory almacén de tokens en proceso; se usa cuando no hay REDIS_URL configurado.
type Memory struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

// NewMemory crea el almacén vacío.
func NewMemory() *Memory {
	return &Memory{data: map[string]entry{}, now: time.Now}
}

func (m *Memory) Put(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	// limpieza oportunista de vencidos
	for k, e := range m.data {
		if !now.Before(e.expires) {
			delete(m.data, k)
		}
	}
	m.data[key] = entry{value: value, expires: now.Add(ttl)}
	return nil
}

func (m *Memory) Take(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok {
		return "", ports.ErrTokenNotFound
	}
	delete(m.data, key)
	if !m.now().Before(e.expires) {
		return "", ports.ErrTokenNotFound
	}
	return e.value, nil
}

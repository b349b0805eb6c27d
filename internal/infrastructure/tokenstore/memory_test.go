package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/application/ports"
)

func TestMemory_TakeEsDeUnSoloUso(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, "refresh:abc", "user-1", time.Hour))

	v, err := m.Take(ctx, "refresh:abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", v)

	_, err = m.Take(ctx, "refresh:abc")
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)
}

func TestMemory_Expira(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }
	require.NoError(t, m.Put(ctx, "reset:x", "user-2", 15*time.Minute))

	now = now.Add(16 * time.Minute)
	_, err := m.Take(ctx, "reset:x")
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)
}

func TestMemory_ClaveInexistente(t *testing.T) {
	_, err := NewMemory().Take(context.Background(), "nada")
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)
}

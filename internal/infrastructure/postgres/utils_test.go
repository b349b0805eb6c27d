package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/pecuadex/pecuadex-api/internal/domain"
)

func TestMapWriteErr(t *testing.T) {
	assert.NoError(t, mapWriteErr("x", nil))
	assert.ErrorIs(t, mapWriteErr("x", &pgconn.PgError{Code: "23505"}), domain.ErrDuplicate)
	assert.ErrorIs(t, mapWriteErr("x", &pgconn.PgError{Code: "23503"}), domain.ErrConflict)

	boom := errors.New("boom")
	err := mapWriteErr("insert pieza", boom)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "insert pieza")
}

func TestAffectedOne(t *testing.T) {
	assert.ErrorIs(t, affectedOne("x", pgconn.NewCommandTag("DELETE 0"), nil), domain.ErrNotFound)
	assert.NoError(t, affectedOne("x", pgconn.NewCommandTag("DELETE 1"), nil))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/x?sslmode=disable", migrateURL("postgres://u:p@db:5432/x?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/x", migrateURL("postgresql://u:p@db/x"))
}

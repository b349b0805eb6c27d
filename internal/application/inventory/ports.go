package inventory

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Compras, ventas y movimientos manuales escriben el kardex a través de él.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoPiezaRepository,
		compraRepo repository.CompraRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}

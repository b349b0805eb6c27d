package inventory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/inventory"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

// ReferenciaManual referencia de los movimientos registrados a mano sin texto propio.
const ReferenciaManual = "manual"

const maxReferencia = 120

// MovimientoUseCase registra movimientos del kardex de forma transaccional (bloqueo por pieza con
// SELECT FOR UPDATE sobre el último movimiento) y expone la vista de costeo.
type MovimientoUseCase struct {
	txRunner  TxRunner
	piezaRepo repository.PiezaRepository
	movRepo   repository.MovimientoPiezaRepository
	now       func() time.Time
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(txRunner TxRunner, piezaRepo repository.PiezaRepository, movRepo repository.MovimientoPiezaRepository) *MovimientoUseCase {
	return &MovimientoUseCase{txRunner: txRunner, piezaRepo: piezaRepo, movRepo: movRepo, now: time.Now}
}

// Register registra un movimiento manual (Entrada con costo unitario, Salida al costo promedio).
func (uc *MovimientoUseCase) Register(ctx context.Context, in dto.MovimientoRequest) (*dto.MovimientoResponse, error) {
	v := validation.New().ID("piezaId", in.PiezaID).Positive("cantidad", in.Cantidad).
		MaxLen("referencia", in.Referencia, maxReferencia)
	switch in.TipoMovimiento {
	case entity.MovimientoEntrada:
		v.MinDecimal("costoUnitario", in.CostoUnitario, decimal.Zero)
	case entity.MovimientoSalida:
	default:
		v.Fail("tipoMovimiento", "debe ser Entrada o Salida")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	pieza, err := uc.piezaRepo.GetByID(ctx, in.PiezaID)
	if err != nil {
		return nil, err
	}
	if pieza == nil {
		return nil, domain.ErrNotFound
	}
	fecha := uc.now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	referencia := strings.TrimSpace(in.Referencia)
	if referencia == "" {
		referencia = ReferenciaManual
	}

	var mov *entity.MovimientoPieza
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovimientoPiezaRepository, _ repository.CompraRepository, _ repository.VentaRepository) error {
		var err error
		if in.TipoMovimiento == entity.MovimientoEntrada {
			mov, err = RegisterEntradaInTx(ctx, movRepo, in.PiezaID, in.Cantidad, in.CostoUnitario, fecha, referencia)
		} else {
			mov, err = RegisterSalidaInTx(ctx, movRepo, in.PiezaID, in.Cantidad, fecha, referencia)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	pieza.Existencias = mov.Existencias
	pieza.CostoPromedio = mov.CostoPromedio
	out := dto.FromMovimiento(mov, pieza)
	return &out, nil
}

// LockPiezas bloquea el kardex de cada pieza una sola vez y en orden ascendente de id, para que
// dos transacciones sobre las mismas piezas no se bloqueen en orden cruzado.
func LockPiezas(ctx context.Context, movRepo repository.MovimientoPiezaRepository, piezaIDs []int64) error {
	ids := append([]int64(nil), piezaIDs...)
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		if _, err := movRepo.LastForUpdate(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEntradaInTx bloquea el kardex de la pieza, calcula el nuevo saldo y guarda la Entrada.
// Usa los repositorios del caller (misma transacción).
func RegisterEntradaInTx(
	ctx context.Context,
	movRepo repository.MovimientoPiezaRepository,
	piezaID int64,
	cantidad, costoUnitario decimal.Decimal,
	fecha time.Time,
	referencia string,
) (*entity.MovimientoPieza, error) {
	last, err := movRepo.LastForUpdate(ctx, piezaID)
	if err != nil {
		return nil, err
	}
	mov, err := inventory.Entrada(inventory.SaldoDe(last), piezaID, cantidad, costoUnitario, fecha)
	if err != nil {
		return nil, err
	}
	mov.Referencia = referencia
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterSalidaInTx igual que RegisterEntradaInTx para salidas. Devuelve ErrInsufficientStock
// si la pieza no tiene existencias suficientes; el caller debe hacer rollback.
func RegisterSalidaInTx(
	ctx context.Context,
	movRepo repository.MovimientoPiezaRepository,
	piezaID int64,
	cantidad decimal.Decimal,
	fecha time.Time,
	referencia string,
) (*entity.MovimientoPieza, error) {
	last, err := movRepo.LastForUpdate(ctx, piezaID)
	if err != nil {
		return nil, err
	}
	mov, err := inventory.Salida(inventory.SaldoDe(last), piezaID, cantidad, fecha)
	if err != nil {
		return nil, err
	}
	mov.Referencia = referencia
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// MovimientoSpec búsqueda por pieza y tipo; ordenamiento por las columnas de la vista de costeo.
var MovimientoSpec = listquery.Spec[dto.MovimientoResponse]{
	Noun: "movimientos",
	Search: func(m dto.MovimientoResponse) []string {
		out := []string{m.TipoMovimiento}
		if m.Pieza != nil {
			out = append(out, m.Pieza.Nombre)
		}
		return out
	},
	Sort: map[string]listquery.KeyFunc[dto.MovimientoResponse]{
		"fecha":          func(m dto.MovimientoResponse) any { return m.Fecha },
		"tipoMovimiento": func(m dto.MovimientoResponse) any { return m.TipoMovimiento },
		"cantidad":       func(m dto.MovimientoResponse) any { return m.Cantidad },
		"costoUnitario":  func(m dto.MovimientoResponse) any { return m.CostoUnitario },
		"costoPromedio":  func(m dto.MovimientoResponse) any { return m.CostoPromedio },
		"saldoValor":     func(m dto.MovimientoResponse) any { return m.SaldoValor },
		"existencias":    func(m dto.MovimientoResponse) any { return m.Existencias },
		"pieza": func(m dto.MovimientoResponse) any {
			if m.Pieza == nil {
				return nil
			}
			return m.Pieza.Nombre
		},
	},
	Date: func(m dto.MovimientoResponse) time.Time { return m.Fecha },
}

// List vista de costeo: movimientos con la pieza resuelta.
func (uc *MovimientoUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.MovimientoResponse], error) {
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return listquery.Page[dto.MovimientoResponse]{}, err
	}
	piezas, err := uc.piezaRepo.List(ctx)
	if err != nil {
		return listquery.Page[dto.MovimientoResponse]{}, err
	}
	byID := make(map[int64]*entity.Pieza, len(piezas))
	for _, p := range piezas {
		byID[p.ID] = p
	}
	items := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, dto.FromMovimiento(m, byID[m.PiezaID]))
	}
	return listquery.Apply(items, q, MovimientoSpec), nil
}

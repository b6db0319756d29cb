package memory

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn con exclusión mutua sobre el almacén. Si fn devuelve error se
// restauran artículos y movimientos al estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el TxRunner en memoria.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (t *TxRunner) Run(ctx context.Context, fn func(
	articuloRepo repository.ArticuloRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(NewArticuloRepository(t.s), NewMovimientoRepository(t.s)); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

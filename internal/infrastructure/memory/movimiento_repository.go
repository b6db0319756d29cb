package memory

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// MovimientoRepository kardex en memoria; solo agrega.
type MovimientoRepository struct {
	s *Store
}

// NewMovimientoRepository crea el repositorio sobre el almacén dado.
func NewMovimientoRepository(s *Store) *MovimientoRepository {
	return &MovimientoRepository{s: s}
}

var _ repository.MovimientoRepository = (*MovimientoRepository)(nil)

func (r *MovimientoRepository) Create(_ context.Context, m *entity.Movimiento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.movimientos {
		if e.ID == m.ID {
			return domain.ErrDuplicate
		}
	}
	r.s.movimientos = append(r.s.movimientos, cloneMovimiento(m))
	return nil
}

// ListByArticulo movimientos del artículo en orden de registro.
func (r *MovimientoRepository) ListByArticulo(_ context.Context, articuloID string, limit, offset int) ([]*entity.Movimiento, error) {
	return paginar(r.filtrar(func(m *entity.Movimiento) bool { return m.IDArticulo == articuloID }), limit, offset), nil
}

// ListByInventario movimientos cuyo destino u origen es el inventario.
func (r *MovimientoRepository) ListByInventario(_ context.Context, inventarioID string, limit, offset int) ([]*entity.Movimiento, error) {
	return paginar(r.filtrar(func(m *entity.Movimiento) bool {
		return m.IDInventarioDestino == inventarioID || (m.IDInventarioOrigen != nil && *m.IDInventarioOrigen == inventarioID)
	}), limit, offset), nil
}

func (r *MovimientoRepository) filtrar(keep func(*entity.Movimiento) bool) []*entity.Movimiento {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Movimiento{}
	for _, m := range r.s.movimientos {
		if keep(m) {
			out = append(out, cloneMovimiento(m))
		}
	}
	return out
}

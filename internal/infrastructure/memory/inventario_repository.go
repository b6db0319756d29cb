package memory

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// InventarioRepository inventarios en memoria, en orden de creación.
type InventarioRepository struct {
	s *Store
}

func NewInventarioRepository(s *Store) *InventarioRepository { return &InventarioRepository{s: s} }

var _ repository.InventarioRepository = (*InventarioRepository)(nil)

func (r *InventarioRepository) Create(_ context.Context, inv *entity.Inventario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inventarios[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *inv
	r.s.inventarios[inv.ID] = &c
	r.s.invOrden = append(r.s.invOrden, inv.ID)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *InventarioRepository) GetByID(_ context.Context, id string) (*entity.Inventario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.inventarios[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *InventarioRepository) List(_ context.Context, limit, offset int) ([]*entity.Inventario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Inventario, 0, len(r.s.invOrden))
	for _, id := range r.s.invOrden {
		c := *r.s.inventarios[id]
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// MarcaRepository marcas en memoria, indexadas por nombre normalizado.
type MarcaRepository struct {
	s *Store
}

func NewMarcaRepository(s *Store) *MarcaRepository { return &MarcaRepository{s: s} }

var _ repository.MarcaRepository = (*MarcaRepository)(nil)

func (r *MarcaRepository) FindByNormalizado(_ context.Context, normalizado string) (*entity.Marca, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.marcas[normalizado]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

// Create devuelve domain.ErrDuplicate si el nombre normalizado ya existe.
func (r *MarcaRepository) Create(_ context.Context, m *entity.Marca) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.marcas[m.NombreNormalizado]; ok {
		return domain.ErrDuplicate
	}
	c := *m
	r.s.marcas[m.NombreNormalizado] = &c
	return nil
}

// List ordenadas por nombre.
func (r *MarcaRepository) List(context.Context) ([]*entity.Marca, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Marca, 0, len(r.s.marcas))
	for _, m := range r.s.marcas {
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreNormalizado < out[j].NombreNormalizado })
	return out, nil
}

// UbicacionRepository ubicaciones en memoria, mismo contrato que MarcaRepository.
type UbicacionRepository struct {
	s *Store
}

func NewUbicacionRepository(s *Store) *UbicacionRepository { return &UbicacionRepository{s: s} }

var _ repository.UbicacionRepository = (*UbicacionRepository)(nil)

func (r *UbicacionRepository) FindByNormalizado(_ context.Context, normalizado string) (*entity.Ubicacion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.ubicaciones[normalizado]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UbicacionRepository) Create(_ context.Context, u *entity.Ubicacion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ubicaciones[u.NombreNormalizado]; ok {
		return domain.ErrDuplicate
	}
	c := *u
	r.s.ubicaciones[u.NombreNormalizado] = &c
	return nil
}

func (r *UbicacionRepository) List(context.Context) ([]*entity.Ubicacion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Ubicacion, 0, len(r.s.ubicaciones))
	for _, u := range r.s.ubicaciones {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreNormalizado < out[j].NombreNormalizado })
	return out, nil
}

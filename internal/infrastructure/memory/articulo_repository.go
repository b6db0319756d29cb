package memory

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// ArticuloRepository artículos en memoria, en orden de creación.
type ArticuloRepository struct {
	s *Store
}

// NewArticuloRepository crea el repositorio sobre el almacén dado.
func NewArticuloRepository(s *Store) *ArticuloRepository {
	return &ArticuloRepository{s: s}
}

var _ repository.ArticuloRepository = (*ArticuloRepository)(nil)

// Create inserta el artículo. Un EQUIPO con serial repetido en el inventario devuelve
// domain.ErrDuplicateSerial, igual que el índice único de PostgreSQL.
func (r *ArticuloRepository) Create(_ context.Context, a *entity.Articulo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.articulos[a.ID]; ok {
		return domain.ErrDuplicate
	}
	if a.Tipo == entity.TipoEquipo {
		serial := articulo.Normalizar(a.Serial)
		for _, id := range r.s.artOrden {
			e := r.s.articulos[id]
			if e.Tipo == entity.TipoEquipo && e.IDInventario == a.IDInventario && articulo.Normalizar(e.Serial) == serial {
				return domain.ErrDuplicateSerial
			}
		}
	}
	r.s.articulos[a.ID] = cloneArticulo(a)
	r.s.artOrden = append(r.s.artOrden, a.ID)
	return nil
}

// Update reemplaza el artículo completo. domain.ErrNotFound si no existe.
func (r *ArticuloRepository) Update(_ context.Context, a *entity.Articulo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.articulos[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.articulos[a.ID] = cloneArticulo(a)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ArticuloRepository) GetByID(_ context.Context, id string) (*entity.Articulo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.articulos[id]
	if !ok {
		return nil, nil
	}
	return cloneArticulo(a), nil
}

func (r *ArticuloRepository) ListByInventario(_ context.Context, inventarioID string, f repository.ArticuloFilter) ([]*entity.Articulo, error) {
	out := r.filtrar(func(a *entity.Articulo) bool {
		return a.IDInventario == inventarioID && (f.Tipo == "" || a.Tipo == f.Tipo)
	})
	return paginar(out, f.Limit, f.Offset), nil
}

func (r *ArticuloRepository) FindEquiposBySerial(_ context.Context, inventarioID, serial string) ([]*entity.Articulo, error) {
	serial = articulo.Normalizar(serial)
	return r.filtrar(func(a *entity.Articulo) bool {
		return a.IDInventario == inventarioID && a.Tipo == entity.TipoEquipo && articulo.Normalizar(a.Serial) == serial
	}), nil
}

func (r *ArticuloRepository) FindMaterialesByCodigo(_ context.Context, inventarioID, codigo string) ([]*entity.Articulo, error) {
	codigo = articulo.Normalizar(codigo)
	return r.filtrar(func(a *entity.Articulo) bool {
		return a.IDInventario == inventarioID && a.Tipo == entity.TipoMaterial && articulo.Normalizar(a.Codigo) == codigo
	}), nil
}

func (r *ArticuloRepository) FindMaterialesByDescriptor(_ context.Context, inventarioID, nombre, unidad, marca, modelo string) ([]*entity.Articulo, error) {
	nombre, unidad = articulo.Normalizar(nombre), articulo.Normalizar(unidad)
	marca, modelo = articulo.Normalizar(marca), articulo.Normalizar(modelo)
	return r.filtrar(func(a *entity.Articulo) bool {
		return a.IDInventario == inventarioID &&
			a.Tipo == entity.TipoMaterial &&
			articulo.Normalizar(a.Nombre) == nombre &&
			articulo.Normalizar(a.Unidad) == unidad &&
			articulo.Normalizar(a.Marca) == marca &&
			articulo.Normalizar(a.Modelo) == modelo
	}), nil
}

// LockClave no hace nada: TxRunner ya serializa las transacciones completas.
func (r *ArticuloRepository) LockClave(context.Context, string, string) error { return nil }

func (r *ArticuloRepository) filtrar(keep func(*entity.Articulo) bool) []*entity.Articulo {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Articulo{}
	for _, id := range r.s.artOrden {
		if a := r.s.articulos[id]; keep(a) {
			out = append(out, cloneArticulo(a))
		}
	}
	return out
}

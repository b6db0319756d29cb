// Package memory implementa los repositorios en memoria (STORE_DRIVER=memory) usados en
// ejecución local y en pruebas. Los valores se copian al entrar y al salir del almacén.
package memory

import (
	"sync"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex
	// txMu serializa las transacciones completas; hace las veces del bloqueo por clave.
	txMu sync.Mutex

	inventarios map[string]*entity.Inventario
	invOrden    []string

	articulos   map[string]*entity.Articulo
	artOrden    []string
	movimientos []*entity.Movimiento
	marcas      map[string]*entity.Marca // por nombre normalizado
	ubicaciones map[string]*entity.Ubicacion
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		inventarios: make(map[string]*entity.Inventario),
		articulos:   make(map[string]*entity.Articulo),
		marcas:      make(map[string]*entity.Marca),
		ubicaciones: make(map[string]*entity.Ubicacion),
	}
}

type snapshot struct {
	articulos   map[string]*entity.Articulo
	artOrden    []string
	movimientos []*entity.Movimiento
}

// Los artículos guardados nunca se modifican en sitio (Update reemplaza el puntero), así que
// basta con copiar los contenedores.
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	arts := make(map[string]*entity.Articulo, len(s.articulos))
	for k, v := range s.articulos {
		arts[k] = v
	}
	return snapshot{
		articulos:   arts,
		artOrden:    append([]string(nil), s.artOrden...),
		movimientos: append([]*entity.Movimiento(nil), s.movimientos...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articulos = snap.articulos
	s.artOrden = snap.artOrden
	s.movimientos = snap.movimientos
}

func cloneArticulo(a *entity.Articulo) *entity.Articulo {
	c := *a
	if a.CantidadMinima != nil {
		m := *a.CantidadMinima
		c.CantidadMinima = &m
	}
	return &c
}

func cloneMovimiento(m *entity.Movimiento) *entity.Movimiento {
	c := *m
	if m.IDInventarioOrigen != nil {
		o := *m.IDInventarioOrigen
		c.IDInventarioOrigen = &o
	}
	return &c
}

func paginar[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

package repository

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// ArticuloFilter filtros para listar artículos de un inventario.
type ArticuloFilter struct {
	Tipo   string // vacío = todos
	Limit  int
	Offset int
}

// ArticuloRepository define el puerto de persistencia para Articulo (DIP).
// Los métodos Find* devuelven candidatos ya acotados por el almacenamiento, en orden de
// creación; la comparación final de identidad la hace el resolvedor.
type ArticuloRepository interface {
	Create(ctx context.Context, a *entity.Articulo) error
	Update(ctx context.Context, a *entity.Articulo) error
	GetByID(ctx context.Context, id string) (*entity.Articulo, error)
	ListByInventario(ctx context.Context, inventarioID string, f ArticuloFilter) ([]*entity.Articulo, error)

	FindEquiposBySerial(ctx context.Context, inventarioID, serial string) ([]*entity.Articulo, error)
	FindMaterialesByCodigo(ctx context.Context, inventarioID, codigo string) ([]*entity.Articulo, error)
	FindMaterialesByDescriptor(ctx context.Context, inventarioID, nombre, unidad, marca, modelo string) ([]*entity.Articulo, error)

	// LockClave serializa, dentro de la transacción actual, las operaciones sobre la misma
	// clave de identidad en un inventario. Fuera de transacción no tiene efecto.
	LockClave(ctx context.Context, inventarioID, clave string) error
}

package repository

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// InventarioRepository define el puerto de persistencia para Inventario (DIP).
type InventarioRepository interface {
	Create(ctx context.Context, inv *entity.Inventario) error
	GetByID(ctx context.Context, id string) (*entity.Inventario, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Inventario, error)
}

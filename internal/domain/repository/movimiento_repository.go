package repository

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// MovimientoRepository define el puerto del kardex. Solo agrega; no hay Update ni Delete.
type MovimientoRepository interface {
	Create(ctx context.Context, m *entity.Movimiento) error
	ListByArticulo(ctx context.Context, articuloID string, limit, offset int) ([]*entity.Movimiento, error)
	ListByInventario(ctx context.Context, inventarioID string, limit, offset int) ([]*entity.Movimiento, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// MarcaRepository puerto para marcas. FindByNormalizado devuelve (nil, nil) si no existe.
type MarcaRepository interface {
	FindByNormalizado(ctx context.Context, normalizado string) (*entity.Marca, error)
	Create(ctx context.Context, m *entity.Marca) error
	List(ctx context.Context) ([]*entity.Marca, error)
}

// UbicacionRepository puerto para ubicaciones, mismo contrato que MarcaRepository.
type UbicacionRepository interface {
	FindByNormalizado(ctx context.Context, normalizado string) (*entity.Ubicacion, error)
	Create(ctx context.Context, u *entity.Ubicacion) error
	List(ctx context.Context) ([]*entity.Ubicacion, error)
}

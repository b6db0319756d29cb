package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura: artículo y movimiento se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		articuloRepo repository.ArticuloRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}

// FolioGenerator entrega números de folio crecientes para el kardex.
type FolioGenerator interface {
	Next() int64
}

// ErrCacheMiss lo devuelve Cache.Get cuando la clave no existe.
var ErrCacheMiss = errors.New("cache: clave no encontrada")

// Cache almacenamiento clave-valor opcional para acelerar la búsqueda de marcas y ubicaciones.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// StockSheetGenerator genera la planilla PDF de existencias de un inventario.
type StockSheetGenerator interface {
	GenerateStockSheet(ctx context.Context, inv *entity.Inventario, articulos []*entity.Articulo, resumen *dto.InventarioResumen) ([]byte, error)
}

// SpreadsheetExporter exporta los artículos de un inventario a una hoja de cálculo.
type SpreadsheetExporter interface {
	ExportArticulos(inv *entity.Inventario, articulos []*entity.Articulo) ([]byte, error)
}

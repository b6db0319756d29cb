package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// ArticuloUseCase consultas de artículos y del kardex. Las altas pasan por
// inventory.ReconcileUseCase.
type ArticuloUseCase struct {
	articulos   repository.ArticuloRepository
	movimientos repository.MovimientoRepository
}

// NewArticuloUseCase construye el caso de uso.
func NewArticuloUseCase(articulos repository.ArticuloRepository, movimientos repository.MovimientoRepository) *ArticuloUseCase {
	return &ArticuloUseCase{articulos: articulos, movimientos: movimientos}
}

// GetByID obtiene un artículo. domain.ErrNotFound si no existe.
func (uc *ArticuloUseCase) GetByID(ctx context.Context, id string) (*dto.ArticuloResponse, error) {
	a, err := uc.articulos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return ToArticuloResponse(a), nil
}

// ListByInventario lista artículos del inventario, opcionalmente filtrados por tipo.
func (uc *ArticuloUseCase) ListByInventario(ctx context.Context, inventarioID, tipo string, page dto.PageRequest) (*dto.ArticuloListResponse, error) {
	page.DefaultPage()
	tipo = strings.ToUpper(strings.TrimSpace(tipo))
	if tipo != "" && tipo != entity.TipoMaterial && tipo != entity.TipoEquipo {
		return nil, domain.NewValidationError("filtro inválido", map[string]string{"tipo": "debe ser MATERIAL o EQUIPO"})
	}
	list, err := uc.articulos.ListByInventario(ctx, inventarioID, repository.ArticuloFilter{
		Tipo: tipo, Limit: page.Limit, Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticuloResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToArticuloResponse(a))
	}
	return &dto.ArticuloListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// MovimientosDeArticulo kardex de un artículo. domain.ErrNotFound si el artículo no existe.
func (uc *ArticuloUseCase) MovimientosDeArticulo(ctx context.Context, articuloID string, page dto.PageRequest) (*dto.MovimientoListResponse, error) {
	page.DefaultPage()
	a, err := uc.articulos.GetByID(ctx, articuloID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movimientos.ListByArticulo(ctx, articuloID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovimientoList(list, page), nil
}

// MovimientosDeInventario kardex de un inventario.
func (uc *ArticuloUseCase) MovimientosDeInventario(ctx context.Context, inventarioID string, page dto.PageRequest) (*dto.MovimientoListResponse, error) {
	page.DefaultPage()
	list, err := uc.movimientos.ListByInventario(ctx, inventarioID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovimientoList(list, page), nil
}

// ToArticuloResponse convierte la entidad a su salida HTTP.
func ToArticuloResponse(a *entity.Articulo) *dto.ArticuloResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticuloResponse{
		ID:             a.ID,
		Tipo:           a.Tipo,
		Nombre:         a.Nombre,
		Marca:          a.Marca,
		Modelo:         a.Modelo,
		Serial:         a.Serial,
		Mac:            a.Mac,
		Codigo:         a.Codigo,
		Cantidad:       a.Cantidad,
		Costo:          a.Costo,
		Unidad:         a.Unidad,
		Ubicacion:      a.Ubicacion,
		Descripcion:    a.Descripcion,
		CantidadMinima: a.CantidadMinima,
		IDInventario:   a.IDInventario,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toMovimientoList(list []*entity.Movimiento, page dto.PageRequest) *dto.MovimientoListResponse {
	items := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovimientoResponse{
			ID:                  m.ID,
			Folio:               m.Folio,
			IDArticulo:          m.IDArticulo,
			IDInventarioDestino: m.IDInventarioDestino,
			IDInventarioOrigen:  m.IDInventarioOrigen,
			Cantidad:            m.Cantidad,
			Tipo:                m.Tipo,
			Fecha:               m.Fecha,
			Descripcion:         m.Descripcion,
			IDUsuario:           m.IDUsuario,
		})
	}
	return &dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

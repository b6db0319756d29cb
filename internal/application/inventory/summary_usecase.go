package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

const paginaResumen = 500

// SummaryUseCase calcula totales, valorización y materiales bajo mínimo de un inventario.
type SummaryUseCase struct {
	inventarioRepo repository.InventarioRepository
	articuloRepo   repository.ArticuloRepository
	now            func() time.Time
}

// NewSummaryUseCase construye el caso de uso de resumen.
func NewSummaryUseCase(
	inventarioRepo repository.InventarioRepository,
	articuloRepo repository.ArticuloRepository,
) *SummaryUseCase {
	return &SummaryUseCase{
		inventarioRepo: inventarioRepo,
		articuloRepo:   articuloRepo,
		now:            time.Now,
	}
}

// Summarize devuelve el resumen del inventario. domain.ErrNotFound si no existe.
func (uc *SummaryUseCase) Summarize(ctx context.Context, inventarioID string) (*dto.InventarioResumen, error) {
	inv, articulos, err := uc.load(ctx, inventarioID)
	if err != nil {
		return nil, err
	}
	return Resumir(inv, articulos, uc.now()), nil
}

// load trae el inventario y todos sus artículos, página por página.
func (uc *SummaryUseCase) load(ctx context.Context, inventarioID string) (*entity.Inventario, []*entity.Articulo, error) {
	inv, err := uc.inventarioRepo.GetByID(ctx, inventarioID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener inventario: %w", err)
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	var all []*entity.Articulo
	for offset := 0; ; offset += paginaResumen {
		page, err := uc.articuloRepo.ListByInventario(ctx, inventarioID, repository.ArticuloFilter{Limit: paginaResumen, Offset: offset})
		if err != nil {
			return nil, nil, fmt.Errorf("listar artículos: %w", err)
		}
		all = append(all, page...)
		if len(page) < paginaResumen {
			break
		}
	}
	return inv, all, nil
}

// Resumir agrega los artículos. Los materiales bajo mínimo se ordenan por mayor faltante y,
// a igual faltante, por nombre.
func Resumir(inv *entity.Inventario, articulos []*entity.Articulo, now time.Time) *dto.InventarioResumen {
	r := &dto.InventarioResumen{
		InventarioID:     inv.ID,
		Nombre:           inv.Nombre,
		TotalArticulos:   len(articulos),
		UnidadesMaterial: decimal.Zero,
		ValorTotal:       decimal.Zero,
		BajoMinimo:       []dto.BajoMinimoDTO{},
		GeneradoEn:       now,
	}
	for _, a := range articulos {
		r.ValorTotal = r.ValorTotal.Add(a.Valor())
		if a.EsEquipo() {
			r.TotalEquipos++
			continue
		}
		r.TotalMateriales++
		r.UnidadesMaterial = r.UnidadesMaterial.Add(a.Cantidad)
		if a.BajoMinimo() {
			r.BajoMinimo = append(r.BajoMinimo, dto.BajoMinimoDTO{
				ArticuloID:     a.ID,
				Nombre:         a.Nombre,
				Codigo:         a.Codigo,
				Unidad:         a.Unidad,
				Cantidad:       a.Cantidad,
				CantidadMinima: *a.CantidadMinima,
				Faltante:       a.CantidadMinima.Sub(a.Cantidad),
			})
		}
	}
	sort.SliceStable(r.BajoMinimo, func(i, j int) bool {
		a, b := r.BajoMinimo[i], r.BajoMinimo[j]
		if !a.Faltante.Equal(b.Faltante) {
			return a.Faltante.GreaterThan(b.Faltante)
		}
		return a.Nombre < b.Nombre
	})
	return r
}

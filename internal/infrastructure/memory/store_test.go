package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

func equipo(id, inv, serial string) *entity.Articulo {
	return &entity.Articulo{
		ID: id, Tipo: entity.TipoEquipo, Nombre: "ONT", Serial: serial,
		Cantidad: decimal.NewFromInt(1), IDInventario: inv, CreatedAt: time.Now(),
	}
}

func material(id, inv, nombre string, qty int64) *entity.Articulo {
	return &entity.Articulo{
		ID: id, Tipo: entity.TipoMaterial, Nombre: nombre, Unidad: "m", Marca: "Furukawa", Modelo: "Cat6",
		Cantidad: decimal.NewFromInt(qty), IDInventario: inv, CreatedAt: time.Now(),
	}
}

// ─── Artículos ───────────────────────────────────────────────────────────────

func TestArticulo_SerialRepetidoEnMismoInventario(t *testing.T) {
	ctx := context.Background()
	repo := NewArticuloRepository(NewStore())

	require.NoError(t, repo.Create(ctx, equipo("a1", "inv1", "ZTEG1234")))
	err := repo.Create(ctx, equipo("a2", "inv1", " zteg1234 "))
	assert.ErrorIs(t, err, domain.ErrDuplicateSerial)

	// otro inventario sí lo admite
	require.NoError(t, repo.Create(ctx, equipo("a3", "inv2", "ZTEG1234")))
}

func TestArticulo_CopiasAislanElAlmacen(t *testing.T) {
	ctx := context.Background()
	repo := NewArticuloRepository(NewStore())
	a := material("m1", "inv1", "Cable UTP", 10)
	require.NoError(t, repo.Create(ctx, a))

	a.Cantidad = decimal.NewFromInt(999)
	got, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, got.Cantidad.Equal(decimal.NewFromInt(10)))

	got.Nombre = "otro"
	again, _ := repo.GetByID(ctx, "m1")
	assert.Equal(t, "Cable UTP", again.Nombre)
}

func TestArticulo_BusquedasNormalizadas(t *testing.T) {
	ctx := context.Background()
	repo := NewArticuloRepository(NewStore())
	m := material("m1", "inv1", "Cable UTP", 10)
	m.Codigo = "SKU-1"
	require.NoError(t, repo.Create(ctx, m))

	byCode, err := repo.FindMaterialesByCodigo(ctx, "inv1", " sku-1 ")
	require.NoError(t, err)
	require.Len(t, byCode, 1)

	byDesc, err := repo.FindMaterialesByDescriptor(ctx, "inv1", "CABLE utp", "M", "furukawa", "CAT6")
	require.NoError(t, err)
	require.Len(t, byDesc, 1)

	none, err := repo.FindMaterialesByDescriptor(ctx, "inv2", "Cable UTP", "m", "Furukawa", "Cat6")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestArticulo_ListaConFiltroYPaginacion(t *testing.T) {
	ctx := context.Background()
	repo := NewArticuloRepository(NewStore())
	require.NoError(t, repo.Create(ctx, material("m1", "inv1", "A", 1)))
	require.NoError(t, repo.Create(ctx, equipo("e1", "inv1", "S1")))
	require.NoError(t, repo.Create(ctx, material("m2", "inv1", "B", 1)))

	all, _ := repo.ListByInventario(ctx, "inv1", repository.ArticuloFilter{})
	assert.Len(t, all, 3)

	mats, _ := repo.ListByInventario(ctx, "inv1", repository.ArticuloFilter{Tipo: entity.TipoMaterial})
	require.Len(t, mats, 2)
	assert.Equal(t, "m1", mats[0].ID)

	page, _ := repo.ListByInventario(ctx, "inv1", repository.ArticuloFilter{Limit: 1, Offset: 2})
	require.Len(t, page, 1)
	assert.Equal(t, "m2", page[0].ID)

	empty, _ := repo.ListByInventario(ctx, "inv1", repository.ArticuloFilter{Limit: 10, Offset: 10})
	assert.Empty(t, empty)
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

func TestTxRunner_RevierteAnteError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tx := NewTxRunner(s)
	boom := errors.New("boom")

	err := tx.Run(ctx, func(arts repository.ArticuloRepository, movs repository.MovimientoRepository) error {
		require.NoError(t, arts.Create(ctx, material("m1", "inv1", "A", 1)))
		require.NoError(t, movs.Create(ctx, &entity.Movimiento{ID: "mv1", IDArticulo: "m1", IDInventarioDestino: "inv1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := NewArticuloRepository(s).GetByID(ctx, "m1")
	assert.Nil(t, got)
	movs, _ := NewMovimientoRepository(s).ListByInventario(ctx, "inv1", 0, 0)
	assert.Empty(t, movs)
}

func TestTxRunner_ConfirmaSinError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	err := NewTxRunner(s).Run(ctx, func(arts repository.ArticuloRepository, movs repository.MovimientoRepository) error {
		if err := arts.Create(ctx, material("m1", "inv1", "A", 1)); err != nil {
			return err
		}
		return movs.Create(ctx, &entity.Movimiento{ID: "mv1", IDArticulo: "m1", IDInventarioDestino: "inv1"})
	})
	require.NoError(t, err)

	movs, _ := NewMovimientoRepository(s).ListByArticulo(ctx, "m1", 10, 0)
	assert.Len(t, movs, 1)
}

// ─── Catálogo ────────────────────────────────────────────────────────────────

func TestMarca_DuplicadaPorNombreNormalizado(t *testing.T) {
	ctx := context.Background()
	repo := NewMarcaRepository(NewStore())
	require.NoError(t, repo.Create(ctx, &entity.Marca{ID: "1", Nombre: "TP-Link", NombreNormalizado: "tp-link"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Marca{ID: "2", Nombre: "TP-LINK", NombreNormalizado: "tp-link"}), domain.ErrDuplicate)

	m, err := repo.FindByNormalizado(ctx, "tp-link")
	require.NoError(t, err)
	assert.Equal(t, "1", m.ID)

	missing, err := repo.FindByNormalizado(ctx, "huawei")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/memory"
)

func TestResolveDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewArticuloRepository(memory.NewStore())
	now := time.Now()
	seed := []*entity.Articulo{
		{ID: "old", Tipo: entity.TipoMaterial, Nombre: "Conector RJ45", Unidad: "und", Marca: "AMP", Modelo: "Cat6", IDInventario: "inv-1", Cantidad: decimal.NewFromInt(1), CreatedAt: now},
		{ID: "sku", Tipo: entity.TipoMaterial, Nombre: "Conector", Unidad: "und", Marca: "AMP", Modelo: "X", Codigo: "RJ45-100", IDInventario: "inv-1", Cantidad: decimal.NewFromInt(1), CreatedAt: now},
		{ID: "eq", Tipo: entity.TipoEquipo, Nombre: "Router", Serial: "SN-1", IDInventario: "inv-1", Cantidad: decimal.NewFromInt(1), CreatedAt: now},
	}
	for _, a := range seed {
		require.NoError(t, repo.Create(ctx, a))
	}
	r := inventory.NewResolver(repo)

	resolve := func(req dto.ArticuloRequest, inv string) *entity.Articulo {
		t.Helper()
		got, err := r.ResolveDuplicate(ctx, inventory.NewSubmission(req), inv)
		require.NoError(t, err)
		return got
	}

	tuple := dto.ArticuloRequest{Tipo: "material", Nombre: "conector rj45", Unidad: "UND", Marca: "amp", Modelo: "CAT6"}
	if got := resolve(tuple, "inv-1"); assert.NotNil(t, got) {
		assert.Equal(t, "old", got.ID)
	}
	assert.Nil(t, resolve(tuple, "inv-2"), "otro inventario no coincide")

	bySKU := dto.ArticuloRequest{Tipo: "MATERIAL", Nombre: "otro", Unidad: "m", Marca: "otra", Modelo: "z", Codigo: "rj45-100"}
	if got := resolve(bySKU, "inv-1"); assert.NotNil(t, got) {
		assert.Equal(t, "sku", got.ID)
	}

	// la tupla coincide con "old", más antiguo, pero el SKU manda
	tupleWithKnownSKU := tuple
	tupleWithKnownSKU.Codigo = "RJ45-100"
	if got := resolve(tupleWithKnownSKU, "inv-1"); assert.NotNil(t, got) {
		assert.Equal(t, "sku", got.ID)
	}

	tupleWithUnknownSKU := tuple
	tupleWithUnknownSKU.Codigo = "NUEVO"
	assert.Nil(t, resolve(tupleWithUnknownSKU, "inv-1"), "con SKU la tupla no se consulta")

	equipo := dto.ArticuloRequest{Tipo: "EQUIPO", Serial: " sn-1 "}
	if got := resolve(equipo, "inv-1"); assert.NotNil(t, got) {
		assert.Equal(t, "eq", got.ID)
	}

	// un material con el mismo texto que un serial no coincide con el equipo
	assert.Nil(t, resolve(dto.ArticuloRequest{Tipo: "MATERIAL", Nombre: "Router", Codigo: "SN-1"}, "inv-1"))
}

package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0", formatMoney("0"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "12.5", formatQty(decimal.RequireFromString("12.50")))
	assert.Equal(t, "3", formatQty(decimal.NewFromInt(3)))
}

func TestGenerateStockSheet(t *testing.T) {
	minima := decimal.NewFromInt(100)
	inv := &entity.Inventario{ID: "0b8f7c1e-1111-4c1a-9d7e-3f5a2b6c8d90", Nombre: "Bodega Norte", Responsable: "Ana"}
	arts := []*entity.Articulo{
		{Tipo: entity.TipoMaterial, Nombre: "Cable UTP", Marca: "Furukawa", Modelo: "Cat6", Unidad: "m",
			Cantidad: decimal.NewFromInt(40), Costo: decimal.NewFromInt(1200), CantidadMinima: &minima},
		{Tipo: entity.TipoEquipo, Nombre: "ONT", Marca: "ZTE", Modelo: "F660", Unidad: "und",
			Serial: "ZTEG0001", Mac: "AA:BB:CC:DD:EE:FF", Cantidad: decimal.NewFromInt(1), Costo: decimal.NewFromInt(95000)},
	}
	resumen := &dto.InventarioResumen{
		InventarioID: inv.ID, Nombre: inv.Nombre, TotalArticulos: 2, TotalMateriales: 1, TotalEquipos: 1,
		UnidadesMaterial: decimal.NewFromInt(40), ValorTotal: decimal.NewFromInt(143000),
		BajoMinimo: []dto.BajoMinimoDTO{{
			Nombre: "Cable UTP", Unidad: "m", Cantidad: decimal.NewFromInt(40),
			CantidadMinima: minima, Faltante: decimal.NewFromInt(60),
		}},
		GeneradoEn: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := NewMarotoStockSheetGenerator().GenerateStockSheet(context.Background(), inv, arts, resumen)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStockSheet_InventarioVacio(t *testing.T) {
	inv := &entity.Inventario{ID: "inv-vacio", Nombre: "Vacío"}
	resumen := &dto.InventarioResumen{BajoMinimo: []dto.BajoMinimoDTO{}, GeneradoEn: time.Now()}

	out, err := NewMarotoStockSheetGenerator().GenerateStockSheet(context.Background(), inv, nil, resumen)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

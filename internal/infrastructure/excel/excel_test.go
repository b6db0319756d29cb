package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

func libro(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// ─── Importación ─────────────────────────────────────────────────────────────

func TestLeerEquipos_EncabezadoFlexible(t *testing.T) {
	buf := libro(t, [][]interface{}{
		{"Número de Serie", "MAC", "Marca", "Columna extra", "Costo"},
		{"ZTEG0001", "", "ZTE", "x", "120.5"},
		{"", "", "", "", ""},
		{" ZTEG0002 ", "aa:bb:cc:dd:ee:ff", "", "", ""},
	})

	filas, err := LeerEquipos(buf)
	require.NoError(t, err)
	require.Len(t, filas, 2)

	assert.Equal(t, "ZTEG0001", filas[0].Serial)
	assert.Equal(t, "ZTE", filas[0].Marca)
	assert.Equal(t, "120.5", string(filas[0].Costo))
	assert.Equal(t, "ZTEG0002", filas[1].Serial)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", filas[1].Mac)
	assert.Empty(t, filas[1].Marca)
}

func TestLeerEquipos_SinColumnaSerial(t *testing.T) {
	buf := libro(t, [][]interface{}{
		{"nombre", "marca"},
		{"ONT", "ZTE"},
	})
	_, err := LeerEquipos(buf)
	assert.ErrorIs(t, err, ErrSinSerial)
}

func TestLeerEquipos_SoloEncabezado(t *testing.T) {
	buf := libro(t, [][]interface{}{{"serial"}})
	_, err := LeerEquipos(buf)
	assert.Error(t, err)
}

func TestLeerEquipos_NoEsXLSX(t *testing.T) {
	_, err := LeerEquipos(bytes.NewBufferString("serial\nABC"))
	assert.Error(t, err)
}

// ─── Exportación ─────────────────────────────────────────────────────────────

func TestExportArticulos(t *testing.T) {
	minima := decimal.NewFromInt(50)
	arts := []*entity.Articulo{
		{Tipo: entity.TipoMaterial, Nombre: "Cable UTP", Marca: "Furukawa", Modelo: "Cat6", Unidad: "m",
			Cantidad: decimal.NewFromInt(20), Costo: decimal.NewFromFloat(1.5), CantidadMinima: &minima},
		{Tipo: entity.TipoEquipo, Nombre: "ONT", Marca: "ZTE", Modelo: "F660", Unidad: "und",
			Serial: "ZTEG0001", Mac: "AA:BB:CC:DD:EE:FF", Cantidad: decimal.NewFromInt(1), Costo: decimal.NewFromInt(80)},
	}

	out, err := Exporter{}.ExportArticulos(&entity.Inventario{Nombre: "Bodega"}, arts)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(hojaArticulos)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Tipo", rows[0][0])
	assert.Equal(t, "Cable UTP", rows[1][1])
	assert.Equal(t, "30", rows[1][10]) // valor = 20 * 1.5
	assert.Equal(t, "ZTEG0001", rows[2][4])
}

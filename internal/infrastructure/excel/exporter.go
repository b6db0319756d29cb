package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

const hojaArticulos = "Articulos"

var encabezado = []interface{}{
	"Tipo", "Nombre", "Marca", "Modelo", "Serial", "MAC", "Código", "Cantidad", "Unidad",
	"Costo", "Valor", "Ubicación", "Cantidad mínima", "Descripción",
}

// Exporter implementa inventory.SpreadsheetExporter.
type Exporter struct{}

var _ inventory.SpreadsheetExporter = Exporter{}

// ExportArticulos escribe una hoja con un artículo por fila.
func (Exporter) ExportArticulos(inv *entity.Inventario, articulos []*entity.Articulo) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaArticulos); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: "Artículos - " + inv.Nombre}); err != nil {
		return nil, fmt.Errorf("excel: propiedades: %w", err)
	}
	if err := f.SetSheetRow(hojaArticulos, "A1", &encabezado); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	_ = f.SetRowStyle(hojaArticulos, 1, 1, bold)

	for i, a := range articulos {
		var minima interface{}
		if a.CantidadMinima != nil {
			minima = a.CantidadMinima.InexactFloat64()
		}
		row := []interface{}{
			a.Tipo, a.Nombre, a.Marca, a.Modelo, a.Serial, a.Mac, a.Codigo,
			a.Cantidad.InexactFloat64(), a.Unidad, a.Costo.InexactFloat64(), a.Valor().InexactFloat64(),
			a.Ubicacion, minima, a.Descripcion,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(hojaArticulos, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

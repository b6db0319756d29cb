// Package excel lee y escribe libros .xlsx con excelize: importación masiva de equipos y
// exportación de artículos.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
)

// MaxFilas límite de filas de datos por archivo.
const MaxFilas = 1000

// ErrSinSerial el encabezado no tiene columna "serial".
var ErrSinSerial = errors.New("excel: falta la columna serial")

// columnas reconocidas en el encabezado (sin tildes, sin distinguir mayúsculas).
var columnas = map[string]string{
	"serial":          "serial",
	"numero de serie": "serial",
	"mac":             "mac",
	"nombre":          "nombre",
	"marca":           "marca",
	"modelo":          "modelo",
	"unidad":          "unidad",
	"costo":           "costo",
	"ubicacion":       "ubicacion",
	"descripcion":     "descripcion",
}

// LeerEquipos lee la primera hoja: la fila 1 es el encabezado y cada fila siguiente un equipo.
// Las filas vacías se omiten. Las columnas desconocidas se ignoran.
func LeerEquipos(r io.Reader) ([]dto.EquipoFila, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir libro: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer filas: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("excel: se requiere encabezado y al menos una fila")
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		if campo, ok := columnas[articulo.Normalizar(articulo.SinAcentos(h))]; ok {
			if _, dup := idx[campo]; !dup {
				idx[campo] = i
			}
		}
	}
	if _, ok := idx["serial"]; !ok {
		return nil, ErrSinSerial
	}

	out := make([]dto.EquipoFila, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if filaVacia(row) {
			continue
		}
		if len(out) == MaxFilas {
			return nil, fmt.Errorf("excel: máximo %d filas", MaxFilas)
		}
		cell := func(campo string) string {
			i, ok := idx[campo]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		out = append(out, dto.EquipoFila{
			Serial:      cell("serial"),
			Mac:         cell("mac"),
			Nombre:      cell("nombre"),
			Marca:       cell("marca"),
			Modelo:      cell("modelo"),
			Unidad:      cell("unidad"),
			Costo:       dto.Numero(cell("costo")),
			Ubicacion:   cell("ubicacion"),
			Descripcion: cell("descripcion"),
		})
	}
	return out, nil
}

func filaVacia(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

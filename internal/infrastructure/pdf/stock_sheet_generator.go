// Package pdf genera la planilla de existencias de un inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Inventario + responsable │ Fecha de corte + QR id   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: materiales / equipos / unidades / valor total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Artículo | Serial/Código | Cant. | Costo | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BAJO MÍNIMO: materiales a reponer, mayor faltante primero   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockSheetGenerator implementa inventory.StockSheetGenerator usando Maroto v2.
type MarotoStockSheetGenerator struct{}

var _ inventory.StockSheetGenerator = (*MarotoStockSheetGenerator)(nil)

// NewMarotoStockSheetGenerator construye el generador.
func NewMarotoStockSheetGenerator() *MarotoStockSheetGenerator { return &MarotoStockSheetGenerator{} }

// GenerateStockSheet genera el PDF y devuelve sus bytes.
func (g *MarotoStockSheetGenerator) GenerateStockSheet(
	_ context.Context,
	inv *entity.Inventario,
	articulos []*entity.Articulo,
	resumen *dto.InventarioResumen,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Planilla de existencias", true).
		WithAuthor(nonEmpty(inv.Responsable, inv.Nombre), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, resumen))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resumenRow(resumen))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(articulos) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("El inventario no tiene artículos.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableDetailRows(articulos) {
		m.AddRows(r)
	}

	if len(resumen.BajoMinimo) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorAlert, Thickness: 0.3}))
		for _, r := range bajoMinimoRows(resumen.BajoMinimo) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y responsable (izq), fecha de corte y QR con el id (der).
func headerRow(inv *entity.Inventario, resumen *dto.InventarioResumen) core.Row {
	return row.New(24).Add(
		col.New(8).Add(
			text.New(inv.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Responsable: "+nonEmpty(inv.Responsable, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(inv.Descripcion, props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(2).Add(
			text.New("PLANILLA DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+resumen.GeneradoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
		col.New(2).Add(code.NewQr(inv.ID, props.Rect{Percent: 90, Center: true})),
	)
}

// resumenRow: cuatro totales en columnas iguales.
func resumenRow(r *dto.InventarioResumen) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5}),
		)
	}
	return row.New(13).Add(
		cell("MATERIALES", fmt.Sprint(r.TotalMateriales)),
		cell("EQUIPOS", fmt.Sprint(r.TotalEquipos)),
		cell("UNIDADES DE MATERIAL", formatQty(r.UnidadesMaterial)),
		cell("VALOR TOTAL", "$"+formatMoney(r.ValorTotal.StringFixed(0))),
	)
}

// tableHeaderRow: cabecera de la tabla de artículos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 1, align.Center),
		h("Artículo", 4, align.Left),
		h("Serial / Código", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("Costo", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows: una fila por artículo.
func tableDetailRows(articulos []*entity.Articulo) []core.Row {
	result := make([]core.Row, 0, len(articulos))
	for _, a := range articulos {
		tipo := "MAT"
		ident := a.Codigo
		if a.EsEquipo() {
			tipo = "EQ"
			ident = a.Serial
			if a.Mac != "" {
				ident += " / " + a.Mac
			}
		}
		desc := strings.TrimSpace(a.Nombre + " " + a.Marca + " " + a.Modelo)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(tipo, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(ident, "—"), props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(formatQty(a.Cantidad)+" "+a.Unidad, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New("$"+formatMoney(a.Costo.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(a.Valor().StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// bajoMinimoRows: título y una fila por material bajo su cantidad mínima.
func bajoMinimoRows(items []dto.BajoMinimoDTO) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("MATERIALES BAJO MÍNIMO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
			}),
		)),
	}
	for _, b := range items {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(b.Nombre, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New("Hay "+formatQty(b.Cantidad), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New("Mín. "+formatQty(b.CantidadMinima), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New("Faltan "+formatQty(b.Faltante)+" "+b.Unidad, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty sin ceros decimales sobrantes: 12.50 → "12.5", 3 → "3".
func formatQty(d decimal.Decimal) string {
	return d.String()
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

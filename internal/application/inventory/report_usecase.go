package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
)

// ReportUseCase genera la planilla PDF de existencias y la exportación a hoja de cálculo.
type ReportUseCase struct {
	summary  *SummaryUseCase
	pdf      StockSheetGenerator
	exporter SpreadsheetExporter
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(summary *SummaryUseCase, pdf StockSheetGenerator, exporter SpreadsheetExporter) *ReportUseCase {
	return &ReportUseCase{summary: summary, pdf: pdf, exporter: exporter}
}

// StockSheetPDF devuelve (pdfBytes, filename, err). domain.ErrNotFound si el inventario no existe.
func (uc *ReportUseCase) StockSheetPDF(ctx context.Context, inventarioID string) ([]byte, string, error) {
	inv, articulos, err := uc.summary.load(ctx, inventarioID)
	if err != nil {
		return nil, "", err
	}
	resumen := Resumir(inv, articulos, uc.summary.now())
	out, err := uc.pdf.GenerateStockSheet(ctx, inv, articulos, resumen)
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf: %w", err)
	}
	return out, nombreArchivo(inv.Nombre, "existencias", "pdf"), nil
}

// ArticulosXLSX devuelve (xlsxBytes, filename, err).
func (uc *ReportUseCase) ArticulosXLSX(ctx context.Context, inventarioID string) ([]byte, string, error) {
	inv, articulos, err := uc.summary.load(ctx, inventarioID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.ExportArticulos(inv, articulos)
	if err != nil {
		return nil, "", fmt.Errorf("exportar xlsx: %w", err)
	}
	return out, nombreArchivo(inv.Nombre, "articulos", "xlsx"), nil
}

// nombreArchivo arma "<inventario>-<sufijo>.<ext>" con solo letras, dígitos y guiones.
func nombreArchivo(nombre, sufijo, ext string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, articulo.Normalizar(articulo.SinAcentos(nombre)))
	base = strings.Trim(base, "-")
	if base == "" {
		base = "inventario"
	}
	return base + "-" + sufijo + "." + ext
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/application/usecase"
)

// InventarioHandler maneja inventarios, su resumen y sus reportes (protegido).
type InventarioHandler struct {
	uc      *usecase.InventarioUseCase
	summary *inventory.SummaryUseCase
	reports *inventory.ReportUseCase
	log     zerolog.Logger
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(
	uc *usecase.InventarioUseCase,
	summary *inventory.SummaryUseCase,
	reports *inventory.ReportUseCase,
	log zerolog.Logger,
) *InventarioHandler {
	return &InventarioHandler{uc: uc, summary: summary, reports: reports, log: log}
}

// Create godoc
// @Summary      Crear inventario
// @Tags         inventarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventarioRequest  true  "Datos del inventario"
// @Success      201   {object}  dto.InventarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventarios [post]
func (h *InventarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener inventario por ID
// @Tags         inventarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.InventarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id} [get]
func (h *InventarioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inventarios
// @Tags         inventarios
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.InventarioListResponse
// @Router       /api/inventarios [get]
func (h *InventarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Resumen godoc
// @Summary      Resumen del inventario
// @Description  Totales por tipo, valorización (cantidad × costo) y materiales bajo su mínimo.
// @Tags         inventarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.InventarioResumen
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/resumen [get]
func (h *InventarioHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.summary.Summarize(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ReportePDF godoc
// @Summary      Planilla de existencias (PDF)
// @Tags         inventarios
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/reporte.pdf [get]
func (h *InventarioHandler) ReportePDF(c *fiber.Ctx) error {
	body, filename, err := h.reports.StockSheetPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(body)
}

// ExportarXLSX godoc
// @Summary      Exportar artículos (xlsx)
// @Tags         inventarios
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/articulos.xlsx [get]
func (h *InventarioHandler) ExportarXLSX(c *fiber.Ctx) error {
	body, filename, err := h.reports.ArticulosXLSX(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/application/usecase"
)

// EquipoSheetReader lee las filas de un archivo de importación masiva (excel.LeerEquipos).
type EquipoSheetReader func(r io.Reader) ([]dto.EquipoFila, error)

// ArticuloHandler maneja el registro y la consulta de artículos (protegido).
type ArticuloHandler struct {
	reconcile *inventory.ReconcileUseCase
	bulk      *inventory.BulkEquipmentUseCase
	articulos *usecase.ArticuloUseCase
	readSheet EquipoSheetReader
	log       zerolog.Logger
}

// NewArticuloHandler construye el handler.
func NewArticuloHandler(
	reconcile *inventory.ReconcileUseCase,
	bulk *inventory.BulkEquipmentUseCase,
	articulos *usecase.ArticuloUseCase,
	readSheet EquipoSheetReader,
	log zerolog.Logger,
) *ArticuloHandler {
	return &ArticuloHandler{reconcile: reconcile, bulk: bulk, articulos: articulos, readSheet: readSheet, log: log}
}

// Registrar godoc
// @Summary      Registrar artículo
// @Description  Crea el artículo o, si ya existe uno con la misma clave en el inventario,
//
//	suma la cantidad (MATERIAL). Un EQUIPO con serial repetido se rechaza con 409.
//	Cada registro deja un movimiento ENTRADA en el kardex.
//
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del inventario"
// @Param        body  body  dto.ArticuloRequest  true  "tipo, nombre, marca, modelo, unidad, serial (EQUIPO), codigo, cantidad, costo, ubicacion"
// @Success      201   {object}  dto.ReconcileResponse  "creado"
// @Success      200   {object}  dto.ReconcileResponse  "fusionado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/articulos [post]
func (h *ArticuloHandler) Registrar(c *fiber.Ctx) error {
	var in dto.ArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.reconcile.Reconcile(c.Context(), in, c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out.Resultado == inventory.ResultadoCreado {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// RegistrarLote godoc
// @Summary      Registro masivo de equipos
// @Description  Cada fila se registra por separado; el resultado trae el estado de cada una.
//
//	Las filas sin MAC reciben una derivada del serial (y del prefijo, si se envía).
//
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del inventario"
// @Param        body  body  dto.EquipoLoteRequest  true  "Datos comunes y lista de equipos"
// @Success      200   {object}  dto.EquipoLoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/equipos/lote [post]
func (h *ArticuloHandler) RegistrarLote(c *fiber.Ctx) error {
	var in dto.EquipoLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.registrarLote(c, in)
}

// ImportarLote godoc
// @Summary      Importar equipos desde Excel
// @Description  Primera hoja, fila 1 encabezado (serial obligatorio; mac, nombre, marca, modelo,
//
//	unidad, costo, ubicacion, descripcion opcionales). Los campos del formulario son
//	los valores por defecto del lote.
//
// @Tags         articulos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "ID del inventario"
// @Param        archivo      formData  file    true   "Libro .xlsx"
// @Param        nombre       formData  string  false  "Nombre por defecto"
// @Param        marca        formData  string  false  "Marca por defecto"
// @Param        modelo       formData  string  false  "Modelo por defecto"
// @Param        unidad       formData  string  false  "Unidad por defecto"
// @Param        costo        formData  string  false  "Costo por defecto"
// @Param        ubicacion    formData  string  false  "Ubicación por defecto"
// @Param        prefijo_mac  formData  string  false  "Prefijo para derivar MAC"
// @Success      200  {object}  dto.EquipoLoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/equipos/importar [post]
func (h *ArticuloHandler) ImportarLote(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	filas, err := h.readSheet(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	return h.registrarLote(c, dto.EquipoLoteRequest{
		Nombre:      c.FormValue("nombre"),
		Marca:       c.FormValue("marca"),
		Modelo:      c.FormValue("modelo"),
		Unidad:      c.FormValue("unidad"),
		Costo:       dto.Numero(c.FormValue("costo")),
		Ubicacion:   c.FormValue("ubicacion"),
		Descripcion: c.FormValue("descripcion"),
		PrefijoMac:  c.FormValue("prefijo_mac"),
		Equipos:     filas,
	})
}

func (h *ArticuloHandler) registrarLote(c *fiber.Ctx, in dto.EquipoLoteRequest) error {
	out, err := h.bulk.Register(c.Context(), in, c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListByInventario godoc
// @Summary      Listar artículos del inventario
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del inventario"
// @Param        tipo    query  string  false  "MATERIAL o EQUIPO"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ArticuloListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/articulos [get]
func (h *ArticuloHandler) ListByInventario(c *fiber.Ctx) error {
	out, err := h.articulos.ListByInventario(c.Context(), c.Params("id"), c.Query("tipo"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MovimientosDeInventario godoc
// @Summary      Kardex del inventario
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del inventario"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovimientoListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/movimientos [get]
func (h *ArticuloHandler) MovimientosDeInventario(c *fiber.Ctx) error {
	out, err := h.articulos.MovimientosDeInventario(c.Context(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticuloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [get]
func (h *ArticuloHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.articulos.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Movimientos godoc
// @Summary      Kardex de un artículo
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovimientoListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/articulos/{id}/movimientos [get]
func (h *ArticuloHandler) Movimientos(c *fiber.Ctx) error {
	out, err := h.articulos.MovimientosDeArticulo(c.Context(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

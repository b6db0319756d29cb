package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/application/usecase"
	"github.com/jhoicas/backoffice-inventario/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventarioUC *usecase.InventarioUseCase
	ArticuloUC   *usecase.ArticuloUseCase
	Reconcile    *inventory.ReconcileUseCase
	BulkEquipos  *inventory.BulkEquipmentUseCase
	Summary      *inventory.SummaryUseCase
	Reports      *inventory.ReportUseCase
	Catalog      *inventory.CatalogService
	ReadSheet    EquipoSheetReader
	JWTSecret    string
	Log          zerolog.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las escrituras además
// requieren rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	lectura := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleAuditor)
	escritura := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	existe := RequireInventario(deps.InventarioUC, deps.Log)

	inventarioHandler := NewInventarioHandler(deps.InventarioUC, deps.Summary, deps.Reports, deps.Log)
	articuloHandler := NewArticuloHandler(deps.Reconcile, deps.BulkEquipos, deps.ArticuloUC, deps.ReadSheet, deps.Log)
	catalogoHandler := NewCatalogoHandler(deps.Catalog, deps.Log)
	utilidadesHandler := NewUtilidadesHandler(nil)

	// Inventarios
	inventarios := api.Group("/inventarios")
	inventarios.Post("/", escritura, inventarioHandler.Create)
	inventarios.Get("/", lectura, inventarioHandler.List)
	inventarios.Get("/:id", lectura, inventarioHandler.GetByID)
	inventarios.Get("/:id/resumen", lectura, inventarioHandler.Resumen)
	inventarios.Get("/:id/reporte.pdf", lectura, inventarioHandler.ReportePDF)
	inventarios.Get("/:id/articulos.xlsx", lectura, inventarioHandler.ExportarXLSX)

	// Artículos de un inventario
	inventarios.Post("/:id/articulos", escritura, existe, articuloHandler.Registrar)
	inventarios.Get("/:id/articulos", lectura, existe, articuloHandler.ListByInventario)
	inventarios.Get("/:id/movimientos", lectura, existe, articuloHandler.MovimientosDeInventario)
	inventarios.Post("/:id/equipos/lote", escritura, existe, articuloHandler.RegistrarLote)
	inventarios.Post("/:id/equipos/importar", escritura, existe, articuloHandler.ImportarLote)

	articulos := api.Group("/articulos")
	articulos.Get("/:id", lectura, articuloHandler.GetByID)
	articulos.Get("/:id/movimientos", lectura, articuloHandler.Movimientos)

	// Catálogo
	api.Get("/marcas", lectura, catalogoHandler.Marcas)
	api.Get("/ubicaciones", lectura, catalogoHandler.Ubicaciones)

	// Utilidades
	utilidades := api.Group("/utilidades")
	utilidades.Post("/mac", lectura, utilidadesHandler.Mac)
	utilidades.Post("/sku", lectura, utilidadesHandler.SKU)
}

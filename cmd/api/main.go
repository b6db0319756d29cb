package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/application/usecase"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/cache"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/excel"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/idgen"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/backoffice-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-inventario/internal/interfaces/http"
	"github.com/jhoicas/backoffice-inventario/pkg/config"
	"github.com/jhoicas/backoffice-inventario/pkg/logger"
)

// stores repositorios y transacciones del driver elegido en STORE_DRIVER.
type stores struct {
	inventarios repository.InventarioRepository
	articulos   repository.ArticuloRepository
	movimientos repository.MovimientoRepository
	marcas      repository.MarcaRepository
	ubicaciones repository.UbicacionRepository
	tx          inventory.TxRunner
	folios      inventory.FolioGenerator
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	// Caché de catálogo opcional: sin REDIS_URL, o si Redis no responde, se consulta el repositorio.
	var catalogCache inventory.Cache
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, catálogo sin caché")
		} else {
			defer rc.Close()
			catalogCache = rc
		}
	}

	catalog := inventory.NewCatalogService(st.marcas, st.ubicaciones, catalogCache, cfg.Redis.TTL(), log.Component("catalogo"))
	reconcileUC := inventory.NewReconcileUseCase(st.tx, st.inventarios, catalog, st.folios, log.Component("reconcile"))
	bulkUC := inventory.NewBulkEquipmentUseCase(reconcileUC, st.inventarios, cfg.Ledger.MacPrefixDefault, log.Component("lote_equipos"))
	summaryUC := inventory.NewSummaryUseCase(st.inventarios, st.articulos)
	reportUC := inventory.NewReportUseCase(summaryUC, infrapdf.NewMarotoStockSheetGenerator(), excel.Exporter{})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Back-office de inventario",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventarioUC: usecase.NewInventarioUseCase(st.inventarios),
		ArticuloUC:   usecase.NewArticuloUseCase(st.articulos, st.movimientos),
		Reconcile:    reconcileUC,
		BulkEquipos:  bulkUC,
		Summary:      summaryUC,
		Reports:      reportUC,
		Catalog:      catalog,
		ReadSheet:    excel.LeerEquipos,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores arma los repositorios según STORE_DRIVER. En memoria los folios son una
// secuencia local; en PostgreSQL, snowflake por nodo.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store.Driver == config.StoreMemory {
		s := memory.NewStore()
		return &stores{
			inventarios: memory.NewInventarioRepository(s),
			articulos:   memory.NewArticuloRepository(s),
			movimientos: memory.NewMovimientoRepository(s),
			marcas:      memory.NewMarcaRepository(s),
			ubicaciones: memory.NewUbicacionRepository(s),
			tx:          memory.NewTxRunner(s),
			folios:      &idgen.Secuencia{},
			close:       func() {},
		}, nil
	}

	folios, err := idgen.NewSnowflake(cfg.Ledger.Node)
	if err != nil {
		return nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		inventarios: postgres.NewInventarioRepository(pool),
		articulos:   postgres.NewArticuloRepository(pool),
		movimientos: postgres.NewMovimientoRepository(pool),
		marcas:      postgres.NewMarcaRepository(pool),
		ubicaciones: postgres.NewUbicacionRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		folios:      folios,
		close:       pool.Close,
	}, nil
}

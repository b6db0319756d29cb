package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/idgen"
	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/memory"
)

const testUser = "00000000-0000-0000-0000-0000000000aa"

// fixture arma el caso de uso sobre el almacén en memoria con un inventario creado.
type fixture struct {
	store   *memory.Store
	invID   string
	arts    *memory.ArticuloRepository
	movs    *memory.MovimientoRepository
	marcas  *memory.MarcaRepository
	catalog *inventory.CatalogService
	uc      *inventory.ReconcileUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithTx(t, nil)
}

// newFixtureWithTx permite envolver el TxRunner en memoria (p. ej. para forzar fallos).
func newFixtureWithTx(t *testing.T, wrap func(inventory.TxRunner) inventory.TxRunner) *fixture {
	t.Helper()
	s := memory.NewStore()
	invRepo := memory.NewInventarioRepository(s)
	inv := &entity.Inventario{ID: "inv-1", Nombre: "Bodega Norte", CreatedAt: time.Now()}
	require.NoError(t, invRepo.Create(context.Background(), inv))
	require.NoError(t, invRepo.Create(context.Background(), &entity.Inventario{ID: "inv-2", Nombre: "Bodega Sur"}))

	var tx inventory.TxRunner = memory.NewTxRunner(s)
	if wrap != nil {
		tx = wrap(tx)
	}
	marcas := memory.NewMarcaRepository(s)
	catalog := inventory.NewCatalogService(marcas, memory.NewUbicacionRepository(s), nil, time.Minute, zerolog.Nop())
	return &fixture{
		store:   s,
		invID:   inv.ID,
		arts:    memory.NewArticuloRepository(s),
		movs:    memory.NewMovimientoRepository(s),
		marcas:  marcas,
		catalog: catalog,
		uc:      inventory.NewReconcileUseCase(tx, invRepo, catalog, &idgen.Secuencia{}, zerolog.Nop()),
	}
}

func (f *fixture) articulos(t *testing.T, invID string) []*entity.Articulo {
	t.Helper()
	list, err := f.arts.ListByInventario(context.Background(), invID, repository.ArticuloFilter{})
	require.NoError(t, err)
	return list
}

func (f *fixture) movimientos(t *testing.T, invID string) []*entity.Movimiento {
	t.Helper()
	list, err := f.movs.ListByInventario(context.Background(), invID, 0, 0)
	require.NoError(t, err)
	return list
}

func cable(cantidad string) dto.ArticuloRequest {
	return dto.ArticuloRequest{
		Tipo: "MATERIAL", Nombre: "Cable UTP", Marca: "Furukawa", Modelo: "Cat6", Unidad: "m",
		Cantidad: dto.Numero(cantidad), Costo: "1200",
	}
}

func ont(serial string) dto.ArticuloRequest {
	return dto.ArticuloRequest{
		Tipo: "EQUIPO", Nombre: "ONT", Marca: "ZTE", Modelo: "F660", Unidad: "und",
		Serial: serial, Costo: "95000",
	}
}

// failingMovTx delega en el TxRunner real pero hace fallar la escritura del movimiento.
type failingMovTx struct {
	inner inventory.TxRunner
	err   error
}

func (f failingMovTx) Run(ctx context.Context, fn func(repository.ArticuloRepository, repository.MovimientoRepository) error) error {
	return f.inner.Run(ctx, func(arts repository.ArticuloRepository, movs repository.MovimientoRepository) error {
		return fn(arts, failingMovRepo{MovimientoRepository: movs, err: f.err})
	})
}

type failingMovRepo struct {
	repository.MovimientoRepository
	err error
}

func (r failingMovRepo) Create(context.Context, *entity.Movimiento) error { return r.err }

var errStore = errors.New("almacenamiento no disponible")

// mapCache caché en memoria que cuenta lecturas exitosas.
type mapCache struct {
	mu     sync.Mutex
	data   map[string]string
	hits   int
	getErr error
}

func newMapCache() *mapCache { return &mapCache{data: map[string]string{}} }

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", inventory.ErrCacheMiss
	}
	c.hits++
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

// switchTx falla la escritura del movimiento solo cuando *fail es true.
type switchTx struct {
	inner inventory.TxRunner
	fail  *bool
}

func (s switchTx) Run(ctx context.Context, fn func(repository.ArticuloRepository, repository.MovimientoRepository) error) error {
	if *s.fail {
		return failingMovTx{inner: s.inner, err: errStore}.Run(ctx, fn)
	}
	return s.inner.Run(ctx, fn)
}

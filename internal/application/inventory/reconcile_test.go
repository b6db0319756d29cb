package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// ─── Creación ────────────────────────────────────────────────────────────────

func TestReconcile_MaterialNuevo_CreaYRegistraEntrada(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.Reconcile(context.Background(), cable("30"), f.invID, testUser)
	require.NoError(t, err)

	assert.Equal(t, inventory.ResultadoCreado, res.Resultado)
	assert.True(t, res.Cantidad.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(1), res.Folio)

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.Equal(t, res.ArticuloID, arts[0].ID)
	assert.NotEmpty(t, arts[0].IDMarca)

	movs := f.movimientos(t, f.invID)
	require.Len(t, movs, 1)
	assert.Equal(t, res.MovimientoID, movs[0].ID)
	assert.Equal(t, entity.MovimientoEntrada, movs[0].Tipo)
	assert.Equal(t, f.invID, movs[0].IDInventarioDestino)
	assert.Nil(t, movs[0].IDInventarioOrigen)
	assert.Equal(t, testUser, movs[0].IDUsuario)
	assert.True(t, movs[0].Cantidad.Equal(decimal.NewFromInt(30)))
}

func TestReconcile_EquipoSiempreCantidadUno(t *testing.T) {
	f := newFixture(t)
	req := ont("ZTEG0001")
	req.Cantidad = "5"
	req.Mac = "aa:bb:cc:dd:ee:ff"

	res, err := f.uc.Reconcile(context.Background(), req, f.invID, testUser)
	require.NoError(t, err)
	assert.True(t, res.Cantidad.Equal(decimal.NewFromInt(1)))

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", arts[0].Mac)
	assert.True(t, f.movimientos(t, f.invID)[0].Cantidad.Equal(decimal.NewFromInt(1)))
}

func TestReconcile_CantidadNoNumericaValeCero(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.Reconcile(context.Background(), cable("abc"), f.invID, testUser)
	require.NoError(t, err)
	assert.True(t, res.Cantidad.IsZero())

	res, err = f.uc.Reconcile(context.Background(), cable("12.5 m"), f.invID, testUser)
	require.NoError(t, err)
	assert.Equal(t, inventory.ResultadoFusionado, res.Resultado)
	assert.True(t, res.Cantidad.Equal(decimal.RequireFromString("12.5")))
}

// ─── Fusión de materiales ────────────────────────────────────────────────────

func TestReconcile_MaterialMismaTupla_Fusiona(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Reconcile(ctx, cable("30"), f.invID, testUser)
	require.NoError(t, err)

	again := cable("20")
	again.Nombre = "  cable utp "
	again.Marca = "FURUKAWA"
	again.Modelo = "cat6"
	again.Unidad = "M"
	again.Costo = "1500"
	second, err := f.uc.Reconcile(ctx, again, f.invID, testUser)
	require.NoError(t, err)

	assert.Equal(t, inventory.ResultadoFusionado, second.Resultado)
	assert.Equal(t, first.ArticuloID, second.ArticuloID)
	assert.True(t, second.Cantidad.Equal(decimal.NewFromInt(50)))

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.Equal(t, "Cable UTP", arts[0].Nombre, "el nombre original se conserva")
	assert.True(t, arts[0].Costo.Equal(decimal.NewFromInt(1500)), "la última escritura gana")

	movs := f.movimientos(t, f.invID)
	require.Len(t, movs, 2)
	assert.True(t, movs[1].Cantidad.Equal(decimal.NewFromInt(20)), "el movimiento registra el delta")
	assert.Greater(t, movs[1].Folio, movs[0].Folio)
}

func TestReconcile_MaterialModeloDistinto_CreaOtro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Reconcile(ctx, cable("30"), f.invID, testUser)
	require.NoError(t, err)

	other := cable("10")
	other.Modelo = "Cat5e"
	res, err := f.uc.Reconcile(ctx, other, f.invID, testUser)
	require.NoError(t, err)
	assert.Equal(t, inventory.ResultadoCreado, res.Resultado)
	assert.Len(t, f.articulos(t, f.invID), 2)
}

func TestReconcile_MismoSKU_FusionaAunqueCambieLaDescripcion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := cable("10")
	a.Codigo = "UTP-CAT6-305"
	first, err := f.uc.Reconcile(ctx, a, f.invID, testUser)
	require.NoError(t, err)

	b := cable("5")
	b.Codigo = "utp-cat6-305"
	b.Nombre = "Bobina UTP"
	b.Marca = "Nexxt"
	res, err := f.uc.Reconcile(ctx, b, f.invID, testUser)
	require.NoError(t, err)

	assert.Equal(t, first.ArticuloID, res.ArticuloID)
	assert.True(t, res.Cantidad.Equal(decimal.NewFromInt(15)))
	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.Equal(t, "Nexxt", arts[0].Marca)
}

func TestReconcile_ConSKU_NoConsultaLaTupla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sinSKU, err := f.uc.Reconcile(ctx, cable("10"), f.invID, testUser)
	require.NoError(t, err)

	withSKU := cable("5")
	withSKU.Codigo = "UTP-1"
	conSKU, err := f.uc.Reconcile(ctx, withSKU, f.invID, testUser)
	require.NoError(t, err)
	assert.Equal(t, inventory.ResultadoCreado, conSKU.Resultado)
	assert.Len(t, f.articulos(t, f.invID), 2)

	// misma tupla que ambos artículos: el SKU decide y el artículo sin SKU no se toca
	otra := cable("7")
	otra.Codigo = "utp-1"
	res, err := f.uc.Reconcile(ctx, otra, f.invID, testUser)
	require.NoError(t, err)
	assert.Equal(t, inventory.ResultadoFusionado, res.Resultado)
	assert.Equal(t, conSKU.ArticuloID, res.ArticuloID)
	assert.True(t, res.Cantidad.Equal(decimal.NewFromInt(12)))

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 2)
	for _, a := range arts {
		switch a.ID {
		case sinSKU.ArticuloID:
			assert.True(t, a.Cantidad.Equal(decimal.NewFromInt(10)), "el artículo sin SKU conserva su cantidad")
			assert.Empty(t, a.Codigo)
		case conSKU.ArticuloID:
			assert.True(t, a.Cantidad.Equal(decimal.NewFromInt(12)))
		default:
			t.Fatalf("artículo inesperado %s", a.ID)
		}
	}
	assert.Len(t, f.movimientos(t, f.invID), 3)
}

func TestReconcile_InventariosIndependientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Reconcile(ctx, cable("10"), "inv-1", testUser)
	require.NoError(t, err)
	res, err := f.uc.Reconcile(ctx, cable("10"), "inv-2", testUser)
	require.NoError(t, err)
	assert.Equal(t, inventory.ResultadoCreado, res.Resultado)

	_, err = f.uc.Reconcile(ctx, ont("S-1"), "inv-1", testUser)
	require.NoError(t, err)
	_, err = f.uc.Reconcile(ctx, ont("S-1"), "inv-2", testUser)
	require.NoError(t, err)
}

// ─── Rechazos ────────────────────────────────────────────────────────────────

func TestReconcile_EquipoSerialRepetido_RechazaSinEscribir(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Reconcile(ctx, ont("ZTEG0001"), f.invID, testUser)
	require.NoError(t, err)

	_, err = f.uc.Reconcile(ctx, ont(" zteg0001 "), f.invID, testUser)
	assert.ErrorIs(t, err, domain.ErrDuplicateSerial)
	assert.Equal(t, inventory.EstadoRechazado, inventory.Classify(err))

	assert.Len(t, f.articulos(t, f.invID), 1)
	assert.Len(t, f.movimientos(t, f.invID), 1)
}

func TestReconcile_Validacion(t *testing.T) {
	cases := []struct {
		name  string
		req   func() dto.ArticuloRequest
		field string
	}{
		{"sin nombre", func() dto.ArticuloRequest { r := cable("1"); r.Nombre = "  "; return r }, "nombre"},
		{"sin marca", func() dto.ArticuloRequest { r := cable("1"); r.Marca = ""; return r }, "marca"},
		{"sin modelo", func() dto.ArticuloRequest { r := cable("1"); r.Modelo = ""; return r }, "modelo"},
		{"sin unidad", func() dto.ArticuloRequest { r := cable("1"); r.Unidad = ""; return r }, "unidad"},
		{"tipo desconocido", func() dto.ArticuloRequest { r := cable("1"); r.Tipo = "SERVICIO"; return r }, "tipo"},
		{"equipo sin serial", func() dto.ArticuloRequest { return ont("") }, "serial"},
		{"mac inválida", func() dto.ArticuloRequest { r := ont("S1"); r.Mac = "zz:zz"; return r }, "mac"},
		{"costo negativo", func() dto.ArticuloRequest { r := cable("1"); r.Costo = "-5"; return r }, "costo"},
		{"cantidad negativa", func() dto.ArticuloRequest { return cable("-3") }, "cantidad"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Reconcile(context.Background(), tc.req(), f.invID, testUser)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tc.field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			assert.Empty(t, f.articulos(t, f.invID))
			assert.Empty(t, f.movimientos(t, f.invID))
		})
	}
}

func TestReconcile_ExponenteEnorme_RechazaSinBloquear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Reconcile(ctx, cable("10"), f.invID, testUser)
	require.NoError(t, err)

	cases := map[string]func(dto.ArticuloRequest) dto.ArticuloRequest{
		"cantidad": func(r dto.ArticuloRequest) dto.ArticuloRequest { r.Cantidad = "1e50000000"; return r },
		"costo":    func(r dto.ArticuloRequest) dto.ArticuloRequest { r.Costo = "-2E999999999999"; return r },
		"cantidad_minima": func(r dto.ArticuloRequest) dto.ArticuloRequest {
			r.CantidadMinima = "1e400"
			return r
		},
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				_, err := f.uc.Reconcile(ctx, mutate(cable("5")), f.invID, testUser)
				done <- err
			}()

			select {
			case err := <-done:
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Contains(t, verr.Fields, field)
			case <-time.After(5 * time.Second):
				t.Fatal("la reconciliación no terminó")
			}
		})
	}

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.True(t, arts[0].Cantidad.Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.movimientos(t, f.invID), 1)
}

func TestReconcile_FusionQueDesbordaLaExistencia_Rechaza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Reconcile(ctx, cable("90000000000000"), f.invID, testUser)
	require.NoError(t, err)

	_, err = f.uc.Reconcile(ctx, cable("10000000000000"), f.invID, testUser)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "cantidad")
	assert.Equal(t, inventory.EstadoRechazado, inventory.Classify(err))

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.True(t, arts[0].Cantidad.Equal(decimal.NewFromInt(90000000000000)))
	assert.Len(t, f.movimientos(t, f.invID), 1)
}

func TestReconcile_InventarioInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Reconcile(context.Background(), cable("1"), "no-existe", testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcile_SinUsuario(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Reconcile(context.Background(), cable("1"), f.invID, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, f.articulos(t, f.invID))
}

// ─── Atomicidad y concurrencia ───────────────────────────────────────────────

func TestReconcile_FalloDelMovimiento_RevierteElArticulo(t *testing.T) {
	f := newFixtureWithTx(t, func(inner inventory.TxRunner) inventory.TxRunner {
		return failingMovTx{inner: inner, err: errStore}
	})

	_, err := f.uc.Reconcile(context.Background(), cable("10"), f.invID, testUser)
	require.ErrorIs(t, err, errStore)
	assert.Equal(t, inventory.EstadoError, inventory.Classify(err))
	assert.Empty(t, f.articulos(t, f.invID))
	assert.Empty(t, f.movimientos(t, f.invID))
}

func TestReconcile_FalloDelMovimiento_EnFusionNoSumaCantidad(t *testing.T) {
	var failing bool
	f := newFixtureWithTx(t, func(inner inventory.TxRunner) inventory.TxRunner {
		return switchTx{inner: inner, fail: &failing}
	})
	ctx := context.Background()
	_, err := f.uc.Reconcile(ctx, cable("10"), f.invID, testUser)
	require.NoError(t, err)

	failing = true
	_, err = f.uc.Reconcile(ctx, cable("5"), f.invID, testUser)
	require.Error(t, err)

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.True(t, arts[0].Cantidad.Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.movimientos(t, f.invID), 1)
}

func TestReconcile_ConcurrenteMismoMaterial_UnSoloArticulo(t *testing.T) {
	f := newFixture(t)
	const n = 20

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Reconcile(context.Background(), cable("1"), f.invID, testUser)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	arts := f.articulos(t, f.invID)
	require.Len(t, arts, 1)
	assert.True(t, arts[0].Cantidad.Equal(decimal.NewFromInt(n)))
	assert.Len(t, f.movimientos(t, f.invID), n)

	marcas, err := f.catalog.ListMarcas(context.Background())
	require.NoError(t, err)
	assert.Len(t, marcas, 1)
}

func TestReconcile_ConcurrenteMismoSerial_UnoGana(t *testing.T) {
	f := newFixture(t)
	const n = 10

	var wg sync.WaitGroup
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Reconcile(context.Background(), ont("ZTEG0001"), f.invID, testUser)
			results <- inventory.Classify(err)
		}()
	}
	wg.Wait()
	close(results)

	counts := map[string]int{}
	for r := range results {
		counts[r]++
	}
	assert.Equal(t, 1, counts[inventory.EstadoOK])
	assert.Equal(t, n-1, counts[inventory.EstadoRechazado])
	assert.Len(t, f.articulos(t, f.invID), 1)
}

// ─── Classify ────────────────────────────────────────────────────────────────

func TestClassify(t *testing.T) {
	assert.Equal(t, inventory.EstadoOK, inventory.Classify(nil))
	assert.Equal(t, inventory.EstadoRechazado, inventory.Classify(domain.NewValidationError("x", nil)))
	assert.Equal(t, inventory.EstadoRechazado, inventory.Classify(domain.ErrDuplicateSerial))
	assert.Equal(t, inventory.EstadoRechazado, inventory.Classify(domain.ErrNotFound))
	assert.Equal(t, inventory.EstadoError, inventory.Classify(errStore))
}

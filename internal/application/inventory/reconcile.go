package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// Resultados de una reconciliación exitosa.
const (
	ResultadoCreado    = "CREADO"
	ResultadoFusionado = "FUSIONADO"
)

// Estados para quien invoca: éxito, rechazo esperado (validación, duplicado, inventario
// inexistente) o error inesperado del almacenamiento.
const (
	EstadoOK        = "OK"
	EstadoRechazado = "RECHAZADO"
	EstadoError     = "ERROR"
)

// Classify convierte el error de Reconcile en uno de los tres estados.
func Classify(err error) string {
	switch {
	case err == nil:
		return EstadoOK
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateSerial),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnauthorized):
		return EstadoRechazado
	default:
		return EstadoError
	}
}

// ReconcileUseCase registra un artículo en un inventario: crea uno nuevo o fusiona la cantidad
// en el existente, y agrega exactamente un movimiento de ENTRADA al kardex.
// Búsqueda, escritura del artículo y del movimiento ocurren en una sola transacción, bajo un
// bloqueo por clave de identidad, de modo que dos solicitudes concurrentes con la misma clave
// no crean dos artículos.
type ReconcileUseCase struct {
	txRunner       TxRunner
	inventarioRepo repository.InventarioRepository
	catalog        *CatalogService
	folios         FolioGenerator
	log            zerolog.Logger
	now            func() time.Time
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	txRunner TxRunner,
	inventarioRepo repository.InventarioRepository,
	catalog *CatalogService,
	folios FolioGenerator,
	log zerolog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner:       txRunner,
		inventarioRepo: inventarioRepo,
		catalog:        catalog,
		folios:         folios,
		log:            log,
		now:            time.Now,
	}
}

// Reconcile valida la solicitud y aplica crear / fusionar / rechazar.
//
// Retorna:
//   - *domain.ValidationError (ErrInvalidInput) si faltan campos o hay valores inválidos; sin escrituras.
//   - domain.ErrNotFound si el inventario no existe.
//   - domain.ErrDuplicateSerial si un EQUIPO repite serial; sin escrituras.
//   - cualquier otro error del almacenamiento, sin reintentos.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, in dto.ArticuloRequest, inventarioID, userID string) (*dto.ReconcileResponse, error) {
	sub := NewSubmission(in)
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	res, err := uc.apply(ctx, sub, inventarioID, userID)
	if err != nil && Classify(err) == EstadoError {
		uc.log.Error().Err(err).
			Str("inventario", inventarioID).
			Str("tipo", sub.Tipo).
			Str("clave", sub.Clave().String()).
			Msg("reconciliación de artículo falló")
	}
	return res, err
}

func (uc *ReconcileUseCase) apply(ctx context.Context, sub Submission, inventarioID, userID string) (*dto.ReconcileResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.inventarioRepo.GetByID(ctx, inventarioID)
	if err != nil {
		return nil, fmt.Errorf("obtener inventario: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	// Referencias perezosas: cada una es idempotente por nombre y queda fuera de la tx.
	marca, err := uc.catalog.EnsureMarca(ctx, sub.Marca)
	if err != nil {
		return nil, err
	}
	var ubicacion *entity.Ubicacion
	if sub.Ubicacion != "" {
		if ubicacion, err = uc.catalog.EnsureUbicacion(ctx, sub.Ubicacion); err != nil {
			return nil, err
		}
	}

	var out *dto.ReconcileResponse
	err = uc.txRunner.Run(ctx, func(articuloRepo repository.ArticuloRepository, movRepo repository.MovimientoRepository) error {
		clave := sub.Clave()
		if err := articuloRepo.LockClave(ctx, inventarioID, clave.String()); err != nil {
			return fmt.Errorf("bloquear clave: %w", err)
		}

		match, err := NewResolver(articuloRepo).ResolveDuplicate(ctx, sub, inventarioID)
		if err != nil {
			return err
		}
		if match != nil && sub.Tipo == entity.TipoEquipo {
			return domain.ErrDuplicateSerial
		}

		now := uc.now()
		var (
			art       *entity.Articulo
			resultado string
			delta     decimal.Decimal
		)
		if match != nil {
			art = match
			delta = sub.Cantidad
			fusionar(art, sub, marca, ubicacion, now)
			if !articulo.EnRango(art.Cantidad) {
				return domain.NewValidationError("datos del artículo inválidos",
					map[string]string{"cantidad": "la existencia resultante " + msgFueraDeRango})
			}
			if err := articuloRepo.Update(ctx, art); err != nil {
				return err
			}
			resultado = ResultadoFusionado
		} else {
			art = nuevoArticulo(sub, inventarioID, marca, ubicacion, now)
			delta = art.Cantidad
			if err := articuloRepo.Create(ctx, art); err != nil {
				return err
			}
			resultado = ResultadoCreado
		}

		mov := &entity.Movimiento{
			ID:                  uuid.New().String(),
			Folio:               uc.folios.Next(),
			IDArticulo:          art.ID,
			IDInventarioDestino: inventarioID,
			Cantidad:            delta,
			Tipo:                entity.MovimientoEntrada,
			Fecha:               now,
			Descripcion:         descripcionMovimiento(resultado, art),
			IDUsuario:           userID,
			CreatedAt:           now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			// el artículo ya se escribió en esta tx; el rollback lo deshace
			uc.log.Error().Err(err).
				Str("riesgo", "escritura_parcial").
				Str("articulo", art.ID).
				Str("resultado", resultado).
				Msg("movimiento no registrado, se revierte el artículo")
			return fmt.Errorf("registrar movimiento: %w", err)
		}

		out = &dto.ReconcileResponse{
			ArticuloID:   art.ID,
			Resultado:    resultado,
			Cantidad:     art.Cantidad,
			MovimientoID: mov.ID,
			Folio:        mov.Folio,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("inventario", inventarioID).
		Str("articulo", out.ArticuloID).
		Str("resultado", out.Resultado).
		Int64("folio", out.Folio).
		Msg("artículo registrado")
	return out, nil
}

// fusionar suma la cantidad y sobrescribe todos los campos mutables con los de la solicitud
// (la última escritura gana, sin comparar campo a campo). Tipo, nombre e inventario no cambian.
func fusionar(art *entity.Articulo, sub Submission, marca *entity.Marca, ubicacion *entity.Ubicacion, now time.Time) {
	art.Cantidad = art.Cantidad.Add(sub.Cantidad)
	art.Costo = sub.Costo
	art.Unidad = sub.Unidad
	art.Descripcion = sub.Descripcion
	art.IDMarca = marca.ID
	art.Marca = marca.Nombre
	art.Modelo = sub.Modelo
	art.IDUbicacion, art.Ubicacion = refUbicacion(ubicacion)
	art.CantidadMinima = sub.CantidadMinima
	art.Codigo = sub.Codigo
	art.UpdatedAt = now
}

func nuevoArticulo(sub Submission, inventarioID string, marca *entity.Marca, ubicacion *entity.Ubicacion, now time.Time) *entity.Articulo {
	cantidad := sub.Cantidad
	if sub.Tipo == entity.TipoEquipo {
		cantidad = decimal.NewFromInt(1)
	}
	idUbic, ubic := refUbicacion(ubicacion)
	return &entity.Articulo{
		ID:             uuid.New().String(),
		Tipo:           sub.Tipo,
		Nombre:         sub.Nombre,
		IDMarca:        marca.ID,
		Marca:          marca.Nombre,
		Modelo:         sub.Modelo,
		Serial:         sub.Serial,
		Mac:            sub.Mac,
		Codigo:         sub.Codigo,
		Cantidad:       cantidad,
		Costo:          sub.Costo,
		Unidad:         sub.Unidad,
		IDUbicacion:    idUbic,
		Ubicacion:      ubic,
		Descripcion:    sub.Descripcion,
		CantidadMinima: sub.CantidadMinima,
		IDInventario:   inventarioID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func refUbicacion(u *entity.Ubicacion) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.ID, u.Nombre
}

func descripcionMovimiento(resultado string, art *entity.Articulo) string {
	if resultado == ResultadoFusionado {
		return "Ingreso de stock: " + art.Nombre
	}
	if art.EsEquipo() {
		return "Alta de equipo " + art.Serial + ": " + art.Nombre
	}
	return "Alta de material: " + art.Nombre
}

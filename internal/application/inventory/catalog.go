package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// MarcaGenerica se usa en el registro masivo cuando la fila no trae marca.
const MarcaGenerica = "GENERICO"

// CatalogService busca o crea marcas y ubicaciones por nombre normalizado.
//
// La secuencia es consulta y luego inserción condicional: dos llamadas concurrentes con el
// mismo nombre pueden ver "no existe" a la vez. El adaptador PostgreSQL cierra esa ventana con
// un índice único sobre el nombre normalizado (la segunda inserción devuelve ErrDuplicate y
// se relee); el almacén en memoria no la cierra.
type CatalogService struct {
	marcas      repository.MarcaRepository
	ubicaciones repository.UbicacionRepository
	cache       Cache
	ttl         time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewCatalogService construye el servicio. cache puede ser nil.
func NewCatalogService(
	marcas repository.MarcaRepository,
	ubicaciones repository.UbicacionRepository,
	cache Cache,
	ttl time.Duration,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		marcas:      marcas,
		ubicaciones: ubicaciones,
		cache:       cache,
		ttl:         ttl,
		log:         log,
		now:         time.Now,
	}
}

type cachedRef struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// EnsureMarca devuelve la marca con ese nombre (sin distinguir mayúsculas), creándola si falta.
func (s *CatalogService) EnsureMarca(ctx context.Context, nombre string) (*entity.Marca, error) {
	nombre = strings.TrimSpace(nombre)
	norm := articulo.Normalizar(nombre)
	if norm == "" {
		return nil, domain.NewValidationError("marca inválida", map[string]string{"marca": "es obligatorio"})
	}
	key := "marca:" + norm
	if ref, ok := s.fromCache(ctx, key); ok {
		return &entity.Marca{ID: ref.ID, Nombre: ref.Nombre, NombreNormalizado: norm}, nil
	}

	m, err := s.marcas.FindByNormalizado(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("buscar marca: %w", err)
	}
	if m == nil {
		m = &entity.Marca{ID: uuid.New().String(), Nombre: nombre, NombreNormalizado: norm, CreatedAt: s.now()}
		if err := s.marcas.Create(ctx, m); err != nil {
			if !errors.Is(err, domain.ErrDuplicate) {
				return nil, fmt.Errorf("crear marca: %w", err)
			}
			// otra solicitud la creó entre la consulta y la inserción
			if m, err = s.marcas.FindByNormalizado(ctx, norm); err != nil || m == nil {
				return nil, fmt.Errorf("releer marca: %w", errors.Join(err, domain.ErrConflict))
			}
		}
	}
	s.toCache(ctx, key, cachedRef{ID: m.ID, Nombre: m.Nombre})
	return m, nil
}

// EnsureUbicacion igual que EnsureMarca para ubicaciones.
func (s *CatalogService) EnsureUbicacion(ctx context.Context, nombre string) (*entity.Ubicacion, error) {
	nombre = strings.TrimSpace(nombre)
	norm := articulo.Normalizar(nombre)
	if norm == "" {
		return nil, domain.NewValidationError("ubicación inválida", map[string]string{"ubicacion": "es obligatorio"})
	}
	key := "ubicacion:" + norm
	if ref, ok := s.fromCache(ctx, key); ok {
		return &entity.Ubicacion{ID: ref.ID, Nombre: ref.Nombre, NombreNormalizado: norm}, nil
	}

	u, err := s.ubicaciones.FindByNormalizado(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("buscar ubicación: %w", err)
	}
	if u == nil {
		u = &entity.Ubicacion{ID: uuid.New().String(), Nombre: nombre, NombreNormalizado: norm, CreatedAt: s.now()}
		if err := s.ubicaciones.Create(ctx, u); err != nil {
			if !errors.Is(err, domain.ErrDuplicate) {
				return nil, fmt.Errorf("crear ubicación: %w", err)
			}
			if u, err = s.ubicaciones.FindByNormalizado(ctx, norm); err != nil || u == nil {
				return nil, fmt.Errorf("releer ubicación: %w", errors.Join(err, domain.ErrConflict))
			}
		}
	}
	s.toCache(ctx, key, cachedRef{ID: u.ID, Nombre: u.Nombre})
	return u, nil
}

// ListMarcas lista todas las marcas.
func (s *CatalogService) ListMarcas(ctx context.Context) ([]*entity.Marca, error) {
	return s.marcas.List(ctx)
}

// ListUbicaciones lista todas las ubicaciones.
func (s *CatalogService) ListUbicaciones(ctx context.Context) ([]*entity.Ubicacion, error) {
	return s.ubicaciones.List(ctx)
}

// La caché nunca hace fallar la operación: ante error se consulta el almacenamiento.
func (s *CatalogService) fromCache(ctx context.Context, key string) (cachedRef, bool) {
	var ref cachedRef
	if s.cache == nil {
		return ref, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn().Err(err).Str("key", key).Msg("lectura de caché de catálogo")
		}
		return ref, false
	}
	if err := json.Unmarshal([]byte(raw), &ref); err != nil || ref.ID == "" {
		return ref, false
	}
	return ref, true
}

func (s *CatalogService) toCache(ctx context.Context, key string, ref cachedRef) {
	if s.cache == nil {
		return
	}
	raw, _ := json.Marshal(ref)
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("escritura de caché de catálogo")
	}
}

package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// Resolver decide si una solicitud corresponde a un artículo existente del mismo inventario.
// Solo lee; no escribe nada.
type Resolver struct {
	repo repository.ArticuloRepository
}

// NewResolver construye el resolvedor sobre un repositorio (del pool o de una tx).
func NewResolver(repo repository.ArticuloRepository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveDuplicate devuelve el artículo que comparte clave con la solicitud, o nil.
//   - EQUIPO: mismo serial (sin distinguir mayúsculas ni espacios).
//   - MATERIAL con código: mismo código; la tupla descriptiva no se consulta.
//   - MATERIAL sin código: mismo (nombre, unidad, marca, modelo).
//
// Si hay varios candidatos gana el más antiguo.
func (r *Resolver) ResolveDuplicate(ctx context.Context, s Submission, inventarioID string) (*entity.Articulo, error) {
	clave := s.Clave()

	var (
		candidates []*entity.Articulo
		err        error
	)
	switch {
	case s.Tipo == entity.TipoEquipo:
		candidates, err = r.repo.FindEquiposBySerial(ctx, inventarioID, s.Serial)
	case clave.PorCodigo():
		candidates, err = r.repo.FindMaterialesByCodigo(ctx, inventarioID, s.Codigo)
	default:
		candidates, err = r.repo.FindMaterialesByDescriptor(ctx, inventarioID, s.Nombre, s.Unidad, s.Marca, s.Modelo)
	}
	if err != nil {
		return nil, fmt.Errorf("buscar duplicado: %w", err)
	}

	for _, c := range candidates {
		if c.IDInventario == inventarioID && clave.Coincide(c) {
			return c, nil
		}
	}
	return nil, nil
}

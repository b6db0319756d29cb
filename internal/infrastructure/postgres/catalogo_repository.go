package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

var (
	_ repository.MarcaRepository     = (*MarcaRepo)(nil)
	_ repository.UbicacionRepository = (*UbicacionRepo)(nil)
)

// MarcaRepo marcas sobre PostgreSQL. nombre_normalizado tiene índice único.
type MarcaRepo struct {
	q Querier
}

func NewMarcaRepository(q Querier) *MarcaRepo {
	return &MarcaRepo{q: q}
}

func (r *MarcaRepo) FindByNormalizado(ctx context.Context, normalizado string) (*entity.Marca, error) {
	var m entity.Marca
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, nombre_normalizado, created_at FROM marcas WHERE nombre_normalizado = $1`, normalizado,
	).Scan(&m.ID, &m.Nombre, &m.NombreNormalizado, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get marca: %w", err)
	}
	return &m, nil
}

// Create inserta la marca. Si otra solicitud la creó antes → domain.ErrDuplicate.
func (r *MarcaRepo) Create(ctx context.Context, m *entity.Marca) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO marcas (id, nombre, nombre_normalizado, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Nombre, m.NombreNormalizado, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert marca: %w", err)
	}
	return nil
}

func (r *MarcaRepo) List(ctx context.Context) ([]*entity.Marca, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, nombre_normalizado, created_at FROM marcas ORDER BY nombre_normalizado`)
	if err != nil {
		return nil, fmt.Errorf("list marcas: %w", err)
	}
	defer rows.Close()
	list := []*entity.Marca{}
	for rows.Next() {
		var m entity.Marca
		if err := rows.Scan(&m.ID, &m.Nombre, &m.NombreNormalizado, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan marca: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UbicacionRepo ubicaciones sobre PostgreSQL, mismo contrato que MarcaRepo.
type UbicacionRepo struct {
	q Querier
}

func NewUbicacionRepository(q Querier) *UbicacionRepo {
	return &UbicacionRepo{q: q}
}

func (r *UbicacionRepo) FindByNormalizado(ctx context.Context, normalizado string) (*entity.Ubicacion, error) {
	var u entity.Ubicacion
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, nombre_normalizado, created_at FROM ubicaciones WHERE nombre_normalizado = $1`, normalizado,
	).Scan(&u.ID, &u.Nombre, &u.NombreNormalizado, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ubicacion: %w", err)
	}
	return &u, nil
}

func (r *UbicacionRepo) Create(ctx context.Context, u *entity.Ubicacion) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO ubicaciones (id, nombre, nombre_normalizado, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Nombre, u.NombreNormalizado, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ubicacion: %w", err)
	}
	return nil
}

func (r *UbicacionRepo) List(ctx context.Context) ([]*entity.Ubicacion, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, nombre_normalizado, created_at FROM ubicaciones ORDER BY nombre_normalizado`)
	if err != nil {
		return nil, fmt.Errorf("list ubicaciones: %w", err)
	}
	defer rows.Close()
	list := []*entity.Ubicacion{}
	for rows.Next() {
		var u entity.Ubicacion
		if err := rows.Scan(&u.ID, &u.Nombre, &u.NombreNormalizado, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ubicacion: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

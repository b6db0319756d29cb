package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación del puerto InventarioRepository sobre PostgreSQL.
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador de persistencia para inventarios.
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// Create persiste un nuevo inventario.
func (r *InventarioRepo) Create(ctx context.Context, inv *entity.Inventario) error {
	query := `
		INSERT INTO inventarios (id, nombre, descripcion, responsable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Nombre, inv.Descripcion, inv.Responsable, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventario: %w", err)
	}
	return nil
}

// GetByID obtiene un inventario por ID; (nil, nil) si no existe.
func (r *InventarioRepo) GetByID(ctx context.Context, id string) (*entity.Inventario, error) {
	query := `
		SELECT id, nombre, descripcion, responsable, created_at, updated_at
		FROM inventarios WHERE id = $1`
	var inv entity.Inventario
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Nombre, &inv.Descripcion, &inv.Responsable, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &inv, nil
}

// List lista inventarios en orden de creación con paginación.
func (r *InventarioRepo) List(ctx context.Context, limit, offset int) ([]*entity.Inventario, error) {
	query := `
		SELECT id, nombre, descripcion, responsable, created_at, updated_at
		FROM inventarios ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitOrDefault(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list inventarios: %w", err)
	}
	defer rows.Close()
	list := []*entity.Inventario{}
	for rows.Next() {
		var inv entity.Inventario
		if err := rows.Scan(&inv.ID, &inv.Nombre, &inv.Descripcion, &inv.Responsable, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

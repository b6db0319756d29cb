package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo kardex sobre PostgreSQL. Solo inserta; la tabla no admite UPDATE ni DELETE.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const selectMovimiento = `
	SELECT id, folio, id_articulo, id_inventario_destino, id_inventario_origen, cantidad, tipo,
	       fecha, descripcion, id_usuario, created_at
	FROM movimientos`

// Create registra un movimiento. Folio repetido → domain.ErrDuplicate.
func (r *MovimientoRepo) Create(ctx context.Context, m *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, folio, id_articulo, id_inventario_destino, id_inventario_origen,
			cantidad, tipo, fecha, descripcion, id_usuario, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Folio, m.IDArticulo, m.IDInventarioDestino, m.IDInventarioOrigen,
		m.Cantidad, m.Tipo, m.Fecha, m.Descripcion, m.IDUsuario, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByArticulo historial de un artículo, más reciente primero.
func (r *MovimientoRepo) ListByArticulo(ctx context.Context, articuloID string, limit, offset int) ([]*entity.Movimiento, error) {
	query := selectMovimiento + ` WHERE id_articulo = $1 ORDER BY fecha DESC, folio DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, articuloID, limitOrDefault(limit), offset)
}

// ListByInventario movimientos con destino u origen en el inventario, más reciente primero.
func (r *MovimientoRepo) ListByInventario(ctx context.Context, inventarioID string, limit, offset int) ([]*entity.Movimiento, error) {
	query := selectMovimiento + `
		WHERE id_inventario_destino = $1 OR id_inventario_origen = $1
		ORDER BY fecha DESC, folio DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, inventarioID, limitOrDefault(limit), offset)
}

func (r *MovimientoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movimiento, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	list := []*entity.Movimiento{}
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(
			&m.ID, &m.Folio, &m.IDArticulo, &m.IDInventarioDestino, &m.IDInventarioOrigen, &m.Cantidad,
			&m.Tipo, &m.Fecha, &m.Descripcion, &m.IDUsuario, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

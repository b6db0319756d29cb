package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

var _ repository.ArticuloRepository = (*ArticuloRepo)(nil)

// Índice único parcial sobre (id_inventario, serial_norm) para EQUIPO.
const constraintSerial = "ux_articulos_inventario_serial"

// ArticuloRepo implementación de ArticuloRepository sobre PostgreSQL (usable con pool o tx).
// Las columnas *_norm guardan las formas normalizadas con las mismas reglas que la clave de
// identidad, para que la búsqueda use índices y no dependa de la intercalación.
type ArticuloRepo struct {
	q Querier
}

// NewArticuloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticuloRepository(q Querier) *ArticuloRepo {
	return &ArticuloRepo{q: q}
}

const selectArticulo = `
	SELECT a.id, a.tipo, a.nombre, a.id_marca, m.nombre, a.modelo, a.serial, a.mac, a.codigo,
	       a.cantidad, a.costo, a.unidad, COALESCE(a.id_ubicacion::text, ''), COALESCE(u.nombre, ''),
	       a.descripcion, a.cantidad_minima, a.id_inventario, a.created_at, a.updated_at
	FROM articulos a
	JOIN marcas m ON m.id = a.id_marca
	LEFT JOIN ubicaciones u ON u.id = a.id_ubicacion`

// Create persiste un artículo. Serial de EQUIPO repetido en el inventario → domain.ErrDuplicateSerial.
func (r *ArticuloRepo) Create(ctx context.Context, a *entity.Articulo) error {
	serialNorm, codigoNorm, descriptorNorm := normas(a)
	query := `
		INSERT INTO articulos (id, id_inventario, tipo, nombre, id_marca, modelo, serial, mac, codigo,
			cantidad, costo, unidad, id_ubicacion, descripcion, cantidad_minima,
			serial_norm, codigo_norm, descriptor_norm, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.IDInventario, a.Tipo, a.Nombre, a.IDMarca, a.Modelo, a.Serial, a.Mac, a.Codigo,
		a.Cantidad, a.Costo, a.Unidad, nullIfEmpty(a.IDUbicacion), a.Descripcion, a.CantidadMinima,
		serialNorm, codigoNorm, descriptorNorm, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == constraintSerial {
				return domain.ErrDuplicateSerial
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert articulo: %w", err)
	}
	return nil
}

// Update sobrescribe los campos mutables. Tipo, nombre e inventario no cambian.
func (r *ArticuloRepo) Update(ctx context.Context, a *entity.Articulo) error {
	_, codigoNorm, descriptorNorm := normas(a)
	query := `
		UPDATE articulos SET
			id_marca = $2, modelo = $3, codigo = $4, cantidad = $5, costo = $6, unidad = $7,
			id_ubicacion = $8, descripcion = $9, cantidad_minima = $10,
			codigo_norm = $11, descriptor_norm = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.IDMarca, a.Modelo, a.Codigo, a.Cantidad, a.Costo, a.Unidad,
		nullIfEmpty(a.IDUbicacion), a.Descripcion, a.CantidadMinima,
		codigoNorm, descriptorNorm, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update articulo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *ArticuloRepo) GetByID(ctx context.Context, id string) (*entity.Articulo, error) {
	a, err := scanArticulo(r.q.QueryRow(ctx, selectArticulo+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articulo: %w", err)
	}
	return a, nil
}

// ListByInventario lista artículos del inventario en orden de creación.
func (r *ArticuloRepo) ListByInventario(ctx context.Context, inventarioID string, f repository.ArticuloFilter) ([]*entity.Articulo, error) {
	query := selectArticulo + `
		WHERE a.id_inventario = $1 AND ($2 = '' OR a.tipo = $2)
		ORDER BY a.created_at, a.id LIMIT $3 OFFSET $4`
	return r.list(ctx, "list articulos", query, inventarioID, f.Tipo, limitOrDefault(f.Limit), f.Offset)
}

func (r *ArticuloRepo) FindEquiposBySerial(ctx context.Context, inventarioID, serial string) ([]*entity.Articulo, error) {
	query := selectArticulo + `
		WHERE a.id_inventario = $1 AND a.tipo = 'EQUIPO' AND a.serial_norm = $2
		ORDER BY a.created_at, a.id`
	return r.list(ctx, "find equipos by serial", query, inventarioID, articulo.Normalizar(serial))
}

func (r *ArticuloRepo) FindMaterialesByCodigo(ctx context.Context, inventarioID, codigo string) ([]*entity.Articulo, error) {
	query := selectArticulo + `
		WHERE a.id_inventario = $1 AND a.tipo = 'MATERIAL' AND a.codigo_norm = $2
		ORDER BY a.created_at, a.id`
	return r.list(ctx, "find materiales by codigo", query, inventarioID, articulo.Normalizar(codigo))
}

func (r *ArticuloRepo) FindMaterialesByDescriptor(ctx context.Context, inventarioID, nombre, unidad, marca, modelo string) ([]*entity.Articulo, error) {
	query := selectArticulo + `
		WHERE a.id_inventario = $1 AND a.tipo = 'MATERIAL' AND a.descriptor_norm = $2
		ORDER BY a.created_at, a.id`
	return r.list(ctx, "find materiales by descriptor", query, inventarioID, descriptor(nombre, unidad, marca, modelo))
}

// LockClave toma un advisory lock de transacción sobre (inventario, clave); se libera en
// commit o rollback. Usado con el pool (sin tx) no serializa nada.
func (r *ArticuloRepo) LockClave(ctx context.Context, inventarioID, clave string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, inventarioID+"|"+clave); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}

func (r *ArticuloRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Articulo, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := []*entity.Articulo{}
	for rows.Next() {
		a, err := scanArticulo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan articulo: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanArticulo(row pgx.Row) (*entity.Articulo, error) {
	var a entity.Articulo
	err := row.Scan(
		&a.ID, &a.Tipo, &a.Nombre, &a.IDMarca, &a.Marca, &a.Modelo, &a.Serial, &a.Mac, &a.Codigo,
		&a.Cantidad, &a.Costo, &a.Unidad, &a.IDUbicacion, &a.Ubicacion,
		&a.Descripcion, &a.CantidadMinima, &a.IDInventario, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// normas calcula las columnas normalizadas. Solo la que corresponde al tipo queda con valor.
func normas(a *entity.Articulo) (serial, codigo, desc *string) {
	if a.Tipo == entity.TipoEquipo {
		return nullIfEmpty(articulo.Normalizar(a.Serial)), nil, nil
	}
	d := descriptor(a.Nombre, a.Unidad, a.Marca, a.Modelo)
	return nil, nullIfEmpty(articulo.Normalizar(a.Codigo)), &d
}

func descriptor(nombre, unidad, marca, modelo string) string {
	return articulo.NuevaClave(entity.TipoMaterial, "", "", nombre, unidad, marca, modelo).String()
}

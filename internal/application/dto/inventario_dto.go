package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventarioRequest entrada para crear un inventario.
type CreateInventarioRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion string `json:"descripcion" validate:"max=1000"`
	Responsable string `json:"responsable" validate:"max=200"`
}

// InventarioResponse salida de un inventario.
type InventarioResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Responsable string    `json:"responsable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InventarioListResponse lista paginada de inventarios.
type InventarioListResponse struct {
	Items []InventarioResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// BajoMinimoDTO material por debajo de su cantidad mínima.
type BajoMinimoDTO struct {
	ArticuloID     string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Codigo         string          `json:"codigo,omitempty"`
	Unidad         string          `json:"unidad"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	CantidadMinima decimal.Decimal `json:"cantidad_minima"`
	Faltante       decimal.Decimal `json:"faltante"` // CantidadMinima - Cantidad
}

// InventarioResumen totales y alertas de un inventario.
type InventarioResumen struct {
	InventarioID     string          `json:"idinventario"`
	Nombre           string          `json:"nombre"`
	TotalArticulos   int             `json:"total_articulos"`
	TotalMateriales  int             `json:"total_materiales"`
	TotalEquipos     int             `json:"total_equipos"`
	UnidadesMaterial decimal.Decimal `json:"unidades_material"`
	ValorTotal       decimal.Decimal `json:"valor_total"` // Σ cantidad * costo
	BajoMinimo       []BajoMinimoDTO `json:"bajo_minimo"`
	GeneradoEn       time.Time       `json:"generado_en"`
}

// CatalogoItem marca o ubicación en listados.
type CatalogoItem struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

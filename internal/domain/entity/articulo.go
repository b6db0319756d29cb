package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo. Determinan la regla de fusión y no cambian después de creado.
const (
	TipoMaterial = "MATERIAL" // fungible, la cantidad se acumula
	TipoEquipo   = "EQUIPO"   // serializado, siempre cantidad 1
)

// Articulo representa una línea del inventario (material o equipo).
// IDInventario no cambia después de la creación; Serial es único por inventario entre equipos.
type Articulo struct {
	ID             string           `json:"id"`
	Tipo           string           `json:"tipo"`
	Nombre         string           `json:"nombre"`
	IDMarca        string           `json:"idmarca"`
	Marca          string           `json:"marca"`
	Modelo         string           `json:"modelo"`
	Serial         string           `json:"serial,omitempty"`
	Mac            string           `json:"mac,omitempty"`
	Codigo         string           `json:"codigo,omitempty"` // SKU
	Cantidad       decimal.Decimal  `json:"cantidad"`
	Costo          decimal.Decimal  `json:"costo"`
	Unidad         string           `json:"unidad"`
	IDUbicacion    string           `json:"idubicacion,omitempty"`
	Ubicacion      string           `json:"ubicacion,omitempty"`
	Descripcion    string           `json:"descripcion,omitempty"`
	CantidadMinima *decimal.Decimal `json:"cantidad_minima,omitempty"`
	IDInventario   string           `json:"idinventario"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// EsEquipo indica si el artículo es un equipo serializado.
func (a *Articulo) EsEquipo() bool { return a.Tipo == TipoEquipo }

// Valor devuelve cantidad * costo.
func (a *Articulo) Valor() decimal.Decimal { return a.Cantidad.Mul(a.Costo) }

// BajoMinimo indica si un material está por debajo de su cantidad mínima.
func (a *Articulo) BajoMinimo() bool {
	if a.Tipo != TipoMaterial || a.CantidadMinima == nil {
		return false
	}
	return a.Cantidad.LessThan(*a.CantidadMinima)
}

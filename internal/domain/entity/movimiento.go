package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovimientoEntrada  = "ENTRADA"
	MovimientoSalida   = "SALIDA"
	MovimientoTraslado = "TRASLADO"
)

// Movimiento es un registro inmutable del kardex. Se crea junto a la escritura del artículo y
// nunca se modifica ni se elimina.
type Movimiento struct {
	ID                  string          `json:"id"`
	Folio               int64           `json:"folio"`
	IDArticulo          string          `json:"idarticulo"`
	IDInventarioDestino string          `json:"idinventario_destino"`
	IDInventarioOrigen  *string         `json:"idinventario_origen"` // nil en entradas puras
	Cantidad            decimal.Decimal `json:"cantidad"`
	Tipo                string          `json:"tipo"`
	Fecha               time.Time       `json:"fecha"`
	Descripcion         string          `json:"descripcion"`
	IDUsuario           string          `json:"idusuario"`
	CreatedAt           time.Time       `json:"created_at"`
}

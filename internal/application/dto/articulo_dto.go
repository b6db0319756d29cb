package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Numero acepta un número JSON o un texto ("12", "12.5 kg", "") y conserva el literal.
// La interpretación (vacío o no numérico -> 0 / ausente) la hace la capa de aplicación.
type Numero string

// UnmarshalJSON acepta números, textos, null y booleanos (estos últimos como vacío).
func (n *Numero) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null", s == "true", s == "false":
		*n = ""
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = Numero(str)
		return nil
	default:
		*n = Numero(s)
		return nil
	}
}

// ArticuloRequest body para POST /api/inventarios/:id/articulos.
// Para EQUIPO serial es obligatorio y la cantidad se ignora (siempre 1).
type ArticuloRequest struct {
	Tipo           string `json:"tipo"`
	Nombre         string `json:"nombre"`
	Marca          string `json:"marca"`
	Modelo         string `json:"modelo"`
	Unidad         string `json:"unidad"`
	Serial         string `json:"serial,omitempty"`
	Mac            string `json:"mac,omitempty"`
	Codigo         string `json:"codigo,omitempty"`
	Cantidad       Numero `json:"cantidad,omitempty"`
	Costo          Numero `json:"costo,omitempty"`
	Ubicacion      string `json:"ubicacion,omitempty"`
	Descripcion    string `json:"descripcion,omitempty"`
	CantidadMinima Numero `json:"cantidad_minima,omitempty"`
}

// ReconcileResponse resultado de registrar un artículo.
type ReconcileResponse struct {
	ArticuloID   string          `json:"id"`
	Resultado    string          `json:"resultado"` // CREADO | FUSIONADO
	Cantidad     decimal.Decimal `json:"cantidad"`  // cantidad total del artículo después de la operación
	MovimientoID string          `json:"idmovimiento"`
	Folio        int64           `json:"folio"`
}

// EquipoFila una fila de registro masivo. Los campos vacíos toman el valor base del lote.
type EquipoFila struct {
	Serial      string `json:"serial"`
	Mac         string `json:"mac,omitempty"`
	Nombre      string `json:"nombre,omitempty"`
	Marca       string `json:"marca,omitempty"`
	Modelo      string `json:"modelo,omitempty"`
	Unidad      string `json:"unidad,omitempty"`
	Costo       Numero `json:"costo,omitempty"`
	Ubicacion   string `json:"ubicacion,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// EquipoLoteRequest body para POST /api/inventarios/:id/equipos/lote.
type EquipoLoteRequest struct {
	Nombre      string       `json:"nombre"`
	Marca       string       `json:"marca"`
	Modelo      string       `json:"modelo"`
	Unidad      string       `json:"unidad"`
	Costo       Numero       `json:"costo,omitempty"`
	Ubicacion   string       `json:"ubicacion,omitempty"`
	Descripcion string       `json:"descripcion,omitempty"`
	PrefijoMac  string       `json:"prefijo_mac,omitempty"`
	Equipos     []EquipoFila `json:"equipos"`
}

// EquipoLoteResultado resultado por fila de un registro masivo.
type EquipoLoteResultado struct {
	Fila       int    `json:"fila"`
	Serial     string `json:"serial"`
	Mac        string `json:"mac"`
	ArticuloID string `json:"id,omitempty"`
	Estado     string `json:"estado"` // CREADO | RECHAZADO | ERROR
	Mensaje    string `json:"mensaje,omitempty"`
}

// EquipoLoteResponse resumen del registro masivo.
type EquipoLoteResponse struct {
	Total      int                   `json:"total"`
	Creados    int                   `json:"creados"`
	Rechazados int                   `json:"rechazados"`
	Errores    int                   `json:"errores"`
	Resultados []EquipoLoteResultado `json:"resultados"`
}

// MacRequest body para POST /api/utilidades/mac.
type MacRequest struct {
	Serial  string `json:"serial"`
	Prefijo string `json:"prefijo,omitempty"`
}

// SKURequest body para POST /api/utilidades/sku.
type SKURequest struct {
	Nombre string `json:"nombre"`
	Marca  string `json:"marca"`
}

// ArticuloListResponse lista paginada de artículos.
type ArticuloListResponse struct {
	Items []ArticuloResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ArticuloResponse salida de un artículo.
type ArticuloResponse struct {
	ID             string           `json:"id"`
	Tipo           string           `json:"tipo"`
	Nombre         string           `json:"nombre"`
	Marca          string           `json:"marca"`
	Modelo         string           `json:"modelo"`
	Serial         string           `json:"serial,omitempty"`
	Mac            string           `json:"mac,omitempty"`
	Codigo         string           `json:"codigo,omitempty"`
	Cantidad       decimal.Decimal  `json:"cantidad"`
	Costo          decimal.Decimal  `json:"costo"`
	Unidad         string           `json:"unidad"`
	Ubicacion      string           `json:"ubicacion,omitempty"`
	Descripcion    string           `json:"descripcion,omitempty"`
	CantidadMinima *decimal.Decimal `json:"cantidad_minima,omitempty"`
	IDInventario   string           `json:"idinventario"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// MovimientoResponse salida de un movimiento del kardex.
type MovimientoResponse struct {
	ID                  string          `json:"id"`
	Folio               int64           `json:"folio"`
	IDArticulo          string          `json:"idarticulo"`
	IDInventarioDestino string          `json:"idinventario_destino"`
	IDInventarioOrigen  *string         `json:"idinventario_origen"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	Tipo                string          `json:"tipo"`
	Fecha               time.Time       `json:"fecha"`
	Descripcion         string          `json:"descripcion"`
	IDUsuario           string          `json:"idusuario"`
}

// MovimientoListResponse lista paginada de movimientos.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

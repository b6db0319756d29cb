// Package articulo contiene las reglas puras sobre artículos de inventario: clave de identidad,
// derivación de MAC, coerción numérica y sugerencia de SKU. No conoce el almacenamiento.
package articulo

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
)

// Normalizar recorta espacios y pliega mayúsculas/minúsculas (Unicode) para comparar nombres.
func Normalizar(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Clave es la identidad lógica de un artículo dentro de un inventario.
//   - EQUIPO: Serial.
//   - MATERIAL con código: Codigo.
//   - MATERIAL sin código: (Nombre, Unidad, Marca, Modelo).
//
// Todos los campos se guardan normalizados.
type Clave struct {
	Tipo   string
	Serial string
	Codigo string
	Nombre string
	Unidad string
	Marca  string
	Modelo string
}

// NuevaClave calcula la clave para los campos enviados. Para MATERIAL el código, si existe,
// reemplaza por completo a la tupla descriptiva.
func NuevaClave(tipo, serial, codigo, nombre, unidad, marca, modelo string) Clave {
	k := Clave{Tipo: tipo}
	switch tipo {
	case entity.TipoEquipo:
		k.Serial = Normalizar(serial)
	default:
		if c := Normalizar(codigo); c != "" {
			k.Codigo = c
			return k
		}
		k.Nombre = Normalizar(nombre)
		k.Unidad = Normalizar(unidad)
		k.Marca = Normalizar(marca)
		k.Modelo = Normalizar(modelo)
	}
	return k
}

// ClaveDeArticulo calcula la clave de un artículo existente con las mismas reglas.
func ClaveDeArticulo(a *entity.Articulo) Clave {
	return NuevaClave(a.Tipo, a.Serial, a.Codigo, a.Nombre, a.Unidad, a.Marca, a.Modelo)
}

// PorCodigo indica si la clave de material se resolvió por SKU.
func (k Clave) PorCodigo() bool { return k.Codigo != "" }

// Coincide compara la clave con un artículo existente del mismo tipo.
// Un material con SKU solo coincide por SKU; sin SKU, por la tupla descriptiva
// (el SKU del artículo existente no se consulta en ese caso).
func (k Clave) Coincide(a *entity.Articulo) bool {
	if a == nil || a.Tipo != k.Tipo {
		return false
	}
	if k.Tipo == entity.TipoEquipo {
		return k.Serial != "" && Normalizar(a.Serial) == k.Serial
	}
	if k.PorCodigo() {
		return Normalizar(a.Codigo) == k.Codigo
	}
	return Normalizar(a.Nombre) == k.Nombre &&
		Normalizar(a.Unidad) == k.Unidad &&
		Normalizar(a.Marca) == k.Marca &&
		Normalizar(a.Modelo) == k.Modelo
}

// String representación estable de la clave, usada para bloqueos y logs.
func (k Clave) String() string {
	switch {
	case k.Tipo == entity.TipoEquipo:
		return "equipo|serial=" + k.Serial
	case k.PorCodigo():
		return "material|codigo=" + k.Codigo
	default:
		return "material|" + strings.Join([]string{k.Nombre, k.Unidad, k.Marca, k.Modelo}, "|")
	}
}

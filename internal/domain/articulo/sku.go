package articulo

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Aleatorio fuente de números para el sufijo del SKU (math/rand/v2 *rand.Rand la cumple).
type Aleatorio interface {
	IntN(n int) int
}

// GenerarSKU sugiere un código {NOM}-{MAR}-{NNNN}. El sufijo es aleatorio, así que dos
// llamadas con los mismos datos no dan el mismo código: es una ayuda para el operador,
// no una clave.
func GenerarSKU(nombre, marca string, rnd Aleatorio) string {
	brand := tresLetras(marca)
	if brand == "XXX" {
		brand = "GEN"
	}
	return fmt.Sprintf("%s-%s-%04d", tresLetras(nombre), brand, rnd.IntN(10000))
}

// SinAcentos quita tildes y diacríticos ("Cámara" -> "Camara").
func SinAcentos(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return plain
}

func tresLetras(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(SinAcentos(s)) {
		if b.Len() == 3 {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	return out + strings.Repeat("X", 3-len(out))
}

package articulo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Límites de las columnas NUMERIC(18,4). Los decimales de más los redondea el almacenamiento.
const (
	MaxDigitosEnteros = 14
	MaxDecimales      = 30
)

// maxExponente: fuera de ±maxExponente un float64 ya es infinito o cero.
const maxExponente = 400

// reNumero reconoce el prefijo numérico de un texto, igual que un parseFloat tolerante:
// "12.5kg" -> 12.5, "abc" -> sin número.
var reNumero = regexp.MustCompile(`^([+-]?)(\d*)(?:\.(\d*))?(?:[eE]([+-]?\d+))?`)

// ParseNumero interpreta s como número. ok es false si no hay prefijo numérico.
// Un exponente enorme no se expande: el valor queda fuera de rango (ver EnRango) o en cero.
func ParseNumero(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(s)
	m := reNumero.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "") {
		return decimal.Zero, false
	}
	intPart := m[2]
	if intPart == "" {
		intPart = "0"
	}
	lit := m[1] + intPart
	if m[3] != "" {
		lit += "." + m[3]
	}
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}
	if m[4] == "" {
		return d, true
	}

	exp, err := strconv.Atoi(m[4])
	switch {
	case err != nil && strings.HasPrefix(m[4], "-"), err == nil && exp < -maxExponente:
		return decimal.Zero, true
	case err != nil, exp > maxExponente:
		exp = maxExponente + 1
	}
	return d.Shift(int32(exp)), true
}

// EnRango indica si d cabe en una columna de cantidad o costo: a lo sumo MaxDigitosEnteros
// dígitos enteros y MaxDecimales decimales. Solo mira coeficiente y exponente, sin reescalar.
func EnRango(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	exp := int64(d.Exponent())
	if exp < -MaxDecimales {
		return false
	}
	coef := d.Coefficient()
	digitos := int64(len(coef.Abs(coef).String()))
	return digitos+exp <= MaxDigitosEnteros
}

// NumeroOCero devuelve el número o cero si no es interpretable.
func NumeroOCero(s string) decimal.Decimal {
	d, _ := ParseNumero(s)
	return d
}

// NumeroOpcional devuelve nil para texto vacío o no numérico.
func NumeroOpcional(s string) *decimal.Decimal {
	d, ok := ParseNumero(s)
	if !ok {
		return nil
	}
	return &d
}

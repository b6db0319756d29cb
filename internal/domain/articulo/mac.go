package articulo

import (
	"regexp"
	"strings"
)

// MacVacia se devuelve cuando el serial no alcanza para formar una MAC.
const MacVacia = "00:00:00:00:00:00"

const octetosMac = 6

var (
	reNoHex      = regexp.MustCompile(`[^0-9A-Fa-f]`)
	reNoHexColon = regexp.MustCompile(`[^0-9A-Fa-f:]`)
	reColons     = regexp.MustCompile(`:{2,}`)
	reMac        = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)
)

// DeriveMac produce una MAC de presentación para un equipo sin MAC real.
// Con prefijo vacío usa solo el serial. Nunca falla: la entrada corta se rellena con ceros.
// El resultado no es una MAC globalmente única.
func DeriveMac(serial, prefix string) string {
	if strings.TrimSpace(prefix) == "" {
		return DeriveMacFromSerial(serial)
	}
	return DeriveMacWithPrefix(prefix, serial)
}

// DeriveMacFromSerial toma los últimos 12 dígitos hexadecimales del serial y los agrupa en
// 6 octetos. Con menos de 12 dígitos devuelve MacVacia.
func DeriveMacFromSerial(serial string) string {
	hex := soloHex(serial)
	if len(hex) < 2*octetosMac {
		return MacVacia
	}
	hex = hex[len(hex)-2*octetosMac:]
	octets := make([]string, 0, octetosMac)
	for i := 0; i < len(hex); i += 2 {
		octets = append(octets, hex[i:i+2])
	}
	return strings.Join(octets, ":")
}

// DeriveMacWithPrefix antepone los octetos del prefijo del operador y completa con los
// primeros dígitos hexadecimales del serial, de dos en dos. Si el prefijo ya trae 6 o más
// octetos el serial se ignora. Un prefijo sin octetos útiles cae a DeriveMacFromSerial.
func DeriveMacWithPrefix(prefix, serial string) string {
	octets := prefijoOctetos(prefix)
	if len(octets) == 0 {
		return DeriveMacFromSerial(serial)
	}
	remaining := octetosMac - len(octets)
	if remaining <= 0 {
		return strings.Join(octets[:octetosMac], ":")
	}
	hex := soloHex(serial)
	for i := 0; i < remaining; i++ {
		octets = append(octets, octetoEn(hex, i*2))
	}
	return strings.Join(octets, ":")
}

// EsMacValida valida el formato XX:XX:XX:XX:XX:XX (también acepta guiones).
func EsMacValida(mac string) bool {
	return reMac.MatchString(mac)
}

func soloHex(s string) string {
	return reNoHex.ReplaceAllString(s, "")
}

// prefijoOctetos limpia el prefijo y lo parte en octetos; la longitud de cada octeto no se
// revalida.
func prefijoOctetos(prefix string) []string {
	clean := reNoHexColon.ReplaceAllString(prefix, "")
	clean = reColons.ReplaceAllString(clean, ":")
	var octets []string
	for _, part := range strings.Split(clean, ":") {
		if part != "" {
			octets = append(octets, part)
		}
	}
	return octets
}

func octetoEn(hex string, offset int) string {
	if offset >= len(hex) {
		return "00"
	}
	end := offset + 2
	if end > len(hex) {
		end = len(hex)
	}
	seg := hex[offset:end]
	if len(seg) < 2 {
		seg = strings.Repeat("0", 2-len(seg)) + seg
	}
	return seg
}

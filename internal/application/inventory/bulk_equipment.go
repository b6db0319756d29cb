package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

// MaxFilasLote límite de equipos por registro masivo.
const MaxFilasLote = 1000

const msgMacProvisional = "MAC provisional " + articulo.MacVacia + ": el serial no alcanza para derivarla"

// BulkEquipmentUseCase registra varios equipos que comparten descripción. Cada fila se
// reconcilia por separado: el rechazo de una no afecta a las demás.
type BulkEquipmentUseCase struct {
	reconcile      *ReconcileUseCase
	inventarioRepo repository.InventarioRepository
	prefijoDefault string
	log            zerolog.Logger
}

// NewBulkEquipmentUseCase construye el caso de uso. prefijoDefault se usa cuando el lote
// no trae prefijo de MAC; puede ser vacío.
func NewBulkEquipmentUseCase(
	reconcile *ReconcileUseCase,
	inventarioRepo repository.InventarioRepository,
	prefijoDefault string,
	log zerolog.Logger,
) *BulkEquipmentUseCase {
	return &BulkEquipmentUseCase{
		reconcile:      reconcile,
		inventarioRepo: inventarioRepo,
		prefijoDefault: strings.TrimSpace(prefijoDefault),
		log:            log,
	}
}

// Register reconcilia cada fila del lote como EQUIPO. Las filas sin MAC reciben una derivada
// del serial y del prefijo. Un serial repetido dentro del mismo lote se rechaza sin consultar
// el almacenamiento.
//
// Retorna error solo si el lote completo es inválido (vacío, demasiado grande, prefijo
// inválido) o el inventario no existe; los problemas por fila van en Resultados.
func (uc *BulkEquipmentUseCase) Register(ctx context.Context, in dto.EquipoLoteRequest, inventarioID, userID string) (*dto.EquipoLoteResponse, error) {
	if len(in.Equipos) == 0 {
		return nil, domain.NewValidationError("lote vacío", map[string]string{"equipos": "debe incluir al menos un equipo"})
	}
	if len(in.Equipos) > MaxFilasLote {
		return nil, domain.NewValidationError("lote demasiado grande",
			map[string]string{"equipos": "máximo " + strconv.Itoa(MaxFilasLote) + " equipos"})
	}
	prefijo := strings.TrimSpace(in.PrefijoMac)
	if prefijo == "" {
		prefijo = uc.prefijoDefault
	}
	if prefijo != "" && !articulo.EsMacValida(articulo.DeriveMacWithPrefix(prefijo, "")) {
		return nil, domain.NewValidationError("prefijo de MAC inválido",
			map[string]string{"prefijo_mac": "use octetos hexadecimales separados por ':' (ej. AA:BB:CC)"})
	}

	inv, err := uc.inventarioRepo.GetByID(ctx, inventarioID)
	if err != nil {
		return nil, fmt.Errorf("obtener inventario: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.EquipoLoteResponse{
		Total:      len(in.Equipos),
		Resultados: make([]dto.EquipoLoteResultado, 0, len(in.Equipos)),
	}
	vistos := make(map[string]int, len(in.Equipos))

	for i, fila := range in.Equipos {
		req := filaARequest(in, fila)
		res := dto.EquipoLoteResultado{Fila: i + 1, Serial: req.Serial}

		clave := articulo.Normalizar(req.Serial)
		if previa, ok := vistos[clave]; ok && clave != "" {
			res.Estado = EstadoRechazado
			res.Mensaje = "serial repetido en el lote (fila " + strconv.Itoa(previa) + ")"
			out.Rechazados++
			out.Resultados = append(out.Resultados, res)
			continue
		}
		if clave != "" {
			vistos[clave] = i + 1
		}

		derivada := req.Mac == "" && req.Serial != ""
		if derivada {
			req.Mac = articulo.DeriveMac(req.Serial, prefijo)
		}
		res.Mac = strings.ToUpper(req.Mac)

		r, err := uc.reconcile.Reconcile(ctx, req, inventarioID, userID)
		switch Classify(err) {
		case EstadoOK:
			res.Estado = r.Resultado
			res.ArticuloID = r.ArticuloID
			if derivada && res.Mac == articulo.MacVacia {
				res.Mensaje = msgMacProvisional
			}
			out.Creados++
		case EstadoRechazado:
			res.Estado = EstadoRechazado
			res.Mensaje = mensajeRechazo(err)
			out.Rechazados++
		default:
			res.Estado = EstadoError
			res.Mensaje = "error interno al registrar el equipo"
			out.Errores++
		}
		out.Resultados = append(out.Resultados, res)
	}

	uc.log.Info().
		Str("inventario", inventarioID).
		Int("total", out.Total).
		Int("creados", out.Creados).
		Int("rechazados", out.Rechazados).
		Int("errores", out.Errores).
		Msg("registro masivo de equipos")
	return out, nil
}

// filaARequest combina los campos de la fila con los del lote; la fila gana si no está vacía.
func filaARequest(lote dto.EquipoLoteRequest, fila dto.EquipoFila) dto.ArticuloRequest {
	req := dto.ArticuloRequest{
		Tipo:        entity.TipoEquipo,
		Nombre:      primero(fila.Nombre, lote.Nombre),
		Marca:       primero(fila.Marca, lote.Marca, MarcaGenerica),
		Modelo:      primero(fila.Modelo, lote.Modelo),
		Unidad:      primero(fila.Unidad, lote.Unidad),
		Serial:      strings.TrimSpace(fila.Serial),
		Mac:         strings.TrimSpace(fila.Mac),
		Costo:       dto.Numero(primero(string(fila.Costo), string(lote.Costo))),
		Ubicacion:   primero(fila.Ubicacion, lote.Ubicacion),
		Descripcion: primero(fila.Descripcion, lote.Descripcion),
	}
	return req
}

func primero(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func mensajeRechazo(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrDuplicateSerial):
		return domain.ErrDuplicateSerial.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "inventario no encontrado"
	default:
		return err.Error()
	}
}

package http

import (
	"math/rand/v2"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain/articulo"
)

// UtilidadesHandler ayudas para el formulario de registro: MAC derivada y SKU sugerido.
// No escribe nada.
type UtilidadesHandler struct {
	rnd articulo.Aleatorio
}

// NewUtilidadesHandler construye el handler. rnd nil usa la fuente global de math/rand/v2.
func NewUtilidadesHandler(rnd articulo.Aleatorio) *UtilidadesHandler {
	if rnd == nil {
		rnd = fuenteGlobal{}
	}
	return &UtilidadesHandler{rnd: rnd}
}

// fuenteGlobal usa las funciones de nivel superior de math/rand/v2, seguras entre goroutines.
type fuenteGlobal struct{}

func (fuenteGlobal) IntN(n int) int { return rand.IntN(n) }

// Mac godoc
// @Summary      Vista previa de MAC derivada
// @Description  Misma derivación que usa el registro masivo para equipos sin MAC.
// @Tags         utilidades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MacRequest  true  "serial y prefijo opcional (p. ej. AA:BB)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/utilidades/mac [post]
func (h *UtilidadesHandler) Mac(c *fiber.Ctx) error {
	var in dto.MacRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	prefijo := strings.TrimSpace(in.Prefijo)
	if prefijo != "" && !articulo.EsMacValida(articulo.DeriveMacWithPrefix(prefijo, "")) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "prefijo inválido",
			Fields:  map[string]string{"prefijo": "solo dígitos hexadecimales separados por ':'"},
		})
	}
	return c.JSON(fiber.Map{
		"serial":  in.Serial,
		"prefijo": prefijo,
		"mac":     articulo.DeriveMac(in.Serial, prefijo),
	})
}

// SKU godoc
// @Summary      Sugerir SKU
// @Description  Formato {NOM}-{MAR}-{NNNN}. El sufijo es aleatorio; no garantiza unicidad.
// @Tags         utilidades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SKURequest  true  "nombre y marca"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/utilidades/sku [post]
func (h *UtilidadesHandler) SKU(c *fiber.Ctx) error {
	var in dto.SKURequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "nombre es requerido",
			Fields:  map[string]string{"nombre": "requerido"},
		})
	}
	return c.JSON(fiber.Map{"codigo": articulo.GenerarSKU(in.Nombre, in.Marca, h.rnd)})
}

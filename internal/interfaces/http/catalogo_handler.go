package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/application/inventory"
)

// CatalogoHandler lista marcas y ubicaciones. Se crean solas al registrar artículos.
type CatalogoHandler struct {
	catalog *inventory.CatalogService
	log     zerolog.Logger
}

func NewCatalogoHandler(catalog *inventory.CatalogService, log zerolog.Logger) *CatalogoHandler {
	return &CatalogoHandler{catalog: catalog, log: log}
}

// Marcas godoc
// @Summary      Listar marcas
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogoItem
// @Router       /api/marcas [get]
func (h *CatalogoHandler) Marcas(c *fiber.Ctx) error {
	list, err := h.catalog.ListMarcas(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.CatalogoItem, 0, len(list))
	for _, m := range list {
		items = append(items, dto.CatalogoItem{ID: m.ID, Nombre: m.Nombre})
	}
	return c.JSON(items)
}

// Ubicaciones godoc
// @Summary      Listar ubicaciones
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogoItem
// @Router       /api/ubicaciones [get]
func (h *CatalogoHandler) Ubicaciones(c *fiber.Ctx) error {
	list, err := h.catalog.ListUbicaciones(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.CatalogoItem, 0, len(list))
	for _, u := range list {
		items = append(items, dto.CatalogoItem{ID: u.ID, Nombre: u.Nombre})
	}
	return c.JSON(items)
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
)

// inventarioChecker es el contrato mínimo que necesita el middleware para verificar el inventario.
// Lo implementa *usecase.InventarioUseCase.
type inventarioChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// RequireInventario verifica que el inventario del parámetro :id exista antes de llegar al handler.
//
// Comportamiento:
//   - 404 Not Found → el inventario no existe.
//   - 503 Service Unavailable → fallo al consultar el almacenamiento.
func RequireInventario(checker inventarioChecker, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
		}

		ok, err := checker.Exists(c.Context(), id)
		if err != nil {
			log.Error().Err(err).Str("inventario", id).Msg("verificar inventario")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "INVENTARIO_CHECK_FAILED",
				Message: "no se pudo verificar el inventario, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "inventario no encontrado",
			})
		}

		return c.Next()
	}
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-inventario/internal/application/dto"
	"github.com/jhoicas/backoffice-inventario/internal/domain"
	"github.com/jhoicas/backoffice-inventario/internal/domain/entity"
	"github.com/jhoicas/backoffice-inventario/internal/domain/repository"
)

var validate = validator.New()

// InventarioUseCase casos de uso para inventarios (contenedores de artículos).
type InventarioUseCase struct {
	repo repository.InventarioRepository
}

// NewInventarioUseCase construye el caso de uso.
func NewInventarioUseCase(repo repository.InventarioRepository) *InventarioUseCase {
	return &InventarioUseCase{repo: repo}
}

// Create crea un nuevo inventario.
func (uc *InventarioUseCase) Create(ctx context.Context, in dto.CreateInventarioRequest) (*dto.InventarioResponse, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	in.Responsable = strings.TrimSpace(in.Responsable)
	if err := validate.Struct(in); err != nil {
		return nil, domain.NewValidationError("datos del inventario inválidos", map[string]string{
			"nombre": "es obligatorio (máximo 200 caracteres)",
		})
	}
	now := time.Now()
	inv := &entity.Inventario{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Responsable: in.Responsable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInventarioResponse(inv), nil
}

// GetByID obtiene un inventario por ID. domain.ErrNotFound si no existe.
func (uc *InventarioUseCase) GetByID(ctx context.Context, id string) (*dto.InventarioResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInventarioResponse(inv), nil
}

// Exists indica si el inventario existe.
func (uc *InventarioUseCase) Exists(ctx context.Context, id string) (bool, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return inv != nil, nil
}

// List lista inventarios con paginación.
func (uc *InventarioUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.InventarioListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventarioResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInventarioResponse(inv))
	}
	return &dto.InventarioListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toInventarioResponse(inv *entity.Inventario) *dto.InventarioResponse {
	if inv == nil {
		return nil
	}
	return &dto.InventarioResponse{
		ID:          inv.ID,
		Nombre:      inv.Nombre,
		Descripcion: inv.Descripcion,
		Responsable: inv.Responsable,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

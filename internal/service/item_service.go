package service

import (
	"context"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/model"
	"github.com/lturcios/turicash-backend/internal/repository"
)

type ItemService interface {
	// List returns the full catalog for the admin panel.
	List(ctx context.Context) ([]dto.ItemRow, error)
	// ListForLocation returns the active catalog of one location, as the
	// mobile client sees it.
	ListForLocation(ctx context.Context, locationID uint) ([]dto.ItemRow, error)
	Create(ctx context.Context, req dto.CreateItemRequest) (*dto.MutationResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateItemRequest) error
	Delete(ctx context.Context, id uint) error
}

type itemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func itemRows(items []model.Item) []dto.ItemRow {
	rows := make([]dto.ItemRow, len(items))
	for i, it := range items {
		row := dto.ItemRow{
			ID:         it.ID,
			Name:       it.Name,
			Price:      it.Price,
			LocationID: it.LocationID,
			IconBase64: it.IconBase64,
			IsActive:   it.IsActive,
			CreatedAt:  it.CreatedAt,
			UpdatedAt:  it.UpdatedAt,
		}
		if it.Location != nil {
			name := it.Location.Name
			row.LocationName = &name
		}
		rows[i] = row
	}
	return rows
}

func (s *itemService) List(ctx context.Context) ([]dto.ItemRow, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return itemRows(items), nil
}

func (s *itemService) ListForLocation(ctx context.Context, locationID uint) ([]dto.ItemRow, error) {
	items, err := s.repo.ListActiveByLocation(ctx, locationID)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return itemRows(items), nil
}

func (s *itemService) Create(ctx context.Context, req dto.CreateItemRequest) (*dto.MutationResponse, error) {
	item := &model.Item{
		Name:       req.Name,
		Price:      req.Price,
		LocationID: req.LocationID,
		IconBase64: req.IconBase64,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apierror.New(apierror.KindConflict, "La ubicacion referenciada no existe.")
		}
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return &dto.MutationResponse{Message: "Item creado", ID: item.ID}, nil
}

func (s *itemService) Update(ctx context.Context, id uint, req dto.UpdateItemRequest) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apierror.New(apierror.KindNotFound, "Item no encontrado.")
		}
		return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}

	item.Name = req.Name
	item.Price = req.Price
	item.LocationID = req.LocationID
	// A nil icon means "unchanged", not "clear".
	if req.IconBase64 != nil {
		item.IconBase64 = req.IconBase64
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apierror.New(apierror.KindConflict, "La ubicacion referenciada no existe.")
		}
		return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return nil
}

func (s *itemService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case repository.IsNotFound(err):
			return apierror.New(apierror.KindNotFound, "Item no encontrado.")
		case repository.IsForeignKeyViolation(err):
			return apierror.New(apierror.KindConflict, "No se puede eliminar: El item aparece en tickets emitidos.")
		default:
			return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
		}
	}
	return nil
}

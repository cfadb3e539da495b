package service

import (
	"context"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/model"
	"github.com/lturcios/turicash-backend/internal/repository"
)

type LocationService interface {
	List(ctx context.Context) ([]model.Location, error)
	Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.MutationResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateLocationRequest) error
	Delete(ctx context.Context, id uint) error
}

type locationService struct {
	repo repository.LocationRepository
}

func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) List(ctx context.Context) ([]model.Location, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return locations, nil
}

func (s *locationService) Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.MutationResponse, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	location := &model.Location{Name: req.Name, IsActive: active}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return &dto.MutationResponse{Message: "Ubicacion creada", ID: location.ID}, nil
}

func (s *locationService) Update(ctx context.Context, id uint, req dto.UpdateLocationRequest) error {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apierror.New(apierror.KindNotFound, "Ubicacion no encontrada.")
		}
		return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}

	location.Name = req.Name
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, location); err != nil {
		return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return nil
}

func (s *locationService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case repository.IsNotFound(err):
			return apierror.New(apierror.KindNotFound, "Ubicacion no encontrada.")
		case repository.IsForeignKeyViolation(err):
			return apierror.New(apierror.KindConflict, "No se puede eliminar: La ubicacion tiene usuarios, items o tickets asociados.")
		default:
			return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
		}
	}
	return nil
}

package service

import (
	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/model"
	"github.com/lturcios/turicash-backend/internal/repository"
	"github.com/lturcios/turicash-backend/internal/token"

	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)

	ListUsers(ctx context.Context) ([]dto.UserRow, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.MutationResponse, error)
	UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id uint) error
}

type authService struct {
	repo   repository.UserRepository
	issuer *token.Issuer
}

func NewAuthService(repo repository.UserRepository, issuer *token.Issuer) AuthService {
	return &authService{repo: repo, issuer: issuer}
}

// Login verifies a username + PIN pair and issues a session token.
// A missing user and a wrong PIN produce the same response so usernames
// can't be enumerated; the attempted username is only logged server-side.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindActiveByUsername(ctx, req.Username)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug().Str("username", req.Username).Msg("login: unknown or inactive username")
			return nil, apierror.New(apierror.KindUnauthenticated, "Credenciales invalidas")
		}
		return nil, apierror.Wrap(apierror.KindStorage, "Error del servidor en autenticacion", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(req.PIN)); err != nil {
		log.Debug().Str("username", req.Username).Msg("login: PIN mismatch")
		return nil, apierror.New(apierror.KindUnauthenticated, "Credenciales invalidas")
	}

	// Login requires an operational location context.
	if user.LocationID == nil || user.Location == nil {
		return nil, apierror.New(apierror.KindForbidden, "Usuario no tiene una ubicacion asignada")
	}

	signed, err := s.issuer.Issue(user.ID, user.Username, *user.LocationID)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error del servidor en autenticacion", err)
	}

	return &dto.LoginResponse{
		Message: "Login exitoso",
		Token:   signed,
		User: dto.UserSummary{
			ID:           user.ID,
			Username:     user.Username,
			FullName:     user.FullName,
			LocationID:   *user.LocationID,
			LocationName: user.Location.Name,
		},
	}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcryptCost)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error al registrar usuario", err)
	}

	locationID := req.LocationID
	user := &model.User{
		Username:   req.Username,
		PinHash:    string(hash),
		FullName:   req.FullName,
		LocationID: &locationID,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apierror.New(apierror.KindConflict, "El nombre de usuario ya existe.")
		}
		return nil, apierror.Wrap(apierror.KindStorage, "Error al registrar usuario", err)
	}

	return &dto.RegisterResponse{Message: "Usuario registrado exitosamente", UserID: user.ID}, nil
}

// ── User administration ──────────────────────────────────────────────────────

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserRow, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	rows := make([]dto.UserRow, len(users))
	for i, u := range users {
		row := dto.UserRow{
			ID:         u.ID,
			Username:   u.Username,
			FullName:   u.FullName,
			LocationID: u.LocationID,
			IsActive:   u.IsActive,
		}
		if u.Location != nil {
			name := u.Location.Name
			row.LocationName = &name
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.MutationResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcryptCost)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	user := &model.User{
		Username:   req.Username,
		PinHash:    string(hash),
		FullName:   req.FullName,
		LocationID: req.LocationID,
		IsActive:   active,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apierror.New(apierror.KindConflict, "El nombre de usuario ya existe.")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, apierror.New(apierror.KindConflict, "La ubicacion referenciada no existe.")
		}
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return &dto.MutationResponse{Message: "Usuario creado", ID: user.ID}, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apierror.New(apierror.KindNotFound, "Usuario no encontrado.")
		}
		return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}

	user.Username = req.Username
	user.FullName = req.FullName
	user.LocationID = req.LocationID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	// Only re-hash when a new PIN was provided.
	if req.PIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcryptCost)
		if err != nil {
			return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
		}
		user.PinHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return apierror.New(apierror.KindConflict, "El nombre de usuario ya existe.")
		}
		return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return nil
}

func (s *authService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case repository.IsNotFound(err):
			return apierror.New(apierror.KindNotFound, "Usuario no encontrado.")
		case repository.IsForeignKeyViolation(err):
			return apierror.New(apierror.KindConflict, "No se puede eliminar: El usuario ya tiene tickets emitidos.")
		default:
			return apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
		}
	}
	return nil
}

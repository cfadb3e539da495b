package handler

import (
	"net/http"

	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin-panel user CRUD. Login and registration live
// in AuthHandler; both sit on the same AuthService.
type UserHandler struct {
	svc service.AuthService
}

func NewUserHandler(svc service.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.UserRow
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user  body      dto.CreateUserRequest  true  "Usuario"
// @Success      201  {object}  dto.MutationResponse
// @Failure      400  {object}  apierror.Response
// @Failure      409  {object}  apierror.Response
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "ID"
// @Param        user  body      dto.UpdateUserRequest  true  "Usuario"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  apierror.Response
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateUser(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: "Usuario actualizado"})
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  apierror.Response
// @Failure      409  {object}  apierror.Response
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: "Usuario eliminado"})
}

package handler

import (
	"net/http"

	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary      Autenticar usuario
// @Description  Valida username + PIN y devuelve un token de sesion de 24h
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      dto.LoginRequest  true  "Credenciales"
// @Success      200  {object}  dto.LoginResponse
// @Failure      400  {object}  apierror.Response
// @Failure      401  {object}  apierror.Response
// @Failure      403  {object}  apierror.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user  body      dto.RegisterRequest  true  "Nuevo usuario"
// @Success      201  {object}  dto.RegisterResponse
// @Failure      400  {object}  apierror.Response
// @Failure      409  {object}  apierror.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

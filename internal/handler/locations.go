package handler

import (
	"net/http"

	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	svc service.LocationService
}

func NewLocationHandler(svc service.LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.Location
// @Router       /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// Create godoc
// @Summary      Crear ubicacion
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        location  body      dto.CreateLocationRequest  true  "Ubicacion"
// @Success      201  {object}  dto.MutationResponse
// @Failure      400  {object}  apierror.Response
// @Router       /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Actualizar ubicacion
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      int                        true  "ID"
// @Param        location  body      dto.UpdateLocationRequest  true  "Ubicacion"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  apierror.Response
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: "Ubicacion actualizada"})
}

// Delete godoc
// @Summary      Eliminar ubicacion
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  apierror.Response
// @Failure      409  {object}  apierror.Response
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: "Ubicacion eliminada"})
}

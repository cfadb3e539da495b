package handler

import (
	"net/http"

	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/middleware"
	"github.com/lturcios/turicash-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// List godoc
// @Summary      Catalogo completo de items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ItemRow
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListMine godoc
// @Summary      Items activos de la ubicacion del token
// @Description  Catalogo que el cliente movil descarga para operar offline
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ItemRow
// @Router       /items/active [get]
func (h *ItemHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	items, err := h.svc.ListForLocation(c.Request.Context(), claims.LocationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        item  body      dto.CreateItemRequest  true  "Item"
// @Success      201  {object}  dto.MutationResponse
// @Failure      400  {object}  apierror.Response
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
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
// @Summary      Actualizar item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "ID"
// @Param        item  body      dto.UpdateItemRequest  true  "Item"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  apierror.Response
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: "Item actualizado"})
}

// Delete godoc
// @Summary      Eliminar item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  apierror.Response
// @Failure      409  {object}  apierror.Response
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: "Item eliminado"})
}

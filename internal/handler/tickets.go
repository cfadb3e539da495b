package handler

import (
	"fmt"
	"net/http"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/middleware"
	"github.com/lturcios/turicash-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// Sync godoc
// @Summary      Sincronizar tickets offline
// @Description  Persiste en una sola transaccion el lote de tickets acumulado por el cliente
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        batch  body      dto.SyncRequest  true  "Lote de tickets"
// @Success      201  {object}  dto.SyncResponse
// @Failure      400  {object}  apierror.Response
// @Failure      401  {object}  apierror.Response
// @Failure      500  {object}  apierror.Response
// @Router       /tickets/sync [post]
func (h *TicketHandler) Sync(c *gin.Context) {
	var req dto.SyncRequest
	if !bindAndValidate(c, &req) {
		return
	}

	persisted, err := h.svc.SyncBatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if claims := middleware.GetClaims(c); claims != nil {
		log.Info().
			Uint("user_id", claims.UserID).
			Int("received", len(req.Tickets)).
			Int("persisted", persisted).
			Msg("ticket batch synced")
	}
	c.JSON(http.StatusCreated, dto.SyncResponse{
		Message: fmt.Sprintf("Sincronizacion exitosa. %d tickets guardados.", persisted),
	})
}

// List godoc
// @Summary      Historial de tickets
// @Description  Ultimos 500 tickets, filtrables por fecha, usuario y ubicacion
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        date_from    query  string  false  "YYYY-MM-DD"
// @Param        date_to      query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        user_id      query  int     false  "Filtrar por usuario"
// @Param        location_id  query  int     false  "Filtrar por ubicacion"
// @Success      200  {array}   dto.TicketRow
// @Failure      400  {object}  apierror.Response
// @Failure      401  {object}  apierror.Response
// @Router       /tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	var filter dto.TicketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: "Parametros de consulta invalidos"})
		return
	}
	rows, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Items godoc
// @Summary      Lineas de un ticket
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del ticket"
// @Success      200  {array}   model.TicketItem
// @Failure      400  {object}  apierror.Response
// @Failure      401  {object}  apierror.Response
// @Router       /tickets/{id}/items [get]
func (h *TicketHandler) Items(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	items, err := h.svc.ItemsByTicketID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

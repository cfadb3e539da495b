package handler

import (
	"net/http"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func bindDashboardFilter(c *gin.Context) (dto.DashboardFilter, bool) {
	var filter dto.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: "Parametros de consulta invalidos"})
		return filter, false
	}
	return filter, true
}

// Stats godoc
// @Summary      Totales globales
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatsResponse
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesByPeriod godoc
// @Summary      Ventas agrupadas por dia, semana o mes
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        period       query  string  false  "day | week | month"  default(day)
// @Param        limit        query  int     false  "Numero de periodos"
// @Param        location_id  query  int     false  "Filtrar por ubicacion"
// @Success      200  {array}   dto.PeriodSalesRow
// @Failure      400  {object}  apierror.Response
// @Router       /dashboard/sales-by-period [get]
func (h *DashboardHandler) SalesByPeriod(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.SalesByPeriod(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TopItems godoc
// @Summary      Items mas vendidos
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.TopItemRow
// @Router       /dashboard/top-items [get]
func (h *DashboardHandler) TopItems(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.TopItems(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SalesByLocation godoc
// @Summary      Ventas por ubicacion
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.LocationSalesRow
// @Router       /dashboard/sales-by-location [get]
func (h *DashboardHandler) SalesByLocation(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.SalesByLocation(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SalesByUser godoc
// @Summary      Ventas por usuario
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.UserSalesRow
// @Router       /dashboard/sales-by-user [get]
func (h *DashboardHandler) SalesByUser(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.SalesByUser(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// PaymentMethods godoc
// @Summary      Distribucion por metodo de pago
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PaymentMethodRow
// @Router       /dashboard/payment-methods [get]
func (h *DashboardHandler) PaymentMethods(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.PaymentMethods(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// RecentActivity godoc
// @Summary      Ultimos tickets emitidos
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.RecentActivityRow
// @Router       /dashboard/recent-activity [get]
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.RecentActivity(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SalesToday godoc
// @Summary      Resumen de ventas del dia
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TodaySalesResponse
// @Router       /dashboard/sales-today [get]
func (h *DashboardHandler) SalesToday(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesToday(c.Request.Context(), filter.LocationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HourlySales godoc
// @Summary      Ventas por hora de un dia
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        date         query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        location_id  query  int     false  "Filtrar por ubicacion"
// @Success      200  {array}   dto.HourlySalesRow
// @Failure      400  {object}  apierror.Response
// @Router       /dashboard/hourly-sales [get]
func (h *DashboardHandler) HourlySales(c *gin.Context) {
	filter, ok := bindDashboardFilter(c)
	if !ok {
		return
	}
	rows, err := h.svc.HourlySales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

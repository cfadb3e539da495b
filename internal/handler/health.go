package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports process liveness plus the state of both backing
// stores. Redis being down degrades the response but not the status code:
// the API stays usable without its cache.
type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	body := gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	dbUp := false
	if h.db != nil {
		if sqlDB, err := h.db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			dbUp = true
		}
	}
	if dbUp {
		body["database"] = "up"
	} else {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = "down"
	}

	if h.rdb != nil && h.rdb.Ping(ctx).Err() == nil {
		body["redis"] = "up"
	} else {
		body["redis"] = "down"
	}

	c.JSON(status, body)
}

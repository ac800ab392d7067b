package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	healthOK          = "ok"
	healthDegraded    = "degraded"
	healthUnavailable = "unavailable"
)

// Pinger is implemented by the storage and cache clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler checks db on every call, and cache too when it is
// non-nil. Only the database decides whether the service is available.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": healthOK, "mongodb": healthOK}

	if h.cache != nil {
		body["redis"] = healthOK
		if err := h.cache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: redis unreachable")
			body["redis"] = healthUnavailable
			body["status"] = healthDegraded
		}
	}

	if err := h.db.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("health check: database unreachable")
		body["mongodb"] = healthUnavailable
		body["status"] = healthUnavailable
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

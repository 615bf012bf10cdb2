// Package statistics serves the admin platform dashboard.
package statistics

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/middleware"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

const (
	msgFetchFailed = "Failed to fetch platform stats"

	statsCacheKey = "platform-stats"
	statsTTL      = 30 * time.Second
)

type Service interface {
	GetPlatformStats(ctx context.Context, token string) (*models.PlatformStatsResponse, error)
}

type Handlers struct {
	service Service
	// Platform stats are identical for every admin; a short TTL keeps the
	// dashboard snappy without hammering the backend aggregation.
	cache  *gocache.Cache
	logger *zap.Logger
}

func NewHandlers(service Service, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		service: service,
		cache:   gocache.New(statsTTL, 2*statsTTL),
		logger:  logger,
	}
}

func (h *Handlers) GetHandler(c *gin.Context) {
	if v, ok := h.cache.Get(statsCacheKey); ok {
		c.JSON(http.StatusOK, v.(*models.PlatformStatsResponse))
		return
	}

	state := middleware.GetSessionFromContext(c)
	resp, err := h.service.GetPlatformStats(c.Request.Context(), state.Token())
	if err != nil {
		middleware.FailFromBackend(c, err, msgFetchFailed)
		return
	}

	h.cache.SetDefault(statsCacheKey, resp)
	c.JSON(http.StatusOK, resp)
}
